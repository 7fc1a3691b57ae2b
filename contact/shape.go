package contact

import (
	"fmt"
	"math"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"github.com/mechpose/contactgraph/spatialmath"
)

// Shape is the capability every rigid body geometry must provide: resolving a
// named, possibly parametrized, contact plane family to the pose of that
// plane's frame within the shape's own coordinate frame. Every plane frame
// has +z along the outward surface normal. Nothing else in the system depends
// on shape internals, so new variants need only implement this one method.
type Shape interface {
	ContactPlane(familyID string, params ...float64) (spatialmath.Pose, error)
}

// Box face family names.
const (
	FamilyTop    = "top"
	FamilyBottom = "bottom"
	FamilyLeft   = "left"
	FamilyRight  = "right"
	FamilyFront  = "front"
	FamilyBack   = "back"
)

// boxFacePose returns the frame of the named face of an axis-aligned box with
// the given half dimensions, centered at the origin. The orientation of each
// face frame is a fixed convention; downstream pose results depend on it, so
// it must not be re-derived.
func boxFacePose(half r3.Vector, familyID string) (spatialmath.Pose, bool) {
	switch familyID {
	case FamilyTop:
		return spatialmath.NewPoseFromPoint(r3.Vector{Z: half.Z}), true
	case FamilyBottom:
		return spatialmath.NewPose(
			r3.Vector{Z: -half.Z},
			&spatialmath.R4AA{Theta: math.Pi, RX: 1},
		), true
	case FamilyRight:
		return spatialmath.NewPose(
			r3.Vector{X: half.X},
			&spatialmath.R4AA{Theta: math.Pi / 2, RY: 1},
		), true
	case FamilyLeft:
		return spatialmath.NewPose(
			r3.Vector{X: -half.X},
			&spatialmath.R4AA{Theta: -math.Pi / 2, RY: 1},
		), true
	case FamilyFront:
		return spatialmath.NewPose(
			r3.Vector{Y: half.Y},
			&spatialmath.R4AA{Theta: -math.Pi / 2, RX: 1},
		), true
	case FamilyBack:
		return spatialmath.NewPose(
			r3.Vector{Y: -half.Y},
			&spatialmath.R4AA{Theta: math.Pi / 2, RX: 1},
		), true
	default:
		return nil, false
	}
}

// Box is a solid axis-aligned rectangular prism centered at its own origin.
// It exposes one zero-dimensional contact plane family per face, each frame
// centered on its face with +z outward.
type Box struct {
	halfSize r3.Vector
}

// NewBox instantiates a Box Shape from full side lengths. All dimensions must
// be positive.
func NewBox(dims r3.Vector) (*Box, error) {
	if dims.X <= 0 || dims.Y <= 0 || dims.Z <= 0 {
		return nil, errors.Errorf("box dimensions must be positive, got %v", dims)
	}
	return &Box{halfSize: dims.Mul(0.5)}, nil
}

// ContactPlane resolves one of the six face families. Box ignores plane
// parameters; its families are zero-dimensional.
func (b *Box) ContactPlane(familyID string, params ...float64) (spatialmath.Pose, error) {
	pose, ok := boxFacePose(b.halfSize, familyID)
	if !ok {
		return nil, NewUnknownContactFamilyError(b.String(), familyID)
	}
	return pose, nil
}

// String returns a human readable string that represents the box.
func (b *Box) String() string {
	return fmt.Sprintf("box %.3fx%.3fx%.3f", 2*b.halfSize.X, 2*b.halfSize.Y, 2*b.halfSize.Z)
}

// BoxContainer face family name prefixes.
const (
	outerPrefix = "outer_"
	innerPrefix = "inner_"
)

// innerFlip turns an outer face frame into the inner frame at the same point:
// a 180 degree rotation about the frame's local x-axis, so +z points into the cavity.
var innerFlip = spatialmath.NewPoseFromOrientation(&spatialmath.R4AA{Theta: math.Pi, RX: 1})

// BoxContainer is a hollow box shell. Each face contributes two families: the
// outer_<face> family with the same convention as Box, and the inner_<face>
// family at the same point with its outward normal pointing into the cavity.
type BoxContainer struct {
	halfSize r3.Vector
}

// NewBoxContainer instantiates a hollow box shell Shape from full side lengths.
// All dimensions must be positive.
func NewBoxContainer(dims r3.Vector) (*BoxContainer, error) {
	if dims.X <= 0 || dims.Y <= 0 || dims.Z <= 0 {
		return nil, errors.Errorf("box container dimensions must be positive, got %v", dims)
	}
	return &BoxContainer{halfSize: dims.Mul(0.5)}, nil
}

// ContactPlane resolves one of the twelve outer_/inner_ face families.
func (b *BoxContainer) ContactPlane(familyID string, params ...float64) (spatialmath.Pose, error) {
	var face string
	var inner bool
	switch {
	case strings.HasPrefix(familyID, outerPrefix):
		face = strings.TrimPrefix(familyID, outerPrefix)
	case strings.HasPrefix(familyID, innerPrefix):
		face = strings.TrimPrefix(familyID, innerPrefix)
		inner = true
	default:
		return nil, NewUnknownContactFamilyError(b.String(), familyID)
	}
	pose, ok := boxFacePose(b.halfSize, face)
	if !ok {
		return nil, NewUnknownContactFamilyError(b.String(), familyID)
	}
	if inner {
		pose = spatialmath.Compose(pose, innerFlip)
	}
	return pose, nil
}

// String returns a human readable string that represents the box container.
func (b *BoxContainer) String() string {
	return fmt.Sprintf("box container %.3fx%.3fx%.3f", 2*b.halfSize.X, 2*b.halfSize.Y, 2*b.halfSize.Z)
}
