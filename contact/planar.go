// Package contact computes absolute 6DoF poses for rigid bodies from declared
// surface-to-surface contacts. Bodies carry Shapes exposing named contact
// plane families; a ContactGraph links them into a forest whose roots are
// placed by absolute pose and whose other members are placed by propagating
// contact relations root to leaf.
package contact

import (
	"math"

	"github.com/golang/geo/r3"

	"github.com/mechpose/contactgraph/spatialmath"
)

// outwardNormalFlip is the fixed 180 degree rotation about the axis (1,1,0)
// relating two externally tangent contact plane frames, whose outward normals
// point in opposite directions. It is a process-wide constant.
var outwardNormalFlip = spatialmath.NewPoseFromOrientation(
	&spatialmath.R4AA{Theta: math.Pi, RX: 1, RY: 1, RZ: 0},
)

// PlanarContact is the 3DoF parametrization of an externally tangent contact
// between two plane frames: an in-plane offset (X, Y), a rotation Angle
// (radians) about the shared normal, and an optional Slack pose holding the
// residual rigid motion of an inexact contact. A nil Slack means exact tangency.
type PlanarContact struct {
	X     float64
	Y     float64
	Angle float64
	Slack spatialmath.Pose
}

// NewPlanarContact returns an exact (slack-free) planar contact.
func NewPlanarContact(x, y, angle float64) *PlanarContact {
	return &PlanarContact{X: x, Y: y, Angle: angle}
}

// To6DOF converts the planar parametrization to a full rigid pose. This is the
// single source of truth for the mapping: the flip acts first, then the
// rotation about +z, then the in-plane translation, with any slack appended.
func (c *PlanarContact) To6DOF() spatialmath.Pose {
	inPlane := spatialmath.NewPose(
		r3.Vector{X: c.X, Y: c.Y},
		&spatialmath.R4AA{Theta: c.Angle, RX: 0, RY: 0, RZ: 1},
	)
	pose := spatialmath.Compose(inPlane, outwardNormalFlip)
	if c.Slack != nil {
		pose = spatialmath.Compose(pose, c.Slack)
	}
	return pose
}

// ClosestApproximatingContact finds the planar contact whose slack-free pose
// deviates least from the given pose in both translation and rotation, and
// stores the exact residual in Slack. The round trip To6DOF() == pose holds
// exactly because the slack is defined residually; for a pose that is exactly
// representable the slack comes out as the identity.
func ClosestApproximatingContact(pose spatialmath.Pose) *PlanarContact {
	// Neither the z-rotation nor the flip carries translation, so the in-plane
	// offset is read off the position directly.
	pt := pose.Point()

	// Unwind the flip, leaving the in-plane rotation candidate.
	unflipped := spatialmath.Compose(pose, spatialmath.PoseInverse(outwardNormalFlip))
	q := unflipped.Orientation().Quaternion()

	// Maximizing cosine similarity against a pure z-rotation reduces, via the
	// double-cover identity cos = 2<q1,q2>^2 - 1, to extremizing
	// w*cos(angle/2) + k*sin(angle/2), which peaks at angle/2 = atan2(k, w).
	angle := 2 * math.Atan2(q.Kmag, q.Real)

	c := &PlanarContact{X: pt.X, Y: pt.Y, Angle: angle}
	c.Slack = spatialmath.PoseBetween(c.To6DOF(), pose)
	return c
}
