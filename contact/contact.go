package contact

import (
	"github.com/pkg/errors"

	"github.com/mechpose/contactgraph/spatialmath"
)

// ShapeContact is the payload of a directed parent->child contact edge: which
// plane family on each body touches, the plane parameters for parametrized
// families, and the planar parametrization of the tangency itself.
type ShapeContact struct {
	ParentFamily string
	ParentParams []float64
	ChildFamily  string
	ChildParams  []float64
	Planar       PlanarContact
}

// RelativePose resolves the contact to the 6DoF pose of the child body frame
// expressed in the parent body frame: the parent's plane frame, through the
// planar contact, with the child's own plane frame divided back out so the
// result is in whole-body rather than plane-local coordinates.
func (sc *ShapeContact) RelativePose(parent, child Shape) (spatialmath.Pose, error) {
	parentPlane, err := parent.ContactPlane(sc.ParentFamily, sc.ParentParams...)
	if err != nil {
		return nil, errors.Wrap(err, "parent")
	}
	childPlane, err := child.ContactPlane(sc.ChildFamily, sc.ChildParams...)
	if err != nil {
		return nil, errors.Wrap(err, "child")
	}
	meeting := spatialmath.Compose(parentPlane, sc.Planar.To6DOF())
	return spatialmath.PoseBetweenInverse(meeting, childPlane), nil
}
