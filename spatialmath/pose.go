package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/dualquat"
	"gonum.org/v1/gonum/num/quat"
)

// Pose represents a 6DoF rigid transformation: a position in 3D space and an
// orientation. Poses are immutable once constructed.
type Pose interface {
	Point() r3.Vector
	Orientation() Orientation
}

// dualQuaternion is the pose implementation. The real part is a unit rotation
// quaternion and the dual part encodes translation as dual = (0, t/2) * real.
type dualQuaternion struct {
	dualquat.Number
}

func newDualQuaternion() *dualQuaternion {
	return &dualQuaternion{dualquat.Number{
		Real: quat.Number{Real: 1},
		Dual: quat.Number{},
	}}
}

func newDualQuaternionFromPose(p Pose) *dualQuaternion {
	if dq, ok := p.(*dualQuaternion); ok {
		return dq
	}
	q := newDualQuaternion()
	q.Real = Normalize(p.Orientation().Quaternion())
	q.setTranslation(p.Point())
	return q
}

// setTranslation correctly sets the translation quaternion against the rotation.
func (q *dualQuaternion) setTranslation(pt r3.Vector) {
	q.Dual = quat.Mul(quat.Number{Imag: pt.X / 2, Jmag: pt.Y / 2, Kmag: pt.Z / 2}, q.Real)
}

// Point multiplies the dual quaternion by its own conjugate to give a dual
// quaternion whose dual part is the translation.
func (q *dualQuaternion) Point() r3.Vector {
	tq := dualquat.Mul(q.Number, dualquat.Conj(q.Number))
	return r3.Vector{X: tq.Dual.Imag, Y: tq.Dual.Jmag, Z: tq.Dual.Kmag}
}

// Orientation returns the rotation component of the pose.
func (q *dualQuaternion) Orientation() Orientation {
	o := quaternion(q.Real)
	return &o
}

// String returns a human readable string that represents the pose.
func (q *dualQuaternion) String() string {
	pt := q.Point()
	return fmt.Sprintf("Position: X:%.3f, Y:%.3f, Z:%.3f | Orientation: W:%.6f, X:%.6f, Y:%.6f, Z:%.6f",
		pt.X, pt.Y, pt.Z, q.Real.Real, q.Real.Imag, q.Real.Jmag, q.Real.Kmag)
}

// NewZeroPose returns a pose at the origin with no rotation, the identity of
// the rigid transformation group.
func NewZeroPose() Pose {
	return newDualQuaternion()
}

// NewPose takes in a position and an orientation and returns a Pose.
func NewPose(pt r3.Vector, o Orientation) Pose {
	q := newDualQuaternion()
	if o != nil {
		q.Real = Normalize(o.Quaternion())
	}
	q.setTranslation(pt)
	return q
}

// NewPoseFromPoint takes in a cartesian (x,y,z) and stores it as a vector.
// It will have the same orientation as the frame it is in reference to.
func NewPoseFromPoint(pt r3.Vector) Pose {
	q := newDualQuaternion()
	q.setTranslation(pt)
	return q
}

// NewPoseFromOrientation takes in an orientation and returns a Pose at the origin.
func NewPoseFromOrientation(o Orientation) Pose {
	return NewPose(r3.Vector{}, o)
}

// Compose treats Poses as functions A(x) and B(x), and produces a new function
// C(x) = A(B(x)): the pose of B within the frame of A.
func Compose(a, b Pose) Pose {
	aq := newDualQuaternionFromPose(a)
	bq := newDualQuaternionFromPose(b)
	result := &dualQuaternion{dualquat.Mul(aq.Number, bq.Number)}

	// Normalization is only needed to counteract accumulated floating point drift.
	if vecLen := quat.Abs(result.Real); vecLen != 1 {
		result.Real = quat.Scale(1/vecLen, result.Real)
	}
	return result
}

// PoseInverse returns the inverse of the given pose. Composing a pose with its
// inverse in either order yields the identity.
func PoseInverse(p Pose) Pose {
	q := newDualQuaternionFromPose(p)
	return &dualQuaternion{dualquat.ConjQuat(q.Number)}
}

// PoseBetween returns the pose of b relative to a: the transform T such that
// Compose(a, T) == b. This is the left divide, inverse(a) * b.
func PoseBetween(a, b Pose) Pose {
	return Compose(PoseInverse(a), b)
}

// PoseBetweenInverse returns the transform T such that Compose(T, b) == a.
// This is the right divide, a * inverse(b).
func PoseBetweenInverse(a, b Pose) Pose {
	return Compose(a, PoseInverse(b))
}

// PoseAlmostEqual will return a bool describing whether 2 poses are approximately
// the same, using the default epsilon.
func PoseAlmostEqual(a, b Pose) bool {
	return PoseAlmostEqualEps(a, b, 1e-8)
}

// PoseAlmostEqualEps will return a bool describing whether 2 poses are
// approximately the same, within the given epsilon on position coordinates and
// quaternion components.
func PoseAlmostEqualEps(a, b Pose, epsilon float64) bool {
	ptA, ptB := a.Point(), b.Point()
	if !Float64AlmostEqual(ptA.X, ptB.X, epsilon) ||
		!Float64AlmostEqual(ptA.Y, ptB.Y, epsilon) ||
		!Float64AlmostEqual(ptA.Z, ptB.Z, epsilon) {
		return false
	}
	return QuaternionAlmostEqual(a.Orientation().Quaternion(), b.Orientation().Quaternion(), epsilon)
}
