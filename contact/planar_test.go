package contact

import (
	"math"
	"math/rand"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"

	"github.com/mechpose/contactgraph/spatialmath"
)

func randomPose(rSeed *rand.Rand) spatialmath.Pose {
	q := quat.Number{
		Real: rSeed.NormFloat64(),
		Imag: rSeed.NormFloat64(),
		Jmag: rSeed.NormFloat64(),
		Kmag: rSeed.NormFloat64(),
	}
	pt := r3.Vector{
		X: rSeed.Float64()*10 - 5,
		Y: rSeed.Float64()*10 - 5,
		Z: rSeed.Float64()*10 - 5,
	}
	return spatialmath.NewPose(pt, spatialmath.NewOrientationFromQuaternion(q))
}

func TestTo6DOF(t *testing.T) {
	// The z-rotation and the normal flip carry no translation, so the pose
	// position is exactly the in-plane offset.
	c := NewPlanarContact(1.5, -2.5, math.Pi/3)
	pose := c.To6DOF()
	pt := pose.Point()
	test.That(t, pt.X, test.ShouldAlmostEqual, 1.5)
	test.That(t, pt.Y, test.ShouldAlmostEqual, -2.5)
	test.That(t, pt.Z, test.ShouldAlmostEqual, 0)

	// A zero contact is exactly the outward normal flip: 180 degrees about (1,1,0).
	q := NewPlanarContact(0, 0, 0).To6DOF().Orientation().Quaternion()
	test.That(t, q.Real, test.ShouldAlmostEqual, 0)
	test.That(t, q.Imag, test.ShouldAlmostEqual, math.Sqrt2/2)
	test.That(t, q.Jmag, test.ShouldAlmostEqual, math.Sqrt2/2)
	test.That(t, q.Kmag, test.ShouldAlmostEqual, 0)
}

func TestTo6DOFWithSlack(t *testing.T) {
	slack := spatialmath.NewPose(r3.Vector{X: 0.1, Z: 0.2}, &spatialmath.R4AA{Theta: 0.05, RX: 1})
	c := NewPlanarContact(1, 2, 0.5)
	exact := c.To6DOF()
	c.Slack = slack
	test.That(t, spatialmath.PoseAlmostEqual(c.To6DOF(), spatialmath.Compose(exact, slack)), test.ShouldBeTrue)
}

func TestExactContactRecovery(t *testing.T) {
	cases := []struct {
		x, y, angle float64
	}{
		{0, 0, 0},
		{1, 2, 0},
		{0, 0, math.Pi / 2},
		{-3, 0.5, -math.Pi / 2},
		{2.5, -1.25, 1.0},
		{0.1, 0.2, -3.0},
		{7, -7, 3.0},
	}
	for _, c := range cases {
		got := ClosestApproximatingContact(NewPlanarContact(c.x, c.y, c.angle).To6DOF())
		test.That(t, got.X, test.ShouldAlmostEqual, c.x, 1e-9)
		test.That(t, got.Y, test.ShouldAlmostEqual, c.y, 1e-9)
		test.That(t, got.Angle, test.ShouldAlmostEqual, c.angle, 1e-9)
		test.That(t, got.Slack, test.ShouldNotBeNil)
		test.That(t, spatialmath.PoseAlmostEqualEps(got.Slack, spatialmath.NewZeroPose(), 1e-9), test.ShouldBeTrue)
	}
}

func TestRoundTripExactness(t *testing.T) {
	//nolint:gosec
	rSeed := rand.New(rand.NewSource(42))
	for i := 0; i < 100; i++ {
		pose := randomPose(rSeed)
		c := ClosestApproximatingContact(pose)
		test.That(t, spatialmath.PoseAlmostEqualEps(c.To6DOF(), pose, 1e-9), test.ShouldBeTrue)
	}
}

func TestApproximationIsInPlane(t *testing.T) {
	// For an arbitrary pose the recovered x, y match the pose position exactly.
	pose := spatialmath.NewPose(
		r3.Vector{X: 0.25, Y: -0.75, Z: 3},
		&spatialmath.R4AA{Theta: 1.2, RX: 1, RY: 2, RZ: -1},
	)
	c := ClosestApproximatingContact(pose)
	test.That(t, c.X, test.ShouldAlmostEqual, 0.25)
	test.That(t, c.Y, test.ShouldAlmostEqual, -0.75)

	// The slack absorbs what the planar parametrization cannot: here the z offset.
	test.That(t, c.Slack, test.ShouldNotBeNil)
	test.That(t, spatialmath.PoseAlmostEqual(c.Slack, spatialmath.NewZeroPose()), test.ShouldBeFalse)
}
