// Package main builds a small three-body scene with the contact graph and
// prints the compiled absolute pose of every body.
package main

import (
	"github.com/edaniels/golog"
	"github.com/golang/geo/r3"

	"github.com/mechpose/contactgraph/contact"
	"github.com/mechpose/contactgraph/spatialmath"
)

var logger = golog.NewDevelopmentLogger("stackscene")

func main() {
	if err := run(logger); err != nil {
		logger.Fatal(err)
	}
}

func run(logger golog.Logger) error {
	obj1, err := contact.NewBox(r3.Vector{X: 0.1, Y: 0.3, Z: 0.4})
	if err != nil {
		return err
	}
	container, err := contact.NewBoxContainer(r3.Vector{X: 0.2, Y: 0.4, Z: 0.1})
	if err != nil {
		return err
	}
	obj2, err := contact.NewBox(r3.Vector{X: 0.3, Y: 1.0, Z: 0.6})
	if err != nil {
		return err
	}

	cg := contact.NewContactGraph()
	for _, add := range []struct {
		name  string
		shape contact.Shape
	}{
		{"obj_1", obj1},
		{"container_1", container},
		{"obj_2", obj2},
	} {
		if err := cg.AddObject(add.name, add.shape); err != nil {
			return err
		}
	}

	// obj_1 anchors the scene; the container rests on it, and obj_2 sits
	// inside the container on its inner floor.
	if err := cg.SetPose("obj_1", spatialmath.NewZeroPose()); err != nil {
		return err
	}
	if err := cg.SetContact("obj_1", "container_1", contact.ShapeContact{
		ParentFamily: contact.FamilyTop,
		ChildFamily:  "outer_bottom",
		Planar:       *contact.NewPlanarContact(0, 0, 0),
	}); err != nil {
		return err
	}
	if err := cg.SetContact("container_1", "obj_2", contact.ShapeContact{
		ParentFamily: "inner_bottom",
		ChildFamily:  contact.FamilyBottom,
		Planar:       *contact.NewPlanarContact(0, 0, 0),
	}); err != nil {
		return err
	}

	poses, err := cg.FloatingPoses()
	if err != nil {
		return err
	}
	for _, np := range poses {
		logger.Infow("compiled pose", "object", np.Name, "pose", np.Pose)
	}
	return nil
}
