package contact

import (
	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"github.com/mechpose/contactgraph/forest"
	"github.com/mechpose/contactgraph/spatialmath"
)

// ContactGraph is a directed forest of named rigid bodies. Each body carries a
// Shape; roots are placed by an absolute pose, every other body by the contact
// on its unique incoming edge. Names are the only external identity of a body.
// A ContactGraph is not safe for concurrent mutation.
type ContactGraph struct {
	structure *forest.Forest[string, *ShapeContact]
	objects   map[string]*sceneObject
}

type sceneObject struct {
	shape Shape
	pose  spatialmath.Pose // nil until placed
}

// NamedPose pairs an object name with its computed absolute pose.
type NamedPose struct {
	Name string
	Pose spatialmath.Pose
}

// NewContactGraph returns an empty graph.
func NewContactGraph() *ContactGraph {
	return &ContactGraph{
		structure: forest.New[string, *ShapeContact](),
		objects:   map[string]*sceneObject{},
	}
}

// AddObject registers a new body under an unused name.
func (cg *ContactGraph) AddObject(name string, shape Shape) error {
	if name == "" {
		return errors.New("object name cannot be empty")
	}
	if shape == nil {
		return errors.Errorf("object %q needs a shape", name)
	}
	if _, ok := cg.objects[name]; ok {
		return NewNameConflictError(name)
	}
	if err := cg.structure.AddVertex(name); err != nil {
		return err
	}
	cg.objects[name] = &sceneObject{shape: shape}
	return nil
}

// RemoveObject deletes a body that no other body is in contact with.
func (cg *ContactGraph) RemoveObject(name string) error {
	if _, ok := cg.objects[name]; !ok {
		return NewUnknownNameError(name)
	}
	if err := cg.structure.RemoveVertex(name); err != nil {
		return err
	}
	delete(cg.objects, name)
	return nil
}

// Names returns every registered object name in registration order.
func (cg *ContactGraph) Names() []string {
	return cg.structure.Vertices()
}

// Shape returns the shape registered under the given name.
func (cg *ContactGraph) Shape(name string) (Shape, error) {
	obj, ok := cg.objects[name]
	if !ok {
		return nil, NewUnknownNameError(name)
	}
	return obj.shape, nil
}

// SetPose fixes the absolute pose of a body. A body placed by an incoming
// contact cannot also carry a fixed pose.
func (cg *ContactGraph) SetPose(name string, pose spatialmath.Pose) error {
	obj, ok := cg.objects[name]
	if !ok {
		return NewUnknownNameError(name)
	}
	if pose == nil {
		return errors.Errorf("pose for object %q cannot be nil", name)
	}
	if _, _, hasParent := cg.structure.Parent(name); hasParent {
		return NewPoseOverspecifiedError(name)
	}
	obj.pose = pose
	return nil
}

// SetContact declares that the named plane family on the parent body touches
// the named family on the child body. The child must not already carry a fixed
// pose or another parent, and the edge must not close a cycle.
func (cg *ContactGraph) SetContact(parentName, childName string, sc ShapeContact) error {
	if _, ok := cg.objects[parentName]; !ok {
		return NewUnknownNameError(parentName)
	}
	child, ok := cg.objects[childName]
	if !ok {
		return NewUnknownNameError(childName)
	}
	if child.pose != nil {
		return NewPoseOverspecifiedError(childName)
	}
	if err := cg.structure.AddEdge(parentName, childName, &sc); err != nil {
		return errors.Wrap(ErrStructuralViolation, err.Error())
	}
	return nil
}

// Contact returns the contact declared between the two named bodies.
func (cg *ContactGraph) Contact(parentName, childName string) (*ShapeContact, error) {
	if _, ok := cg.objects[parentName]; !ok {
		return nil, NewUnknownNameError(parentName)
	}
	if _, ok := cg.objects[childName]; !ok {
		return nil, NewUnknownNameError(childName)
	}
	parent, sc, ok := cg.structure.Parent(childName)
	if !ok || parent != parentName {
		return nil, errors.Errorf("no contact between %q and %q", parentName, childName)
	}
	return sc, nil
}

// AbsolutePose computes the absolute pose of one body by walking its unique
// root-to-body path and folding the contact relations edge by edge. Correct
// but O(depth) per call; FloatingPoses is the batch entrypoint for whole-scene
// compilation.
func (cg *ContactGraph) AbsolutePose(name string) (spatialmath.Pose, error) {
	if _, ok := cg.objects[name]; !ok {
		return nil, NewUnknownNameError(name)
	}

	// Trace up to the root, remembering each hop.
	type hop struct {
		parent string
		sc     *ShapeContact
	}
	var path []hop
	at := name
	for {
		parent, sc, ok := cg.structure.Parent(at)
		if !ok {
			break
		}
		path = append(path, hop{parent, sc})
		at = parent
	}

	root := cg.objects[at]
	if root.pose == nil {
		return nil, errors.Errorf("root object %q has no pose set", at)
	}

	pose := root.pose
	for i := len(path) - 1; i >= 0; i-- {
		child := name
		if i > 0 {
			child = path[i-1].parent
		}
		rel, err := path[i].sc.RelativePose(cg.objects[path[i].parent].shape, cg.objects[child].shape)
		if err != nil {
			return nil, err
		}
		pose = spatialmath.Compose(pose, rel)
	}
	return pose, nil
}

// compile runs a single scan over the whole forest, seeding each root with its
// fixed pose and propagating the contact aggregation to every body.
func (cg *ContactGraph) compile() (map[string]spatialmath.Pose, error) {
	seeds := map[string]spatialmath.Pose{}
	shapes := make(map[string]Shape, len(cg.objects))
	var rootErrs error
	for _, name := range cg.structure.Vertices() {
		shapes[name] = cg.objects[name].shape
		if !cg.structure.IsRoot(name) {
			continue
		}
		if cg.objects[name].pose == nil {
			rootErrs = multierr.Append(rootErrs, errors.Errorf("root object %q has no pose set", name))
			continue
		}
		seeds[name] = cg.objects[name].pose
	}
	if rootErrs != nil {
		return nil, rootErrs
	}

	agg := func(parentPose spatialmath.Pose, sc *ShapeContact, parentShape, childShape Shape) (spatialmath.Pose, error) {
		rel, err := sc.RelativePose(parentShape, childShape)
		if err != nil {
			return nil, err
		}
		return spatialmath.Compose(parentPose, rel), nil
	}
	return forest.Scan(cg.structure, seeds, shapes, agg, false)
}

// FloatingPoses compiles the whole scene in one pass, returning the absolute
// pose of every body in registration order. The result is a snapshot with no
// remaining relation to the graph.
func (cg *ContactGraph) FloatingPoses() ([]NamedPose, error) {
	poses, err := cg.compile()
	if err != nil {
		return nil, err
	}
	out := make([]NamedPose, 0, len(poses))
	for _, name := range cg.structure.Vertices() {
		out = append(out, NamedPose{Name: name, Pose: poses[name]})
	}
	return out, nil
}

// ToFloating compiles the scene, assigns the computed absolute pose onto every
// body, and deletes all contact edges, leaving a set of independent floating
// objects with no remaining relational structure.
func (cg *ContactGraph) ToFloating() error {
	poses, err := cg.compile()
	if err != nil {
		return err
	}
	for name, pose := range poses {
		cg.objects[name].pose = pose
	}
	cg.structure.RemoveEdges()
	return nil
}
