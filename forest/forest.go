// Package forest implements a directed forest of keyed vertices with
// edge payloads, and a generic root-to-leaf scan that propagates a value
// from seeded roots to every vertex via an injected aggregation function.
// It has no knowledge of what the values or edge payloads mean.
package forest

import (
	"github.com/pkg/errors"
)

// Forest is a directed forest: every vertex has at most one parent, and no
// cycles exist. K is the vertex key type, E the payload carried on each edge.
type Forest[K comparable, E any] struct {
	order   []K
	present map[K]struct{}
	parent  map[K]K
	edge    map[K]E // payload of the edge from parent[k] to k
}

// New returns an empty forest.
func New[K comparable, E any]() *Forest[K, E] {
	return &Forest[K, E]{
		present: map[K]struct{}{},
		parent:  map[K]K{},
		edge:    map[K]E{},
	}
}

// AddVertex inserts a new parentless vertex.
func (f *Forest[K, E]) AddVertex(k K) error {
	if _, ok := f.present[k]; ok {
		return errors.Errorf("vertex %v already in forest", k)
	}
	f.present[k] = struct{}{}
	f.order = append(f.order, k)
	return nil
}

// HasVertex reports whether the given key is in the forest.
func (f *Forest[K, E]) HasVertex(k K) bool {
	_, ok := f.present[k]
	return ok
}

// AddEdge inserts a directed parent->child edge carrying the given payload.
// It refuses edges that would give the child a second parent or close a cycle.
func (f *Forest[K, E]) AddEdge(parent, child K, payload E) error {
	if !f.HasVertex(parent) {
		return errors.Errorf("vertex %v not in forest", parent)
	}
	if !f.HasVertex(child) {
		return errors.Errorf("vertex %v not in forest", child)
	}
	if _, ok := f.parent[child]; ok {
		return errors.Errorf("vertex %v already has a parent", child)
	}
	// Walk up from parent; reaching child means the new edge would close a cycle.
	for at, ok := parent, true; ok; at, ok = f.parentOf(at) {
		if at == child {
			return errors.Errorf("edge %v->%v would create a cycle", parent, child)
		}
	}
	f.parent[child] = parent
	f.edge[child] = payload
	return nil
}

func (f *Forest[K, E]) parentOf(k K) (K, bool) {
	p, ok := f.parent[k]
	return p, ok
}

// Parent returns the parent of the given vertex and the payload of the
// connecting edge. ok is false for roots and unknown vertices.
func (f *Forest[K, E]) Parent(k K) (parent K, payload E, ok bool) {
	parent, ok = f.parent[k]
	if !ok {
		return
	}
	payload = f.edge[k]
	return
}

// IsRoot reports whether the vertex exists and has no incoming edge.
func (f *Forest[K, E]) IsRoot(k K) bool {
	if !f.HasVertex(k) {
		return false
	}
	_, ok := f.parent[k]
	return !ok
}

// HasChildren reports whether any edge leaves the given vertex.
func (f *Forest[K, E]) HasChildren(k K) bool {
	for _, p := range f.parent {
		if p == k {
			return true
		}
	}
	return false
}

// RemoveVertex deletes a vertex and its incoming edge. Vertices with children
// cannot be removed.
func (f *Forest[K, E]) RemoveVertex(k K) error {
	if !f.HasVertex(k) {
		return errors.Errorf("vertex %v not in forest", k)
	}
	if f.HasChildren(k) {
		return errors.Errorf("vertex %v still has children", k)
	}
	delete(f.present, k)
	delete(f.parent, k)
	delete(f.edge, k)
	for i, o := range f.order {
		if o == k {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return nil
}

// RemoveEdges deletes every edge, leaving all vertices parentless.
func (f *Forest[K, E]) RemoveEdges() {
	f.parent = map[K]K{}
	f.edge = map[K]E{}
}

// Vertices returns every vertex key in insertion order.
func (f *Forest[K, E]) Vertices() []K {
	out := make([]K, len(f.order))
	copy(out, f.order)
	return out
}

// Roots returns the keys of all parentless vertices in insertion order.
func (f *Forest[K, E]) Roots() []K {
	var roots []K
	for _, k := range f.order {
		if f.IsRoot(k) {
			roots = append(roots, k)
		}
	}
	return roots
}

// Len returns the number of vertices.
func (f *Forest[K, E]) Len() int {
	return len(f.order)
}

// Aggregator computes a child's value from its parent's value, the payload of
// the connecting edge, and the auxiliary metadata of both vertices. It must be
// a pure function of its arguments; the scan order within a component is
// unspecified beyond parents before children.
type Aggregator[V, E, A any] func(parentValue V, edge E, parentAux, childAux A) (V, error)

// Scan propagates values from roots to leaves. Every root must have an entry
// in seeds; the returned map holds a value for every vertex. Without overwrite,
// a non-root vertex that already has a seeded value is an error, catching
// doubly specified vertices at the structural level.
func Scan[K comparable, V, E, A any](
	f *Forest[K, E],
	seeds map[K]V,
	aux map[K]A,
	agg Aggregator[V, E, A],
	overwrite bool,
) (map[K]V, error) {
	results := make(map[K]V, f.Len())
	for k, v := range seeds {
		if !f.HasVertex(k) {
			return nil, errors.Errorf("seeded vertex %v not in forest", k)
		}
		results[k] = v
	}

	children := map[K][]K{}
	for _, k := range f.order {
		if p, ok := f.parent[k]; ok {
			children[p] = append(children[p], k)
		}
	}

	queue := f.Roots()
	for _, root := range queue {
		if _, ok := results[root]; !ok {
			return nil, errors.Errorf("root vertex %v has no seed value", root)
		}
	}
	visited := 0
	for len(queue) != 0 {
		at := queue[0]
		queue = queue[1:]
		visited++
		for _, child := range children[at] {
			if _, ok := results[child]; ok && !overwrite {
				return nil, errors.Errorf("vertex %v already has a value", child)
			}
			value, err := agg(results[at], f.edge[child], aux[at], aux[child])
			if err != nil {
				return nil, errors.Wrapf(err, "aggregating value for vertex %v", child)
			}
			results[child] = value
			queue = append(queue, child)
		}
	}
	// A vertex the traversal never reached means the parent map is not a
	// forest; the mutating API cannot produce this.
	if visited != f.Len() {
		return nil, errors.Errorf("forest scan visited %d of %d vertices, structure is cyclic", visited, f.Len())
	}
	return results, nil
}
