// Package scene implements a mutable transform hierarchy on top of
// the math3d types. All transforms of one hierarchy are owned by a
// Scene arena and referenced through integer-backed handles, so a
// child outlives its parent and no pointer cycles exist.
//
// A Scene is not safe for concurrent mutation; callers owning a
// hierarchy serialize access to it.
package scene

import (
	"github.com/mogaika/scenemath/math3d"
	"github.com/mogaika/scenemath/utils"
)

// Space selects the frame Translate and Rotate operate in.
type Space int

const (
	// Self applies the delta in the transform's local frame.
	Self Space = iota
	// World applies the delta in the absolute frame.
	World
)

type node struct {
	name string

	// World and local pose are kept in sync by the Transform
	// mutators: world = parent.world composed with local.
	position      math3d.Vector3
	rotation      math3d.Quaternion
	localPosition math3d.Vector3
	localRotation math3d.Quaternion

	parent   int
	children []int
	alive    bool
}

// Scene owns every Transform of one hierarchy.
type Scene struct {
	// nodes[0] stays unused so the zero Transform handle is "none".
	nodes   []node
	free    []int
	names   utils.RandomNameGenerator
	version uint64
}

// NewScene returns an empty scene.
func NewScene() *Scene {
	return &Scene{nodes: make([]node, 1)}
}

// New creates a root transform at the origin with no rotation. An
// empty name is replaced with a generated one.
func (s *Scene) New(name string) Transform {
	if name == "" {
		name = s.names.RandomName()
	}
	n := node{
		name:          name,
		rotation:      math3d.QuaternionIdentity,
		localRotation: math3d.QuaternionIdentity,
		alive:         true,
	}

	id := 0
	if l := len(s.free); l != 0 {
		id = s.free[l-1]
		s.free = s.free[:l-1]
		s.nodes[id] = n
	} else {
		id = len(s.nodes)
		s.nodes = append(s.nodes, n)
	}
	s.version++
	return Transform{s: s, id: id}
}

// Destroy removes t from the scene. Children of t are detached
// first and become roots keeping their world pose; they stay valid.
func (s *Scene) Destroy(t Transform) {
	n := t.node()
	for _, c := range n.children {
		s.nodes[c].parent = 0
		s.deriveLocal(c)
	}
	n.children = nil
	if n.parent != 0 {
		s.unlinkChild(n.parent, t.id)
	}
	*n = node{}
	s.free = append(s.free, t.id)
	s.version++
}

// Transforms returns every live transform in creation order.
func (s *Scene) Transforms() []Transform {
	ts := make([]Transform, 0, len(s.nodes)-1)
	for id := 1; id < len(s.nodes); id++ {
		if s.nodes[id].alive {
			ts = append(ts, Transform{s: s, id: id})
		}
	}
	return ts
}

// Roots returns every live transform without a parent.
func (s *Scene) Roots() []Transform {
	ts := make([]Transform, 0)
	for id := 1; id < len(s.nodes); id++ {
		if s.nodes[id].alive && s.nodes[id].parent == 0 {
			ts = append(ts, Transform{s: s, id: id})
		}
	}
	return ts
}

// ByID resolves a handle id, e.g. one round-tripped through the web
// inspector. ok is false for ids that do not name a live transform.
func (s *Scene) ByID(id int) (Transform, bool) {
	if id <= 0 || id >= len(s.nodes) || !s.nodes[id].alive {
		return Transform{}, false
	}
	return Transform{s: s, id: id}, true
}

// Version increases on every mutation of the scene or any of its
// transforms.
func (s *Scene) Version() uint64 { return s.version }

// deriveLocal recomputes the local pose of id from its world pose
// and its parent, preserving the world pose.
func (s *Scene) deriveLocal(id int) {
	n := &s.nodes[id]
	if n.parent == 0 {
		n.localPosition = n.position
		n.localRotation = n.rotation
		return
	}
	p := &s.nodes[n.parent]
	inv := p.rotation.Inverse()
	n.localPosition = inv.MulVector3(n.position.Sub(p.position))
	n.localRotation = inv.Mul(n.rotation)
}

// deriveWorld recomputes the world pose of id from its local pose
// and its parent.
func (s *Scene) deriveWorld(id int) {
	n := &s.nodes[id]
	if n.parent == 0 {
		n.position = n.localPosition
		n.rotation = n.localRotation
		return
	}
	p := &s.nodes[n.parent]
	n.position = p.position.Add(p.rotation.MulVector3(n.localPosition))
	n.rotation = p.rotation.Mul(n.localRotation)
}

// cascadeWorld pushes a changed world pose of id down to every
// descendant, keeping their local poses fixed.
func (s *Scene) cascadeWorld(id int) {
	for _, c := range s.nodes[id].children {
		s.deriveWorld(c)
		s.cascadeWorld(c)
	}
}

func (s *Scene) unlinkChild(parent, child int) {
	cs := s.nodes[parent].children
	for i, c := range cs {
		if c == child {
			s.nodes[parent].children = append(cs[:i], cs[i+1:]...)
			return
		}
	}
}

// isDescendant reports whether id is in the subtree of root.
func (s *Scene) isDescendant(root, id int) bool {
	for _, c := range s.nodes[root].children {
		if c == id || s.isDescendant(c, id) {
			return true
		}
	}
	return false
}
