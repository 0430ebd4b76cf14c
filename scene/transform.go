package scene

import (
	"github.com/pkg/errors"

	"github.com/mogaika/scenemath/linmath"
	"github.com/mogaika/scenemath/math3d"
)

// Transform is a handle to one node of a Scene. The zero Transform
// is "none": valid only as a SetParent target to detach a node.
// Using any other method on it is a programming error and panics.
type Transform struct {
	s  *Scene
	id int
}

// Valid reports whether t names a live node of its scene.
func (t Transform) Valid() bool {
	return t.s != nil && t.id > 0 && t.id < len(t.s.nodes) && t.s.nodes[t.id].alive
}

// ID returns the scene-local id of t. Ids are stable for the life of
// the node and may be reused after Destroy.
func (t Transform) ID() int { return t.id }

func (t Transform) node() *node {
	if !t.Valid() {
		panic(errors.Errorf("scene: use of invalid transform handle %d", t.id))
	}
	return &t.s.nodes[t.id]
}

// Name returns the label of t.
func (t Transform) Name() string { return t.node().name }

// SetName relabels t. An empty name is replaced with a generated one.
func (t Transform) SetName(name string) {
	if name == "" {
		name = t.s.names.RandomName()
	}
	t.node().name = name
	t.s.version++
}

// Position returns the world-space position of t.
func (t Transform) Position() math3d.Vector3 { return t.node().position }

// Rotation returns the world-space rotation of t.
func (t Transform) Rotation() math3d.Quaternion { return t.node().rotation }

// LocalPosition returns the position of t relative to its parent.
func (t Transform) LocalPosition() math3d.Vector3 { return t.node().localPosition }

// LocalRotation returns the rotation of t relative to its parent.
func (t Transform) LocalRotation() math3d.Quaternion { return t.node().localRotation }

// SetPosition moves t to a world-space position, re-deriving its
// local position and pushing the new world pose to all descendants.
func (t Transform) SetPosition(v math3d.Vector3) {
	t.node().position = v
	t.s.deriveLocal(t.id)
	t.s.cascadeWorld(t.id)
	t.s.version++
}

// SetRotation sets the world-space rotation of t, re-deriving its
// local rotation and pushing the new world pose to all descendants.
func (t Transform) SetRotation(q math3d.Quaternion) {
	t.node().rotation = q
	t.s.deriveLocal(t.id)
	t.s.cascadeWorld(t.id)
	t.s.version++
}

// SetLocalPosition sets the position of t relative to its parent and
// re-derives its own world position. Descendants are left alone:
// they follow world state, which only moves on the next world write.
func (t Transform) SetLocalPosition(v math3d.Vector3) {
	t.node().localPosition = v
	t.s.deriveWorld(t.id)
	t.s.version++
}

// SetLocalRotation sets the rotation of t relative to its parent and
// re-derives its own world rotation. Descendants are left alone.
func (t Transform) SetLocalRotation(q math3d.Quaternion) {
	t.node().localRotation = q
	t.s.deriveWorld(t.id)
	t.s.version++
}

// Parent returns the parent handle of t; the zero Transform when t
// is a root.
func (t Transform) Parent() Transform {
	p := t.node().parent
	if p == 0 {
		return Transform{}
	}
	return Transform{s: t.s, id: p}
}

// SetParent re-anchors t under parent, keeping its world pose and
// re-deriving the local pose in the new frame. The zero Transform
// detaches t, making world pose the new local pose. Both ends of the
// parent/child relation are updated. Parenting a node to itself or
// to one of its descendants would form a cycle and is rejected.
func (t Transform) SetParent(parent Transform) error {
	n := t.node()
	pid := 0
	if parent.s != nil || parent.id != 0 {
		if parent.s != t.s {
			return errors.Wrap(linmath.ErrInvalidArgument, "parent belongs to a different scene")
		}
		pn := parent.node()
		if parent.id == t.id || t.s.isDescendant(t.id, parent.id) {
			return errors.Wrapf(linmath.ErrInvalidArgument,
				"parenting %q under %q forms a cycle", n.name, pn.name)
		}
		pid = parent.id
	}

	if n.parent == pid {
		return nil
	}
	if n.parent != 0 {
		t.s.unlinkChild(n.parent, t.id)
	}
	n.parent = pid
	if pid != 0 {
		pn := &t.s.nodes[pid]
		pn.children = append(pn.children, t.id)
	}
	t.s.deriveLocal(t.id)
	t.s.version++
	return nil
}

// AddChild parents child under t; the parent link is the single
// source of truth, the child list is maintained from it.
func (t Transform) AddChild(child Transform) error {
	return child.SetParent(t)
}

// RemoveChild detaches child from t. The child stays a valid root
// node with its world pose as the new local pose.
func (t Transform) RemoveChild(child Transform) error {
	if child.node().parent != t.id {
		return errors.Wrapf(linmath.ErrInvalidArgument,
			"%q is not a child of %q", child.Name(), t.Name())
	}
	return child.SetParent(Transform{})
}

// Children returns the children of t in attachment order.
func (t Transform) Children() []Transform {
	ids := t.node().children
	ts := make([]Transform, len(ids))
	for i, id := range ids {
		ts[i] = Transform{s: t.s, id: id}
	}
	return ts
}

// Root walks up to the ancestor without a parent. The walk is
// bounded by the scene size as a guard; SetParent already rejects
// cycles.
func (t Transform) Root() Transform {
	cur := t.id
	for hops := 0; hops < len(t.s.nodes); hops++ {
		p := t.s.nodes[cur].parent
		if p == 0 {
			break
		}
		cur = p
	}
	return Transform{s: t.s, id: cur}
}

// Translate moves t by v. In Self space v is rotated into the local
// frame and applied to the local position; in World space it is
// applied to the world position directly (and cascades like
// SetPosition).
func (t Transform) Translate(v math3d.Vector3, space Space) {
	if space == World {
		t.SetPosition(t.Position().Add(v))
		return
	}
	n := t.node()
	t.SetLocalPosition(n.localPosition.Add(n.localRotation.MulVector3(v)))
}

// Rotate turns t by the Euler angles x, y, z (degrees, z-x-y order).
// World space composes on the left of the world rotation; Self space
// composes on the right of the local rotation.
func (t Transform) Rotate(x, y, z float64, space Space) {
	q := math3d.Euler(x, y, z)
	if space == World {
		t.SetRotation(q.Mul(t.Rotation()))
		return
	}
	t.SetLocalRotation(t.LocalRotation().Mul(q))
}

// Forward returns the world-space forward axis of t.
func (t Transform) Forward() math3d.Vector3 {
	return t.Rotation().MulVector3(math3d.Forward)
}

// Right returns the world-space right axis of t.
func (t Transform) Right() math3d.Vector3 {
	return t.Rotation().MulVector3(math3d.Right)
}

// Up returns the world-space up axis of t.
func (t Transform) Up() math3d.Vector3 {
	return t.Rotation().MulVector3(math3d.Up)
}

// LocalToWorldMatrix returns the matrix mapping local-frame points
// of t into world space. Transforms carry no scale; it is fixed at
// one.
func (t Transform) LocalToWorldMatrix() math3d.Matrix4x4 {
	return math3d.LocalToWorldMatrix(t.Position(), t.Rotation(), math3d.One)
}

// WorldToLocalMatrix returns the matrix mapping world-space points
// into the local frame of t.
func (t Transform) WorldToLocalMatrix() math3d.Matrix4x4 {
	// A rigid pose matrix always has determinant 1.
	m, _ := math3d.WorldToLocalMatrix(t.Position(), t.Rotation(), math3d.One)
	return m
}

// TransformPosition maps a local-frame point into world space.
func (t Transform) TransformPosition(v math3d.Vector3) math3d.Vector3 {
	return t.LocalToWorldMatrix().MulVector3(v)
}

// InverseTransformPosition maps a world-space point into the local
// frame of t.
func (t Transform) InverseTransformPosition(v math3d.Vector3) math3d.Vector3 {
	return t.WorldToLocalMatrix().MulVector3(v)
}
