package scene

import (
	"math"
	"testing"

	"github.com/mogaika/scenemath/linmath"
	"github.com/mogaika/scenemath/math3d"
)

const poseTol = 1e-9

func vnear(a, b math3d.Vector3) bool {
	return math.Abs(a.X-b.X) < poseTol &&
		math.Abs(a.Y-b.Y) < poseTol &&
		math.Abs(a.Z-b.Z) < poseTol
}

// sameRotation ignores the q/-q sign ambiguity.
func sameRotation(a, b math3d.Quaternion) bool {
	return a.DistanceTo(b) < poseTol
}

func TestTransformAxes(t *testing.T) {
	s := NewScene()
	tr := s.New("banked")
	tr.SetPosition(math3d.Right)
	tr.SetRotation(math3d.Euler(0, 0, 90))

	if got := tr.Forward(); !vnear(got, math3d.Forward) {
		t.Errorf("Forward() = %v", got)
	}
	if got := tr.Right(); !vnear(got, math3d.Up) {
		t.Errorf("Right() = %v", got)
	}
	if got := tr.Up(); !vnear(got, math3d.Left) {
		t.Errorf("Up() = %v", got)
	}
	if got := tr.Position(); !got.Equals(math3d.Right) {
		t.Errorf("Position() = %v", got)
	}
}

func TestChildWorldPose(t *testing.T) {
	s := NewScene()
	parent := s.New("parent")
	parent.SetPosition(math3d.Vector3{X: 1, Y: 2, Z: 3})
	parent.SetRotation(math3d.Euler(0, 90, 0))

	child := s.New("child")
	if err := child.SetParent(parent); err != nil {
		t.Fatal(err)
	}
	child.SetLocalPosition(math3d.Forward)

	// Heading 90 turns the parent's forward axis to the left, so the
	// child sits one unit left of the parent.
	want := math3d.Vector3{X: 0, Y: 2, Z: 3}
	if got := child.Position(); !vnear(got, want) {
		t.Errorf("child.Position() = %v; expected %v", got, want)
	}
	if got := child.Rotation(); !sameRotation(got, parent.Rotation()) {
		t.Errorf("child.Rotation() = %v", got)
	}
}

func TestSetParentKeepsWorldPose(t *testing.T) {
	s := NewScene()
	a := s.New("a")
	a.SetPosition(math3d.Vector3{X: 5})
	a.SetRotation(math3d.Euler(0, 90, 0))

	b := s.New("b")
	b.SetPosition(math3d.Vector3{X: 1, Y: 2, Z: 3})
	b.SetRotation(math3d.Euler(0, 0, 45))

	wantPos := b.Position()
	wantRot := b.Rotation()
	if err := b.SetParent(a); err != nil {
		t.Fatal(err)
	}

	if got := b.Position(); !vnear(got, wantPos) {
		t.Errorf("world position drifted to %v", got)
	}
	if got := b.Rotation(); !sameRotation(got, wantRot) {
		t.Errorf("world rotation drifted to %v", got)
	}

	// The derived local pose composes back to the same world pose.
	recomposed := a.Position().Add(a.Rotation().MulVector3(b.LocalPosition()))
	if !vnear(recomposed, wantPos) {
		t.Errorf("local pose recomposes to %v; expected %v", recomposed, wantPos)
	}
	if got := a.Rotation().Mul(b.LocalRotation()); !sameRotation(got, wantRot) {
		t.Errorf("local rotation recomposes to %v", got)
	}

	if b.Parent() != a {
		t.Error("parent link not set")
	}
	if cs := a.Children(); len(cs) != 1 || cs[0] != b {
		t.Errorf("children = %v", cs)
	}
}

func TestWorldWritesCascadeLocalWritesDoNot(t *testing.T) {
	s := NewScene()
	parent := s.New("parent")
	child := s.New("child")
	if err := parent.AddChild(child); err != nil {
		t.Fatal(err)
	}
	child.SetLocalPosition(math3d.Vector3{X: 1})

	parent.SetPosition(math3d.Vector3{Y: 10})
	if got := child.Position(); !vnear(got, math3d.Vector3{X: 1, Y: 10}) {
		t.Errorf("child after parent SetPosition = %v", got)
	}

	parent.SetRotation(math3d.Euler(0, 90, 0))
	if got := child.Position(); !vnear(got, math3d.Vector3{Y: 10, Z: 1}) {
		t.Errorf("child after parent SetRotation = %v", got)
	}

	// A local write re-derives only the written node.
	before := child.Position()
	parent.SetLocalPosition(math3d.Vector3{Y: 20})
	if got := child.Position(); !vnear(got, before) {
		t.Errorf("child moved on parent local write: %v", got)
	}
}

func TestSetParentRejectsCycles(t *testing.T) {
	s := NewScene()
	a := s.New("a")
	b := s.New("b")
	c := s.New("c")
	if err := b.SetParent(a); err != nil {
		t.Fatal(err)
	}
	if err := c.SetParent(b); err != nil {
		t.Fatal(err)
	}

	if err := a.SetParent(a); !linmath.IsInvalidArgument(err) {
		t.Errorf("self parent: got %v", err)
	}
	if err := a.SetParent(c); !linmath.IsInvalidArgument(err) {
		t.Errorf("descendant parent: got %v", err)
	}

	other := NewScene().New("alien")
	if err := a.SetParent(other); !linmath.IsInvalidArgument(err) {
		t.Errorf("cross-scene parent: got %v", err)
	}
}

func TestRemoveChild(t *testing.T) {
	s := NewScene()
	parent := s.New("parent")
	parent.SetPosition(math3d.Vector3{X: 3})
	child := s.New("child")
	if err := parent.AddChild(child); err != nil {
		t.Fatal(err)
	}
	child.SetLocalPosition(math3d.Vector3{Z: 2})

	stranger := s.New("stranger")
	if err := parent.RemoveChild(stranger); !linmath.IsInvalidArgument(err) {
		t.Errorf("non-child: got %v", err)
	}

	world := child.Position()
	if err := parent.RemoveChild(child); err != nil {
		t.Fatal(err)
	}
	if child.Parent().Valid() {
		t.Error("child still has a parent")
	}
	if got := child.Position(); !vnear(got, world) {
		t.Errorf("detached child moved to %v", got)
	}
	if got := child.LocalPosition(); !vnear(got, world) {
		t.Errorf("detached local position = %v; expected world %v", got, world)
	}
	if len(parent.Children()) != 0 {
		t.Errorf("children = %v", parent.Children())
	}
}

func TestTranslate(t *testing.T) {
	s := NewScene()
	tr := s.New("mover")
	tr.Translate(math3d.Vector3{X: 1, Y: 2, Z: 3}, World)
	if got := tr.Position(); !vnear(got, math3d.Vector3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("world translate = %v", got)
	}

	turned := s.New("turned")
	turned.SetRotation(math3d.Euler(0, 90, 0))
	turned.Translate(math3d.Forward, Self)
	if got := turned.Position(); !vnear(got, math3d.Left) {
		t.Errorf("self translate = %v; expected %v", got, math3d.Left)
	}
}

func TestRotate(t *testing.T) {
	s := NewScene()
	tr := s.New("spinner")
	tr.Rotate(0, 90, 0, World)
	if got := tr.Rotation(); !sameRotation(got, math3d.Euler(0, 90, 0)) {
		t.Errorf("world rotate = %v", got)
	}

	// Two 45 degree self turns around the moving up axis add up to a
	// single 90 degree heading.
	sp := s.New("self-spinner")
	sp.Rotate(0, 45, 0, Self)
	sp.Rotate(0, 45, 0, Self)
	if got := sp.Rotation(); !sameRotation(got, math3d.Euler(0, 90, 0)) {
		t.Errorf("self rotate = %v", got)
	}
}

func TestRoot(t *testing.T) {
	s := NewScene()
	a := s.New("a")
	b := s.New("b")
	c := s.New("c")
	if err := b.SetParent(a); err != nil {
		t.Fatal(err)
	}
	if err := c.SetParent(b); err != nil {
		t.Fatal(err)
	}
	if got := c.Root(); got != a {
		t.Errorf("Root() = %v", got.Name())
	}
	if got := a.Root(); got != a {
		t.Errorf("root of root = %v", got.Name())
	}
}

func TestTransformPositionRoundTrip(t *testing.T) {
	s := NewScene()
	tr := s.New("frame")
	tr.SetPosition(math3d.Vector3{X: 2, Y: -1, Z: 4})
	tr.SetRotation(math3d.Euler(20, 110, 30))

	for _, v := range []math3d.Vector3{{}, {X: 1, Y: 2, Z: 3}, {X: -0.5, Z: 9}} {
		world := tr.TransformPosition(v)
		back := tr.InverseTransformPosition(world)
		if !vnear(back, v) {
			t.Errorf("round trip of %v = %v", v, back)
		}
	}

	// Direct check: the local origin maps to the node position.
	if got := tr.TransformPosition(math3d.Zero); !vnear(got, tr.Position()) {
		t.Errorf("origin maps to %v", got)
	}
}
