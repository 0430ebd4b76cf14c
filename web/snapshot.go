package web

import (
	"github.com/mogaika/scenemath/math3d"
	"github.com/mogaika/scenemath/scene"
)

type NodeSnapshot struct {
	Id            int
	Name          string
	Position      math3d.Vector3
	Rotation      math3d.Quaternion
	EulerAngles   math3d.Vector3
	LocalPosition math3d.Vector3
	LocalRotation math3d.Quaternion
	Parent        int `json:",omitempty"`
	Children      []int
}

type SceneSnapshot struct {
	Version uint64
	Nodes   []NodeSnapshot
}

func takeNodeSnapshot(t scene.Transform) NodeSnapshot {
	children := make([]int, 0)
	for _, c := range t.Children() {
		children = append(children, c.ID())
	}
	return NodeSnapshot{
		Id:            t.ID(),
		Name:          t.Name(),
		Position:      t.Position(),
		Rotation:      t.Rotation(),
		EulerAngles:   t.Rotation().EulerAngles(),
		LocalPosition: t.LocalPosition(),
		LocalRotation: t.LocalRotation(),
		Parent:        t.Parent().ID(),
		Children:      children,
	}
}

func takeSnapshot(s *scene.Scene) *SceneSnapshot {
	snap := &SceneSnapshot{Version: s.Version()}
	for _, t := range s.Transforms() {
		snap.Nodes = append(snap.Nodes, takeNodeSnapshot(t))
	}
	return snap
}
