// Package gltfexport flattens a scene hierarchy into a glTF
// document: one gltf.Node per transform, carrying the local
// translation and rotation, with parent/child edges preserved.
package gltfexport

import (
	"io"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"

	"github.com/mogaika/scenemath/scene"
)

// Document builds a glTF document from every transform of s. Roots
// of the hierarchy become roots of the default glTF scene.
func Document(s *scene.Scene) *gltf.Document {
	doc := gltf.NewDocument()

	ts := s.Transforms()
	index := make(map[int]uint32, len(ts))
	for _, t := range ts {
		index[t.ID()] = uint32(len(doc.Nodes))

		lp := t.LocalPosition()
		lr := t.LocalRotation()
		doc.Nodes = append(doc.Nodes, &gltf.Node{
			Name:        t.Name(),
			Translation: mgl32.Vec3{float32(lp.X), float32(lp.Y), float32(lp.Z)},
			Rotation:    [4]float32{float32(lr.X), float32(lr.Y), float32(lr.Z), float32(lr.W)},
			Scale:       mgl32.Vec3{1, 1, 1},
		})
	}

	for _, t := range ts {
		iNode := index[t.ID()]
		for _, c := range t.Children() {
			doc.Nodes[iNode].Children = append(doc.Nodes[iNode].Children, index[c.ID()])
		}
		if !t.Parent().Valid() {
			doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, iNode)
		}
	}

	return doc
}

// ExportBinary writes s to w as binary glTF.
func ExportBinary(w io.Writer, s *scene.Scene) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = true
	return encoder.Encode(Document(s))
}
