// Package geometry bakes world transforms into mesh attributes and
// normalizes mesh sets to a uniform size.
package geometry

import (
	"github.com/lumenforge/pointmorph/internal/scene"
	"github.com/lumenforge/pointmorph/pkg/math"
)

// Bake returns a copy of the mesh with its world transform applied to every
// position and its normal matrix (inverse-transpose) applied to every
// normal, re-normalized to unit length. The input mesh is not modified; the
// returned mesh carries an identity world transform.
//
// A singular world matrix is not handled specially: Mat4.Inverse degrades
// to identity there, so normals pass through the singular bake unchanged.
func Bake(m *scene.Mesh) *scene.Mesh {
	baked := &scene.Mesh{
		Name:      m.Name,
		Positions: make([]math.Vec3, len(m.Positions)),
		World:     math.Identity(),
	}

	for i, p := range m.Positions {
		baked.Positions[i] = m.World.TransformPoint(p)
	}

	if m.HasNormals() {
		nm := m.World.NormalMatrix()
		baked.Normals = make([]math.Vec3, len(m.Normals))
		for i, n := range m.Normals {
			baked.Normals[i] = nm.TransformDirection(n).Normalize()
		}
	}

	if len(m.Indices) > 0 {
		baked.Indices = make([]uint32, len(m.Indices))
		copy(baked.Indices, m.Indices)
	}

	return baked
}

// BakeAll bakes every mesh in order.
func BakeAll(meshes []*scene.Mesh) []*scene.Mesh {
	baked := make([]*scene.Mesh, len(meshes))
	for i, m := range meshes {
		baked[i] = Bake(m)
	}
	return baked
}
