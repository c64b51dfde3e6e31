// Package scene holds the flattened mesh data model produced by the asset
// loaders and the selection rules that pick meshes out of it.
package scene

import "github.com/lumenforge/pointmorph/pkg/math"

// Mesh is one drawable sub-mesh. Positions are required; normals and
// triangle indices are optional. World is the accumulated node-tree
// transform, identity once the mesh has been baked.
type Mesh struct {
	Name      string
	Positions []math.Vec3
	Normals   []math.Vec3 // len == len(Positions) when present
	Indices   []uint32    // triangle triples; empty = non-indexed
	World     math.Mat4
}

// HasPositions reports whether the mesh carries a position attribute.
func (m *Mesh) HasPositions() bool {
	return m != nil && len(m.Positions) > 0
}

// HasNormals reports whether the mesh carries a matching normal attribute.
func (m *Mesh) HasNormals() bool {
	return m != nil && len(m.Normals) == len(m.Positions) && len(m.Normals) > 0
}

// TriangleCount returns the number of triangles, using indices when present
// and consecutive position triples otherwise.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	if len(m.Indices) > 0 {
		return len(m.Indices) / 3
	}
	return len(m.Positions) / 3
}

// Triangle returns the three corner indices of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c uint32) {
	if len(m.Indices) > 0 {
		return m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]
	}
	return uint32(i * 3), uint32(i*3 + 1), uint32(i*3 + 2)
}

// Scene is an ordered, flattened list of meshes with their world transforms
// already accumulated. No node-tree references survive loading.
type Scene struct {
	Meshes []*Mesh
}
