package geometry

import (
	"github.com/lumenforge/pointmorph/internal/scene"
	"github.com/lumenforge/pointmorph/pkg/math"
)

// DefaultTargetSize is the normalized extent of the longest axis, in world
// units.
const DefaultTargetSize = 4.0

// Bounds returns the axis-aligned bounding box of a mesh's positions.
func Bounds(m *scene.Mesh) math.Box3 {
	box := math.EmptyBox3()
	for _, p := range m.Positions {
		box = box.ExpandByPoint(p)
	}
	return box
}

// UnionBounds returns the union bounding box across all meshes.
func UnionBounds(meshes []*scene.Mesh) math.Box3 {
	box := math.EmptyBox3()
	for _, m := range meshes {
		box = box.Union(Bounds(m))
	}
	return box
}

// NormalizeSet recenters and rescales the meshes in place so that their
// union bounding box is centered at the origin with its longest axis equal
// to targetSize. A zero extent is treated as 1 to guard the division, so a
// single point or a flat axis normalizes without blowing up. Normals are
// unaffected: the transform is uniform scale plus translation.
func NormalizeSet(meshes []*scene.Mesh, targetSize float32) {
	if targetSize <= 0 {
		targetSize = DefaultTargetSize
	}

	box := UnionBounds(meshes)
	if box.IsEmpty() {
		return
	}

	extent := box.MaxExtent()
	if extent == 0 {
		extent = 1
	}
	scale := targetSize / extent
	center := box.Center()

	for _, m := range meshes {
		for i, p := range m.Positions {
			m.Positions[i] = p.Sub(center).Scale(scale)
		}
	}
}
