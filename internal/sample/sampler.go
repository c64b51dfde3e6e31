// Package sample draws uniformly distributed points from mesh surfaces.
package sample

import (
	"errors"
	"math/rand"
	"sort"

	"github.com/lumenforge/pointmorph/internal/scene"
	"github.com/lumenforge/pointmorph/pkg/math"
)

// ErrNoSampler means the mesh has no surface a valid area table can be
// built over, and the caller should fall back to vertex resampling.
var ErrNoSampler = errors.New("sample: mesh has no sampleable surface")

// TriangleSampler draws surface points uniformly by area: a cumulative-area
// table picks the triangle, barycentric coordinates pick the point within
// it. Sampling is unbiased by vertex density; a triangle twice the area
// receives twice the points regardless of how the mesh is tessellated.
type TriangleSampler struct {
	mesh       *scene.Mesh
	cumulative []float32 // cumulative triangle areas, strictly used via binary search
	total      float32
}

// NewTriangleSampler builds the area table for a baked mesh. It returns
// ErrNoSampler when the mesh has no triangles, references positions out of
// range, or has zero total surface area (all triangles degenerate).
func NewTriangleSampler(m *scene.Mesh) (*TriangleSampler, error) {
	triCount := m.TriangleCount()
	if triCount == 0 {
		return nil, ErrNoSampler
	}

	cumulative := make([]float32, triCount)
	var total float32
	for i := 0; i < triCount; i++ {
		ia, ib, ic := m.Triangle(i)
		if int(ia) >= len(m.Positions) || int(ib) >= len(m.Positions) || int(ic) >= len(m.Positions) {
			return nil, ErrNoSampler
		}
		a, b, c := m.Positions[ia], m.Positions[ib], m.Positions[ic]
		area := b.Sub(a).Cross(c.Sub(a)).Length() * 0.5
		total += area
		cumulative[i] = total
	}

	if total <= 0 {
		return nil, ErrNoSampler
	}

	return &TriangleSampler{mesh: m, cumulative: cumulative, total: total}, nil
}

// Sample returns one uniformly distributed surface point.
func (s *TriangleSampler) Sample(rng *rand.Rand) math.Vec3 {
	p, _ := s.SampleWithNormal(rng)
	return p
}

// SampleWithNormal returns one surface point plus its normal, interpolated
// from vertex normals when the mesh has them and computed from the triangle
// plane otherwise.
func (s *TriangleSampler) SampleWithNormal(rng *rand.Rand) (math.Vec3, math.Vec3) {
	t := s.pickTriangle(rng)
	ia, ib, ic := s.mesh.Triangle(t)
	a := s.mesh.Positions[ia]
	b := s.mesh.Positions[ib]
	c := s.mesh.Positions[ic]

	// Uniform barycentric point: fold samples outside the triangle back in.
	u := rng.Float32()
	v := rng.Float32()
	if u+v > 1 {
		u = 1 - u
		v = 1 - v
	}
	pos := a.Add(b.Sub(a).Scale(u)).Add(c.Sub(a).Scale(v))

	var normal math.Vec3
	if s.mesh.HasNormals() {
		na := s.mesh.Normals[ia]
		nb := s.mesh.Normals[ib]
		nc := s.mesh.Normals[ic]
		w := 1 - u - v
		normal = na.Scale(w).Add(nb.Scale(u)).Add(nc.Scale(v)).Normalize()
	} else {
		normal = b.Sub(a).Cross(c.Sub(a)).Normalize()
	}

	return pos, normal
}

// pickTriangle selects a triangle index weighted by area.
func (s *TriangleSampler) pickTriangle(rng *rand.Rand) int {
	r := rng.Float32() * s.total
	i := sort.Search(len(s.cumulative), func(i int) bool {
		return s.cumulative[i] > r
	})
	if i >= len(s.cumulative) {
		i = len(s.cumulative) - 1
	}
	return i
}

// TotalArea returns the summed surface area of the mesh.
func (s *TriangleSampler) TotalArea() float32 {
	return s.total
}
