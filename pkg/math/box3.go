package math

// Box3 is an axis-aligned bounding box.
type Box3 struct {
	Min, Max Vec3
}

// EmptyBox3 returns a box in the empty state: Min above Max on every axis,
// so the first ExpandByPoint snaps both corners to that point.
func EmptyBox3() Box3 {
	const big = 1e30
	return Box3{
		Min: Vec3{big, big, big},
		Max: Vec3{-big, -big, -big},
	}
}

// IsEmpty reports whether the box contains no points.
func (b Box3) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// ExpandByPoint grows the box to contain p.
func (b Box3) ExpandByPoint(p Vec3) Box3 {
	return Box3{
		Min: b.Min.Min(p),
		Max: b.Max.Max(p),
	}
}

// Union returns the smallest box containing both b and other.
func (b Box3) Union(other Box3) Box3 {
	if b.IsEmpty() {
		return other
	}
	if other.IsEmpty() {
		return b
	}
	return Box3{
		Min: b.Min.Min(other.Min),
		Max: b.Max.Max(other.Max),
	}
}

// Center returns the center point of the box, or the zero vector for an
// empty box.
func (b Box3) Center() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return b.Min.Add(b.Max).Scale(0.5)
}

// Size returns the extent of the box along each axis, or the zero vector
// for an empty box.
func (b Box3) Size() Vec3 {
	if b.IsEmpty() {
		return Vec3{}
	}
	return b.Max.Sub(b.Min)
}

// MaxExtent returns the largest axis extent.
func (b Box3) MaxExtent() float32 {
	s := b.Size()
	return max(s.X, max(s.Y, s.Z))
}
