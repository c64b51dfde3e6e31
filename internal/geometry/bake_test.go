package geometry

import (
	gomath "math"
	"testing"

	"github.com/lumenforge/pointmorph/internal/scene"
	"github.com/lumenforge/pointmorph/pkg/math"
)

func TestBakeAppliesWorldTransform(t *testing.T) {
	m := &scene.Mesh{
		Name:      "tri",
		Positions: []math.Vec3{{X: 1}, {Y: 1}, {Z: 1}},
		World:     math.Translate(10, 0, 0),
	}

	baked := Bake(m)

	want := []math.Vec3{{X: 11}, {X: 10, Y: 1}, {X: 10, Z: 1}}
	for i, p := range baked.Positions {
		if p != want[i] {
			t.Errorf("baked position %d = %v, want %v", i, p, want[i])
		}
	}
	if baked.World != math.Identity() {
		t.Error("baked mesh should carry an identity transform")
	}
}

func TestBakeDoesNotMutateInput(t *testing.T) {
	m := &scene.Mesh{
		Positions: []math.Vec3{{X: 1, Y: 2, Z: 3}},
		Normals:   []math.Vec3{{Y: 1}},
		Indices:   []uint32{0, 0, 0},
		World:     math.Scale(2, 2, 2),
	}

	baked := Bake(m)

	if m.Positions[0] != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Errorf("input position mutated to %v", m.Positions[0])
	}
	if m.Normals[0] != (math.Vec3{Y: 1}) {
		t.Errorf("input normal mutated to %v", m.Normals[0])
	}

	baked.Positions[0] = math.Vec3{}
	baked.Indices[0] = 7
	if m.Positions[0] != (math.Vec3{X: 1, Y: 2, Z: 3}) {
		t.Error("baked mesh shares position storage with input")
	}
	if m.Indices[0] != 0 {
		t.Error("baked mesh shares index storage with input")
	}
}

func TestBakeNormalsUnderNonUniformScale(t *testing.T) {
	// A 45-degree normal under a 2x Y squash must steepen toward
	// (1, 2, 0)/sqrt(5) and stay unit length.
	s := float32(gomath.Sqrt(0.5))
	m := &scene.Mesh{
		Positions: []math.Vec3{{}},
		Normals:   []math.Vec3{{X: s, Y: s}},
		World:     math.Scale(1, 0.5, 1),
	}

	baked := Bake(m)

	n := baked.Normals[0]
	if l := n.Length(); l < 0.999 || l > 1.001 {
		t.Errorf("baked normal length = %v, want ~1", l)
	}
	inv := float32(gomath.Sqrt(5))
	want := math.Vec3{X: 1 / inv, Y: 2 / inv}
	if n.Distance(want) > 1e-5 {
		t.Errorf("baked normal = %v, want %v", n, want)
	}
}

func TestBakeWithoutNormals(t *testing.T) {
	m := &scene.Mesh{
		Positions: []math.Vec3{{X: 1}},
		World:     math.Identity(),
	}
	baked := Bake(m)
	if len(baked.Normals) != 0 {
		t.Errorf("baked mesh gained %d normals from a normal-less input", len(baked.Normals))
	}
}
