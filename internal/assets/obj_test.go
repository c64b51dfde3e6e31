package assets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lumenforge/pointmorph/pkg/math"
)

func writeOBJ(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "model.obj")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestLoadOBJTriangle(t *testing.T) {
	path := writeOBJ(t, `
# single triangle
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`)

	sc, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}
	if len(sc.Meshes) != 1 {
		t.Fatalf("mesh count = %d, want 1", len(sc.Meshes))
	}

	m := sc.Meshes[0]
	if len(m.Positions) != 3 {
		t.Errorf("position count = %d, want 3", len(m.Positions))
	}
	if m.TriangleCount() != 1 {
		t.Errorf("triangle count = %d, want 1", m.TriangleCount())
	}
	if m.Positions[1] != (math.Vec3{X: 1}) {
		t.Errorf("position 1 = %v, want (1,0,0)", m.Positions[1])
	}
	if m.World != math.Identity() {
		t.Error("OBJ meshes should carry an identity world transform")
	}
}

func TestLoadOBJQuadTriangulation(t *testing.T) {
	path := writeOBJ(t, `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`)

	sc, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}

	m := sc.Meshes[0]
	if m.TriangleCount() != 2 {
		t.Fatalf("triangle count = %d, want 2 from a quad fan", m.TriangleCount())
	}
	want := []uint32{0, 1, 2, 0, 2, 3}
	for i, idx := range m.Indices {
		if idx != want[i] {
			t.Fatalf("indices = %v, want %v", m.Indices, want)
		}
	}
}

func TestLoadOBJNormalsAndSlashRefs(t *testing.T) {
	path := writeOBJ(t, `
v 0 0 0
v 1 0 0
v 0 1 0
vn 0 0 1
f 1//1 2//1 3//1
`)

	sc, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}

	m := sc.Meshes[0]
	if len(m.Normals) != len(m.Positions) {
		t.Fatalf("normal count = %d, want %d", len(m.Normals), len(m.Positions))
	}
	for i, n := range m.Normals {
		if n != (math.Vec3{Z: 1}) {
			t.Errorf("normal %d = %v, want (0,0,1)", i, n)
		}
	}
}

func TestLoadOBJGroups(t *testing.T) {
	path := writeOBJ(t, `
o left
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
o right
v 2 0 0
v 3 0 0
v 2 1 0
f 4 5 6
`)

	sc, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}
	if len(sc.Meshes) != 2 {
		t.Fatalf("mesh count = %d, want 2", len(sc.Meshes))
	}

	if sc.Meshes[0].Name != "left" || sc.Meshes[1].Name != "right" {
		t.Errorf("mesh names = %q, %q", sc.Meshes[0].Name, sc.Meshes[1].Name)
	}
	// Global indices remap into each mesh's own vertex list.
	if sc.Meshes[1].Positions[0] != (math.Vec3{X: 2}) {
		t.Errorf("second mesh position 0 = %v, want (2,0,0)", sc.Meshes[1].Positions[0])
	}
}

func TestLoadOBJNegativeIndices(t *testing.T) {
	path := writeOBJ(t, `
v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`)

	sc, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}
	if sc.Meshes[0].TriangleCount() != 1 {
		t.Errorf("triangle count = %d, want 1", sc.Meshes[0].TriangleCount())
	}
}

func TestLoadOBJSharedVerticesDeduplicated(t *testing.T) {
	path := writeOBJ(t, `
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3
f 1 3 4
`)

	sc, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}

	m := sc.Meshes[0]
	if len(m.Positions) != 4 {
		t.Errorf("position count = %d, want 4 (shared corners deduplicated)", len(m.Positions))
	}
	if m.TriangleCount() != 2 {
		t.Errorf("triangle count = %d, want 2", m.TriangleCount())
	}
}

func TestLoadOBJErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
		wantSub string
	}{
		{"index out of range", "v 0 0 0\nf 1 2 3\n", "out of range"},
		{"short vertex", "v 1 2\n", "expected 3 components"},
		{"degenerate face", "v 0 0 0\nv 1 0 0\nf 1 2\n", "face with 2 corners"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadOBJ(writeOBJ(t, tc.content))
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Errorf("error %q does not mention %q", err, tc.wantSub)
			}
		})
	}
}

func TestLoadOBJEmptyGroupsDropped(t *testing.T) {
	path := writeOBJ(t, `
o empty
o real
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`)

	sc, err := LoadOBJ(path)
	if err != nil {
		t.Fatalf("LoadOBJ failed: %v", err)
	}
	if len(sc.Meshes) != 1 {
		t.Fatalf("mesh count = %d, want 1 (empty group dropped)", len(sc.Meshes))
	}
	if sc.Meshes[0].Name != "real" {
		t.Errorf("mesh name = %q, want %q", sc.Meshes[0].Name, "real")
	}
}

func TestLoadDispatch(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "model.xyz")); err == nil {
		t.Error("unsupported extension should fail")
	}

	path := writeOBJ(t, "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n")
	if _, err := Load(path); err != nil {
		t.Errorf("Load(.obj) failed: %v", err)
	}
}
