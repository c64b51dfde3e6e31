package assets

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/lumenforge/pointmorph/internal/scene"
	"github.com/lumenforge/pointmorph/pkg/math"
)

// LoadOBJ parses a Wavefront OBJ file. Each `o`/`g` statement starts a new
// sub-mesh; position and normal indices are global in the file and remapped
// per mesh. Faces with more than three corners are triangulated as a fan.
// Texture coordinates and materials are skipped.
func LoadOBJ(path string) (*scene.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	p := objParser{scene: &scene.Scene{}}

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		if err := p.line(sc.Text()); err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	p.flush()
	return p.scene, nil
}

type objCorner struct {
	pos, norm int // global 0-based indices, norm = -1 when absent
}

type objParser struct {
	scene *scene.Scene

	positions []math.Vec3
	normals   []math.Vec3

	meshName string
	remap    map[objCorner]uint32
	current  *scene.Mesh
}

func (p *objParser) line(raw string) error {
	line := strings.TrimSpace(raw)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case "v":
		v, err := parseVec3(fields[1:])
		if err != nil {
			return fmt.Errorf("vertex: %w", err)
		}
		p.positions = append(p.positions, v)
	case "vn":
		v, err := parseVec3(fields[1:])
		if err != nil {
			return fmt.Errorf("normal: %w", err)
		}
		p.normals = append(p.normals, v)
	case "o", "g":
		p.flush()
		if len(fields) > 1 {
			p.meshName = fields[1]
		} else {
			p.meshName = ""
		}
	case "f":
		if err := p.face(fields[1:]); err != nil {
			return err
		}
	}
	// vt, mtllib, usemtl, s and anything else are ignored.
	return nil
}

// face triangulates an n-gon as a fan around the first corner.
func (p *objParser) face(refs []string) error {
	if len(refs) < 3 {
		return fmt.Errorf("face with %d corners", len(refs))
	}

	corners := make([]uint32, len(refs))
	for i, ref := range refs {
		c, err := p.corner(ref)
		if err != nil {
			return err
		}
		corners[i] = c
	}

	m := p.mesh()
	for i := 2; i < len(corners); i++ {
		m.Indices = append(m.Indices, corners[0], corners[i-1], corners[i])
	}
	return nil
}

// corner resolves one v/vt/vn reference to a local vertex index, creating
// the vertex on first use.
func (p *objParser) corner(ref string) (uint32, error) {
	parts := strings.Split(ref, "/")

	pos, err := p.resolveIndex(parts[0], len(p.positions))
	if err != nil {
		return 0, fmt.Errorf("face corner %q: %w", ref, err)
	}

	norm := -1
	if len(parts) >= 3 && parts[2] != "" {
		norm, err = p.resolveIndex(parts[2], len(p.normals))
		if err != nil {
			return 0, fmt.Errorf("face corner %q: %w", ref, err)
		}
	}

	key := objCorner{pos: pos, norm: norm}
	m := p.mesh()
	if idx, ok := p.remap[key]; ok {
		return idx, nil
	}

	idx := uint32(len(m.Positions))
	m.Positions = append(m.Positions, p.positions[pos])
	if norm >= 0 {
		m.Normals = append(m.Normals, p.normals[norm])
	}
	p.remap[key] = idx
	return idx, nil
}

// resolveIndex converts a 1-based (or negative, relative) OBJ index into a
// 0-based one.
func (p *objParser) resolveIndex(s string, count int) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		n = count + n
	} else {
		n--
	}
	if n < 0 || n >= count {
		return 0, fmt.Errorf("index %s out of range (%d entries)", s, count)
	}
	return n, nil
}

func (p *objParser) mesh() *scene.Mesh {
	if p.current == nil {
		p.current = &scene.Mesh{
			Name:  p.meshName,
			World: math.Identity(),
		}
		p.remap = make(map[objCorner]uint32)
	}
	return p.current
}

// flush finishes the current sub-mesh, dropping it when it got no faces.
func (p *objParser) flush() {
	if p.current != nil && len(p.current.Positions) > 0 {
		// A mesh mixing corners with and without normals ends up with a
		// partial normal list; discard it rather than ship a mismatch.
		if len(p.current.Normals) != len(p.current.Positions) {
			p.current.Normals = nil
		}
		p.scene.Meshes = append(p.scene.Meshes, p.current)
	}
	p.current = nil
	p.remap = nil
}

func parseVec3(fields []string) (math.Vec3, error) {
	if len(fields) < 3 {
		return math.Vec3{}, fmt.Errorf("expected 3 components, got %d", len(fields))
	}
	var out [3]float32
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return math.Vec3{}, err
		}
		out[i] = float32(v)
	}
	return math.Vec3{X: out[0], Y: out[1], Z: out[2]}, nil
}
