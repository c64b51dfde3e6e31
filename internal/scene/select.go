package scene

import (
	"fmt"
	"strconv"
	"strings"
)

// RuleKind discriminates the mesh selection rule variants.
type RuleKind int

const (
	// AllMeshes selects every mesh in scene order.
	AllMeshes RuleKind = iota
	// FirstMesh selects only the first mesh.
	FirstMesh
	// ByIndex selects the mesh at a given index, clamped to the valid range.
	ByIndex
	// ByName selects the mesh with a matching name, falling back to the
	// first mesh when no name matches.
	ByName
)

// Rule is a tagged mesh selection rule.
type Rule struct {
	Kind  RuleKind
	Index int
	Name  string
}

// All selects every mesh.
func All() Rule { return Rule{Kind: AllMeshes} }

// First selects the first mesh.
func First() Rule { return Rule{Kind: FirstMesh} }

// Index selects the mesh at position n.
func Index(n int) Rule { return Rule{Kind: ByIndex, Index: n} }

// Named selects the mesh called name.
func Named(name string) Rule { return Rule{Kind: ByName, Name: name} }

// ParseRule parses the config syntax: "all", "first", "index:N", "name:X".
// The empty string parses as All.
func ParseRule(s string) (Rule, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || s == "all":
		return All(), nil
	case s == "first":
		return First(), nil
	case strings.HasPrefix(s, "index:"):
		n, err := strconv.Atoi(strings.TrimPrefix(s, "index:"))
		if err != nil {
			return Rule{}, fmt.Errorf("bad index in rule %q: %w", s, err)
		}
		return Index(n), nil
	case strings.HasPrefix(s, "name:"):
		name := strings.TrimPrefix(s, "name:")
		if name == "" {
			return Rule{}, fmt.Errorf("empty name in rule %q", s)
		}
		return Named(name), nil
	}
	return Rule{}, fmt.Errorf("unknown selection rule %q", s)
}

// Select resolves a rule against a scene, returning the ordered list of
// meshes to use for one morph state. Meshes without a position attribute
// are excluded before the rule applies. Selection never fails: an empty
// scene yields an empty list, an out-of-range index clamps, and an
// unmatched name falls back to the first mesh.
func Select(s *Scene, r Rule) []*Mesh {
	var usable []*Mesh
	if s != nil {
		for _, m := range s.Meshes {
			if m.HasPositions() {
				usable = append(usable, m)
			}
		}
	}
	if len(usable) == 0 {
		return nil
	}

	switch r.Kind {
	case FirstMesh:
		return usable[:1]
	case ByIndex:
		i := r.Index
		if i < 0 {
			i = 0
		}
		if i >= len(usable) {
			i = len(usable) - 1
		}
		return []*Mesh{usable[i]}
	case ByName:
		for _, m := range usable {
			if m.Name == r.Name {
				return []*Mesh{m}
			}
		}
		return usable[:1]
	default:
		return usable
	}
}
