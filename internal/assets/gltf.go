package assets

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/lumenforge/pointmorph/internal/scene"
	"github.com/lumenforge/pointmorph/pkg/math"
)

// LoadGLTF reads a .gltf or .glb file and flattens its node tree into a
// scene. Every mesh primitive becomes one mesh carrying the accumulated
// world transform of the node that references it.
func LoadGLTF(path string) (*scene.Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}

	out := &scene.Scene{}

	roots := rootNodes(doc)
	for _, idx := range roots {
		if err := walkNode(doc, idx, math.Identity(), out); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return out, nil
}

func rootNodes(doc *gltf.Document) []uint32 {
	if len(doc.Scenes) == 0 {
		// No scene: treat every node as a root so the file still loads.
		roots := make([]uint32, len(doc.Nodes))
		for i := range doc.Nodes {
			roots[i] = uint32(i)
		}
		return roots
	}
	si := 0
	if doc.Scene != nil {
		si = int(*doc.Scene)
	}
	return doc.Scenes[si].Nodes
}

func walkNode(doc *gltf.Document, idx uint32, parent math.Mat4, out *scene.Scene) error {
	if int(idx) >= len(doc.Nodes) {
		return fmt.Errorf("node index %d out of range", idx)
	}
	node := doc.Nodes[idx]
	world := parent.Mul(nodeLocal(node))

	if node.Mesh != nil {
		if int(*node.Mesh) >= len(doc.Meshes) {
			return fmt.Errorf("node %q: mesh index %d out of range", node.Name, *node.Mesh)
		}
		mesh := doc.Meshes[*node.Mesh]
		for pi, prim := range mesh.Primitives {
			m, err := readPrimitive(doc, mesh, prim, world)
			if err != nil {
				return fmt.Errorf("mesh %q primitive %d: %w", mesh.Name, pi, err)
			}
			if m != nil {
				out.Meshes = append(out.Meshes, m)
			}
		}
	}

	for _, child := range node.Children {
		if err := walkNode(doc, child, world, out); err != nil {
			return err
		}
	}
	return nil
}

func readPrimitive(doc *gltf.Document, mesh *gltf.Mesh, prim *gltf.Primitive, world math.Mat4) (*scene.Mesh, error) {
	posIdx, ok := prim.Attributes[gltf.POSITION]
	if !ok {
		return nil, nil
	}
	positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
	if err != nil {
		return nil, fmt.Errorf("reading positions: %w", err)
	}

	m := &scene.Mesh{
		Name:      mesh.Name,
		Positions: make([]math.Vec3, len(positions)),
		World:     world,
	}
	for i, p := range positions {
		m.Positions[i] = math.Vec3{X: p[0], Y: p[1], Z: p[2]}
	}

	if normIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
		normals, err := modeler.ReadNormal(doc, doc.Accessors[normIdx], nil)
		if err != nil {
			return nil, fmt.Errorf("reading normals: %w", err)
		}
		if len(normals) == len(positions) {
			m.Normals = make([]math.Vec3, len(normals))
			for i, n := range normals {
				m.Normals[i] = math.Vec3{X: n[0], Y: n[1], Z: n[2]}
			}
		}
	}

	if prim.Indices != nil {
		indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
		if err != nil {
			return nil, fmt.Errorf("reading indices: %w", err)
		}
		m.Indices = indices
	}
	return m, nil
}

// nodeLocal builds the node's local transform, preferring the explicit
// matrix over the TRS properties when one is present.
func nodeLocal(node *gltf.Node) math.Mat4 {
	if mat := node.MatrixOrDefault(); mat != gltf.DefaultMatrix {
		var m math.Mat4
		for i, v := range mat {
			m[i] = float32(v)
		}
		return m
	}

	t := node.TranslationOrDefault()
	r := node.RotationOrDefault()
	s := node.ScaleOrDefault()

	local := math.Translate(float32(t[0]), float32(t[1]), float32(t[2]))
	local = local.Mul(quatMat4(float32(r[0]), float32(r[1]), float32(r[2]), float32(r[3])))
	return local.Mul(math.Scale(float32(s[0]), float32(s[1]), float32(s[2])))
}

// quatMat4 converts a unit quaternion (x, y, z, w) to a rotation matrix.
func quatMat4(x, y, z, w float32) math.Mat4 {
	m := math.Identity()

	xx, yy, zz := x*x, y*y, z*z
	xy, xz, yz := x*y, x*z, y*z
	wx, wy, wz := w*x, w*y, w*z

	m[0] = 1 - 2*(yy+zz)
	m[1] = 2 * (xy + wz)
	m[2] = 2 * (xz - wy)

	m[4] = 2 * (xy - wz)
	m[5] = 1 - 2*(xx+zz)
	m[6] = 2 * (yz + wx)

	m[8] = 2 * (xz + wy)
	m[9] = 2 * (yz - wx)
	m[10] = 1 - 2*(xx+yy)

	return m
}
