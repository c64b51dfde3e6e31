// Package assets loads model files into flattened scenes. OBJ and glTF
// (.gltf/.glb) are supported; each loader walks whatever grouping or node
// hierarchy its format has and emits meshes with accumulated world
// transforms, so nothing downstream ever sees the source structure.
package assets

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/lumenforge/pointmorph/internal/scene"
)

// Load reads a model file into a scene, dispatching on the extension.
func Load(path string) (*scene.Scene, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJ(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	}
	return nil, fmt.Errorf("unsupported model format %q", filepath.Ext(path))
}
