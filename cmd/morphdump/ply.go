package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/lumenforge/pointmorph/pkg/math"
)

// writePLY writes a point cloud as an ASCII PLY file, readable by MeshLab,
// CloudCompare and most DCC tools.
func writePLY(path string, points []math.Vec3) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "ply")
	fmt.Fprintln(w, "format ascii 1.0")
	fmt.Fprintf(w, "element vertex %d\n", len(points))
	fmt.Fprintln(w, "property float x")
	fmt.Fprintln(w, "property float y")
	fmt.Fprintln(w, "property float z")
	fmt.Fprintln(w, "end_header")

	for _, p := range points {
		fmt.Fprintf(w, "%g %g %g\n", p.X, p.Y, p.Z)
	}
	return w.Flush()
}
