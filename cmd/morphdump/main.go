// morphdump is a headless CLI for inspecting models and exporting the point
// cloud buffers the viewer would render, without opening a window.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lumenforge/pointmorph/internal/assets"
	"github.com/lumenforge/pointmorph/internal/geometry"
	"github.com/lumenforge/pointmorph/internal/morph"
	"github.com/lumenforge/pointmorph/internal/scene"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "sample":
		cmdSample(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`morphdump - point cloud inspection utility

Usage:
  morphdump <command> [options]

Commands:
  info <model>...                     Show mesh stats per model file
  sample <model>... [options]         Build state buffers and write PLY files

Sample options:
  -n <count>      Particle count (default 10000)
  -vertex-mode    Use raw vertices instead of surface sampling
  -no-normalize   Skip bounding box normalization
  -size <s>       Normalized longest-axis size (default 4.0)
  -seed <n>       Sampling RNG seed (default 1)
  -select <rule>  Mesh selection: all, first, index:N, name:X
  -o <dir>        Output directory (default .)

Examples:
  morphdump info bunny.obj dragon.glb
  morphdump sample bunny.obj dragon.glb -n 50000 -o ./clouds`)
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: morphdump info <model>...")
		os.Exit(1)
	}

	for _, path := range args {
		sc, err := assets.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Model: %s\n", path)
		fmt.Printf("Meshes: %d\n", len(sc.Meshes))

		baked := geometry.BakeAll(sc.Meshes)
		for i, m := range baked {
			name := m.Name
			if name == "" {
				name = "(unnamed)"
			}
			box := geometry.Bounds(m)
			size := box.Size()
			fmt.Printf("  [%d] %-20s vertices=%-8d triangles=%-8d normals=%-5v extent=(%.3f %.3f %.3f)\n",
				i, name, len(m.Positions), m.TriangleCount(), m.HasNormals(),
				size.X, size.Y, size.Z)
		}
		fmt.Println()
	}
}

func cmdSample(args []string) {
	fs := flag.NewFlagSet("sample", flag.ExitOnError)
	count := fs.Int("n", 10000, "Particle count")
	vertexMode := fs.Bool("vertex-mode", false, "Use raw vertices instead of surface sampling")
	noNormalize := fs.Bool("no-normalize", false, "Skip bounding box normalization")
	size := fs.Float64("size", 4.0, "Normalized longest-axis size")
	seed := fs.Int64("seed", 1, "Sampling RNG seed")
	selectRule := fs.String("select", "all", "Mesh selection rule")
	outDir := fs.String("o", ".", "Output directory")

	// Model paths come first, flags after.
	var paths []string
	for len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		paths = append(paths, args[0])
		args = args[1:]
	}
	fs.Parse(args)

	if len(paths) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: morphdump sample <model>... [options]")
		os.Exit(1)
	}

	rule, err := scene.ParseRule(*selectRule)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	var states []morph.StateInput
	for _, path := range paths {
		sc, err := assets.Load(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		states = append(states, morph.StateInput{Scene: sc, Rule: rule})
	}

	buffers, err := morph.BuildStates(context.Background(), morph.BuildConfig{
		ParticleCount: *count,
		UseSampling:   !*vertexMode,
		Normalize:     !*noNormalize,
		TargetSize:    float32(*size),
		Seed:          *seed,
	}, states)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating directory: %v\n", err)
		os.Exit(1)
	}

	for i, buf := range buffers {
		base := strings.TrimSuffix(filepath.Base(paths[i]), filepath.Ext(paths[i]))
		outPath := filepath.Join(*outDir, fmt.Sprintf("%s_state%d.ply", base, i))
		if err := writePLY(outPath, buf); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", outPath, err)
			os.Exit(1)
		}
		fmt.Printf("Wrote: %s (%d points)\n", outPath, len(buf))
	}
}
