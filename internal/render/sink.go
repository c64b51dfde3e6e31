// Package render defines the sink the morph pipeline publishes into, plus
// the OpenGL implementation used by the viewer.
package render

import "github.com/lumenforge/pointmorph/pkg/math"

// Sink consumes the two active state buffers and the uniform values the
// point shader needs. The pipeline never looks inside the shader; this
// interface is the whole contract. Buffers passed to UploadStates are
// immutable and equal length by construction.
type Sink interface {
	// UploadStates replaces the source and target position buffers and the
	// per-particle size scalar array. All three have the same length.
	UploadStates(source, target []math.Vec3, sizes []float32) error

	// SetProgress sets the interpolation progress uniform in [0,1].
	SetProgress(p float32)

	// SetPointSize sets the base point size uniform.
	SetPointSize(size float32)

	// SetColors sets the two color uniforms.
	SetColors(a, b [3]float32)

	// SetResolution recomputes the resolution-dependent size scale from the
	// viewport dimensions and device pixel ratio.
	SetResolution(width, height int, pixelRatio float32)

	// Draw renders one frame with the given view and projection matrices.
	Draw(view, proj math.Mat4) error

	// Close releases sink resources.
	Close()
}
