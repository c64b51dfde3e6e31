package render

import "github.com/lumenforge/pointmorph/pkg/math"

// NullSink records what was published without touching a GPU. It backs the
// headless tools and the pipeline tests.
type NullSink struct {
	Source     []math.Vec3
	Target     []math.Vec3
	Sizes      []float32
	Progress   float32
	PointSize  float32
	ColorA     [3]float32
	ColorB     [3]float32
	Width      int
	Height     int
	PixelRatio float32
	Uploads    int
	Draws      int
}

// UploadStates stores references to the published buffers.
func (n *NullSink) UploadStates(source, target []math.Vec3, sizes []float32) error {
	n.Source = source
	n.Target = target
	n.Sizes = sizes
	n.Uploads++
	return nil
}

// SetProgress records the progress uniform.
func (n *NullSink) SetProgress(p float32) { n.Progress = p }

// SetPointSize records the point size uniform.
func (n *NullSink) SetPointSize(size float32) { n.PointSize = size }

// SetColors records the color uniforms.
func (n *NullSink) SetColors(a, b [3]float32) {
	n.ColorA = a
	n.ColorB = b
}

// SetResolution records the viewport parameters.
func (n *NullSink) SetResolution(width, height int, pixelRatio float32) {
	n.Width = width
	n.Height = height
	n.PixelRatio = pixelRatio
}

// Draw counts frames.
func (n *NullSink) Draw(view, proj math.Mat4) error {
	n.Draws++
	return nil
}

// Close is a no-op.
func (n *NullSink) Close() {}
