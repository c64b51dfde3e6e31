package morph

import (
	"github.com/lumenforge/pointmorph/internal/render"
)

// Publisher feeds the render sink every frame: the two active state buffers
// when they change, and the progress uniform always. Buffer uploads are
// keyed on the controller's epoch so steady-state frames cost one uniform
// write.
type Publisher struct {
	sink      render.Sink
	ctrl      *Controller
	lastEpoch uint64
	uploaded  bool
}

// NewPublisher wires a controller to a sink.
func NewPublisher(sink render.Sink, ctrl *Controller) *Publisher {
	return &Publisher{sink: sink, ctrl: ctrl}
}

// Publish pushes the current frame state into the sink.
func (p *Publisher) Publish() error {
	f := p.ctrl.Snapshot()

	if !p.uploaded || f.Epoch != p.lastEpoch {
		if err := p.sink.UploadStates(f.Source, f.Target, f.Sizes); err != nil {
			return err
		}
		p.lastEpoch = f.Epoch
		p.uploaded = true
	}

	p.sink.SetProgress(f.Progress)
	return nil
}

// SetColors forwards the two colors to the sink. No buffer rebuild.
func (p *Publisher) SetColors(a, b [3]float32) {
	p.sink.SetColors(a, b)
}

// SetSize forwards the base point size to the sink. No buffer rebuild.
func (p *Publisher) SetSize(size float32) {
	p.sink.SetPointSize(size)
}

// UpdateResolution forwards viewport dimensions and device pixel ratio so
// the sink can recompute its resolution-dependent uniform.
func (p *Publisher) UpdateResolution(width, height int, pixelRatio float32) {
	p.sink.SetResolution(width, height, pixelRatio)
}
