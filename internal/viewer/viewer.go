// Package viewer implements the interactive morphing point cloud viewer:
// window, render sink, morph pipeline and the main loop tying them together.
package viewer

import (
	"context"
	"fmt"
	gomath "math"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/lumenforge/pointmorph/internal/assets"
	"github.com/lumenforge/pointmorph/internal/camera"
	"github.com/lumenforge/pointmorph/internal/config"
	"github.com/lumenforge/pointmorph/internal/input"
	"github.com/lumenforge/pointmorph/internal/logger"
	"github.com/lumenforge/pointmorph/internal/morph"
	"github.com/lumenforge/pointmorph/internal/render"
	"github.com/lumenforge/pointmorph/internal/scene"
	"github.com/lumenforge/pointmorph/internal/watch"
	"github.com/lumenforge/pointmorph/internal/window"
	"github.com/lumenforge/pointmorph/pkg/math"
)

// Viewer is the running application instance.
type Viewer struct {
	cfg     *config.Config
	running bool

	window *window.Window
	sink   *render.GLSink
	input  *input.Input
	camera *camera.OrbitCamera

	ctrl *morph.Controller
	pub  *morph.Publisher

	transition morph.Transition

	rebuilder *morph.Rebuilder
	watcher   *watch.Watcher
	pending   chan *morph.Session

	dragging           bool
	lastMouseX, lastMouseY int
}

// New creates the viewer: window and GL context first, then the morph
// session built from the configured model sources.
func New(cfg *config.Config) (*Viewer, error) {
	if len(cfg.Assets.Sources) < 1 {
		return nil, fmt.Errorf("no model sources configured")
	}

	v := &Viewer{
		cfg:     cfg,
		input:   input.New(),
		camera:  camera.NewOrbitCamera(),
		pending: make(chan *morph.Session, 1),
	}

	easing, ok := morph.EasingByName(cfg.Morph.Easing)
	if !ok {
		logger.Warn("unknown easing, using linear", zap.String("easing", cfg.Morph.Easing))
	}
	v.transition = morph.Transition{Duration: cfg.Morph.Duration, Easing: easing}

	var err error
	v.window, err = window.New(window.Config{
		Title:      "pointmorph",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Sink creation needs the GL context from the window.
	v.sink, err = render.NewGLSink()
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create render sink: %w", err)
	}

	session, err := v.buildSession(context.Background())
	if err != nil {
		v.sink.Close()
		v.window.Close()
		return nil, fmt.Errorf("failed to build morph session: %w", err)
	}

	v.ctrl = morph.NewController(session, v.transition)
	v.ctrl.SetAutoCycle(cfg.Morph.AutoCycle, cfg.Morph.CyclePeriod)

	v.pub = morph.NewPublisher(v.sink, v.ctrl)
	v.pub.SetColors(cfg.Render.ColorA, cfg.Render.ColorB)
	v.pub.SetSize(cfg.Render.PointSize)

	w, h := v.window.GetSize()
	v.pub.UpdateResolution(w, h, v.window.PixelRatio())

	v.camera.FitDistance(cfg.Morph.TargetSize)

	if cfg.Assets.Watch {
		if err := v.startWatching(); err != nil {
			logger.Warn("file watching disabled", zap.Error(err))
		}
	}

	logger.Info("viewer initialized",
		zap.Int("states", session.StateCount()),
		zap.Int("particles", session.Length()),
	)
	return v, nil
}

// buildSession loads every configured source from disk and builds the state
// buffers. It runs at startup and again on every watched-file change.
func (v *Viewer) buildSession(ctx context.Context) (*morph.Session, error) {
	states := make([]morph.StateInput, 0, len(v.cfg.Assets.Sources))
	for _, src := range v.cfg.Assets.Sources {
		sc, err := assets.Load(src.Path)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", src.Path, err)
		}
		rule, err := scene.ParseRule(src.Select)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", src.Path, err)
		}
		states = append(states, morph.StateInput{Scene: sc, Rule: rule})
	}

	return morph.NewSession(ctx, morph.BuildConfig{
		ParticleCount: v.cfg.Morph.ParticleCount,
		UseSampling:   v.cfg.Morph.UseSampling,
		Normalize:     v.cfg.Morph.Normalize,
		TargetSize:    v.cfg.Morph.TargetSize,
		Seed:          v.cfg.Morph.Seed,
	}, states)
}

// startWatching rebuilds the session whenever a source file changes. The
// rebuild runs off the main loop; the finished session is handed back
// through the pending channel and applied between frames.
func (v *Viewer) startWatching() error {
	v.rebuilder = morph.NewRebuilder(v.buildSession, func(s *morph.Session) {
		select {
		case v.pending <- s:
		default:
			// A newer session is already waiting; drop this one.
		}
	})

	paths := make([]string, len(v.cfg.Assets.Sources))
	for i, src := range v.cfg.Assets.Sources {
		paths[i] = src.Path
	}

	w, err := watch.New(paths, v.rebuilder.Trigger)
	if err != nil {
		return err
	}
	v.watcher = w
	logger.Info("watching model files for changes", zap.Int("files", len(paths)))
	return nil
}

// Run starts the main loop.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := now.Sub(lastTime).Seconds()
		lastTime = now

		if v.input.Update() {
			v.running = false
			break
		}
		v.handleEvents()

		// A finished rebuild replaces the session between frames.
		select {
		case s := <-v.pending:
			v.ctrl.ReplaceSession(s)
			v.ctrl.SetAutoCycle(v.cfg.Morph.AutoCycle, v.cfg.Morph.CyclePeriod)
			logger.Info("session rebuilt from changed files",
				zap.Int("states", s.StateCount()),
				zap.Int("particles", s.Length()),
			)
		default:
		}

		v.ctrl.Tick(dt)

		if err := v.pub.Publish(); err != nil {
			return fmt.Errorf("publish error: %w", err)
		}

		w, h := v.window.GetSize()
		aspect := float32(w) / float32(h)
		proj := math.Perspective(float32(45.0*gomath.Pi/180.0), aspect, 0.1, 1000.0)
		if err := v.sink.Draw(v.camera.ViewMatrix(), proj); err != nil {
			return fmt.Errorf("render error: %w", err)
		}

		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

func (v *Viewer) handleEvents() {
	for _, e := range v.input.Events() {
		switch e.Type {
		case input.EventWindowResize:
			v.pub.UpdateResolution(e.Width, e.Height, v.window.PixelRatio())

		case input.EventKeyDown:
			switch e.Key {
			case sdl.SCANCODE_ESCAPE, sdl.SCANCODE_Q:
				v.running = false
			case sdl.SCANCODE_SPACE:
				// Morph to the next state, wrapping.
				if n := v.ctrl.StateCount(); n > 1 {
					v.ctrl.MorphTo((v.ctrl.CurrentIndex()+1)%n, v.transition)
				}
			case sdl.SCANCODE_A:
				v.cfg.Morph.AutoCycle = !v.cfg.Morph.AutoCycle
				v.ctrl.SetAutoCycle(v.cfg.Morph.AutoCycle, v.cfg.Morph.CyclePeriod)
				logger.Info("auto-cycle toggled", zap.Bool("enabled", v.cfg.Morph.AutoCycle))
			}

		case input.EventMouseDown:
			if e.Button == sdl.BUTTON_LEFT {
				v.dragging = true
				v.lastMouseX, v.lastMouseY = e.MouseX, e.MouseY
			}

		case input.EventMouseUp:
			if e.Button == sdl.BUTTON_LEFT {
				v.dragging = false
			}

		case input.EventMouseMove:
			if v.dragging {
				v.camera.HandleDrag(
					float32(e.MouseX-v.lastMouseX),
					float32(e.MouseY-v.lastMouseY),
				)
				v.lastMouseX, v.lastMouseY = e.MouseX, e.MouseY
			}

		case input.EventMouseWheel:
			v.camera.HandleZoom(e.Scroll)
		}
	}
}

// Close cleans up viewer resources.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.watcher != nil {
		v.watcher.Close()
	}
	if v.rebuilder != nil {
		v.rebuilder.Stop()
	}
	if v.sink != nil {
		v.sink.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}
