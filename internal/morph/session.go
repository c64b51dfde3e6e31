package morph

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lumenforge/pointmorph/internal/logger"
	"github.com/lumenforge/pointmorph/pkg/math"
)

// Session holds the built state buffers for one running instance. Buffers
// are immutable after construction and shared read-only between the
// controller and the publisher.
type Session struct {
	buffers [][]math.Vec3
	sizes   []float32
}

// NewSession builds all state buffers plus the per-particle size jitter
// array. It either succeeds completely or returns an error with no partial
// session.
func NewSession(ctx context.Context, cfg BuildConfig, states []StateInput) (*Session, error) {
	start := time.Now()

	buffers, err := BuildStates(ctx, cfg, states)
	if err != nil {
		return nil, err
	}

	length := 0
	if len(buffers) > 0 {
		length = len(buffers[0])
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed + 1))
	sizes := make([]float32, length)
	for i := range sizes {
		sizes[i] = 0.5 + rng.Float32()*0.5
	}

	logger.Info("morph session built",
		zap.Int("states", len(buffers)),
		zap.Int("particles", length),
		zap.Duration("elapsed", time.Since(start)),
	)

	return &Session{buffers: buffers, sizes: sizes}, nil
}

// StateCount returns the number of states.
func (s *Session) StateCount() int {
	if s == nil {
		return 0
	}
	return len(s.buffers)
}

// Buffer returns the position buffer for one state.
func (s *Session) Buffer(i int) []math.Vec3 {
	return s.buffers[i]
}

// Sizes returns the per-particle size jitter array.
func (s *Session) Sizes() []float32 {
	if s == nil {
		return nil
	}
	return s.sizes
}

// Length returns the shared buffer length.
func (s *Session) Length() int {
	if s == nil || len(s.buffers) == 0 {
		return 0
	}
	return len(s.buffers[0])
}

// Rebuilder serializes session rebuilds: triggering a new rebuild cancels
// any in-flight one, and a rebuild whose inputs went stale before it
// finished is discarded instead of applied. Apply runs on the rebuild
// goroutine; callers hand the session back to their own loop if needed.
type Rebuilder struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc

	build func(ctx context.Context) (*Session, error)
	apply func(*Session)
}

// NewRebuilder creates a rebuilder around a build function and an apply
// callback for completed, still-current sessions.
func NewRebuilder(build func(ctx context.Context) (*Session, error), apply func(*Session)) *Rebuilder {
	return &Rebuilder{build: build, apply: apply}
}

// Trigger starts a rebuild, cancelling any rebuild already in flight.
func (r *Rebuilder) Trigger() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.gen++
	gen := r.gen
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.mu.Unlock()

	go func() {
		session, err := r.build(ctx)
		if err != nil {
			if ctx.Err() == nil {
				logger.Error("session rebuild failed", zap.Error(err))
			}
			return
		}

		r.mu.Lock()
		stale := gen != r.gen
		r.mu.Unlock()
		if stale {
			logger.Debug("discarding stale session rebuild", zap.Uint64("generation", gen))
			return
		}
		r.apply(session)
	}()
}

// Stop cancels any in-flight rebuild and invalidates its result.
func (r *Rebuilder) Stop() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.gen++
}
