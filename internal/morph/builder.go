// Package morph builds fixed-length per-state point buffers from mesh sets
// and drives the interpolation between them.
package morph

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/lumenforge/pointmorph/internal/geometry"
	"github.com/lumenforge/pointmorph/internal/logger"
	"github.com/lumenforge/pointmorph/internal/sample"
	"github.com/lumenforge/pointmorph/internal/scene"
	"github.com/lumenforge/pointmorph/pkg/math"
)

// BuildConfig controls state buffer construction.
type BuildConfig struct {
	// ParticleCount is the buffer length in sampling mode.
	ParticleCount int
	// UseSampling draws surface samples; false merges raw vertices instead.
	UseSampling bool
	// Normalize rescales each state's mesh set to TargetSize before sampling.
	Normalize bool
	// TargetSize is the normalized longest-axis extent, 0 = default.
	TargetSize float32
	// Seed seeds the sampling RNG; 0 derives a seed from the clock.
	Seed int64
}

// StateInput is the geometry for one morph state: a loaded scene plus the
// rule selecting which of its meshes participate.
type StateInput struct {
	Scene *scene.Scene
	Rule  scene.Rule
}

// BuildStates produces one position buffer per state. Every returned buffer
// has the same length: ParticleCount in sampling mode, the longest state's
// vertex count in vertex mode (shorter states are padded).
//
// The build is restartable batch work: ctx is checked between states, and a
// cancelled build returns ctx.Err() with no partial result.
func BuildStates(ctx context.Context, cfg BuildConfig, states []StateInput) ([][]math.Vec3, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	buffers := make([][]math.Vec3, len(states))
	for i, st := range states {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		meshes := scene.Select(st.Scene, st.Rule)
		baked := geometry.BakeAll(meshes)

		if cfg.UseSampling {
			if cfg.Normalize {
				geometry.NormalizeSet(baked, cfg.TargetSize)
			}
			buffers[i] = sampleState(baked, cfg.ParticleCount, rng, i)
		} else {
			buffers[i] = mergeVertices(baked)
		}
	}

	if !cfg.UseSampling {
		padBuffers(buffers, rng)
	}

	// Equal lengths are guaranteed by construction; a mismatch here is an
	// internal invariant violation and must fail the whole build.
	for i := 1; i < len(buffers); i++ {
		if len(buffers[i]) != len(buffers[0]) {
			return nil, fmt.Errorf("state %d buffer length %d != state 0 length %d",
				i, len(buffers[i]), len(buffers[0]))
		}
	}

	return buffers, nil
}

// sampleState draws exactly count surface points for one state,
// round-robin across the meshes that produced a valid sampler. With no
// valid samplers it falls back to resampling merged vertices, and with no
// geometry at all it emits an all-zero buffer.
func sampleState(baked []*scene.Mesh, count int, rng *rand.Rand, state int) []math.Vec3 {
	var samplers []*sample.TriangleSampler
	for _, m := range baked {
		s, err := sample.NewTriangleSampler(m)
		if err != nil {
			logger.Debug("mesh skipped by sampler",
				zap.Int("state", state),
				zap.String("mesh", m.Name),
				zap.Error(err),
			)
			continue
		}
		samplers = append(samplers, s)
	}

	buf := make([]math.Vec3, count)

	if len(samplers) > 0 {
		for k := range buf {
			buf[k] = samplers[k%len(samplers)].Sample(rng)
		}
		return buf
	}

	merged := mergeVertices(baked)
	if len(merged) == 0 {
		logger.Warn("state has no geometry, emitting zero buffer", zap.Int("state", state))
		return buf
	}

	logger.Debug("no samplers built, resampling vertices",
		zap.Int("state", state),
		zap.Int("vertices", len(merged)),
	)
	for k := range buf {
		buf[k] = merged[rng.Intn(len(merged))]
	}
	return buf
}

// mergeVertices flattens the positions of all meshes into one array.
func mergeVertices(meshes []*scene.Mesh) []math.Vec3 {
	var out []math.Vec3
	for _, m := range meshes {
		out = append(out, m.Positions...)
	}
	return out
}

// padBuffers extends every buffer shorter than the longest one to that
// length, filling the tail with entries re-drawn from the same buffer. The
// original entries stay untouched in their original positions. A buffer
// with no entries at all is padded with zeros.
func padBuffers(buffers [][]math.Vec3, rng *rand.Rand) {
	maxLen := 0
	for _, b := range buffers {
		if len(b) > maxLen {
			maxLen = len(b)
		}
	}

	for i, b := range buffers {
		if len(b) == maxLen {
			continue
		}
		padded := make([]math.Vec3, maxLen)
		copy(padded, b)
		if len(b) > 0 {
			for k := len(b); k < maxLen; k++ {
				padded[k] = b[rng.Intn(len(b))]
			}
		}
		buffers[i] = padded
	}
}
