package morph

import (
	"sync"

	"go.uber.org/zap"

	"github.com/lumenforge/pointmorph/internal/logger"
	"github.com/lumenforge/pointmorph/pkg/math"
)

// Transition describes one timed morph.
type Transition struct {
	// Duration in seconds. Zero or negative completes instantly.
	Duration float64
	// Easing curve, nil = linear.
	Easing Easing
}

// Frame is a snapshot of what the renderer should interpolate this frame.
// Epoch changes whenever Source or Target refer to different buffers, so a
// publisher can skip re-uploads while only Progress moves.
type Frame struct {
	Source   []math.Vec3
	Target   []math.Vec3
	Sizes    []float32
	Progress float32
	Epoch    uint64
}

// Controller is the morph state machine: a current state index, a pending
// target, and an eased progress value in [0,1]. All methods are safe to
// call from multiple goroutines; internally everything is serialized on one
// mutex, matching the single-logical-thread model of the pipeline.
type Controller struct {
	mu sync.Mutex

	session *Session

	current  int
	target   int
	active   bool
	elapsed  float64
	progress float32
	duration float64
	easing   Easing
	epoch    uint64

	defaultTransition Transition

	cycleEnabled bool
	cyclePeriod  float64
	cycleElapsed float64
	cycleNext    int
}

// NewController creates a controller at state 0 of the given session.
func NewController(session *Session, defaultTransition Transition) *Controller {
	return &Controller{
		session:           session,
		defaultTransition: defaultTransition,
		cycleNext:         1,
	}
}

// MorphTo starts a timed transition from the current state to target.
// An index with no corresponding state buffer is a silent no-op.
//
// Retargeting while a transition is in flight restarts interpolation from
// the previous current buffer, not from the live interpolated position, so
// a retarget shows a visible position jump. That is the documented
// behavior, kept intentionally simple.
func (c *Controller) MorphTo(target int, tr Transition) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.morphToLocked(target, tr)
}

func (c *Controller) morphToLocked(target int, tr Transition) {
	if target < 0 || target >= c.session.StateCount() {
		logger.Debug("morph target out of range, ignoring", zap.Int("target", target))
		return
	}

	if tr.Easing == nil {
		tr.Easing = Linear
	}

	if tr.Duration <= 0 {
		c.current = target
		c.active = false
		c.progress = 0
		c.epoch++
		return
	}

	c.target = target
	c.active = true
	c.elapsed = 0
	c.progress = 0
	c.duration = tr.Duration
	c.easing = tr.Easing
	c.epoch++

	logger.Debug("morph started",
		zap.Int("from", c.current),
		zap.Int("to", target),
		zap.Float64("duration", tr.Duration),
	)
}

// Tick advances the transition and the auto-cycle timer by dt seconds.
// It is the non-blocking per-frame advance; call it from the frame loop.
func (c *Controller) Tick(dt float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.active {
		c.elapsed += dt
		t := c.elapsed / c.duration
		if t >= 1 {
			c.current = c.target
			c.active = false
			c.progress = 0
			c.epoch++
		} else {
			c.progress = c.easing(float32(t))
		}
	}

	if c.cycleEnabled && c.session.StateCount() >= 2 {
		c.cycleElapsed += dt
		for c.cycleElapsed >= c.cyclePeriod {
			c.cycleElapsed -= c.cyclePeriod
			next := c.cycleNext
			c.cycleNext = (next + 1) % c.session.StateCount()
			c.morphToLocked(next, c.defaultTransition)
		}
	}
}

// SetAutoCycle enables or disables timed advancement through the states in
// sequence, starting from index 1 and wrapping. Period is in seconds.
func (c *Controller) SetAutoCycle(enabled bool, period float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if period <= 0 {
		enabled = false
	}
	c.cycleEnabled = enabled
	c.cyclePeriod = period
	c.cycleElapsed = 0
}

// ReplaceSession swaps in a freshly rebuilt session and resets the state
// machine to state 0, cancelling any transition in flight.
func (c *Controller) ReplaceSession(session *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.session = session
	c.current = 0
	c.target = 0
	c.active = false
	c.progress = 0
	c.elapsed = 0
	c.cycleElapsed = 0
	c.cycleNext = 1
	c.epoch++
}

// Snapshot returns the buffers and progress the renderer needs this frame.
// Outside a transition, source and target both point at the current state's
// buffer with progress 0.
func (c *Controller) Snapshot() Frame {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session.StateCount() == 0 {
		return Frame{Epoch: c.epoch}
	}

	f := Frame{
		Source: c.session.Buffer(c.current),
		Sizes:  c.session.Sizes(),
		Epoch:  c.epoch,
	}
	if c.active {
		f.Target = c.session.Buffer(c.target)
		f.Progress = c.progress
	} else {
		f.Target = f.Source
	}
	return f
}

// CurrentIndex returns the current state index.
func (c *Controller) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// StateCount returns the number of states in the active session.
func (c *Controller) StateCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session.StateCount()
}

// Progress returns the current eased progress value.
func (c *Controller) Progress() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.progress
}

// Active reports whether a transition is in flight.
func (c *Controller) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}
