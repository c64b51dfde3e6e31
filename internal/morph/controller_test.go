package morph

import (
	"context"
	"testing"

	"github.com/lumenforge/pointmorph/internal/render"
	"github.com/lumenforge/pointmorph/internal/scene"
	"github.com/lumenforge/pointmorph/pkg/math"
)

// testSession builds a small sampling session with one triangle state per
// given X offset. An offset of -1 stands for an empty state.
func testSession(t *testing.T, count int, offsets ...float32) *Session {
	t.Helper()

	var states []StateInput
	for _, off := range offsets {
		if off < 0 {
			states = append(states, StateInput{Scene: &scene.Scene{}, Rule: scene.All()})
		} else {
			states = append(states, StateInput{Scene: triangleScene(off), Rule: scene.All()})
		}
	}

	s, err := NewSession(context.Background(), buildCfg(count), states)
	if err != nil {
		t.Fatalf("session build failed: %v", err)
	}
	return s
}

func TestMorphToOutOfRangeIsNoOp(t *testing.T) {
	c := NewController(testSession(t, 50, 0, 10), Transition{})

	c.MorphTo(5, Transition{Duration: 1})
	c.MorphTo(-1, Transition{Duration: 1})

	if c.CurrentIndex() != 0 {
		t.Errorf("current index = %d, want 0 after out-of-range morphs", c.CurrentIndex())
	}
	if c.Progress() != 0 {
		t.Errorf("progress = %v, want 0", c.Progress())
	}
	if c.Active() {
		t.Error("no transition should be active")
	}
}

func TestMorphToAdvancesAndCompletes(t *testing.T) {
	c := NewController(testSession(t, 50, 0, 10), Transition{})

	c.MorphTo(1, Transition{Duration: 1, Easing: Linear})
	if !c.Active() {
		t.Fatal("transition should be active after MorphTo")
	}

	c.Tick(0.5)
	if p := c.Progress(); p < 0.49 || p > 0.51 {
		t.Errorf("progress after half the duration = %v, want ~0.5", p)
	}
	if c.CurrentIndex() != 0 {
		t.Errorf("current index should remain 0 mid-transition, got %d", c.CurrentIndex())
	}

	c.Tick(0.6)
	if c.Active() {
		t.Error("transition should have completed")
	}
	if c.CurrentIndex() != 1 {
		t.Errorf("current index = %d, want 1 after completion", c.CurrentIndex())
	}
}

func TestMorphToEasedProgress(t *testing.T) {
	c := NewController(testSession(t, 50, 0, 10), Transition{})

	c.MorphTo(1, Transition{Duration: 2, Easing: CubicInOut})
	c.Tick(0.5) // t = 0.25
	want := CubicInOut(0.25)
	if p := c.Progress(); p < want-1e-4 || p > want+1e-4 {
		t.Errorf("eased progress = %v, want %v", p, want)
	}
}

func TestRetargetRestartsFromCurrentBuffer(t *testing.T) {
	s := testSession(t, 50, 0, 10, 20)
	c := NewController(s, Transition{})

	c.MorphTo(1, Transition{Duration: 1, Easing: Linear})
	c.Tick(0.5)

	// Retarget mid-flight: interpolation restarts from state 0's buffer,
	// not from the interpolated position, and progress resets.
	c.MorphTo(2, Transition{Duration: 1, Easing: Linear})

	f := c.Snapshot()
	if &f.Source[0] != &s.Buffer(0)[0] {
		t.Error("retarget should interpolate from the previous current buffer")
	}
	if &f.Target[0] != &s.Buffer(2)[0] {
		t.Error("retarget should interpolate toward the new target buffer")
	}
	if f.Progress != 0 {
		t.Errorf("retarget progress = %v, want 0", f.Progress)
	}
}

func TestSnapshotIdle(t *testing.T) {
	s := testSession(t, 50, 0, 10)
	c := NewController(s, Transition{})

	f := c.Snapshot()
	if &f.Source[0] != &f.Target[0] {
		t.Error("idle snapshot should return the same buffer as source and target")
	}
	if f.Progress != 0 {
		t.Errorf("idle progress = %v, want 0", f.Progress)
	}
	if len(f.Sizes) != 50 {
		t.Errorf("sizes length = %d, want 50", len(f.Sizes))
	}
}

func TestAutoCycleVisitsStatesInOrder(t *testing.T) {
	// Period 4s, 3 states, instant transitions: after 4s the current index
	// is 1, and by 12s the cycle has visited 1, 2, 0 in order.
	c := NewController(testSession(t, 20, 0, 10, 20), Transition{Duration: 0})
	c.SetAutoCycle(true, 4)

	var visited []int
	last := c.CurrentIndex()
	for i := 0; i < 12; i++ {
		c.Tick(1.0)
		if cur := c.CurrentIndex(); cur != last {
			visited = append(visited, cur)
			last = cur
		}
	}

	want := []int{1, 2, 0}
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("visited %v, want %v", visited, want)
		}
	}
}

func TestAutoCycleAdvanceAtPeriod(t *testing.T) {
	c := NewController(testSession(t, 20, 0, 10, 20), Transition{Duration: 0})
	c.SetAutoCycle(true, 4)

	c.Tick(3.9)
	if c.CurrentIndex() != 0 {
		t.Errorf("index advanced before the period elapsed, got %d", c.CurrentIndex())
	}
	c.Tick(0.2)
	if c.CurrentIndex() != 1 {
		t.Errorf("index = %d after 4.1s, want 1", c.CurrentIndex())
	}
}

func TestAutoCycleRequiresTwoStates(t *testing.T) {
	c := NewController(testSession(t, 20, 0), Transition{Duration: 0})
	c.SetAutoCycle(true, 1)

	for i := 0; i < 10; i++ {
		c.Tick(1.0)
	}
	if c.CurrentIndex() != 0 {
		t.Errorf("single-state session auto-cycled to %d", c.CurrentIndex())
	}
}

func TestReplaceSessionResets(t *testing.T) {
	c := NewController(testSession(t, 20, 0, 10), Transition{})
	c.MorphTo(1, Transition{Duration: 1, Easing: Linear})
	c.Tick(0.5)

	c.ReplaceSession(testSession(t, 20, 0, 10, 20))

	if c.CurrentIndex() != 0 {
		t.Errorf("current index = %d after session replace, want 0", c.CurrentIndex())
	}
	if c.Active() {
		t.Error("transition should be cancelled by session replace")
	}
}

func TestScenarioTriangleToEmptyState(t *testing.T) {
	// Two states, particle count 1000, sampling mode: state 0 is a single
	// triangle, state 1 is empty. The session builds, state 1's buffer is
	// 1000 zeros, and finishing a morph to state 1 publishes that zero
	// buffer as the target.
	s := testSession(t, 1000, 0, -1)

	if s.Length() != 1000 {
		t.Fatalf("session length = %d, want 1000", s.Length())
	}
	for i, p := range s.Buffer(1) {
		if p != (math.Vec3{}) {
			t.Fatalf("state 1 entry %d = %v, want zero", i, p)
		}
	}

	c := NewController(s, Transition{})
	sink := &render.NullSink{}
	pub := NewPublisher(sink, c)

	c.MorphTo(1, Transition{Duration: 1, Easing: Linear})
	c.Tick(1.0)

	if err := pub.Publish(); err != nil {
		t.Fatalf("publish failed: %v", err)
	}

	if len(sink.Target) != 1000 {
		t.Fatalf("published target length = %d, want 1000", len(sink.Target))
	}
	for i, p := range sink.Target {
		if p != (math.Vec3{}) {
			t.Fatalf("published target entry %d = %v, want zero", i, p)
		}
	}
}

func TestPublisherSkipsRedundantUploads(t *testing.T) {
	c := NewController(testSession(t, 50, 0, 10), Transition{})
	sink := &render.NullSink{}
	pub := NewPublisher(sink, c)

	if err := pub.Publish(); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if err := pub.Publish(); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if sink.Uploads != 1 {
		t.Errorf("uploads after two idle publishes = %d, want 1", sink.Uploads)
	}

	// A new transition changes the active buffers, forcing a re-upload,
	// and mid-transition ticks only move the progress uniform.
	c.MorphTo(1, Transition{Duration: 1, Easing: Linear})
	if err := pub.Publish(); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if sink.Uploads != 2 {
		t.Errorf("uploads after morph start = %d, want 2", sink.Uploads)
	}

	c.Tick(0.25)
	if err := pub.Publish(); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	if sink.Uploads != 2 {
		t.Errorf("uploads mid-transition = %d, want still 2", sink.Uploads)
	}
	if sink.Progress < 0.24 || sink.Progress > 0.26 {
		t.Errorf("published progress = %v, want ~0.25", sink.Progress)
	}
}

func TestPublisherForwardsUniforms(t *testing.T) {
	c := NewController(testSession(t, 10, 0), Transition{})
	sink := &render.NullSink{}
	pub := NewPublisher(sink, c)

	pub.SetColors([3]float32{1, 0, 0}, [3]float32{0, 0, 1})
	pub.SetSize(3.5)
	pub.UpdateResolution(800, 600, 2)

	if sink.ColorA != [3]float32{1, 0, 0} || sink.ColorB != [3]float32{0, 0, 1} {
		t.Errorf("colors = %v, %v", sink.ColorA, sink.ColorB)
	}
	if sink.PointSize != 3.5 {
		t.Errorf("point size = %v, want 3.5", sink.PointSize)
	}
	if sink.Width != 800 || sink.Height != 600 || sink.PixelRatio != 2 {
		t.Errorf("resolution = %dx%d@%v", sink.Width, sink.Height, sink.PixelRatio)
	}
}
