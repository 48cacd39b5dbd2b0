// Package animation advances the frame counter on a fixed clock and asks the
// active pattern which lights are on.
package animation

import (
	"context"
	"sync"
	"time"

	"go-lights/debug"
	"go-lights/pattern"
)

// DefaultInterval is the time between frames.
const DefaultInterval = 250 * time.Millisecond

// State is the driver's animation state.
type State struct {
	Step    int  `json:"step"`
	Playing bool `json:"playing"`
}

// Driver owns the step counter and the last computed frame. The tick loop
// and the UI setters may run on different goroutines; mu serializes them.
type Driver struct {
	mu       sync.Mutex
	interval time.Duration
	state    State
	bound    pattern.Bound
	total    int
	frame    []bool

	onFrame func() // called after every recomputation, without mu held
}

// NewDriver creates a driver that starts in the playing state.
func NewDriver(interval time.Duration) *Driver {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Driver{
		interval: interval,
		state:    State{Playing: true},
	}
}

// SetOnFrame sets the callback run after each new frame.
func (d *Driver) SetOnFrame(fn func()) {
	d.mu.Lock()
	d.onFrame = fn
	d.mu.Unlock()
}

// Interval returns the tick period.
func (d *Driver) Interval() time.Duration {
	return d.interval
}

// SetActivePattern binds a new pattern and restarts it at frame 0.
func (d *Driver) SetActivePattern(b pattern.Bound, total int) {
	d.mu.Lock()
	d.bound = b
	d.total = total
	d.state.Step = 0
	d.recompute()
	fn := d.onFrame
	d.mu.Unlock()

	debug.Log("driver", "active pattern set, total=%d", total)
	if fn != nil {
		fn()
	}
}

// Rebind swaps in the same pattern bound to a new grid shape. The step
// counter is kept.
func (d *Driver) Rebind(b pattern.Bound, total int) {
	d.mu.Lock()
	d.bound = b
	d.total = total
	d.recompute()
	step := d.state.Step
	fn := d.onFrame
	d.mu.Unlock()

	debug.Log("driver", "rebind total=%d step=%d", total, step)
	if fn != nil {
		fn()
	}
}

// SetPlaying starts or pauses the animation. Pausing keeps the last frame.
func (d *Driver) SetPlaying(playing bool) {
	d.mu.Lock()
	d.state.Playing = playing
	d.mu.Unlock()
}

// Tick advances one frame if playing. It returns true if a new frame was
// computed.
func (d *Driver) Tick() bool {
	d.mu.Lock()
	if !d.state.Playing || d.bound == nil {
		d.mu.Unlock()
		return false
	}
	d.state.Step++
	d.recompute()
	step := d.state.Step
	fn := d.onFrame
	d.mu.Unlock()

	debug.LogEvery(40, "tick", "step=%d", step)
	if fn != nil {
		fn()
	}
	return true
}

// recompute evaluates every light at the current step. Caller holds mu.
func (d *Driver) recompute() {
	if d.bound == nil {
		d.frame = d.frame[:0]
		return
	}
	if cap(d.frame) < d.total {
		d.frame = make([]bool, d.total)
	}
	d.frame = d.frame[:d.total]
	for i := range d.frame {
		d.frame[i] = d.bound.Evaluate(i, d.state.Step)
	}
}

// Run ticks until ctx is done. The ticker is stopped before Run returns.
func (d *Driver) Run(ctx context.Context) {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			debug.Log("driver", "stopped at step %d", d.State().Step)
			return
		case <-ticker.C:
			d.Tick()
		}
	}
}

// State returns a copy of the animation state.
func (d *Driver) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Frame returns a copy of the last computed on/off state, one per light.
func (d *Driver) Frame() []bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]bool, len(d.frame))
	copy(out, d.frame)
	return out
}
