// Package motion animates the timeline's position indicator toward either end
// of history. The controller only produces values; the caller feeds them into
// the timeline state.
package motion

import (
	"context"
	"math"
	"time"

	"github.com/jwulff/strata/internal/timeline"
)

// BaseDuration is how long a sweep across the whole history takes.
const BaseDuration = 6000 * time.Millisecond

// ErrDegenerateHistory is returned by SetHistory for a length that is not
// positive and finite.
var ErrDegenerateHistory = timeline.ErrDegenerateHistory

// Direction is the logical direction of the current motion.
type Direction int

const (
	Idle Direction = iota
	TowardStart
	TowardEnd
)

func (d Direction) String() string {
	switch d {
	case TowardStart:
		return "toward-start"
	case TowardEnd:
		return "toward-end"
	default:
		return "idle"
	}
}

// Duration scales base by the fraction of history between from and to.
func Duration(base time.Duration, from, to, length float64) time.Duration {
	if length <= 0 {
		return 0
	}
	return time.Duration(float64(base) * math.Abs(from-to) / length)
}

// Controller drives a scalar from its current value to a target over a
// duration proportional to the distance travelled.
type Controller struct {
	clock  Clock
	easing Easing
	base   time.Duration

	historyBegin  float64
	historyLength float64

	value     float64
	from      float64
	target    float64
	duration  time.Duration
	startedAt time.Time
	direction Direction
	running   bool

	// gen changes on every start and stop so a callback that restarts or
	// stops the motion suppresses the rest of the tick.
	gen uint64

	onValue    func(float64)
	onFinished func()
}

// Option configures a Controller.
type Option func(*Controller)

func WithClock(c Clock) Option { return func(ctl *Controller) { ctl.clock = c } }

func WithEasing(e Easing) Option { return func(ctl *Controller) { ctl.easing = e } }

func WithBaseDuration(d time.Duration) Option { return func(ctl *Controller) { ctl.base = d } }

// OnValue registers the consumer of per-tick values.
func OnValue(fn func(float64)) Option { return func(ctl *Controller) { ctl.onValue = fn } }

// OnFinished registers the natural-completion callback.
func OnFinished(fn func()) Option { return func(ctl *Controller) { ctl.onFinished = fn } }

// New creates an idle controller.
func New(opts ...Option) *Controller {
	c := &Controller{
		clock:         SystemClock{},
		easing:        EaseInOutQuad,
		base:          BaseDuration,
		historyLength: timeline.DefaultHistoryLength,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetHistory sets the range MoveToStart and MoveToEnd travel to.
func (c *Controller) SetHistory(begin, length float64) error {
	if !(length > 0) || math.IsInf(length, 0) {
		return ErrDegenerateHistory
	}
	c.historyBegin = begin
	c.historyLength = length
	return nil
}

// SetValue moves the indicator without animating, e.g. after an external seek.
func (c *Controller) SetValue(v float64) {
	c.value = v
}

// MoveToward starts a motion to target. If a motion in the same direction is
// already running the call does nothing and returns false.
func (c *Controller) MoveToward(target float64, dir Direction) bool {
	if dir == Idle {
		c.Stop()
		return false
	}
	if c.running && c.direction == dir {
		return false
	}

	c.gen++
	c.from = c.value
	c.target = target
	c.duration = Duration(c.base, c.value, target, c.historyLength)
	c.startedAt = c.clock.Now()
	c.direction = dir
	c.running = true
	return true
}

// MoveToStart animates toward the beginning of history.
func (c *Controller) MoveToStart() bool {
	return c.MoveToward(c.historyBegin, TowardStart)
}

// MoveToEnd animates toward the history length. The target is the length
// itself, not begin+length, matching the bar's fraction mapping.
func (c *Controller) MoveToEnd() bool {
	return c.MoveToward(c.historyLength, TowardEnd)
}

// Stop cancels any motion without a completion notification.
func (c *Controller) Stop() {
	c.gen++
	c.running = false
	c.direction = Idle
}

// Tick advances the motion to now and emits the new value. On the tick that
// reaches the target the controller goes idle and OnFinished fires once.
func (c *Controller) Tick(now time.Time) {
	if !c.running {
		return
	}
	gen := c.gen

	elapsed := now.Sub(c.startedAt)
	if elapsed >= c.duration {
		c.running = false
		c.direction = Idle
		c.value = c.target
		c.emit(c.target)
		if c.gen == gen && !c.running && c.onFinished != nil {
			c.onFinished()
		}
		return
	}

	p := float64(elapsed) / float64(c.duration)
	if p < 0 {
		p = 0
	}
	c.value = c.from + (c.target-c.from)*c.easing(p)
	c.emit(c.value)
}

func (c *Controller) emit(v float64) {
	if c.onValue != nil {
		c.onValue(v)
	}
}

func (c *Controller) Direction() Direction    { return c.direction }
func (c *Controller) Value() float64          { return c.value }
func (c *Controller) Target() float64         { return c.target }
func (c *Controller) Duration() time.Duration { return c.duration }
func (c *Controller) Running() bool           { return c.running }

// Run ticks c every interval until the motion ends or ctx is done. A
// cancelled context stops the motion.
func Run(ctx context.Context, c *Controller, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for c.Running() {
		select {
		case <-ctx.Done():
			c.Stop()
			return ctx.Err()
		case <-ticker.C:
			c.Tick(c.clock.Now())
		}
	}
	return nil
}

// Generation identifies the current motion; it changes on every start and stop.
func (c *Controller) Generation() uint64 { return c.gen }
