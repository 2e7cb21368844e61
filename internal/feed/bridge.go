package feed

import (
	"github.com/jwulff/strata/internal/log"
	"github.com/jwulff/strata/internal/motion"
	"github.com/jwulff/strata/internal/timeline"
)

// Bind publishes state's period and event notifications until the returned
// function is called. Publish failures are logged, not returned, since
// notifications fire inside SetCurrentTime.
func (p *Publisher) Bind(state *timeline.State) (unbind func()) {
	return state.AddListener(&stateListener{p: p, state: state})
}

type stateListener struct {
	p     *Publisher
	state *timeline.State
}

func (l *stateListener) PeriodChanged(index int) {
	n := Notification{Event: EventPeriodChanged, Index: IntPtr(index)}
	if period, ok := l.state.Period(index); ok {
		n.Name = period.Name
		n.Time = FloatPtr(period.Begin)
	}
	l.p.publishOrLog(n)
}

func (l *stateListener) EventReached(index int) {
	n := Notification{Event: EventReached, Index: IntPtr(index)}
	if ev, ok := l.state.Event(index); ok {
		n.Name = ev.Title
		n.Time = FloatPtr(ev.Time)
	}
	l.p.publishOrLog(n)
}

// MotionStarted reports a new indicator motion.
func (p *Publisher) MotionStarted(dir motion.Direction, target float64) {
	p.publishOrLog(Notification{
		Event:     EventMotionStarted,
		Direction: dir.String(),
		Time:      FloatPtr(target),
	})
}

// MotionFinished reports that the indicator reached its target.
func (p *Publisher) MotionFinished(value float64) {
	p.publishOrLog(Notification{Event: EventMotionFinished, Time: FloatPtr(value)})
}

// CatalogLoaded reports a new periods/events snapshot.
func (p *Publisher) CatalogLoaded(periods, events int) {
	p.publishOrLog(Notification{
		Event:   EventCatalogLoaded,
		Periods: IntPtr(periods),
		Events:  IntPtr(events),
	})
}

func (p *Publisher) publishOrLog(n Notification) {
	if err := p.Publish(n); err != nil {
		log.Warnw("publish notification failed", "event", n.Event, "error", err)
	}
}
