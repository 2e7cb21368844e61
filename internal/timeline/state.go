package timeline

import (
	"fmt"
	"math"
)

const (
	// DefaultHistoryLength is used until periods are attached.
	DefaultHistoryLength = 400

	// NoEvent is the event index before any event has been reached.
	NoEvent = -1

	// tolerance is historyLength / toleranceDivisor.
	toleranceDivisor = 100
)

// State is the timeline's position and the period/event snapshots it moves
// through. It is not safe for concurrent use; all calls are expected to come
// from the UI loop.
type State struct {
	periods []Period
	events  []HistoricalEvent

	historyBegin  float64
	historyLength float64

	currentTime   float64
	currentPeriod int
	lastEvent     int

	listeners []listenerEntry
	nextID    int
}

// New returns an unattached State.
func New() *State {
	return &State{
		historyLength: DefaultHistoryLength,
		lastEvent:     NoEvent,
	}
}

// AttachPeriods replaces the period snapshot and rewinds to the start of
// history. Periods must be non-empty, ascending and contiguous. On error the
// previous snapshot is kept.
func (s *State) AttachPeriods(periods []Period) error {
	if err := validatePeriods(periods); err != nil {
		return err
	}

	s.periods = append([]Period(nil), periods...)
	s.historyBegin = s.periods[0].Begin
	s.historyLength = s.periods[len(s.periods)-1].End - s.historyBegin
	s.currentTime = s.historyBegin
	s.currentPeriod = 0
	s.repositionEvents()
	return nil
}

// AttachEvents replaces the event snapshot. The event index is placed on the
// last event already reached at the current time; no notifications fire.
func (s *State) AttachEvents(events []HistoricalEvent) error {
	for i := 1; i < len(events); i++ {
		if events[i].Time < events[i-1].Time {
			return fmt.Errorf("%w: event %d (%q) at %g precedes event %d at %g",
				ErrInvalidEventData, i, events[i].Title, events[i].Time, i-1, events[i-1].Time)
		}
	}

	s.events = append([]HistoricalEvent(nil), events...)
	s.repositionEvents()
	return nil
}

func (s *State) repositionEvents() {
	s.lastEvent = NoEvent
	limit := s.currentTime + s.Tolerance()
	for i, e := range s.events {
		if e.Time > limit {
			break
		}
		s.lastEvent = i
	}
}

func validatePeriods(periods []Period) error {
	if len(periods) == 0 {
		return fmt.Errorf("%w: no periods", ErrInvalidPeriodData)
	}
	for i, p := range periods {
		if !finite(p.Begin) || !finite(p.End) {
			return fmt.Errorf("%w: period %q has a non-finite bound [%g, %g]",
				ErrInvalidPeriodData, p.Name, p.Begin, p.End)
		}
		if p.End < p.Begin {
			return fmt.Errorf("%w: period %q ends at %g before it begins at %g",
				ErrInvalidPeriodData, p.Name, p.End, p.Begin)
		}
		if i > 0 && p.Begin != periods[i-1].End {
			return fmt.Errorf("%w: period %q begins at %g but %q ends at %g",
				ErrInvalidPeriodData, p.Name, p.Begin, periods[i-1].Name, periods[i-1].End)
		}
	}
	if length := periods[len(periods)-1].End - periods[0].Begin; !(length > 0) || math.IsInf(length, 0) {
		return ErrDegenerateHistory
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SetCurrentTime moves the timeline to t. Crossed period boundaries are
// reported first, then reached events, then t is committed. Each crossing
// is reported separately, so a jump over several periods or events notifies
// once per step in order.
func (s *State) SetCurrentTime(t float64) {
	s.checkPeriod(t)
	s.checkEvents(t)
	s.currentTime = t
}

func (s *State) checkPeriod(t float64) {
	if len(s.periods) == 0 {
		return
	}
	switch {
	case t > s.currentTime:
		for s.currentPeriod < len(s.periods)-1 && s.periods[s.currentPeriod].Before(t) {
			s.currentPeriod++
			s.notifyPeriod(s.currentPeriod)
		}
	case t < s.currentTime:
		for s.currentPeriod > 0 && s.periods[s.currentPeriod].After(t) {
			s.currentPeriod--
			s.notifyPeriod(s.currentPeriod)
		}
	}
}

func (s *State) checkEvents(t float64) {
	tol := s.Tolerance()
	switch {
	case t > s.currentTime:
		for s.lastEvent < len(s.events)-1 && s.events[s.lastEvent+1].Time <= t+tol {
			s.lastEvent++
			s.notifyEvent(s.lastEvent)
		}
	case t < s.currentTime:
		for s.lastEvent > 0 && s.events[s.lastEvent-1].Time >= t-tol {
			s.lastEvent--
			s.notifyEvent(s.lastEvent)
		}
	}
}

// OccurredWithinTolerance reports whether t lies within one percent of the
// history length of occurrence.
func (s *State) OccurredWithinTolerance(occurrence, t float64) bool {
	return math.Abs(t-occurrence) <= s.Tolerance()
}

// Tolerance is the event matching window, one percent of history.
func (s *State) Tolerance() float64 {
	return s.historyLength / toleranceDivisor
}

// Fraction maps t onto the bar as t / historyLength. The history begin time
// is not subtracted, so the mapping is only exact for histories starting at 0.
func (s *State) Fraction(t float64) float64 {
	return t / s.historyLength
}

// CurrentFraction is Fraction(CurrentTime()).
func (s *State) CurrentFraction() float64 {
	return s.Fraction(s.currentTime)
}

// Periods returns a copy of the period snapshot.
func (s *State) Periods() []Period {
	return append([]Period(nil), s.periods...)
}

// Events returns a copy of the event snapshot.
func (s *State) Events() []HistoricalEvent {
	return append([]HistoricalEvent(nil), s.events...)
}

// Attached reports whether periods have been attached.
func (s *State) Attached() bool { return len(s.periods) > 0 }

func (s *State) CurrentTime() float64   { return s.currentTime }
func (s *State) CurrentPeriod() int     { return s.currentPeriod }
func (s *State) LastEvent() int         { return s.lastEvent }
func (s *State) HistoryBegin() float64  { return s.historyBegin }
func (s *State) HistoryLength() float64 { return s.historyLength }

// Period returns the period at index i.
func (s *State) Period(i int) (Period, bool) {
	if i < 0 || i >= len(s.periods) {
		return Period{}, false
	}
	return s.periods[i], true
}

// Event returns the event at index i.
func (s *State) Event(i int) (HistoricalEvent, bool) {
	if i < 0 || i >= len(s.events) {
		return HistoricalEvent{}, false
	}
	return s.events[i], true
}
