package timeline

import (
	"errors"
	"math"
	"testing"
)

// recorder captures notifications in the order they fire.
type recorder struct {
	log []string
	idx []int
}

func (r *recorder) PeriodChanged(i int) {
	r.log = append(r.log, "period")
	r.idx = append(r.idx, i)
}

func (r *recorder) EventReached(i int) {
	r.log = append(r.log, "event")
	r.idx = append(r.idx, i)
}

func (r *recorder) reset() {
	r.log = nil
	r.idx = nil
}

func scenarioPeriods() []Period {
	return []Period{
		{Name: "A", Begin: 0, End: 100},
		{Name: "B", Begin: 100, End: 300},
		{Name: "C", Begin: 300, End: 600},
	}
}

func newAttached(t *testing.T, periods []Period, events []HistoricalEvent) (*State, *recorder) {
	t.Helper()
	s := New()
	if err := s.AttachPeriods(periods); err != nil {
		t.Fatalf("AttachPeriods: %v", err)
	}
	if err := s.AttachEvents(events); err != nil {
		t.Fatalf("AttachEvents: %v", err)
	}
	r := &recorder{}
	s.AddListener(r)
	return s, r
}

func TestNewState(t *testing.T) {
	s := New()
	if s.Attached() {
		t.Error("new state should not be attached")
	}
	if s.HistoryLength() != DefaultHistoryLength {
		t.Errorf("historyLength = %v, want %v", s.HistoryLength(), DefaultHistoryLength)
	}
	if s.LastEvent() != NoEvent {
		t.Errorf("lastEvent = %d, want %d", s.LastEvent(), NoEvent)
	}
}

func TestAttachPeriods(t *testing.T) {
	s := New()
	periods := []Period{
		{Name: "X", Begin: 50, End: 150},
		{Name: "Y", Begin: 150, End: 450},
	}
	if err := s.AttachPeriods(periods); err != nil {
		t.Fatalf("AttachPeriods: %v", err)
	}
	if s.HistoryBegin() != 50 {
		t.Errorf("historyBegin = %v, want 50", s.HistoryBegin())
	}
	if s.HistoryLength() != 400 {
		t.Errorf("historyLength = %v, want 400", s.HistoryLength())
	}
	if s.CurrentTime() != 50 {
		t.Errorf("currentTime = %v, want 50", s.CurrentTime())
	}
	if s.CurrentPeriod() != 0 {
		t.Errorf("currentPeriod = %d, want 0", s.CurrentPeriod())
	}

	// The snapshot is a copy.
	periods[0].Name = "changed"
	if p, _ := s.Period(0); p.Name != "X" {
		t.Errorf("period 0 name = %q, want X", p.Name)
	}
}

func TestAttachPeriodsResetsPosition(t *testing.T) {
	s, _ := newAttached(t, scenarioPeriods(), nil)
	s.SetCurrentTime(50)
	s.SetCurrentTime(150)
	if s.CurrentPeriod() != 1 {
		t.Fatalf("currentPeriod = %d, want 1", s.CurrentPeriod())
	}

	if err := s.AttachPeriods(scenarioPeriods()); err != nil {
		t.Fatalf("AttachPeriods: %v", err)
	}
	if s.CurrentPeriod() != 0 || s.CurrentTime() != 0 {
		t.Errorf("after reattach period=%d time=%v, want 0 and 0", s.CurrentPeriod(), s.CurrentTime())
	}
}

func TestAttachPeriodsInvalid(t *testing.T) {
	tests := []struct {
		name    string
		periods []Period
		want    error
	}{
		{"empty", nil, ErrInvalidPeriodData},
		{"gap", []Period{{Name: "A", Begin: 0, End: 10}, {Name: "B", Begin: 20, End: 30}}, ErrInvalidPeriodData},
		{"unordered", []Period{{Name: "B", Begin: 10, End: 20}, {Name: "A", Begin: 0, End: 10}}, ErrInvalidPeriodData},
		{"reversed", []Period{{Name: "A", Begin: 10, End: 0}}, ErrInvalidPeriodData},
		{"zero length", []Period{{Name: "A", Begin: 5, End: 5}}, ErrDegenerateHistory},
		{"nan end", []Period{{Name: "A", Begin: 0, End: math.NaN()}}, ErrInvalidPeriodData},
		{"nan begin", []Period{{Name: "A", Begin: math.NaN(), End: 10}}, ErrInvalidPeriodData},
		{"inf end", []Period{{Name: "A", Begin: 0, End: math.Inf(1)}}, ErrInvalidPeriodData},
		{"negative inf begin", []Period{{Name: "A", Begin: math.Inf(-1), End: 0}}, ErrInvalidPeriodData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := newAttached(t, scenarioPeriods(), nil)
			err := s.AttachPeriods(tt.periods)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			// Previous snapshot retained.
			if len(s.Periods()) != 3 {
				t.Errorf("periods = %d, want 3", len(s.Periods()))
			}
			if s.HistoryLength() != 600 {
				t.Errorf("historyLength = %v, want 600", s.HistoryLength())
			}
		})
	}
}

func TestAttachEventsUnordered(t *testing.T) {
	s := New()
	err := s.AttachEvents([]HistoricalEvent{{Time: 10}, {Time: 5}})
	if !errors.Is(err, ErrInvalidEventData) {
		t.Fatalf("err = %v, want ErrInvalidEventData", err)
	}
}

func TestAttachEventsRepositions(t *testing.T) {
	s, r := newAttached(t, scenarioPeriods(), nil)
	s.SetCurrentTime(50)
	s.SetCurrentTime(250)
	r.reset()

	if err := s.AttachEvents([]HistoricalEvent{{Time: 10}, {Time: 200}, {Time: 253}, {Time: 400}}); err != nil {
		t.Fatalf("AttachEvents: %v", err)
	}
	// tolerance is 6, so 253 already counts as reached at 250.
	if s.LastEvent() != 2 {
		t.Errorf("lastEvent = %d, want 2", s.LastEvent())
	}
	if len(r.log) != 0 {
		t.Errorf("attach fired notifications: %v", r.log)
	}
}

func TestScenario(t *testing.T) {
	s, r := newAttached(t, scenarioPeriods(), []HistoricalEvent{{Time: 50}, {Time: 400}})

	if s.LastEvent() != NoEvent {
		t.Fatalf("lastEvent = %d, want NoEvent", s.LastEvent())
	}
	if s.Tolerance() != 6 {
		t.Fatalf("tolerance = %v, want 6", s.Tolerance())
	}

	s.SetCurrentTime(120)
	if s.CurrentPeriod() != 1 {
		t.Errorf("currentPeriod = %d, want 1", s.CurrentPeriod())
	}
	if len(r.log) == 0 || r.log[0] != "period" || r.idx[0] != 1 {
		t.Fatalf("first notification = %v %v, want period 1", r.log, r.idx)
	}
	if p, _ := s.Period(s.CurrentPeriod()); p.Name != "B" {
		t.Errorf("current period = %q, want B", p.Name)
	}

	s.SetCurrentTime(45)
	r.reset()
	for tm := 46.0; tm <= 395; tm++ {
		s.SetCurrentTime(tm)
	}

	var reached1 int
	for i, kind := range r.log {
		if kind == "event" && r.idx[i] == 1 {
			reached1++
		}
	}
	if reached1 != 1 {
		t.Errorf("eventReached(1) fired %d times, want 1", reached1)
	}
	if s.LastEvent() != 1 {
		t.Errorf("lastEvent = %d, want 1", s.LastEvent())
	}
}

func TestEventReachedEnteringWindow(t *testing.T) {
	s, r := newAttached(t, scenarioPeriods(), []HistoricalEvent{{Time: 50}, {Time: 400}})
	s.SetCurrentTime(50)
	s.SetCurrentTime(100)
	r.reset()

	s.SetCurrentTime(393)
	if len(r.log) != 1 || r.log[0] != "period" {
		t.Fatalf("at 393 got %v, want only the period change", r.log)
	}
	s.SetCurrentTime(394)
	if len(r.log) != 2 || r.log[1] != "event" || r.idx[1] != 1 {
		t.Fatalf("at 394 got %v %v, want event 1", r.log, r.idx)
	}
}

func TestMonotonePeriodTracking(t *testing.T) {
	periods := []Period{
		{Name: "P0", Begin: 0, End: 10},
		{Name: "P1", Begin: 10, End: 20},
		{Name: "P2", Begin: 20, End: 30},
		{Name: "P3", Begin: 30, End: 40},
	}
	s, r := newAttached(t, periods, nil)

	for _, tm := range []float64{5, 15, 25, 35} {
		s.SetCurrentTime(tm)
	}

	want := []int{1, 2, 3}
	if len(r.idx) != len(want) {
		t.Fatalf("notifications = %v, want %v", r.idx, want)
	}
	for i := range want {
		if r.idx[i] != want[i] || r.log[i] != "period" {
			t.Errorf("notification %d = %s %d, want period %d", i, r.log[i], r.idx[i], want[i])
		}
	}
	if s.CurrentPeriod() != 3 {
		t.Errorf("currentPeriod = %d, want 3", s.CurrentPeriod())
	}
}

func TestPeriodSymmetry(t *testing.T) {
	s, r := newAttached(t, scenarioPeriods(), nil)
	s.SetCurrentTime(90)
	start := s.CurrentPeriod()

	s.SetCurrentTime(110)
	s.SetCurrentTime(90)

	if s.CurrentPeriod() != start {
		t.Errorf("currentPeriod = %d, want %d", s.CurrentPeriod(), start)
	}
	if len(r.idx) != 2 || r.idx[0] != 1 || r.idx[1] != 0 {
		t.Errorf("notifications = %v, want [1 0]", r.idx)
	}
}

func TestPeriodBoundaryIsExclusiveEnd(t *testing.T) {
	s, r := newAttached(t, scenarioPeriods(), nil)
	s.SetCurrentTime(100)
	if s.CurrentPeriod() != 1 || len(r.idx) != 1 {
		t.Errorf("at 100 currentPeriod = %d notifications = %v, want 1 and one notification", s.CurrentPeriod(), r.idx)
	}
	s.SetCurrentTime(100)
	if len(r.idx) != 1 {
		t.Errorf("repeat time fired %v", r.idx)
	}
}

func TestMultiPeriodJump(t *testing.T) {
	s, r := newAttached(t, scenarioPeriods(), nil)

	s.SetCurrentTime(599)
	if s.CurrentPeriod() != 2 {
		t.Errorf("currentPeriod = %d, want 2", s.CurrentPeriod())
	}
	if len(r.idx) != 2 || r.idx[0] != 1 || r.idx[1] != 2 {
		t.Errorf("forward notifications = %v, want [1 2]", r.idx)
	}

	r.reset()
	s.SetCurrentTime(0)
	if s.CurrentPeriod() != 0 {
		t.Errorf("currentPeriod = %d, want 0", s.CurrentPeriod())
	}
	if len(r.idx) != 2 || r.idx[0] != 1 || r.idx[1] != 0 {
		t.Errorf("backward notifications = %v, want [1 0]", r.idx)
	}
}

func TestPeriodBeforeEventOrdering(t *testing.T) {
	s, r := newAttached(t, scenarioPeriods(), []HistoricalEvent{{Time: 101}})
	s.SetCurrentTime(100)
	if len(r.log) != 2 || r.log[0] != "period" || r.log[1] != "event" {
		t.Errorf("order = %v, want [period event]", r.log)
	}
}

func TestEventToleranceWindow(t *testing.T) {
	s, r := newAttached(t, []Period{{Name: "all", Begin: 0, End: 1000}}, []HistoricalEvent{{Time: 500}})
	if s.Tolerance() != 10 {
		t.Fatalf("tolerance = %v, want 10", s.Tolerance())
	}

	s.SetCurrentTime(489)
	if len(r.log) != 0 {
		t.Fatalf("at 489 got %v, want nothing", r.log)
	}
	s.SetCurrentTime(495)
	s.SetCurrentTime(505)
	if len(r.log) != 1 || r.idx[0] != 0 {
		t.Fatalf("notifications = %v %v, want one event 0", r.log, r.idx)
	}

	// Oscillating inside the window does not re-trigger.
	for _, tm := range []float64{498, 503, 496, 509, 491} {
		s.SetCurrentTime(tm)
	}
	if len(r.log) != 1 {
		t.Errorf("oscillation fired %d notifications, want 1", len(r.log))
	}
}

func TestEventBackward(t *testing.T) {
	events := []HistoricalEvent{{Time: 100}, {Time: 300}, {Time: 500}}
	s, r := newAttached(t, []Period{{Name: "all", Begin: 0, End: 1000}}, events)
	s.SetCurrentTime(600)
	if s.LastEvent() != 2 {
		t.Fatalf("lastEvent = %d, want 2", s.LastEvent())
	}
	r.reset()

	s.SetCurrentTime(320)
	if len(r.idx) != 0 {
		t.Errorf("at 320 got %v, want nothing", r.idx)
	}
	s.SetCurrentTime(305)
	if len(r.idx) != 1 || r.idx[0] != 1 {
		t.Errorf("at 305 got %v, want [1]", r.idx)
	}
	s.SetCurrentTime(0)
	if s.LastEvent() != 0 {
		t.Errorf("lastEvent = %d, want 0", s.LastEvent())
	}
	if len(r.idx) != 2 || r.idx[1] != 0 {
		t.Errorf("notifications = %v, want [1 0]", r.idx)
	}
}

func TestOccurredWithinTolerance(t *testing.T) {
	s, _ := newAttached(t, []Period{{Name: "all", Begin: 0, End: 1000}}, nil)
	tests := []struct {
		occ, t float64
		want   bool
	}{
		{500, 490, true},
		{500, 510, true},
		{500, 489.9, false},
		{500, 510.1, false},
		{500, 500, true},
	}
	for _, tt := range tests {
		if got := s.OccurredWithinTolerance(tt.occ, tt.t); got != tt.want {
			t.Errorf("OccurredWithinTolerance(%v, %v) = %v, want %v", tt.occ, tt.t, got, tt.want)
		}
	}
}

func TestOutOfRangeTimeAccepted(t *testing.T) {
	s, r := newAttached(t, scenarioPeriods(), []HistoricalEvent{{Time: 50}})
	s.SetCurrentTime(-100)
	if s.CurrentTime() != -100 {
		t.Errorf("currentTime = %v, want -100", s.CurrentTime())
	}
	if s.CurrentPeriod() != 0 || len(r.log) != 0 {
		t.Errorf("period = %d notifications = %v, want 0 and none", s.CurrentPeriod(), r.log)
	}

	s.SetCurrentTime(10000)
	if s.CurrentPeriod() != 2 {
		t.Errorf("currentPeriod = %d, want 2", s.CurrentPeriod())
	}
}

func TestFraction(t *testing.T) {
	s, _ := newAttached(t, scenarioPeriods(), nil)
	if got := s.Fraction(s.HistoryLength()); got != 1.0 {
		t.Errorf("Fraction(length) = %v, want 1", got)
	}
	if got := s.Fraction(0); got != 0 {
		t.Errorf("Fraction(0) = %v, want 0", got)
	}
	s.SetCurrentTime(150)
	if got := s.CurrentFraction(); got != 0.25 {
		t.Errorf("CurrentFraction = %v, want 0.25", got)
	}
}

func TestFractionIgnoresHistoryBegin(t *testing.T) {
	s, _ := newAttached(t, []Period{{Name: "A", Begin: 100, End: 300}}, nil)
	if got := s.Fraction(100); got != 0.5 {
		t.Errorf("Fraction(100) = %v, want 0.5", got)
	}
}

func TestRemoveListener(t *testing.T) {
	s := New()
	if err := s.AttachPeriods(scenarioPeriods()); err != nil {
		t.Fatalf("AttachPeriods: %v", err)
	}
	var calls int
	remove := s.AddListener(ListenerFuncs{OnPeriodChanged: func(int) { calls++ }})
	s.SetCurrentTime(150)
	remove()
	s.SetCurrentTime(50)
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestPeriodPredicates(t *testing.T) {
	p := Period{Begin: 10, End: 20}
	if !p.Before(20) || p.Before(19.9) {
		t.Error("Before should hold from End onward")
	}
	if !p.After(9.9) || p.After(10) {
		t.Error("After should hold strictly below Begin")
	}
	if !p.Contains(10) || p.Contains(20) {
		t.Error("Contains should be [Begin, End)")
	}
}

func TestRGBHex(t *testing.T) {
	c := RGB{R: 0xff, G: 0x08, B: 0x00}
	if c.Hex() != "#ff0800" {
		t.Errorf("Hex = %q, want #ff0800", c.Hex())
	}
}
