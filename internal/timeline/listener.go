package timeline

// Listener receives notifications synchronously from SetCurrentTime.
type Listener interface {
	PeriodChanged(index int)
	EventReached(index int)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	OnPeriodChanged func(index int)
	OnEventReached  func(index int)
}

func (f ListenerFuncs) PeriodChanged(index int) {
	if f.OnPeriodChanged != nil {
		f.OnPeriodChanged(index)
	}
}

func (f ListenerFuncs) EventReached(index int) {
	if f.OnEventReached != nil {
		f.OnEventReached(index)
	}
}

type listenerEntry struct {
	id int
	l  Listener
}

// AddListener registers l and returns a function that removes it.
func (s *State) AddListener(l Listener) (remove func()) {
	id := s.nextID
	s.nextID++
	s.listeners = append(s.listeners, listenerEntry{id: id, l: l})
	return func() {
		for i, e := range s.listeners {
			if e.id == id {
				s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
				return
			}
		}
	}
}

func (s *State) notifyPeriod(index int) {
	for _, e := range s.listeners {
		e.l.PeriodChanged(index)
	}
}

func (s *State) notifyEvent(index int) {
	for _, e := range s.listeners {
		e.l.EventReached(index)
	}
}
