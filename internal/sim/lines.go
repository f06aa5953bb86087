package sim

// Line is an emulated output line driven by the host.
type Line struct {
	sim  *Sim
	name string
	cs   bool // chip select of a device
	high bool
	Err  error // returned by Set when not nil
}

func (l *Line) Set(high bool) error {
	s := l.sim
	s.mu.Lock()
	defer s.mu.Unlock()
	if l.Err != nil {
		return l.Err
	}
	if !l.cs {
		l.high = high
		s.record(Event{Kind: Level, Device: l.name, High: high})
		return nil
	}

	if !high && l.high {
		other := s.TouchCS
		if l == s.TouchCS {
			other = s.DisplayCS
		}
		if !other.high {
			s.violations++
		}
		s.record(Event{Kind: Select, Device: l.name})
	} else if high && !l.high {
		s.record(Event{Kind: Deselect, Device: l.name})
	}
	l.high = high
	return nil
}

// High returns the current level.
func (l *Line) High() bool {
	l.sim.mu.Lock()
	defer l.sim.mu.Unlock()
	return l.high
}
