package sim

// IRQ is the touch controller's pen interrupt, low while pressed.
type IRQ struct {
	sim *Sim
}

func (q *IRQ) Get() bool {
	s := q.sim
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.pressed {
		return true
	}
	if s.releaseAfter == 0 {
		s.pressed = false
		s.releaseAfter = -1
		return true
	}
	if s.releaseAfter > 0 {
		s.releaseAfter--
	}
	return false
}

// Press holds the pen down at the raw panel position (rawX, rawY).
func (s *Sim) Press(rawX, rawY uint16) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pressed = true
	s.rawX, s.rawY = rawX, rawY
}

// Release lifts the pen.
func (s *Sim) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pressed = false
	s.releaseAfter = -1
}

// ReleaseAfter lifts the pen once n more interrupt checks have seen it
// pressed.
func (s *Sim) ReleaseAfter(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releaseAfter = n
}

// TouchCounts returns the number of axis commands and read exchanges the
// touch controller has seen.
func (s *Sim) TouchCounts() (commands, exchanges int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.axisCmds, s.exchanges
}

func (s *Sim) touchTx(w, r []byte) {
	if r == nil {
		for _, b := range w {
			if b&0x80 == 0 {
				continue
			}
			s.touchCmd = b
			s.axisCmds++
			s.record(Event{Kind: Command, Device: "touch", Cmd: b, Len: 1})
		}
		return
	}

	s.exchanges++
	s.record(Event{Kind: Exchange, Device: "touch", Cmd: s.touchCmd, Len: len(r)})
	clear(r)
	var v uint16
	if s.pressed {
		switch s.touchCmd {
		case touchReadX:
			v = s.rawX
		case touchReadY:
			v = s.rawY
		}
	}
	if len(r) >= 2 {
		r[0], r[1] = uint8(v>>8), uint8(v)
	}
}
