// Package sim emulates an ILI9341 display controller and an XPT2046 touch
// controller sharing one SPI bus, at the level of the bytes on the wire.
package sim

import (
	"errors"
	"sync"
	"time"
)

// Commands decoded by the display emulation.
const (
	cmdSWRESET  = 0x01
	cmdCASET    = 0x2a
	cmdPASET    = 0x2b
	cmdRAMWR    = 0x2c
	cmdMADCTL   = 0x36
	cmdVSCRSADD = 0x37

	touchReadX = 0xd0
	touchReadY = 0x90
)

var ErrInjected = errors.New("sim: injected spi failure")

type EventKind uint8

const (
	Select   EventKind = iota // chip select asserted
	Deselect                  // chip select released
	Level                     // control line driven
	Command                   // command byte
	Data                      // data payload
	Exchange                  // full duplex read
)

func (k EventKind) String() string {
	switch k {
	case Select:
		return "select"
	case Deselect:
		return "deselect"
	case Level:
		return "level"
	case Command:
		return "command"
	case Data:
		return "data"
	case Exchange:
		return "exchange"
	}
	return "unknown"
}

// Event is one entry of the bus trace.
type Event struct {
	Kind   EventKind
	Device string // "tft", "touch" or the line name
	Cmd    uint8  // command byte, or the command data belongs to
	Len    int    // payload length
	High   bool   // level of a Level event
}

// Sim is the emulated board. It implements drivers.SPI; the control lines
// implement bus.Line and IRQ implements bus.Input.
type Sim struct {
	mu sync.Mutex

	DisplayCS *Line
	DC        *Line
	RST       *Line
	BL        *Line
	TouchCS   *Line
	IRQ       *IRQ

	width, height int
	fb            []uint16
	madctl        uint8
	scroll        uint16

	cmd        uint8
	params     []uint8
	col0, col1 int
	row0, row1 int
	cx, cy     int
	hi         uint8 // first byte of a split pixel
	half       bool

	pressed      bool
	rawX, rawY   uint16
	releaseAfter int // press checks left, -1 for none
	failAfter    int // transfers left before a failure, -1 for none
	touchCmd     uint8
	axisCmds     int
	exchanges    int

	events     []Event
	violations int
	maxTx      int
	elapsed    time.Duration
}

// New returns a board whose display shows width x height pixels. All lines
// start high.
func New(width, height int) *Sim {
	s := &Sim{
		width:        width,
		height:       height,
		fb:           make([]uint16, width*height),
		col1:         width - 1,
		row1:         height - 1,
		releaseAfter: -1,
		failAfter:    -1,
	}
	s.DisplayCS = &Line{sim: s, name: "tft", cs: true, high: true}
	s.TouchCS = &Line{sim: s, name: "touch", cs: true, high: true}
	s.DC = &Line{sim: s, name: "dc", high: true}
	s.RST = &Line{sim: s, name: "rst", high: true}
	s.BL = &Line{sim: s, name: "bl", high: true}
	s.IRQ = &IRQ{sim: s}
	return s
}

// Size returns the emulated display size.
func (s *Sim) Size() (int, int) {
	return s.width, s.height
}

func (s *Sim) Tx(w, r []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failAfter == 0 {
		s.failAfter = -1
		return ErrInjected
	}
	if s.failAfter > 0 {
		s.failAfter--
	}
	if len(w) > s.maxTx {
		s.maxTx = len(w)
	}

	tft, touch := !s.DisplayCS.high, !s.TouchCS.high
	switch {
	case tft && touch, !tft && !touch:
		s.violations++
		return nil
	case touch:
		s.touchTx(w, r)
	case r != nil:
		clear(r)
		s.events = append(s.events, Event{Kind: Exchange, Device: "tft", Cmd: s.cmd, Len: len(w)})
	case !s.DC.high:
		for _, b := range w {
			s.command(b)
		}
	default:
		s.data(w)
	}
	return nil
}

func (s *Sim) Transfer(b byte) (byte, error) {
	var r [1]byte
	err := s.Tx([]byte{b}, r[:])
	return r[0], err
}

// Delay records d as elapsed without sleeping. It fits bus.Config.Delay.
func (s *Sim) Delay(d time.Duration) {
	s.mu.Lock()
	s.elapsed += d
	s.mu.Unlock()
}

// Elapsed returns the sum of all delays requested so far.
func (s *Sim) Elapsed() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.elapsed
}

// Events returns a copy of the trace.
func (s *Sim) Events() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.events...)
}

// ResetEvents clears the trace and the transfer counters.
func (s *Sim) ResetEvents() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = s.events[:0]
	s.axisCmds = 0
	s.exchanges = 0
	s.maxTx = 0
}

// Violations counts transfers made with both or neither device selected
// and selects made while the other device was selected.
func (s *Sim) Violations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.violations
}

// MaxTx returns the longest single transfer seen.
func (s *Sim) MaxTx() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.maxTx
}

// FailAfter makes the transfer after the next n ones fail once.
func (s *Sim) FailAfter(n int) {
	s.mu.Lock()
	s.failAfter = n
	s.mu.Unlock()
}

func (s *Sim) record(e Event) {
	s.events = append(s.events, e)
}
