package tft

import "time"

// InitStep is one entry of a controller init table: a command, its payload
// and the time to wait once it has been sent.
type InitStep struct {
	Cmd   uint8
	Data  []uint8
	Delay time.Duration
}

// Model describes a controller: its native (unrotated) size and init table.
type Model struct {
	Name   string
	Width  uint16
	Height uint16
	Init   []InitStep
}

// replay sends every step of the table through the framer. The display
// must be selected.
func (tft *TFTPanel) replay(steps []InitStep) error {
	for _, s := range steps {
		if err := tft.writeCmd(s.Cmd, s.Data...); err != nil {
			return err
		}
		tft.bus.Delay(s.Delay)
	}
	return nil
}
