package tft

import "tftpanel/bus"

// command sends a single command byte with the data/command line low.
func (tft *TFTPanel) command(cmd uint8) error {
	if err := bus.Drive(tft.dc, false); err != nil { // command mode
		return err
	}
	tft.cmdBuf[0] = cmd
	return tft.dev.Tx(tft.cmdBuf[:])
}

// data sends p with the data/command line high, split into transfers no
// larger than the bus allows. The line is set once for the whole payload.
func (tft *TFTPanel) data(p []uint8) error {
	if len(p) == 0 {
		return nil
	}
	if err := bus.Drive(tft.dc, true); err != nil { // data mode
		return err
	}
	return tft.tx(p)
}

// tx transmits p in chunks of at most the bus transfer size.
func (tft *TFTPanel) tx(p []uint8) error {
	limit := tft.bus.MaxTxSize()
	for len(p) > 0 {
		n := min(len(p), limit)
		if err := tft.dev.Tx(p[:n]); err != nil {
			return err
		}
		p = p[n:]
	}
	return nil
}

// repeat sends pattern n times as one data burst. The staging buffer is
// filled once with as many whole patterns as fit a single transfer and then
// reused for every chunk.
func (tft *TFTPanel) repeat(pattern []uint8, n int) error {
	if n <= 0 || len(pattern) == 0 {
		return nil
	}
	if err := bus.Drive(tft.dc, true); err != nil { // data mode
		return err
	}

	buf := tft.staging(len(pattern))
	per := len(buf) / len(pattern) // patterns per chunk
	for i := 0; i < len(buf); i += len(pattern) {
		copy(buf[i:], pattern)
	}

	for n > 0 {
		k := min(n, per)
		if err := tft.tx(buf[:k*len(pattern)]); err != nil {
			return err
		}
		n -= k
	}
	return nil
}

// writeCmd issues a command with optional data.
func (tft *TFTPanel) writeCmd(cmd uint8, data ...uint8) error {
	if err := tft.command(cmd); err != nil {
		return err
	}
	return tft.data(data)
}

// staging returns the reusable transfer buffer trimmed to a whole number of
// unit-sized elements. It is no larger than a single bus transfer unless one
// element alone exceeds it.
func (tft *TFTPanel) staging(unit int) []uint8 {
	size := min(tft.stageSize, tft.bus.MaxTxSize())
	size -= size % unit
	if size < unit {
		size = unit
	}
	if cap(tft.stage) < size {
		tft.stage = make([]uint8, size)
	}
	return tft.stage[:size]
}
