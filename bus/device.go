package bus

// Device is one peripheral on a shared bus.
type Device struct {
	bus   *Bus
	name  string
	cs    Line // chip select, active low
	depth int  // nesting level of Do
}

// Name returns the name the device was attached with.
func (d *Device) Name() string {
	return d.name
}

// Bus returns the bus the device is attached to.
func (d *Device) Bus() *Bus {
	return d.bus
}

// Do selects the device, runs fn and deselects it again on every exit path.
// Nested calls on the same device run fn inside the outer selection.
func (d *Device) Do(fn func() error) (err error) {
	if d.bus.selected == d {
		d.depth++
		defer func() { d.depth-- }()
		return fn()
	}
	if d.bus.selected != nil {
		return &BusyError{Device: d.name, Holder: d.bus.selected.name}
	}

	if err := d.setCS(false); err != nil {
		return err
	}
	d.bus.selected = d
	d.depth = 1

	defer func() {
		d.depth = 0
		d.bus.selected = nil
		if cerr := d.setCS(true); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn()
}

// Tx transmits w. The device must be selected.
func (d *Device) Tx(w []byte) error {
	if d.bus.selected != d {
		return ErrNotSelected
	}
	if len(w) == 0 {
		return nil
	}
	if err := d.bus.spi.Tx(w, nil); err != nil {
		return &TransportError{Op: "tx", Err: err}
	}
	return nil
}

// Exchange clocks out w while reading len(r) bytes into r. The device must
// be selected.
func (d *Device) Exchange(w, r []byte) error {
	if d.bus.selected != d {
		return ErrNotSelected
	}
	if err := d.bus.spi.Tx(w, r); err != nil {
		return &TransportError{Op: "exchange", Err: err}
	}
	return nil
}

// Drive sets a control line owned by the device, reporting failures as
// transport errors.
func Drive(l Line, high bool) error {
	if l == nil {
		return nil
	}
	if err := l.Set(high); err != nil {
		return &TransportError{Op: "line", Err: err}
	}
	return nil
}

func (d *Device) setCS(high bool) error {
	return Drive(d.cs, high)
}
