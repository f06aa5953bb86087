package bus

import (
	"errors"
	"fmt"
)

var (
	// ErrTransport matches every failure reported by the spi or a control line.
	ErrTransport = errors.New("transport failure")

	// ErrBusy matches attempts to select a device while another holds the bus.
	ErrBusy = errors.New("bus held by another device")

	// ErrNotSelected is returned when transferring without holding the bus.
	ErrNotSelected = errors.New("device not selected")
)

// TransportError wraps a failure of the underlying bus.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrTransport, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

func (e *TransportError) Is(target error) bool { return target == ErrTransport }

// BusyError reports which device was refused and who held the bus.
type BusyError struct {
	Device string
	Holder string
}

func (e *BusyError) Error() string {
	return fmt.Sprintf("select %s: %s %s", e.Device, ErrBusy, e.Holder)
}

func (e *BusyError) Is(target error) bool { return target == ErrBusy }
