package network

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrDestination = errors.New(f("packet destination invalid"))
	ErrHalted      = errors.New(f("all nodes halted"))
	ErrStalled     = errors.New(f("network stalled"))
	ErrSize        = errors.New(f("network size invalid"))
)

// ErrNode indicates the network node at fault.
type ErrNode struct {
	Address int
	Err     error
}

func (err *ErrNode) Error() string {
	return f("node %d: %v", err.Address, err.Err)
}

func (err *ErrNode) Unwrap() error {
	return err.Err
}

// errStop ends a network run early.
var errStop = errors.New("stop")
