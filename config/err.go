package config

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	ErrWidth    = errors.New(f("word width must be 32 or 64"))
	ErrMaxTicks = errors.New(f("max-ticks must not be negative"))
	ErrPatch    = errors.New(f("patch address invalid"))
	ErrRange    = errors.New(f("value out of range for word width"))
)

// ErrConfig indicates the configuration file at fault.
type ErrConfig struct {
	Path string
	Err  error
}

func (err *ErrConfig) Error() string {
	return f("%v: %v", err.Path, err.Err)
}

func (err *ErrConfig) Unwrap() error {
	return err.Err
}
