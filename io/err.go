package io

import (
	"errors"

	"github.com/ezrec/intcode/translate"
)

var f = translate.From

var (
	// Channel errors
	ErrChannelFull = errors.New(f("channel full"))
	ErrNotAscii    = errors.New(f("not an ascii character"))
)

// ErrToken is returned for text that is not a decimal word.
type ErrToken string

func (err ErrToken) Error() string {
	return f("invalid word %q", string(err))
}
