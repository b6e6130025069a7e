// Package io provides word channels for feeding Intcode machines and
// collecting their output. It includes an in-memory FIFO (Queue) and a
// stream backed tape (Tape) speaking either ASCII or decimal text.
package io

import (
	"iter"
)

// Channel defines the interface for all I/O channels. Channels carry
// Intcode words, widened to int64.
type Channel interface {
	// Rewind resets the channel to its initial state.
	Rewind()
	// Receive returns an iterator that yields words from the channel.
	// Words are consumed as they are yielded.
	Receive() iter.Seq[int64]
	// Send writes a single word to the channel.
	Send(value int64) error
}
