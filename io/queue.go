package io

import (
	"iter"
)

// Queue implements an in-memory FIFO of words.
// A zero Capacity is unbounded.
type Queue struct {
	Capacity int

	Data []int64
}

var _ Channel = (*Queue)(nil)

// Rewind empties the queue.
func (queue *Queue) Rewind() {
	queue.Data = queue.Data[:0]
}

// Len returns the number of words waiting in the queue.
func (queue *Queue) Len() int {
	return len(queue.Data)
}

// Receive returns an iterator that yields words from the queue until empty.
func (queue *Queue) Receive() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		for len(queue.Data) > 0 {
			value := queue.Data[0]
			queue.Data = queue.Data[1:]
			if !yield(value) {
				return
			}
		}
	}
}

// Send appends a word to the queue.
// Returns ErrChannelFull if the queue has reached capacity.
func (queue *Queue) Send(value int64) (err error) {
	if queue.Capacity > 0 && len(queue.Data) >= queue.Capacity {
		err = ErrChannelFull
		return
	}

	queue.Data = append(queue.Data, value)

	return
}
