package io

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"strconv"
	"unicode"

	"github.com/ezrec/intcode/internal"
)

// Tape provides sequential I/O over byte streams.
//
// In ASCII mode each input byte is one word, and output words below 128
// are written as bytes. Larger words, which are not characters, are written
// as a decimal line.
//
// Otherwise input is decimal words separated by whitespace or commas, and
// each output word is written as a decimal line.
//
// Preload words are received before anything is read from Input.
type Tape struct {
	Input  io.Reader
	Output io.Writer
	Ascii  bool

	Preload []int64

	preloaded int
	reader    *bufio.Reader
	scanner   *bufio.Scanner
	err       error
}

var _ Channel = (*Tape)(nil)

// Rewind is only possible for the preload section of a tape.
func (tc *Tape) Rewind() {
	tc.preloaded = 0
}

// Err returns the first non-EOF error seen on Input.
func (tc *Tape) Err() error {
	return tc.err
}

// preload yields the words of the preload section not yet received.
func (tc *Tape) preload() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		for tc.preloaded < len(tc.Preload) {
			value := tc.Preload[tc.preloaded]
			tc.preloaded++
			if !yield(value) {
				return
			}
		}
	}
}

// ascii yields one word per input byte.
func (tc *Tape) ascii() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		if tc.Input == nil {
			return
		}
		if tc.reader == nil {
			tc.reader = bufio.NewReader(tc.Input)
		}
		for {
			b, err := tc.reader.ReadByte()
			if err != nil {
				if err != io.EOF && tc.err == nil {
					tc.err = err
				}
				return
			}
			if !yield(int64(b)) {
				return
			}
		}
	}
}

// splitWords is a bufio.SplitFunc for whitespace or comma separated words.
func splitWords(data []byte, atEOF bool) (advance int, token []byte, err error) {
	isSpace := func(b byte) bool {
		return b == ',' || unicode.IsSpace(rune(b))
	}

	start := 0
	for start < len(data) && isSpace(data[start]) {
		start++
	}

	for n := start; n < len(data); n++ {
		if isSpace(data[n]) {
			return n + 1, data[start:n], nil
		}
	}

	if atEOF && len(data) > start {
		return len(data), data[start:], nil
	}

	return start, nil, nil
}

// decimal yields one word per decimal token.
func (tc *Tape) decimal() iter.Seq[int64] {
	return func(yield func(value int64) bool) {
		if tc.Input == nil || tc.err != nil {
			return
		}
		if tc.scanner == nil {
			tc.scanner = bufio.NewScanner(tc.Input)
			tc.scanner.Split(splitWords)
		}
		for tc.scanner.Scan() {
			token := tc.scanner.Text()
			value, err := strconv.ParseInt(token, 10, 64)
			if err != nil {
				tc.err = ErrToken(token)
				return
			}
			if !yield(value) {
				return
			}
		}
		if err := tc.scanner.Err(); err != nil && tc.err == nil {
			tc.err = err
		}
	}
}

// Receive returns an iterator that yields the preload words, then words
// read from the input stream.
func (tc *Tape) Receive() iter.Seq[int64] {
	stream := tc.decimal()
	if tc.Ascii {
		stream = tc.ascii()
	}

	return internal.IterSeqConcat(tc.preload(), stream)
}

// Send writes a word to the output stream.
func (tc *Tape) Send(value int64) (err error) {
	if tc.Output == nil {
		return
	}

	if tc.Ascii && value >= 0 && value < 128 {
		_, err = tc.Output.Write([]byte{byte(value)})
		return
	}

	_, err = fmt.Fprintf(tc.Output, "%d\n", value)
	return
}
