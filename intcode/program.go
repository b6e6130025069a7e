package intcode

import (
	"fmt"
	"iter"
)

// Link is an operand to be patched with the address of a label.
type Link struct {
	Index  int    // Index into Line.Codes.
	Label  string // Label to link against.
	Offset int64  // Added to the label address.
}

// Line represents a line of assembled code with its source location and
// generated words.
type Line struct {
	LineNo int
	Ip     int
	Words  []string
	Codes  []int64
	Links  []Link
}

// Program is an assembled program listing.
type Program struct {
	Lines []Line
}

// Debug is a listing line, and the index of a word within its codes.
type Debug struct {
	*Line
	Index int
}

// Debug locates the listing line that generated the word at ip.
func (prog *Program) Debug(ip int) (dbg Debug) {
	for n, line := range prog.Lines {
		if ip >= line.Ip && ip < line.Ip+len(line.Codes) {
			dbg = Debug{
				Line:  &prog.Lines[n],
				Index: ip - line.Ip,
			}
			break
		}
	}

	return
}

// Image returns the assembled program image.
func (prog *Program) Image() (image []int64) {
	for _, code := range prog.Codes() {
		image = append(image, code)
	}

	return
}

// Codes iterates over every assembled word, by address.
func (prog *Program) Codes() iter.Seq2[int, int64] {
	return func(yield func(ip int, code int64) bool) {
		for _, line := range prog.Lines {
			for n, code := range line.Codes {
				if !yield(line.Ip+n, code) {
					return
				}
			}
		}
	}
}

// Load creates a machine running the assembled program.
func Load[W Word](prog *Program) (m *Machine[W], err error) {
	var image []W
	for ip, code := range prog.Codes() {
		word := W(code)
		if int64(word) != code {
			err = &ErrParse{Index: ip, Token: fmt.Sprint(code), Err: ErrWordRange}
			return
		}
		image = append(image, word)
	}

	if len(image) == 0 {
		err = ErrProgramEmpty
		return
	}

	m = NewFromImage(image)
	return
}
