package intcode

import (
	"unsafe"
)

// Word is the integer type used for memory cells, addresses-as-values and
// I/O values.
type Word interface {
	~int | ~int32 | ~int64
}

// Bits returns the width of W in bits.
func Bits[W Word]() int {
	var w W
	return int(unsafe.Sizeof(w)) * 8
}
