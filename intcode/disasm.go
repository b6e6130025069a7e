package intcode

import (
	"fmt"
	"iter"
)

// Disassemble iterates over the image, yielding the address and the
// assembler text of each instruction. Words that do not encode a canonical
// instruction, or whose parameters run past the end of the image, are
// yielded as .data, so that the text assembles back to the same image.
func Disassemble[W Word](image []W) iter.Seq2[int, string] {
	return func(yield func(ip int, text string) bool) {
		for ip := 0; ip < len(image); {
			word := image[ip]
			ins, err := Decode(word)
			if err == nil && ins.Encode() == int64(word) && ip+ins.Size() <= len(image) {
				params := make([]int64, ins.Params())
				for n := range params {
					params[n] = int64(image[ip+1+n])
				}
				if !yield(ip, ins.Format(params...)) {
					return
				}
				ip += ins.Size()
				continue
			}

			if !yield(ip, fmt.Sprintf(".data %d", int64(word))) {
				return
			}
			ip++
		}
	}
}
