package intcode

import (
	"errors"
	"fmt"
	"strings"
)

// MAX_PARAMS is the largest parameter count of any opcode.
const MAX_PARAMS = 3

// modeScale is the decimal weight of each parameter's mode digit.
var modeScale = [MAX_PARAMS]int64{100, 1000, 10000}

// Instruction is a decoded instruction word.
type Instruction struct {
	Opcode Opcode
	Modes  [MAX_PARAMS]Mode
}

// Decode derives the opcode and the parameter modes from an instruction
// word. The low two decimal digits select the opcode, and each higher digit,
// least significant first, selects the mode of the next parameter.
func Decode[W Word](word W) (ins Instruction, err error) {
	code := int64(word)
	if code < 0 {
		err = ErrOpcode(code)
		return
	}

	ins.Opcode = Opcode(code % 100)
	if !ins.Opcode.Valid() {
		err = ErrOpcode(code)
		return
	}

	modes := code / 100
	for n := range ins.Opcode.Params() {
		mode := Mode(modes % 10)
		modes /= 10
		if !mode.Valid() {
			err = errors.Join(errOpcodeArg[n], ErrMode(mode))
			return
		}
		ins.Modes[n] = mode
	}

	if wr, ok := ins.Opcode.Writes(); ok && ins.Modes[wr] == MODE_IMMEDIATE {
		err = errors.Join(errOpcodeArg[wr], ErrImmediateWrite)
		return
	}

	return
}

// Params returns the number of parameters of the instruction.
func (ins Instruction) Params() int {
	return ins.Opcode.Params()
}

// Size returns the number of words the instruction occupies.
func (ins Instruction) Size() int {
	return 1 + ins.Params()
}

// Encode returns the canonical instruction word.
func (ins Instruction) Encode() (code int64) {
	code = int64(ins.Opcode)
	for n := range ins.Params() {
		code += int64(ins.Modes[n]) * modeScale[n]
	}
	return
}

// Format renders the instruction with its parameter words in assembler
// syntax.
func (ins Instruction) Format(params ...int64) string {
	words := []string{ins.Opcode.String()}
	for n, param := range params {
		if n >= ins.Params() {
			break
		}
		words = append(words, fmt.Sprintf("%v%d", ins.Modes[n].Prefix(), param))
	}
	return strings.Join(words, " ")
}

// String returns the mnemonic and parameter modes.
func (ins Instruction) String() string {
	words := []string{ins.Opcode.String()}
	for n := range ins.Params() {
		words = append(words, ins.Modes[n].String())
	}
	return strings.Join(words, ".")
}
