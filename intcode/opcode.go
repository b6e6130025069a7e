package intcode

// Opcode is an Intcode operation.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode,Mode,InterruptKind -output=opcode_string.go
const (
	OP_ADD  = Opcode(1)  // add
	OP_MUL  = Opcode(2)  // mul
	OP_IN   = Opcode(3)  // in
	OP_OUT  = Opcode(4)  // out
	OP_JT   = Opcode(5)  // jt
	OP_JF   = Opcode(6)  // jf
	OP_LT   = Opcode(7)  // lt
	OP_EQ   = Opcode(8)  // eq
	OP_ARB  = Opcode(9)  // arb
	OP_HALT = Opcode(99) // halt
)

// opcodeParams is the parameter count of each opcode.
var opcodeParams = map[Opcode]int{
	OP_ADD:  3,
	OP_MUL:  3,
	OP_IN:   1,
	OP_OUT:  1,
	OP_JT:   2,
	OP_JF:   2,
	OP_LT:   3,
	OP_EQ:   3,
	OP_ARB:  1,
	OP_HALT: 0,
}

// opcodeWrites is the index of the parameter written by the opcode, if any.
var opcodeWrites = map[Opcode]int{
	OP_ADD: 2,
	OP_MUL: 2,
	OP_IN:  0,
	OP_LT:  2,
	OP_EQ:  2,
}

// Valid returns true if the opcode is part of the instruction set.
func (op Opcode) Valid() (ok bool) {
	_, ok = opcodeParams[op]
	return
}

// Params returns the number of parameters the opcode takes.
func (op Opcode) Params() int {
	return opcodeParams[op]
}

// Writes returns the index of the written parameter, and true if the
// opcode writes to memory through a parameter.
func (op Opcode) Writes() (param int, ok bool) {
	param, ok = opcodeWrites[op]
	return
}

// Mode is a parameter addressing mode.
type Mode int

const (
	MODE_POSITION  = Mode(0) // position
	MODE_IMMEDIATE = Mode(1) // immediate
	MODE_RELATIVE  = Mode(2) // relative
)

// Valid returns true if the mode is known.
func (mode Mode) Valid() bool {
	return mode >= MODE_POSITION && mode <= MODE_RELATIVE
}

// Prefix returns the assembler operand prefix for the mode.
func (mode Mode) Prefix() string {
	switch mode {
	case MODE_IMMEDIATE:
		return "#"
	case MODE_RELATIVE:
		return "@"
	}
	return ""
}

// InterruptKind is the reason a Machine stopped executing.
type InterruptKind int

const (
	IRQ_NONE   = InterruptKind(0) // none
	IRQ_HALT   = InterruptKind(1) // halt
	IRQ_INPUT  = InterruptKind(2) // input
	IRQ_OUTPUT = InterruptKind(3) // output
)
