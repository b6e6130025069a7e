// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

package intcode

import (
	"errors"
	"fmt"
	"log"
)

// Interrupt is the outcome of a resumed execution segment.
type Interrupt[W Word] struct {
	Kind  InterruptKind // Reason execution stopped.
	Value W             // Output value, for IRQ_OUTPUT.
}

// String returns the interrupt as text.
func (irq Interrupt[W]) String() string {
	if irq.Kind == IRQ_OUTPUT {
		return fmt.Sprintf("%v(%d)", irq.Kind, int64(irq.Value))
	}
	return irq.Kind.String()
}

// Machine is an Intcode virtual machine.
type Machine[W Word] struct {
	Verbose bool // Set to enable verbose logging.

	Memory       Memory[W] // Program memory.
	Ip           int       // Current instruction pointer.
	RelativeBase int       // Relative base register.

	Ticks int // Retired instruction counter.

	pristine []W // Image restored by Reset.
	awaiting bool // Blocked on an input instruction.
	hasInput bool // Input value supplied, not yet consumed.
	input    W
}

// New creates a machine from comma separated program text.
func New[W Word](source string) (m *Machine[W], err error) {
	image, err := Parse[W](source)
	if err != nil {
		return
	}

	m = NewFromImage(image)
	return
}

// MustNew is New for known-good program text, and panics on error.
func MustNew[W Word](source string) *Machine[W] {
	m, err := New[W](source)
	if err != nil {
		panic(err)
	}
	return m
}

// NewFromImage creates a machine from a parsed program image.
// The image is copied.
func NewFromImage[W Word](image []W) (m *Machine[W]) {
	m = &Machine[W]{
		Memory:   NewRam(image),
		pristine: append([]W(nil), image...),
	}

	return
}

// Clone returns an independent machine with the same pristine image and
// the same current state.
func (m *Machine[W]) Clone() (clone *Machine[W]) {
	clone = NewFromImage(m.pristine)
	clone.Verbose = m.Verbose
	clone.Restore(m.Snapshot())
	return
}

// Reset the machine state.
// - Restores memory to the pristine program image.
// - Zeros the instruction pointer, relative base and tick counter.
// - Drops any pending input.
func (m *Machine[W]) Reset() {
	if m.Verbose {
		log.Printf("intcode: reset")
	}

	m.Memory.Load(m.pristine)
	m.Ip = 0
	m.RelativeBase = 0
	m.Ticks = 0

	m.awaiting = false
	m.hasInput = false
	m.input = 0
}

// Read returns the word at addr, without executing.
func (m *Machine[W]) Read(addr int) W {
	return m.Memory.Read(addr)
}

// Write stores value at addr, without executing.
func (m *Machine[W]) Write(addr int, value W) {
	m.Memory.Write(addr, value)
}

// Awaiting returns true if the machine is blocked until Input is called.
func (m *Machine[W]) Awaiting() bool {
	return m.awaiting && !m.hasInput
}

// Halted returns true if the current instruction is a halt.
func (m *Machine[W]) Halted() bool {
	ins, err := Decode(m.Memory.Read(m.Ip))
	return err == nil && ins.Opcode == OP_HALT
}

// Input supplies the single word awaited by the pending input instruction.
func (m *Machine[W]) Input(value W) (err error) {
	if !m.awaiting || m.hasInput {
		err = ErrInputUnexpected
		return
	}

	if m.Verbose {
		log.Printf("intcode: input %d", int64(value))
	}

	m.input = value
	m.hasInput = true

	return
}

// Run resumes execution until the machine halts, needs input, or produces
// output.
func (m *Machine[W]) Run() (irq Interrupt[W], err error) {
	for irq.Kind == IRQ_NONE {
		irq, err = m.Tick()
		if err != nil {
			return
		}
	}

	return
}

// Tick executes a single instruction. IRQ_NONE is reported when the
// instruction retired without an interrupt.
func (m *Machine[W]) Tick() (irq Interrupt[W], err error) {
	if m.awaiting && !m.hasInput {
		err = ErrInputMissing
		return
	}

	ip := m.Ip
	code := m.Memory.Read(ip)

	defer func() {
		if err != nil {
			irq = Interrupt[W]{}
			err = &ErrFault{Ip: ip, Code: int64(code), Err: err}
		}
	}()

	ins, err := Decode(code)
	if err != nil {
		return
	}

	if m.Verbose {
		params := make([]int64, ins.Params())
		for n := range params {
			params[n] = int64(m.Memory.Read(ip + 1 + n))
		}
		log.Printf("intcode: %04d %v", ip, ins.Format(params...))
	}

	next_ip := ip + ins.Size()

	switch ins.Opcode {
	case OP_ADD, OP_MUL, OP_LT, OP_EQ:
		var a, b W
		a, err = m.load(ins, 0)
		if err != nil {
			return
		}
		b, err = m.load(ins, 1)
		if err != nil {
			return
		}
		var value W
		switch ins.Opcode {
		case OP_ADD:
			value = a + b
		case OP_MUL:
			value = a * b
		case OP_LT:
			if a < b {
				value = 1
			}
		case OP_EQ:
			if a == b {
				value = 1
			}
		}
		err = m.store(ins, 2, value)
		if err != nil {
			return
		}
	case OP_IN:
		if !m.hasInput {
			// Don't retire; the same instruction runs again once
			// a value has been supplied.
			m.awaiting = true
			irq.Kind = IRQ_INPUT
			return
		}
		err = m.store(ins, 0, m.input)
		if err != nil {
			return
		}
		m.awaiting = false
		m.hasInput = false
		m.input = 0
	case OP_OUT:
		var value W
		value, err = m.load(ins, 0)
		if err != nil {
			return
		}
		irq = Interrupt[W]{Kind: IRQ_OUTPUT, Value: value}
	case OP_JT, OP_JF:
		var cond, target W
		cond, err = m.load(ins, 0)
		if err != nil {
			return
		}
		target, err = m.load(ins, 1)
		if err != nil {
			return
		}
		if (cond != 0) == (ins.Opcode == OP_JT) {
			if target < 0 {
				err = errors.Join(ErrOpcodeArg2, ErrAddress(target))
				return
			}
			next_ip = int(target)
		}
	case OP_ARB:
		var offset W
		offset, err = m.load(ins, 0)
		if err != nil {
			return
		}
		m.RelativeBase += int(offset)
	case OP_HALT:
		irq.Kind = IRQ_HALT
		return
	}

	m.Ip = next_ip
	m.Ticks++

	return
}

// address resolves the effective address of parameter n.
func (m *Machine[W]) address(ins Instruction, n int) (addr int, err error) {
	param := int(m.Memory.Read(m.Ip + 1 + n))

	switch ins.Modes[n] {
	case MODE_POSITION:
		addr = param
	case MODE_RELATIVE:
		addr = m.RelativeBase + param
	case MODE_IMMEDIATE:
		err = errors.Join(errOpcodeArg[n], ErrImmediateWrite)
		return
	default:
		err = errors.Join(errOpcodeArg[n], ErrMode(ins.Modes[n]))
		return
	}

	if addr < 0 {
		err = errors.Join(errOpcodeArg[n], ErrAddress(addr))
	}

	return
}

// load reads the value of parameter n.
func (m *Machine[W]) load(ins Instruction, n int) (value W, err error) {
	if ins.Modes[n] == MODE_IMMEDIATE {
		value = m.Memory.Read(m.Ip + 1 + n)
		return
	}

	addr, err := m.address(ins, n)
	if err != nil {
		return
	}

	value = m.Memory.Read(addr)
	return
}

// store writes value through parameter n.
func (m *Machine[W]) store(ins Instruction, n int, value W) (err error) {
	addr, err := m.address(ins, n)
	if err != nil {
		return
	}

	m.Memory.Write(addr, value)
	return
}

// String returns the current machine state as a string.
func (m *Machine[W]) String() (text string) {
	regs := []string{"ip", "rb", "ticks", "code", "state"}
	for _, reg := range regs {
		var strval string
		switch reg {
		case "ip":
			strval = fmt.Sprintf("%06d", m.Ip)
		case "rb":
			strval = fmt.Sprintf("%06d", m.RelativeBase)
		case "ticks":
			strval = fmt.Sprintf("%d", m.Ticks)
		case "code":
			ins, err := Decode(m.Memory.Read(m.Ip))
			if err != nil {
				strval = fmt.Sprintf("%d ???", int64(m.Memory.Read(m.Ip)))
			} else {
				strval = ins.String()
			}
		case "state":
			switch {
			case m.Halted():
				strval = "halted"
			case m.Awaiting():
				strval = "awaiting"
			default:
				strval = "running"
			}
		}
		text += fmt.Sprintf("% 5s: %v\n", reg, strval)
	}

	return
}
