// Copyright 2025, Jason S. McMullan <jason.mcmullan@gmail.com>

// Package emulator runs an Intcode machine against I/O channels.
package emulator

import (
	"errors"
	"log"
	"strconv"

	"github.com/ezrec/intcode/intcode"
	"github.com/ezrec/intcode/io"
)

// Emulator state. Machine + program listing + IO channels.
type Emulator[W intcode.Word] struct {
	Verbose             bool             // If set, enables verbose logging.
	*intcode.Machine[W]                  // Reference to the machine.
	Program             *intcode.Program // Listing of the running program, if known.

	Input  io.Channel // Words supplied to input instructions.
	Output io.Channel // Words produced by output instructions.

	MaxTicks int // If non-zero, the maximum number of retired instructions.
}

// NewEmulator creates a new emulator for a machine, with empty queues for
// input and output.
func NewEmulator[W intcode.Word](m *intcode.Machine[W]) (emu *Emulator[W]) {
	emu = &Emulator[W]{
		Machine: m,
		Input:   &io.Queue{},
		Output:  &io.Queue{},
	}

	return
}

// LoadProgram creates a new emulator running an assembled program.
func LoadProgram[W intcode.Word](prog *intcode.Program) (emu *Emulator[W], err error) {
	m, err := intcode.Load[W](prog)
	if err != nil {
		return
	}

	emu = NewEmulator(m)
	emu.Program = prog

	return
}

// Reset the machine, and rewind the channels.
func (emu *Emulator[W]) Reset() {
	emu.Machine.Verbose = emu.Verbose
	emu.Machine.Reset()

	if emu.Input != nil {
		emu.Input.Rewind()
	}
	if emu.Output != nil {
		emu.Output.Rewind()
	}
}

// LineNo returns the current line number for the executing opcode.
func (emu *Emulator[W]) LineNo() int {
	if emu.Program == nil {
		return 0
	}

	dbg := emu.Program.Debug(emu.Ip)
	if dbg.Line == nil {
		return 0
	}

	return dbg.LineNo
}

// receive pulls a single word from the input channel.
func (emu *Emulator[W]) receive() (value W, err error) {
	if emu.Input != nil {
		for word := range emu.Input.Receive() {
			value = W(word)
			if int64(value) != word {
				err = &intcode.ErrParse{Token: strconv.FormatInt(word, 10), Err: intcode.ErrWordRange}
			}
			return
		}
	}

	err = ErrInputExhausted
	if tape, ok := emu.Input.(interface{ Err() error }); ok && tape.Err() != nil {
		err = errors.Join(err, tape.Err())
	}

	return
}

// Tick retires a single instruction of the machine, servicing the I/O
// channels as needed. done is set once the machine has halted.
func (emu *Emulator[W]) Tick() (done bool, err error) {
	emu.Machine.Verbose = emu.Verbose

	ip := emu.Ip
	lineno := emu.LineNo()
	defer func() {
		if err != nil {
			err = &ErrRuntime{Ip: ip, LineNo: lineno, Err: err}
		}
	}()

	if emu.MaxTicks > 0 && emu.Ticks >= emu.MaxTicks && !emu.Halted() {
		err = ErrTickLimit
		return
	}

	if !emu.Awaiting() {
		var irq intcode.Interrupt[W]
		irq, err = emu.Machine.Tick()
		if err != nil {
			return
		}

		switch irq.Kind {
		case intcode.IRQ_HALT:
			done = true
			return
		case intcode.IRQ_OUTPUT:
			if emu.Verbose {
				log.Printf("emulator: output %d", int64(irq.Value))
			}
			if emu.Output != nil {
				err = emu.Output.Send(int64(irq.Value))
			}
			return
		case intcode.IRQ_NONE:
			return
		}
	}

	// Supply the awaited input, and retire the input instruction.
	value, err := emu.receive()
	if err != nil {
		return
	}
	err = emu.Machine.Input(value)
	if err != nil {
		return
	}
	_, err = emu.Machine.Tick()

	return
}

// Run the machine until it halts.
func (emu *Emulator[W]) Run() (err error) {
	for done := false; !done; {
		done, err = emu.Tick()
		if err != nil {
			return
		}
	}

	return
}
