package intcode

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// collect runs m to halt, feeding inputs in order, and returns all outputs.
func collect[W Word](t *testing.T, m *Machine[W], inputs ...W) (outputs []W) {
	t.Helper()

	for {
		irq, err := m.Run()
		if err != nil {
			t.Log(m.String())
			t.Fatalf("%v", err)
		}
		switch irq.Kind {
		case IRQ_HALT:
			return
		case IRQ_INPUT:
			if len(inputs) == 0 {
				t.Fatalf("input exhausted at ip %v", m.Ip)
			}
			err = m.Input(inputs[0])
			if err != nil {
				t.Fatalf("%v", err)
			}
			inputs = inputs[1:]
		case IRQ_OUTPUT:
			outputs = append(outputs, irq.Value)
		}
	}
}

func TestMachine(t *testing.T) {
	assert := assert.New(t)

	m := MustNew[int64]("1,9,10,3,2,3,11,0,99,30,40,50")
	assert.False(m.Verbose)
	assert.Equal(0, m.Ip)
	assert.Equal(0, m.RelativeBase)
	assert.Equal(12, m.Memory.Len())

	irq, err := m.Run()
	assert.NoError(err)
	assert.Equal(IRQ_HALT, irq.Kind)
	assert.Equal(int64(3500), m.Read(0))
	assert.Equal(int64(70), m.Read(3))
	assert.Equal(8, m.Ip)
	assert.Equal(2, m.Ticks)
	assert.True(m.Halted())
}

func TestMachineWide(t *testing.T) {
	assert := assert.New(t)

	m := MustNew[int64]("104,1125899906842624,99")

	irq, err := m.Run()
	assert.NoError(err)
	assert.Equal(Interrupt[int64]{Kind: IRQ_OUTPUT, Value: 1125899906842624}, irq)

	irq, err = m.Run()
	assert.NoError(err)
	assert.Equal(IRQ_HALT, irq.Kind)

	_, err = New[int32]("104,1125899906842624,99")
	assert.ErrorIs(err, ErrWordRange)
	var perr *ErrParse
	assert.ErrorAs(err, &perr)
	assert.Equal(1, perr.Index)

	m = MustNew[int64]("1102,34915192,34915192,7,4,7,99,0")
	assert.Equal([]int64{1219070632396864}, collect(t, m))
}

func TestMachineInput(t *testing.T) {
	assert := assert.New(t)

	m := MustNew[int]("3,0,4,0,99")

	irq, err := m.Run()
	assert.NoError(err)
	assert.Equal(IRQ_INPUT, irq.Kind)
	assert.Equal(0, m.Ip)
	assert.True(m.Awaiting())

	assert.NoError(m.Input(77))
	assert.False(m.Awaiting())

	irq, err = m.Run()
	assert.NoError(err)
	assert.Equal(Interrupt[int]{Kind: IRQ_OUTPUT, Value: 77}, irq)
	assert.Equal(4, m.Ip)

	irq, err = m.Run()
	assert.NoError(err)
	assert.Equal(IRQ_HALT, irq.Kind)
}

func TestMachineProtocol(t *testing.T) {
	assert := assert.New(t)

	m := MustNew[int]("3,0,4,0,99")

	// Nothing awaited yet.
	assert.ErrorIs(m.Input(1), ErrInputUnexpected)

	irq, err := m.Run()
	assert.NoError(err)
	assert.Equal(IRQ_INPUT, irq.Kind)

	// Resume without supplying.
	_, err = m.Run()
	assert.ErrorIs(err, ErrInputMissing)
	_, err = m.Tick()
	assert.ErrorIs(err, ErrInputMissing)

	assert.NoError(m.Input(5))
	// Supplied twice.
	assert.ErrorIs(m.Input(6), ErrInputUnexpected)

	assert.Equal([]int{5}, collect(t, m))

	// Halted machines await nothing.
	assert.ErrorIs(m.Input(1), ErrInputUnexpected)
}

func TestMachineParameters(t *testing.T) {
	assert := assert.New(t)

	m := MustNew[int32]("1,0,0,0,99,0,0,0,0,0,0,0,30")
	m.Write(1, 12)
	m.Write(2, 2)
	assert.Equal(int32(12), m.Read(1))
	assert.Equal(int32(2), m.Read(2))

	irq, err := m.Run()
	assert.NoError(err)
	assert.Equal(IRQ_HALT, irq.Kind)
	// mem[12] + mem[2]
	assert.Equal(int32(32), m.Read(0))
}

func TestMachineIndependence(t *testing.T) {
	assert := assert.New(t)

	const source = "3,0,4,0,99"

	a := MustNew[int](source)
	b := MustNew[int](source)

	_, err := b.Run()
	assert.NoError(err)
	assert.NoError(b.Input(99))
	b.Write(10, 1234)

	assert.Equal([]int{7}, collect(t, a, 7))
	assert.Equal(0, a.Read(10))
	assert.Equal(5, a.Memory.Len())

	b.Reset()
	assert.Equal(3, b.Read(0))
	assert.Equal(0, b.Read(10))
	assert.Equal(7, a.Read(0))
	assert.True(a.Halted())
	assert.False(b.Halted())
}

func TestMachineCompare(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program string
		input   int
		output  int
	}){
		{"eq_pos_8", "3,9,8,9,10,9,4,9,99,-1,8", 8, 1},
		{"eq_pos_7", "3,9,8,9,10,9,4,9,99,-1,8", 7, 0},
		{"lt_pos_7", "3,9,7,9,10,9,4,9,99,-1,8", 7, 1},
		{"lt_pos_8", "3,9,7,9,10,9,4,9,99,-1,8", 8, 0},
		{"eq_imm_8", "3,3,1108,-1,8,3,4,3,99", 8, 1},
		{"eq_imm_9", "3,3,1108,-1,8,3,4,3,99", 9, 0},
		{"lt_imm_-3", "3,3,1107,-1,8,3,4,3,99", -3, 1},
		{"lt_imm_8", "3,3,1107,-1,8,3,4,3,99", 8, 0},
		{"jmp_pos_0", "3,12,6,12,15,1,13,14,13,4,13,99,-1,0,1,9", 0, 0},
		{"jmp_pos_5", "3,12,6,12,15,1,13,14,13,4,13,99,-1,0,1,9", 5, 1},
		{"jmp_imm_0", "3,3,1105,-1,9,1101,0,0,12,4,12,99,1", 0, 0},
		{"jmp_imm_5", "3,3,1105,-1,9,1101,0,0,12,4,12,99,1", 5, 1},
	}

	for _, entry := range table {
		m := MustNew[int](entry.program)
		assert.Equal([]int{entry.output}, collect(t, m, entry.input), entry.name)
	}

	const larger = "3,21,1008,21,8,20,1005,20,22,107,8,21,20,1006,20,31," +
		"1106,0,36,98,0,0,1002,21,125,20,4,20,1105,1,46,104," +
		"999,1105,1,46,1101,1000,1,20,4,20,1105,1,46,98,99"

	m := MustNew[int](larger)
	for input, output := range map[int]int{-5: 999, 7: 999, 8: 1000, 9: 1001, 100: 1001} {
		m.Reset()
		assert.Equal([]int{output}, collect(t, m, input), input)
	}
}

func TestMachineRelative(t *testing.T) {
	assert := assert.New(t)

	quine := "109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99"
	expected, err := Parse[int64](quine)
	assert.NoError(err)

	m := MustNew[int64](quine)
	assert.Equal(expected, collect(t, m))
	assert.Equal(int64(16), m.Read(100))
	assert.Equal(int64(1), m.Read(101))
	assert.Equal(102, m.Memory.Len())

	// Relative reads and writes match position mode at the same address.
	for offset := 2; offset <= 9; offset++ {
		// arb #7; add @off #1 @off; out @off; halt
		rel := NewFromImage([]int{109, 7, 21201, offset, 1, offset, 204, offset, 99, 0, 10, 11, 12, 13, 14, 15, 16})
		addr := 7 + offset
		// arb #7; add addr #1 addr; out addr; halt
		pos := NewFromImage([]int{109, 7, 1001, addr, 1, addr, 4, addr, 99, 0, 10, 11, 12, 13, 14, 15, 16})

		assert.Equal(collect(t, pos), collect(t, rel), offset)
		assert.Equal(pos.Memory.Dump()[9:], rel.Memory.Dump()[9:], offset)
		assert.Equal(7, rel.RelativeBase)
	}
}

func TestMachineGrowth(t *testing.T) {
	assert := assert.New(t)

	m := MustNew[int]("1101,2,3,1000,4,1000,4,2000,99")
	assert.Equal([]int{5, 0}, collect(t, m))
	assert.Equal(1001, m.Memory.Len())
	assert.Equal(0, m.Read(999))
	assert.Equal(0, m.Read(5000))
	assert.Equal(1001, m.Memory.Len())
}

func TestMachineHalt(t *testing.T) {
	assert := assert.New(t)

	m := MustNew[int]("104,1,99")
	assert.Equal([]int{1}, collect(t, m))
	ip, ticks := m.Ip, m.Ticks

	for range 3 {
		irq, err := m.Run()
		assert.NoError(err)
		assert.Equal(IRQ_HALT, irq.Kind)
		assert.Equal(ip, m.Ip)
		assert.Equal(ticks, m.Ticks)
	}

	m.Reset()
	assert.Equal(0, m.Ip)
	assert.Equal(0, m.Ticks)
	assert.Equal([]int{1}, collect(t, m))
}

func TestMachineReset(t *testing.T) {
	assert := assert.New(t)

	m := MustNew[int64]("109,1,204,-1,1001,100,1,100,1008,100,16,101,1006,101,0,99")

	first := collect(t, m)
	first_mem := m.Memory.Dump()

	m.Reset()
	assert.Equal(0, m.RelativeBase)
	assert.Equal(16, m.Memory.Len())

	assert.Equal(first, collect(t, m))
	assert.Equal(first_mem, m.Memory.Dump())

	// Reset also clears a pending input.
	m = MustNew[int64]("3,0,4,0,99")
	_, err := m.Run()
	assert.NoError(err)
	assert.True(m.Awaiting())
	m.Reset()
	assert.False(m.Awaiting())
	assert.ErrorIs(m.Input(1), ErrInputUnexpected)
}

func TestMachineFaults(t *testing.T) {
	assert := assert.New(t)

	table := [](struct {
		name    string
		program string
		ip      int
		err     error
	}){
		{"opcode", "1101,1,1,5,42,0", 4, ErrOpcode(0)},
		{"negative_opcode", "-1", 0, ErrOpcode(0)},
		{"mode", "301,0,0,0,99", 0, ErrMode(0)},
		{"address_read", "1,-1,0,0,99", 0, ErrAddress(0)},
		{"address_write", "1101,0,0,-4,99", 0, ErrAddress(0)},
		{"address_relative", "109,-10,204,3,99", 2, ErrAddress(0)},
		{"address_jump", "1105,1,-5,99", 0, ErrAddress(0)},
		{"immediate_write", "11101,1,1,0,99", 0, ErrImmediateWrite},
		{"immediate_input", "103,0,99", 0, ErrImmediateWrite},
	}

	for _, entry := range table {
		m := MustNew[int](entry.program)
		_, err := m.Run()
		assert.ErrorIs(err, entry.err, entry.name)
		var fault *ErrFault
		if assert.True(errors.As(err, &fault), entry.name) {
			assert.Equal(entry.ip, fault.Ip, entry.name)
		}
		// The faulting instruction did not retire.
		assert.Equal(entry.ip, m.Ip, entry.name)
	}
}

func TestMachineAmplifiers(t *testing.T) {
	assert := assert.New(t)

	chain := func(source string, phases ...int) (signal int) {
		amps := make([]*Machine[int], len(phases))
		for n, phase := range phases {
			amps[n] = MustNew[int](source)
			irq, err := amps[n].Run()
			assert.NoError(err)
			assert.Equal(IRQ_INPUT, irq.Kind)
			assert.NoError(amps[n].Input(phase))
		}

		for {
			for n, amp := range amps {
				irq, err := amp.Run()
				assert.NoError(err)
				if irq.Kind == IRQ_HALT {
					assert.Equal(0, n)
					return
				}
				assert.Equal(IRQ_INPUT, irq.Kind)
				assert.NoError(amp.Input(signal))
				irq, err = amp.Run()
				assert.NoError(err)
				assert.Equal(IRQ_OUTPUT, irq.Kind)
				signal = irq.Value
			}
		}
	}

	assert.Equal(43210, chain("3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0", 4, 3, 2, 1, 0))
	assert.Equal(139629729, chain("3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,"+
		"27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5", 9, 8, 7, 6, 5))
}

func TestMachineClone(t *testing.T) {
	assert := assert.New(t)

	m := MustNew[int]("3,0,4,0,99")
	_, err := m.Run()
	assert.NoError(err)

	clone := m.Clone()
	assert.True(clone.Awaiting())

	assert.NoError(m.Input(1))
	assert.NoError(clone.Input(2))
	assert.Equal([]int{1}, collect(t, m))
	assert.Equal([]int{2}, collect(t, clone))

	clone.Reset()
	assert.Equal(3, clone.Read(0))
	assert.Equal(1, m.Read(0))
}

func TestMachineString(t *testing.T) {
	assert := assert.New(t)

	m := MustNew[int]("3,0,99")
	assert.Equal(""+
		"   ip: 000000\n"+
		"   rb: 000000\n"+
		"ticks: 0\n"+
		" code: in.position\n"+
		"state: running\n", m.String())

	_, err := m.Run()
	assert.NoError(err)
	assert.Contains(m.String(), "state: awaiting\n")

	assert.NoError(m.Input(1))
	_, err = m.Run()
	assert.NoError(err)
	assert.Contains(m.String(), " code: halt\n")
	assert.Contains(m.String(), "state: halted\n")

	assert.Equal("output(5)", Interrupt[int]{Kind: IRQ_OUTPUT, Value: 5}.String())
	assert.Equal("input", Interrupt[int]{Kind: IRQ_INPUT}.String())
}
