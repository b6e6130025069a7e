package intcode

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// State is a copy of everything a Machine needs to continue execution.
type State[W Word] struct {
	Memory       []W  `cbor:"1,keyasint"`
	Ip           int  `cbor:"2,keyasint"`
	RelativeBase int  `cbor:"3,keyasint"`
	Ticks        int  `cbor:"4,keyasint"`
	Awaiting     bool `cbor:"5,keyasint,omitempty"`
	HasInput     bool `cbor:"6,keyasint,omitempty"`
	Input        W    `cbor:"7,keyasint,omitempty"`
}

// Snapshot returns a copy of the machine state.
func (m *Machine[W]) Snapshot() State[W] {
	return State[W]{
		Memory:       m.Memory.Dump(),
		Ip:           m.Ip,
		RelativeBase: m.RelativeBase,
		Ticks:        m.Ticks,
		Awaiting:     m.awaiting,
		HasInput:     m.hasInput,
		Input:        m.input,
	}
}

// Restore replaces the machine state with a copy of state. The pristine
// image used by Reset is not changed.
func (m *Machine[W]) Restore(state State[W]) {
	m.Memory.Load(state.Memory)
	m.Ip = state.Ip
	m.RelativeBase = state.RelativeBase
	m.Ticks = state.Ticks
	m.awaiting = state.Awaiting
	m.hasInput = state.HasInput
	m.input = state.Input
}

// Canonical mode, so equal states encode to equal bytes.
var cborEncMode cbor.EncMode

func init() {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		panic(fmt.Sprintf("intcode: failed to create CBOR enc mode: %v", err))
	}
	cborEncMode = em
}

// MarshalState serializes a machine state to CBOR bytes.
func MarshalState[W Word](state State[W]) ([]byte, error) {
	return cborEncMode.Marshal(&state)
}

// UnmarshalState deserializes a machine state from CBOR bytes.
func UnmarshalState[W Word](data []byte) (state State[W], err error) {
	if err = cbor.Unmarshal(data, &state); err != nil {
		err = fmt.Errorf("intcode: unmarshal state: %w", err)
	}
	return
}
