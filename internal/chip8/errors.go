package chip8

import (
	"errors"
	"fmt"
)

// Error kinds reported by the processor. Returned errors wrap one of these,
// test for them with errors.Is.
var (
	ErrProgramSize    = errors.New("invalid program size")
	ErrProgramCounter = errors.New("program counter out of bounds")
	ErrIndexRegister  = errors.New("index register out of bounds")
	ErrOpcode         = errors.New("invalid opcode")
	ErrStackEmpty     = errors.New("cannot pop from empty stack")
	ErrStackOverflow  = errors.New("call stack overflow")
	ErrKeyIndex       = errors.New("key index out of range")
)

// AddressError is returned when a memory access would fall outside of the
// address space. Kind is ErrProgramCounter or ErrIndexRegister.
type AddressError struct {
	Kind    error
	Address uint16
}

func (e *AddressError) Error() string {
	return fmt.Sprintf("%s: address $%04X", e.Kind, e.Address)
}

func (e *AddressError) Unwrap() error {
	return e.Kind
}

// OpcodeError is returned for an instruction word that does not decode to
// any instruction of the base instruction set.
type OpcodeError struct {
	Opcode uint16
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("%s: $%04X", ErrOpcode, e.Opcode)
}

func (e *OpcodeError) Unwrap() error {
	return ErrOpcode
}

// KeyIndexError is returned for a key index outside of 0x0-0xF.
type KeyIndexError struct {
	Key int
}

func (e *KeyIndexError) Error() string {
	return fmt.Sprintf("%s: %d", ErrKeyIndex, e.Key)
}

func (e *KeyIndexError) Unwrap() error {
	return ErrKeyIndex
}
