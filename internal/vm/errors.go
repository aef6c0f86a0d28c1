package vm

import (
	"errors"
	"fmt"
)

var (
	ErrProgramTooLarge = errors.New("program too large")
	ErrStackUnderflow  = errors.New("return with empty call stack")
	ErrMemoryFault     = errors.New("memory access out of range")
	ErrUnknownOpcode   = errors.New("unknown opcode")
)

// DecodeError describes an instruction word that does not map to any opcode.
type DecodeError struct {
	PC   uint16
	Word uint16
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unknown op code 0x%04X at 0x%04x", e.Word, e.PC)
}

func (e *DecodeError) Unwrap() error {
	return ErrUnknownOpcode
}

// MemoryFault is returned by Step when an instruction would touch an address
// outside of memory. Nothing has been written when it is returned.
type MemoryFault struct {
	Op   string
	Addr int
}

func (e *MemoryFault) Error() string {
	return fmt.Sprintf("%s: address 0x%04x out of range", e.Op, e.Addr)
}

func (e *MemoryFault) Unwrap() error {
	return ErrMemoryFault
}

// Fault wraps an error returned by Step with the address of the instruction
// that caused it.
type Fault struct {
	PC  uint16
	Err error
}

func (e *Fault) Error() string {
	return fmt.Sprintf("at 0x%04x: %v", e.PC, e.Err)
}

func (e *Fault) Unwrap() error {
	return e.Err
}
