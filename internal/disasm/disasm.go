// Package disasm prints a listing of a CHIP-8 program image.
package disasm

import (
	"fmt"
	"io"

	"github.com/kapitanov/chip8emu/internal/vm"
)

// Write decodes program word by word as it would be laid out in memory and
// writes one line per word. Words that do not decode are listed as data.
func Write(w io.Writer, program []byte) error {
	if _, err := fmt.Fprintf(w, "; CHIP-8 program, %d bytes\n", len(program)); err != nil {
		return fmt.Errorf("writing header comment: %w", err)
	}

	addr := vm.ProgramStart
	for i := 0; i+1 < len(program); i += vm.InstructionSize {
		word := uint16(program[i])<<8 | uint16(program[i+1])

		if err := writeWord(w, addr, vm.Decode(word)); err != nil {
			return err
		}
		addr += vm.InstructionSize
	}

	if len(program)%2 != 0 {
		last := program[len(program)-1]
		if _, err := fmt.Fprintf(w, "0x%04x  %02X    .byte $%02X\n", addr, last, last); err != nil {
			return fmt.Errorf("writing trailing byte: %w", err)
		}
	}

	return nil
}

func writeWord(w io.Writer, addr uint16, in vm.Instruction) error {
	code := in.String()
	if in.Op == vm.OpUnknown {
		code = fmt.Sprintf(".word $%04X", in.Word)
	}

	if _, err := fmt.Fprintf(w, "0x%04x  %04X  %s\n", addr, in.Word, code); err != nil {
		return fmt.Errorf("writing instruction at 0x%04x: %w", addr, err)
	}

	return nil
}
