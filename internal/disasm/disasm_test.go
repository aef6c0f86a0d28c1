package disasm

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/retrogolib/assert"
)

func TestWrite(t *testing.T) {
	program := []byte{
		0x00, 0xE0,
		0x60, 0x05,
		0xA2, 0x0A,
		0xD0, 0x15,
		0x12, 0x08,
		0xFF, 0xFF,
		0xF0,
	}

	var buf bytes.Buffer
	assert.NoError(t, Write(&buf, program))

	want := `; CHIP-8 program, 13 bytes
0x0200  00E0  cls
0x0202  6005  mov v0, 5
0x0204  A20A  mvi 0x020a
0x0206  D015  sprite v0, v1, 5
0x0208  1208  jmp 0x0208
0x020a  FFFF  .word $FFFF
0x020c  F0    .byte $F0
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("listing: (-want, +got)\n%s", diff)
	}
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	assert.NoError(t, Write(&buf, nil))
	assert.Equal(t, "; CHIP-8 program, 0 bytes\n", buf.String())
}
