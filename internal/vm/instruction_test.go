package vm

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		word uint16
		op   Op
		text string
	}{
		{0x00E0, OpCls, "cls"},
		{0x00EE, OpRts, "rts"},
		{0x0123, OpUnknown, "unknown 0x0123"},
		{0x1234, OpJmp, "jmp 0x0234"},
		{0x2ABC, OpJsr, "jsr 0x0abc"},
		{0x3A12, OpSkeqImm, "skeq va, 18"},
		{0x4B00, OpSkneImm, "skne vb, 0"},
		{0x5120, OpSkeqReg, "skeq v1, v2"},
		{0x63FF, OpMovImm, "mov v3, 255"},
		{0x7401, OpAddImm, "add v4, 1"},
		{0x8120, OpMovReg, "mov v1, v2"},
		{0x8121, OpOr, "or v1, v2"},
		{0x8122, OpAnd, "and v1, v2"},
		{0x8123, OpXor, "xor v1, v2"},
		{0x8124, OpAddReg, "add v1, v2"},
		{0x8125, OpSub, "sub v1, v2"},
		{0x8106, OpShr, "shr v1"},
		{0x8127, OpRsb, "rsb v1, v2"},
		{0x810E, OpShl, "shl v1"},
		{0x8128, OpUnknown, "unknown 0x8128"},
		{0x9120, OpSkneReg, "skne v1, v2"},
		{0xA300, OpMvi, "mvi 0x0300"},
		{0xB200, OpJmi, "jmi 0x0200"},
		{0xC50F, OpRand, "rand v5, 15"},
		{0xD125, OpSprite, "sprite v1, v2, 5"},
		{0xE69E, OpSkpr, "skpr v6"},
		{0xE6A1, OpSkup, "skup v6"},
		{0xE600, OpUnknown, "unknown 0xE600"},
		{0xF707, OpGdelay, "gdelay v7"},
		{0xF70A, OpKey, "key v7"},
		{0xF715, OpSdelay, "sdelay v7"},
		{0xF718, OpSsound, "ssound v7"},
		{0xF71E, OpAdi, "adi v7"},
		{0xF729, OpFont, "font v7"},
		{0xF733, OpBcd, "bcd v7"},
		{0xF755, OpStr, "str v0-v7"},
		{0xF765, OpLdr, "ldr v0-v7"},
		{0xF799, OpUnknown, "unknown 0xF799"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			in := Decode(tt.word)
			assert.Equal(t, tt.op, in.Op)
			assert.Equal(t, tt.word, in.Word)
			assert.Equal(t, tt.text, in.String())
		})
	}
}

func TestDecodeFields(t *testing.T) {
	in := Decode(0xD7A3)

	assert.Equal(t, uint8(0x7), in.X)
	assert.Equal(t, uint8(0xA), in.Y)
	assert.Equal(t, uint8(0x3), in.N)
	assert.Equal(t, uint8(0xA3), in.KK)
	assert.Equal(t, uint16(0x7A3), in.NNN)
}

func TestEveryKnownOpHasHandler(t *testing.T) {
	for op := OpUnknown + 1; op < opCount; op++ {
		assert.True(t, handlers[op] != nil, op.String())
	}
	assert.True(t, handlers[OpUnknown] == nil)
}
