package vm

import (
	"strings"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestFramebufferSetPixel(t *testing.T) {
	fb := NewFramebuffer()
	fb.ClearDirty()

	assert.False(t, fb.SetPixel(3, 4))
	assert.True(t, fb.Pixel(3, 4))
	assert.True(t, fb.Dirty())

	assert.True(t, fb.SetPixel(3, 4))
	assert.False(t, fb.Pixel(3, 4))
}

func TestFramebufferWrap(t *testing.T) {
	fb := NewFramebuffer()

	fb.SetPixel(ScreenWidth+1, ScreenHeight+2)
	assert.True(t, fb.Pixel(1, 2))

	fb.SetPixel(-1, -1)
	assert.True(t, fb.Pixel(ScreenWidth-1, ScreenHeight-1))
}

func TestFramebufferClear(t *testing.T) {
	fb := NewFramebuffer()
	fb.SetPixel(0, 0)
	fb.ClearDirty()

	fb.Clear()
	assert.False(t, fb.Pixel(0, 0))
	assert.True(t, fb.Dirty())
	assert.Equal(t, strings.Repeat(strings.Repeat(".", ScreenWidth)+"\n", ScreenHeight), fb.String())
}

func TestKeys(t *testing.T) {
	keys := NewKeys()

	keys.Press(KeyA)
	assert.True(t, keys.IsKeyPressed(KeyA))
	assert.False(t, keys.IsKeyPressed(KeyB))

	keys.Release(KeyA)
	assert.False(t, keys.IsKeyPressed(KeyA))

	keys.Press(Key(0x20))
	assert.False(t, keys.IsKeyPressed(Key(0x20)))
}
