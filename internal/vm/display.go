package vm

import "strings"

// Display is the monochrome screen the draw and clear instructions act on.
type Display interface {
	// SetPixel XOR-toggles one pixel and reports a collision, that is whether
	// the pixel is off after the toggle.
	SetPixel(x, y int) bool
	Clear()
}

var _ Display = (*Framebuffer)(nil)

// Framebuffer is an in-memory 64x32 Display. Coordinates wrap around the
// edges.
type Framebuffer struct {
	gfx   [ScreenWidth * ScreenHeight]uint8
	dirty bool
}

func NewFramebuffer() *Framebuffer {
	return &Framebuffer{dirty: true}
}

func (fb *Framebuffer) SetPixel(x, y int) bool {
	i := screenAddr(x, y)
	fb.gfx[i] ^= 1
	fb.dirty = true
	return fb.gfx[i] == 0
}

func (fb *Framebuffer) Clear() {
	for i := range fb.gfx {
		fb.gfx[i] = 0
	}
	fb.dirty = true
}

func (fb *Framebuffer) Pixel(x, y int) bool {
	return fb.gfx[screenAddr(x, y)] != 0
}

// Pixels exposes the row-major pixel buffer, one byte per pixel.
func (fb *Framebuffer) Pixels() []uint8 {
	return fb.gfx[:]
}

// Dirty reports whether the picture changed since the last ClearDirty.
func (fb *Framebuffer) Dirty() bool {
	return fb.dirty
}

func (fb *Framebuffer) ClearDirty() {
	fb.dirty = false
}

func (fb *Framebuffer) String() string {
	var sb strings.Builder
	sb.Grow((ScreenWidth + 1) * ScreenHeight)

	for y := 0; y < ScreenHeight; y++ {
		for x := 0; x < ScreenWidth; x++ {
			if fb.gfx[x+y*ScreenWidth] != 0 {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}

	return sb.String()
}

func screenAddr(x, y int) int {
	x %= ScreenWidth
	if x < 0 {
		x += ScreenWidth
	}

	y %= ScreenHeight
	if y < 0 {
		y += ScreenHeight
	}

	return ScreenWidth*y + x
}
