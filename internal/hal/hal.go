package hal

import (
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/kapitanov/chip8emu/internal/machine"
	"github.com/kapitanov/chip8emu/internal/vm"
	"github.com/veandco/go-sdl2/sdl"
)

const DefaultScale = 16

const (
	bgColor = uint32(0x000000)
	fgColor = uint32(0xbea700)
)

var _ machine.Frontend = (*HAL)(nil)

// HAL is an SDL window frontend.
type HAL struct {
	window          *sdl.Window
	renderer        *sdl.Renderer
	texture         *sdl.Texture
	backBuffer      []uint32
	backBufferPitch int
}

func New(scale int) (*HAL, error) {
	if scale <= 0 {
		scale = DefaultScale
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("failed to init sdl: %w", err)
	}

	width, height := int32(vm.ScreenWidth*scale), int32(vm.ScreenHeight*scale)

	window, err := sdl.CreateWindow("CHIP-8", sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, width, height, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("failed to create sdl window: %w", err)
	}
	slog.Debug("hal: create window", "width", width, "height", height)

	hal := &HAL{
		window:          window,
		backBuffer:      make([]uint32, vm.ScreenWidth*vm.ScreenHeight),
		backBufferPitch: vm.ScreenWidth * int(unsafe.Sizeof(uint32(0))),
	}

	hal.renderer, err = sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		hal.Shutdown()
		return nil, fmt.Errorf("failed to create sdl renderer: %w", err)
	}
	if err = hal.renderer.SetLogicalSize(width, height); err != nil {
		hal.Shutdown()
		return nil, fmt.Errorf("failed to resize sdl renderer: %w", err)
	}
	slog.Debug("hal: create renderer")

	hal.texture, err = hal.renderer.CreateTexture(sdl.PIXELFORMAT_ARGB8888, sdl.TEXTUREACCESS_STREAMING, vm.ScreenWidth, vm.ScreenHeight)
	if err != nil {
		hal.Shutdown()
		return nil, fmt.Errorf("failed to create sdl texture: %w", err)
	}
	slog.Debug("hal: create texture")

	return hal, nil
}

func (hal *HAL) Shutdown() {
	if hal.texture != nil {
		if err := hal.texture.Destroy(); err != nil {
			slog.Error("failed to destroy sdl texture", "err", err)
		}
	}

	if hal.renderer != nil {
		if err := hal.renderer.Destroy(); err != nil {
			slog.Error("failed to destroy sdl renderer", "err", err)
		}
	}

	if err := hal.window.Destroy(); err != nil {
		slog.Error("failed to destroy sdl window", "err", err)
	}

	sdl.Quit()
}

func (hal *HAL) ReadInput(keyDown func(vm.Key), keyUp func(vm.Key)) error {
	for e := sdl.PollEvent(); e != nil; e = sdl.PollEvent() {
		switch e := e.(type) {
		case *sdl.QuitEvent:
			slog.Debug("hal: exit requested")
			return machine.ErrQuit

		case *sdl.KeyboardEvent:
			if e.Repeat != 0 {
				continue
			}

			if e.Type == sdl.KEYDOWN {
				if err := processKeyDown(e.Keysym.Scancode, keyDown); err != nil {
					return err
				}
			} else if e.Type == sdl.KEYUP {
				processKeyUp(e.Keysym.Scancode, keyUp)
			}
		}
	}

	return nil
}

func processKeyDown(code sdl.Scancode, callback func(vm.Key)) error {
	switch code {
	case sdl.SCANCODE_BACKSPACE:
		return machine.ErrReboot
	case sdl.SCANCODE_ESCAPE:
		return machine.ErrQuit
	}

	if key, ok := keyMap[code]; ok {
		callback(key)
	}

	return nil
}

func processKeyUp(code sdl.Scancode, callback func(vm.Key)) {
	if key, ok := keyMap[code]; ok {
		callback(key)
	}
}

// Physical                Logical
// ================        =================
// | 1 | 2 | 3 | 4 |       | 1 | 2 | 3 | C |
// | q | w | e | r |       | 4 | 5 | 6 | D |
// | a | s | d | f |  <=>  | 7 | 8 | 9 | E |
// | z | x | c | v |       | A | 0 | B | F |
// ================        =================
var keyMap = map[sdl.Scancode]vm.Key{
	sdl.SCANCODE_X: vm.Key0,
	sdl.SCANCODE_1: vm.Key1,
	sdl.SCANCODE_2: vm.Key2,
	sdl.SCANCODE_3: vm.Key3,
	sdl.SCANCODE_Q: vm.Key4,
	sdl.SCANCODE_W: vm.Key5,
	sdl.SCANCODE_E: vm.Key6,
	sdl.SCANCODE_A: vm.Key7,
	sdl.SCANCODE_S: vm.Key8,
	sdl.SCANCODE_D: vm.Key9,
	sdl.SCANCODE_Z: vm.KeyA,
	sdl.SCANCODE_C: vm.KeyB,
	sdl.SCANCODE_4: vm.KeyC,
	sdl.SCANCODE_R: vm.KeyD,
	sdl.SCANCODE_F: vm.KeyE,
	sdl.SCANCODE_V: vm.KeyF,
}

func (hal *HAL) Draw(fb *vm.Framebuffer) error {
	fillBackBuffer(hal.backBuffer, fb.Pixels())

	backBufferPtr := unsafe.Pointer(&hal.backBuffer[0])
	if err := hal.texture.Update(nil, backBufferPtr, hal.backBufferPitch); err != nil {
		return fmt.Errorf("failed to update sdl texture: %w", err)
	}

	if err := hal.renderer.Clear(); err != nil {
		return fmt.Errorf("failed to clear sdl renderer: %w", err)
	}

	if err := hal.renderer.Copy(hal.texture, nil, nil); err != nil {
		return fmt.Errorf("failed to copy sdl texture to renderer: %w", err)
	}

	hal.renderer.Present()
	return nil
}

func fillBackBuffer(dst []uint32, gfx []uint8) {
	for i, pixel := range gfx {
		color := bgColor
		if pixel != 0 {
			color = fgColor
		}
		dst[i] = color
	}
}
