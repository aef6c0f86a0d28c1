// Package term runs the emulator in a terminal. Two pixel rows share one
// character cell, drawn with half-block glyphs.
package term

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/kapitanov/chip8emu/internal/machine"
	"github.com/kapitanov/chip8emu/internal/vm"
)

// DefaultHoldFrames is how long a key stays pressed after a keystroke.
// Terminals report key presses only, never releases.
const DefaultHoldFrames = 6

const (
	Width  = vm.ScreenWidth
	Height = vm.ScreenHeight / 2
)

var _ machine.Frontend = (*Terminal)(nil)

type Terminal struct {
	screen tcell.Screen
	events chan tcell.Event
	style  tcell.Style

	done    chan struct{}
	stopped chan struct{}

	holdFrames int
	held       map[vm.Key]int // Frames left until release
}

// New opens the controlling terminal.
func New(holdFrames int) (*Terminal, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create terminal screen: %w", err)
	}

	return NewWithScreen(screen, holdFrames)
}

// NewWithScreen initializes screen and starts reading its events.
func NewWithScreen(screen tcell.Screen, holdFrames int) (*Terminal, error) {
	if holdFrames <= 0 {
		holdFrames = DefaultHoldFrames
	}

	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init terminal screen: %w", err)
	}

	style := tcell.StyleDefault.
		Foreground(tcell.NewHexColor(0xbea700)).
		Background(tcell.ColorBlack)

	screen.SetStyle(style)
	screen.HideCursor()
	screen.Clear()

	t := &Terminal{
		screen:     screen,
		events:     make(chan tcell.Event, 64),
		done:       make(chan struct{}),
		stopped:    make(chan struct{}),
		style:      style,
		holdFrames: holdFrames,
		held:       make(map[vm.Key]int),
	}

	go t.pollEvents()
	slog.Debug("term: screen ready")

	return t, nil
}

// pollEvents forwards screen events until the screen is finalized or
// Shutdown is called.
func (t *Terminal) pollEvents() {
	defer close(t.stopped)
	defer close(t.events)

	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}

		select {
		case t.events <- ev:
		case <-t.done:
			return
		}
	}
}

// Shutdown restores the terminal and waits for the event goroutine to exit.
func (t *Terminal) Shutdown() {
	close(t.done)
	t.screen.Fini()
	<-t.stopped
}

func (t *Terminal) ReadInput(keyDown func(vm.Key), keyUp func(vm.Key)) error {
	for key, left := range t.held {
		if left <= 1 {
			delete(t.held, key)
			keyUp(key)
		} else {
			t.held[key] = left - 1
		}
	}

	for {
		select {
		case ev, ok := <-t.events:
			if !ok {
				return machine.ErrQuit
			}
			if err := t.processEvent(ev, keyDown); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (t *Terminal) processEvent(ev tcell.Event, keyDown func(vm.Key)) error {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			slog.Debug("term: exit requested")
			return machine.ErrQuit
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			return machine.ErrReboot
		case tcell.KeyRune:
			key, ok := keyMap[ev.Rune()]
			if !ok {
				return nil
			}

			if _, pressed := t.held[key]; !pressed {
				keyDown(key)
			}
			t.held[key] = t.holdFrames
		}
	}

	return nil
}

// Same layout as the SDL frontend, upper case included.
var keyMap = map[rune]vm.Key{
	'x': vm.Key0, 'X': vm.Key0,
	'1': vm.Key1,
	'2': vm.Key2,
	'3': vm.Key3,
	'q': vm.Key4, 'Q': vm.Key4,
	'w': vm.Key5, 'W': vm.Key5,
	'e': vm.Key6, 'E': vm.Key6,
	'a': vm.Key7, 'A': vm.Key7,
	's': vm.Key8, 'S': vm.Key8,
	'd': vm.Key9, 'D': vm.Key9,
	'z': vm.KeyA, 'Z': vm.KeyA,
	'c': vm.KeyB, 'C': vm.KeyB,
	'4': vm.KeyC,
	'r': vm.KeyD, 'R': vm.KeyD,
	'f': vm.KeyE, 'F': vm.KeyE,
	'v': vm.KeyF, 'V': vm.KeyF,
}

func (t *Terminal) Draw(fb *vm.Framebuffer) error {
	for row := 0; row < Height; row++ {
		for x := 0; x < Width; x++ {
			glyph := halfBlock(fb.Pixel(x, row*2), fb.Pixel(x, row*2+1))
			t.screen.SetContent(x, row, glyph, nil, t.style)
		}
	}

	t.screen.Show()
	return nil
}

func halfBlock(top, bottom bool) rune {
	switch {
	case top && bottom:
		return '█'
	case top:
		return '▀'
	case bottom:
		return '▄'
	default:
		return ' '
	}
}
