// Package machine drives a CHIP-8 VM: it pumps input from a frontend, runs a
// fixed number of instructions per frame, ticks the delay timer and hands the
// picture back to the frontend.
package machine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kapitanov/chip8emu/internal/vm"
)

var (
	ErrReboot = errors.New("reboot")
	ErrQuit   = errors.New("quit")
)

// Frontend is the window or terminal the machine runs in.
type Frontend interface {
	// ReadInput drains pending input events. It returns ErrQuit or ErrReboot
	// when the user asks for it.
	ReadInput(keyDown func(vm.Key), keyUp func(vm.Key)) error
	Draw(fb *vm.Framebuffer) error
}

type Config struct {
	Speed   int // Instructions per frame
	TimerHz int // Frames per second, also the delay timer rate
}

func DefaultConfig() Config {
	return Config{
		Speed:   10,
		TimerHz: 60,
	}
}

type Machine struct {
	vm       *vm.VM
	fb       *vm.Framebuffer
	keys     *vm.Keys
	frontend Frontend
	program  []byte
	cfg      Config
	logger   *slog.Logger

	halted bool
}

func New(program []byte, frontend Frontend, cfg Config, opts ...vm.Option) (*Machine, error) {
	if cfg.Speed < 0 {
		return nil, fmt.Errorf("invalid speed %d", cfg.Speed)
	}
	if cfg.TimerHz <= 0 {
		return nil, fmt.Errorf("invalid timer rate %d Hz", cfg.TimerHz)
	}

	m := &Machine{
		fb:       vm.NewFramebuffer(),
		keys:     vm.NewKeys(),
		frontend: frontend,
		program:  program,
		cfg:      cfg,
		logger:   slog.Default(),
	}
	m.vm = vm.New(m.fb, m.keys, opts...)

	if err := m.vm.Load(program); err != nil {
		return nil, fmt.Errorf("unable to load program: %w", err)
	}

	return m, nil
}

func (m *Machine) VM() *vm.VM {
	return m.vm
}

func (m *Machine) Framebuffer() *vm.Framebuffer {
	return m.fb
}

// Run calls Frame at the configured timer rate until the context is done or
// the frontend asks to quit.
func (m *Machine) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(m.cfg.TimerHz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}

		err := m.Frame()
		if err == nil {
			continue
		}

		if errors.Is(err, ErrQuit) {
			return nil
		}

		if errors.Is(err, ErrReboot) {
			if err := m.Reboot(); err != nil {
				return err
			}
			continue
		}

		return err
	}
}

// Frame runs one timer period: input, Speed instructions, one timer tick and
// a redraw when the picture changed.
func (m *Machine) Frame() error {
	if err := m.frontend.ReadInput(m.vm.DeliverKey, m.vm.ReleaseKey); err != nil {
		return err
	}

	if err := m.runInstructions(); err != nil {
		return err
	}

	m.vm.TickTimer()

	if m.fb.Dirty() {
		if err := m.frontend.Draw(m.fb); err != nil {
			return err
		}
		m.fb.ClearDirty()
	}

	return nil
}

func (m *Machine) runInstructions() error {
	if m.halted {
		return nil
	}

	for i := 0; i < m.cfg.Speed; i++ {
		if m.vm.Paused() {
			return nil
		}

		if err := m.vm.Step(); err != nil {
			return err
		}

		if m.vm.Looped() {
			m.halted = true
			m.logger.Info("program halted", "pc", fmt.Sprintf("0x%04x", m.vm.PC()))
			return nil
		}
	}

	return nil
}

// Reboot resets the VM and reloads the program.
func (m *Machine) Reboot() error {
	m.logger.Info("reboot")

	m.vm.Reset()
	m.halted = false

	if err := m.vm.Load(m.program); err != nil {
		return fmt.Errorf("unable to load program: %w", err)
	}

	return nil
}

// Halted reports whether the program has jumped to itself.
func (m *Machine) Halted() bool {
	return m.halted
}
