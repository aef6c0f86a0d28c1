package vm

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
)

const (
	MemorySize    = 4096
	RegisterCount = 16
	ScreenWidth   = 64
	ScreenHeight  = 32
	KeyCount      = 16

	ProgramStart    = uint16(0x200)
	MaxProgramSize  = MemorySize - int(ProgramStart)
	InstructionSize = 2

	flagRegister = 0x0F
)

type VM struct {
	memory    [MemorySize]uint8    // Memory (4k)
	registers [RegisterCount]uint8 // V registers (V0-VF)

	stack []uint16 // Return addresses

	pc    uint16 // Program counter
	index uint16 // Index register

	delayTimer uint8 // Delay timer
	soundTimer uint8 // Sound timer, stored but never sounded

	state State

	display Display
	keypad  Keypad

	logger *slog.Logger
	rng    *rand.Rand

	decodeFaults int
	looped       bool
}

type Option func(vm *VM)

// WithLogger sets the sink for trace output and decode faults.
func WithLogger(logger *slog.Logger) Option {
	return func(vm *VM) {
		vm.logger = logger
	}
}

// WithRand replaces the random source used by the rnd instruction.
func WithRand(src rand.Source) Option {
	return func(vm *VM) {
		vm.rng = rand.New(src)
	}
}

func New(display Display, keypad Keypad, opts ...Option) *VM {
	vm := &VM{
		display: display,
		keypad:  keypad,
		logger:  slog.Default(),
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}

	for _, opt := range opts {
		opt(vm)
	}

	vm.Reset()
	return vm
}

// Reset puts the machine back into its power-on state. Any loaded program is
// discarded.
func (vm *VM) Reset() {
	vm.pc = ProgramStart
	vm.index = 0
	vm.stack = vm.stack[:0]
	vm.registers = [RegisterCount]uint8{}
	vm.memory = [MemorySize]uint8{}
	vm.delayTimer = 0
	vm.soundTimer = 0
	vm.state = Running{}
	vm.decodeFaults = 0
	vm.looped = false

	vm.display.Clear()

	vm.logger.Debug("load font", "at", fmt.Sprintf("0x%04x", FontStart), "n", len(font))
	copy(vm.memory[FontStart:], font[:])
}

func (vm *VM) Load(program []byte) error {
	if len(program) > MaxProgramSize {
		return fmt.Errorf("%w: %d bytes, at most %d fit", ErrProgramTooLarge, len(program), MaxProgramSize)
	}

	vm.logger.Info("load program", "at", fmt.Sprintf("0x%04x", ProgramStart), "n", len(program))
	copy(vm.memory[ProgramStart:], program)
	return nil
}

// Step executes exactly one instruction. It does nothing while the machine is
// waiting for a key. Errors are returned as *Fault.
func (vm *VM) Step() error {
	if vm.Paused() {
		return nil
	}

	word, err := vm.fetch()
	if err != nil {
		return &Fault{PC: vm.pc, Err: err}
	}

	addr := vm.pc
	vm.pc += InstructionSize

	instr := Decode(word)

	if vm.logger.Enabled(context.Background(), slog.LevelDebug) {
		vm.logger.Debug(
			"exec",
			"pc", fmt.Sprintf("0x%04x", addr),
			"opcode", fmt.Sprintf("0x%04x", word),
			"instr", instr.String(),
		)
	}

	if instr.Op == OpUnknown {
		vm.decodeFault(&DecodeError{PC: addr, Word: word})
		return nil
	}

	if err := handlers[instr.Op](vm, instr); err != nil {
		return &Fault{PC: addr, Err: err}
	}

	vm.looped = instr.Op == OpJmp && vm.pc == addr
	return nil
}

// TickTimer advances the delay timer by one tick. The driver calls it at a
// fixed rate, classically 60 Hz.
func (vm *VM) TickTimer() {
	if vm.Paused() {
		return
	}

	if vm.delayTimer > 0 {
		vm.delayTimer--
	}
}

// DeliverKey reports a key-down event. It is the only way out of the
// WaitingForKey state. Keys above KeyF are ignored.
func (vm *VM) DeliverKey(key Key) {
	if int(key) >= KeyCount {
		return
	}

	vm.keypad.Press(key)

	if waiting, ok := vm.state.(WaitingForKey); ok {
		vm.registers[waiting.Register] = uint8(key)
		vm.state = Running{}
	}
}

func (vm *VM) ReleaseKey(key Key) {
	vm.keypad.Release(key)
}

func (vm *VM) fetch() (uint16, error) {
	if int(vm.pc)+1 >= MemorySize {
		return 0, &MemoryFault{Op: "fetch", Addr: int(vm.pc) + 1}
	}

	hi := vm.memory[vm.pc]
	lo := vm.memory[vm.pc+1]

	return uint16(hi)<<8 | uint16(lo), nil // Op code is two bytes
}

// decodeFault records an instruction that could not be decoded. It is
// treated as a no-op beyond the PC advance.
func (vm *VM) decodeFault(err *DecodeError) {
	vm.decodeFaults++
	vm.logger.Warn("decode fault",
		"pc", fmt.Sprintf("0x%04x", err.PC),
		"opcode", fmt.Sprintf("0x%04x", err.Word),
		"err", err,
	)
}

func (vm *VM) PC() uint16           { return vm.pc }
func (vm *VM) I() uint16            { return vm.index }
func (vm *VM) V(register int) uint8 { return vm.registers[register&0x0F] }
func (vm *VM) DelayTimer() uint8    { return vm.delayTimer }
func (vm *VM) SoundTimer() uint8    { return vm.soundTimer }
func (vm *VM) State() State         { return vm.state }
func (vm *VM) DecodeFaults() int    { return vm.decodeFaults }

// Paused reports whether execution is frozen waiting for a key press.
func (vm *VM) Paused() bool {
	_, waiting := vm.state.(WaitingForKey)
	return waiting
}

// Looped reports whether the last executed instruction jumped to itself,
// which is how most programs halt.
func (vm *VM) Looped() bool {
	return vm.looped
}

// Memory returns a copy of length n of memory starting at addr.
func (vm *VM) Memory(addr uint16, n int) []uint8 {
	end := min(int(addr)+n, MemorySize)
	if int(addr) >= end {
		return nil
	}

	out := make([]uint8, end-int(addr))
	copy(out, vm.memory[addr:end])
	return out
}
