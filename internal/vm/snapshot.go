package vm

// Snapshot is a copy of the machine registers, suitable for comparing and
// printing.
type Snapshot struct {
	PC         uint16
	I          uint16
	V          [RegisterCount]uint8
	Stack      []uint16
	DelayTimer uint8
	SoundTimer uint8
	State      string

	DecodeFaults int
}

func (vm *VM) Snapshot() Snapshot {
	return Snapshot{
		PC:           vm.pc,
		I:            vm.index,
		V:            vm.registers,
		Stack:        append([]uint16(nil), vm.stack...),
		DelayTimer:   vm.delayTimer,
		SoundTimer:   vm.soundTimer,
		State:        vm.state.String(),
		DecodeFaults: vm.decodeFaults,
	}
}
