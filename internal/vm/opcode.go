package vm

type handler func(vm *VM, in Instruction) error

// handlers is indexed by Op. OpUnknown has no handler.
var handlers = [opCount]handler{
	OpCls:     (*VM).cls,
	OpRts:     (*VM).rts,
	OpJmp:     (*VM).jmp,
	OpJsr:     (*VM).jsr,
	OpSkeqImm: (*VM).skeqImm,
	OpSkneImm: (*VM).skneImm,
	OpSkeqReg: (*VM).skeqReg,
	OpMovImm:  (*VM).movImm,
	OpAddImm:  (*VM).addImm,
	OpMovReg:  (*VM).movReg,
	OpOr:      (*VM).or,
	OpAnd:     (*VM).and,
	OpXor:     (*VM).xor,
	OpAddReg:  (*VM).addReg,
	OpSub:     (*VM).sub,
	OpShr:     (*VM).shr,
	OpRsb:     (*VM).rsb,
	OpShl:     (*VM).shl,
	OpSkneReg: (*VM).skneReg,
	OpMvi:     (*VM).mvi,
	OpJmi:     (*VM).jmi,
	OpRand:    (*VM).rand,
	OpSprite:  (*VM).sprite,
	OpSkpr:    (*VM).skpr,
	OpSkup:    (*VM).skup,
	OpGdelay:  (*VM).gdelay,
	OpKey:     (*VM).key,
	OpSdelay:  (*VM).sdelay,
	OpSsound:  (*VM).ssound,
	OpAdi:     (*VM).adi,
	OpFont:    (*VM).font,
	OpBcd:     (*VM).bcd,
	OpStr:     (*VM).str,
	OpLdr:     (*VM).ldr,
}

// Every handler runs with PC already pointing at the next instruction.

// 00E0 - Clear screen
func (vm *VM) cls(_ Instruction) error {
	vm.display.Clear()
	return nil
}

// 00EE - Return from subroutine
func (vm *VM) rts(_ Instruction) error {
	if len(vm.stack) == 0 {
		return ErrStackUnderflow
	}

	n := len(vm.stack) - 1
	vm.pc = vm.stack[n]
	vm.stack = vm.stack[:n]
	return nil
}

// 1NNN - Jumps to address NNN
func (vm *VM) jmp(in Instruction) error {
	vm.pc = in.NNN
	return nil
}

// 2NNN - Calls subroutine at NNN
func (vm *VM) jsr(in Instruction) error {
	vm.stack = append(vm.stack, vm.pc)
	vm.pc = in.NNN
	return nil
}

// 3XNN - Skips the next instruction if VX equals NN
func (vm *VM) skeqImm(in Instruction) error {
	vm.skipIf(vm.registers[in.X] == in.KK)
	return nil
}

// 4XNN - Skips the next instruction if VX does not equal NN
func (vm *VM) skneImm(in Instruction) error {
	vm.skipIf(vm.registers[in.X] != in.KK)
	return nil
}

// 5XY0 - Skips the next instruction if VX equals VY
func (vm *VM) skeqReg(in Instruction) error {
	vm.skipIf(vm.registers[in.X] == vm.registers[in.Y])
	return nil
}

// 6XNN - Sets VX to NN
func (vm *VM) movImm(in Instruction) error {
	vm.registers[in.X] = in.KK
	return nil
}

// 7XNN - Adds NN to VX, no carry
func (vm *VM) addImm(in Instruction) error {
	vm.registers[in.X] += in.KK
	return nil
}

// 8XY0 - Sets VX to the value of VY
func (vm *VM) movReg(in Instruction) error {
	vm.registers[in.X] = vm.registers[in.Y]
	return nil
}

// 8XY1 - Sets VX to (VX OR VY)
func (vm *VM) or(in Instruction) error {
	vm.registers[in.X] |= vm.registers[in.Y]
	return nil
}

// 8XY2 - Sets VX to (VX AND VY)
func (vm *VM) and(in Instruction) error {
	vm.registers[in.X] &= vm.registers[in.Y]
	return nil
}

// 8XY3 - Sets VX to (VX XOR VY)
func (vm *VM) xor(in Instruction) error {
	vm.registers[in.X] ^= vm.registers[in.Y]
	return nil
}

// The arithmetic and shift instructions below compute from the operands as
// they were before the instruction and write VF last, so VF holds the flag
// even when it is also the destination.

// 8XY4 - Adds VY to VX. VF is set to 1 when there's a carry
func (vm *VM) addReg(in Instruction) error {
	sum := uint16(vm.registers[in.X]) + uint16(vm.registers[in.Y])

	vm.registers[in.X] = uint8(sum)
	vm.setFlag(sum > 0xFF)
	return nil
}

// 8XY5 - VY is subtracted from VX. VF is set to 1 when VX > VY
func (vm *VM) sub(in Instruction) error {
	x, y := vm.registers[in.X], vm.registers[in.Y]

	vm.registers[in.X] = x - y
	vm.setFlag(x > y)
	return nil
}

// 8XY6 - Shifts VX right by one. VF gets the bit shifted out
func (vm *VM) shr(in Instruction) error {
	x := vm.registers[in.X]

	vm.registers[in.X] = x >> 1
	vm.registers[flagRegister] = x & 0x01
	return nil
}

// 8XY7 - Sets VX to VY minus VX. VF is set to 1 when VY > VX
func (vm *VM) rsb(in Instruction) error {
	x, y := vm.registers[in.X], vm.registers[in.Y]

	vm.registers[in.X] = y - x
	vm.setFlag(y > x)
	return nil
}

// 8XYE - Shifts VX left by one. VF gets the bit shifted out
func (vm *VM) shl(in Instruction) error {
	x := vm.registers[in.X]

	vm.registers[in.X] = x << 1
	vm.registers[flagRegister] = x >> 7
	return nil
}

// 9XY0 - Skips the next instruction if VX doesn't equal VY
func (vm *VM) skneReg(in Instruction) error {
	vm.skipIf(vm.registers[in.X] != vm.registers[in.Y])
	return nil
}

// ANNN - Sets I to the address NNN
func (vm *VM) mvi(in Instruction) error {
	vm.index = in.NNN
	return nil
}

// BNNN - Jumps to the address NNN plus V0
func (vm *VM) jmi(in Instruction) error {
	vm.pc = in.NNN + uint16(vm.registers[0])
	return nil
}

// CXNN - Sets VX to a random number, masked by NN
func (vm *VM) rand(in Instruction) error {
	vm.registers[in.X] = uint8(vm.rng.UintN(256)) & in.KK
	return nil
}

// DXYN - Draws the 8xN sprite stored at I at (VX, VY). VF is cleared before
// the coordinates are read, then set to 1 if any pixel is switched off by the
// XOR. I is unchanged.
func (vm *VM) sprite(in Instruction) error {
	height := int(in.N)
	if err := vm.checkRange("sprite", vm.index, height); err != nil {
		return err
	}

	vm.setFlag(false)

	const width = 8
	xLocation, yLocation := int(vm.registers[in.X]), int(vm.registers[in.Y])

	hasCollision := false

	for y := 0; y < height; y++ {
		pixel := vm.memory[int(vm.index)+y]

		for x := 0; x < width; x++ {
			if pixel&(0x80>>x) == 0 {
				continue
			}

			if vm.display.SetPixel(xLocation+x, yLocation+y) {
				hasCollision = true
			}
		}
	}

	if hasCollision {
		vm.setFlag(true)
	}
	return nil
}

// EX9E - Skips the next instruction if the key stored in VX is pressed
func (vm *VM) skpr(in Instruction) error {
	vm.skipIf(vm.keypad.IsKeyPressed(Key(vm.registers[in.X])))
	return nil
}

// EXA1 - Skips the next instruction if the key stored in VX isn't pressed
func (vm *VM) skup(in Instruction) error {
	vm.skipIf(!vm.keypad.IsKeyPressed(Key(vm.registers[in.X])))
	return nil
}

// FX07 - Sets VX to the value of the delay timer
func (vm *VM) gdelay(in Instruction) error {
	vm.registers[in.X] = vm.delayTimer
	return nil
}

// FX0A - A key press is awaited, and then stored in VX. Execution stays
// frozen until DeliverKey.
func (vm *VM) key(in Instruction) error {
	vm.state = WaitingForKey{Register: in.X}
	return nil
}

// FX15 - Sets the delay timer to VX
func (vm *VM) sdelay(in Instruction) error {
	vm.delayTimer = vm.registers[in.X]
	return nil
}

// FX18 - Sets the sound timer to VX
func (vm *VM) ssound(in Instruction) error {
	vm.soundTimer = vm.registers[in.X]
	return nil
}

// FX1E - Adds VX to I. VF is set to 1 when I+VX leaves the 12-bit address
// range, 0 otherwise.
func (vm *VM) adi(in Instruction) error {
	sum := uint32(vm.index) + uint32(vm.registers[in.X])

	vm.index = uint16(sum)
	vm.setFlag(sum > 0x0FFF)
	return nil
}

// FX29 - Sets I to the location of the font glyph for the digit in VX
func (vm *VM) font(in Instruction) error {
	vm.index = FontAddr(vm.registers[in.X])
	return nil
}

// FX33 - Stores the decimal digits of VX at I, I+1 and I+2
func (vm *VM) bcd(in Instruction) error {
	if err := vm.checkRange("bcd", vm.index, 3); err != nil {
		return err
	}

	x := vm.registers[in.X]
	vm.memory[vm.index] = x / 100
	vm.memory[vm.index+1] = (x / 10) % 10
	vm.memory[vm.index+2] = x % 10
	return nil
}

// FX55 - Stores V0 to VX in memory starting at address I. I is unchanged
func (vm *VM) str(in Instruction) error {
	n := int(in.X) + 1
	if err := vm.checkRange("str", vm.index, n); err != nil {
		return err
	}

	copy(vm.memory[vm.index:], vm.registers[:n])
	return nil
}

// FX65 - Reads memory starting at address I into V0 to VX. I is unchanged
func (vm *VM) ldr(in Instruction) error {
	n := int(in.X) + 1
	if err := vm.checkRange("ldr", vm.index, n); err != nil {
		return err
	}

	copy(vm.registers[:n], vm.memory[vm.index:int(vm.index)+n])
	return nil
}

func (vm *VM) skipIf(cond bool) {
	if cond {
		vm.pc += InstructionSize
	}
}

func (vm *VM) setFlag(cond bool) {
	if cond {
		vm.registers[flagRegister] = 1
	} else {
		vm.registers[flagRegister] = 0
	}
}

// checkRange fails with a MemoryFault unless [addr, addr+n) lies in memory.
func (vm *VM) checkRange(op string, addr uint16, n int) error {
	if n > 0 && int(addr)+n > MemorySize {
		return &MemoryFault{Op: op, Addr: int(addr) + n - 1}
	}
	return nil
}
