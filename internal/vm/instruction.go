package vm

import "fmt"

// Op identifies a decoded instruction.
type Op uint8

const (
	OpUnknown Op = iota
	OpCls        // 00E0
	OpRts        // 00EE
	OpJmp        // 1nnn
	OpJsr        // 2nnn
	OpSkeqImm    // 3xkk
	OpSkneImm    // 4xkk
	OpSkeqReg    // 5xy0
	OpMovImm     // 6xkk
	OpAddImm     // 7xkk
	OpMovReg     // 8xy0
	OpOr         // 8xy1
	OpAnd        // 8xy2
	OpXor        // 8xy3
	OpAddReg     // 8xy4
	OpSub        // 8xy5
	OpShr        // 8xy6
	OpRsb        // 8xy7
	OpShl        // 8xyE
	OpSkneReg    // 9xy0
	OpMvi        // Annn
	OpJmi        // Bnnn
	OpRand       // Cxkk
	OpSprite     // Dxyn
	OpSkpr       // Ex9E
	OpSkup       // ExA1
	OpGdelay     // Fx07
	OpKey        // Fx0A
	OpSdelay     // Fx15
	OpSsound     // Fx18
	OpAdi        // Fx1E
	OpFont       // Fx29
	OpBcd        // Fx33
	OpStr        // Fx55
	OpLdr        // Fx65

	opCount
)

var opNames = [opCount]string{
	OpUnknown: "unknown",
	OpCls:     "cls",
	OpRts:     "rts",
	OpJmp:     "jmp",
	OpJsr:     "jsr",
	OpSkeqImm: "skeq",
	OpSkneImm: "skne",
	OpSkeqReg: "skeq",
	OpMovImm:  "mov",
	OpAddImm:  "add",
	OpMovReg:  "mov",
	OpOr:      "or",
	OpAnd:     "and",
	OpXor:     "xor",
	OpAddReg:  "add",
	OpSub:     "sub",
	OpShr:     "shr",
	OpRsb:     "rsb",
	OpShl:     "shl",
	OpSkneReg: "skne",
	OpMvi:     "mvi",
	OpJmi:     "jmi",
	OpRand:    "rand",
	OpSprite:  "sprite",
	OpSkpr:    "skpr",
	OpSkup:    "skup",
	OpGdelay:  "gdelay",
	OpKey:     "key",
	OpSdelay:  "sdelay",
	OpSsound:  "ssound",
	OpAdi:     "adi",
	OpFont:    "font",
	OpBcd:     "bcd",
	OpStr:     "str",
	OpLdr:     "ldr",
}

func (op Op) String() string {
	if op >= opCount {
		return opNames[OpUnknown]
	}
	return opNames[op]
}

// Instruction is a decoded instruction word. All operand fields are filled
// in regardless of the opcode; each instruction reads the ones it needs.
type Instruction struct {
	Op   Op
	Word uint16

	X   uint8  // second nibble, register index
	Y   uint8  // third nibble, register index
	N   uint8  // low nibble
	KK  uint8  // low byte, immediate
	NNN uint16 // low 12 bits, address
}

// 8xy_ instructions, by low nibble.
var aluOps = [16]Op{
	0x0: OpMovReg,
	0x1: OpOr,
	0x2: OpAnd,
	0x3: OpXor,
	0x4: OpAddReg,
	0x5: OpSub,
	0x6: OpShr,
	0x7: OpRsb,
	0xE: OpShl,
}

// Ex__ instructions, by low byte.
var keyOps = map[uint8]Op{
	0x9E: OpSkpr,
	0xA1: OpSkup,
}

// Fx__ instructions, by low byte.
var miscOps = map[uint8]Op{
	0x07: OpGdelay,
	0x0A: OpKey,
	0x15: OpSdelay,
	0x18: OpSsound,
	0x1E: OpAdi,
	0x29: OpFont,
	0x33: OpBcd,
	0x55: OpStr,
	0x65: OpLdr,
}

// opClasses maps the top nibble to an opcode for classes without a secondary
// dispatch.
var opClasses = [16]Op{
	0x1: OpJmp,
	0x2: OpJsr,
	0x3: OpSkeqImm,
	0x4: OpSkneImm,
	0x5: OpSkeqReg,
	0x6: OpMovImm,
	0x7: OpAddImm,
	0x9: OpSkneReg,
	0xA: OpMvi,
	0xB: OpJmi,
	0xC: OpRand,
	0xD: OpSprite,
}

// Decode splits an instruction word into its fields and identifies the
// opcode. Unknown words decode to OpUnknown.
func Decode(word uint16) Instruction {
	return Instruction{
		Op:   decodeOp(word),
		Word: word,
		X:    uint8(word>>8) & 0x0F,
		Y:    uint8(word>>4) & 0x0F,
		N:    uint8(word) & 0x0F,
		KK:   uint8(word),
		NNN:  word & 0x0FFF,
	}
}

func decodeOp(word uint16) Op {
	class := word >> 12

	switch class {
	case 0x0:
		switch word {
		case 0x00E0:
			return OpCls
		case 0x00EE:
			return OpRts
		}
		return OpUnknown

	case 0x8:
		return aluOps[word&0x000F]

	case 0xE:
		return keyOps[uint8(word)]

	case 0xF:
		return miscOps[uint8(word)]
	}

	return opClasses[class]
}

// String renders the instruction as assembly.
func (in Instruction) String() string {
	name := in.Op.String()

	switch in.Op {
	case OpCls, OpRts:
		return name
	case OpJmp, OpJsr, OpMvi, OpJmi:
		return fmt.Sprintf("%s 0x%04x", name, in.NNN)
	case OpSkeqImm, OpSkneImm, OpMovImm, OpAddImm, OpRand:
		return fmt.Sprintf("%s v%x, %d", name, in.X, in.KK)
	case OpSkeqReg, OpSkneReg, OpMovReg, OpOr, OpAnd, OpXor, OpAddReg, OpSub, OpRsb:
		return fmt.Sprintf("%s v%x, v%x", name, in.X, in.Y)
	case OpSprite:
		return fmt.Sprintf("%s v%x, v%x, %d", name, in.X, in.Y, in.N)
	case OpStr, OpLdr:
		return fmt.Sprintf("%s v0-v%x", name, in.X)
	case OpUnknown:
		return fmt.Sprintf("%s 0x%04X", name, in.Word)
	default:
		return fmt.Sprintf("%s v%x", name, in.X)
	}
}
