package cpu

import (
	"errors"
	"fmt"
)

// Z80 flag bit positions in the F register.
const (
	FlagS  uint8 = 0b10000000 // Sign (bit 7)
	FlagZ  uint8 = 0b01000000 // Zero (bit 6)
	FlagY  uint8 = 0b00100000 // Undocumented (bit 5)
	FlagH  uint8 = 0b00010000 // Half-carry (bit 4)
	FlagX  uint8 = 0b00001000 // Undocumented (bit 3)
	FlagPV uint8 = 0b00000100 // Parity/Overflow (bit 2)
	FlagN  uint8 = 0b00000010 // Add/Subtract (bit 1)
	FlagC  uint8 = 0b00000001 // Carry (bit 0)
)

// Registers represents the Z80 register file.
type Registers struct {
	A uint8 // Accumulator
	F uint8 // Flags
	B uint8 // General purpose
	C uint8 // General purpose
	D uint8 // General purpose
	E uint8 // General purpose
	H uint8 // General purpose (high byte of HL pointer)
	L uint8 // General purpose (low byte of HL pointer)

	PC uint16 // Program counter
	SP uint16 // Stack pointer
	IX uint16 // Index register X
	IY uint16 // Index register Y

	I uint8 // Interrupt vector base
	R uint8 // Memory refresh counter

	IFF1 bool  // Interrupt flip-flop 1
	IFF2 bool  // Interrupt flip-flop 2
	IM   uint8 // Interrupt mode (0, 1 or 2)
}

// NewRegisters creates a new Registers instance with power-on values:
// everything zero except SP, which starts at the top of the address space.
func NewRegisters() *Registers {
	return &Registers{
		SP: 0xFFFF,
	}
}

// RegisterName identifies a register for the name-indexed read/write path.
type RegisterName string

// Names accepted by Set and Get.
const (
	RegA    RegisterName = "a"
	RegF    RegisterName = "f"
	RegB    RegisterName = "b"
	RegC    RegisterName = "c"
	RegD    RegisterName = "d"
	RegE    RegisterName = "e"
	RegH    RegisterName = "h"
	RegL    RegisterName = "l"
	RegPC   RegisterName = "pc"
	RegSP   RegisterName = "sp"
	RegIX   RegisterName = "ix"
	RegIY   RegisterName = "iy"
	RegI    RegisterName = "i"
	RegR    RegisterName = "r"
	RegIFF1 RegisterName = "iff1"
	RegIFF2 RegisterName = "iff2"
	RegIM   RegisterName = "im"
)

// ErrUnknownRegister indicates a register name outside the register file.
var ErrUnknownRegister = errors.New("unknown register")

// Set stores value into the named register, masked to the register's width:
// 8-bit registers keep value mod 256, 16-bit registers keep value mod 65536,
// and the interrupt flip-flops store value != 0. Out-of-range values are
// masked, never rejected; only an unknown name is an error.
func (r *Registers) Set(name RegisterName, value int) error {
	switch name {
	case RegA:
		r.A = uint8(value) //nolint:gosec // G115: masking to register width is the contract
	case RegF:
		r.F = uint8(value) //nolint:gosec // G115: masking to register width is the contract
	case RegB:
		r.B = uint8(value) //nolint:gosec // G115: masking to register width is the contract
	case RegC:
		r.C = uint8(value) //nolint:gosec // G115: masking to register width is the contract
	case RegD:
		r.D = uint8(value) //nolint:gosec // G115: masking to register width is the contract
	case RegE:
		r.E = uint8(value) //nolint:gosec // G115: masking to register width is the contract
	case RegH:
		r.H = uint8(value) //nolint:gosec // G115: masking to register width is the contract
	case RegL:
		r.L = uint8(value) //nolint:gosec // G115: masking to register width is the contract
	case RegPC:
		r.PC = uint16(value) //nolint:gosec // G115: masking to register width is the contract
	case RegSP:
		r.SP = uint16(value) //nolint:gosec // G115: masking to register width is the contract
	case RegIX:
		r.IX = uint16(value) //nolint:gosec // G115: masking to register width is the contract
	case RegIY:
		r.IY = uint16(value) //nolint:gosec // G115: masking to register width is the contract
	case RegI:
		r.I = uint8(value) //nolint:gosec // G115: masking to register width is the contract
	case RegR:
		r.R = uint8(value) //nolint:gosec // G115: masking to register width is the contract
	case RegIFF1:
		r.IFF1 = value != 0
	case RegIFF2:
		r.IFF2 = value != 0
	case RegIM:
		r.IM = uint8(value) //nolint:gosec // G115: masking to register width is the contract
	default:
		return fmt.Errorf("%w: %q", ErrUnknownRegister, string(name))
	}
	return nil
}

// Get returns the named register's current value; the interrupt flip-flops
// read as 0 or 1.
func (r *Registers) Get(name RegisterName) (int, error) {
	switch name {
	case RegA:
		return int(r.A), nil
	case RegF:
		return int(r.F), nil
	case RegB:
		return int(r.B), nil
	case RegC:
		return int(r.C), nil
	case RegD:
		return int(r.D), nil
	case RegE:
		return int(r.E), nil
	case RegH:
		return int(r.H), nil
	case RegL:
		return int(r.L), nil
	case RegPC:
		return int(r.PC), nil
	case RegSP:
		return int(r.SP), nil
	case RegIX:
		return int(r.IX), nil
	case RegIY:
		return int(r.IY), nil
	case RegI:
		return int(r.I), nil
	case RegR:
		return int(r.R), nil
	case RegIFF1:
		return boolToInt(r.IFF1), nil
	case RegIFF2:
		return boolToInt(r.IFF2), nil
	case RegIM:
		return int(r.IM), nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRegister, string(name))
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Flag operations

// GetFlag checks if a flag is set.
func (r *Registers) GetFlag(flag uint8) bool {
	return r.F&flag != 0
}

// SetFlag sets a flag to 1.
func (r *Registers) SetFlag(flag uint8) {
	r.F |= flag
}

// ClearFlag sets a flag to 0.
func (r *Registers) ClearFlag(flag uint8) {
	r.F &^= flag
}

// SetFlagTo sets a flag to a specific boolean value.
func (r *Registers) SetFlagTo(flag uint8, value bool) {
	if value {
		r.SetFlag(flag)
	} else {
		r.ClearFlag(flag)
	}
}

// Individual flag getters

// SignFlag returns the Sign flag state.
func (r *Registers) SignFlag() bool {
	return r.GetFlag(FlagS)
}

// ZeroFlag returns the Zero flag state.
func (r *Registers) ZeroFlag() bool {
	return r.GetFlag(FlagZ)
}

// HalfCarryFlag returns the Half-carry flag state.
func (r *Registers) HalfCarryFlag() bool {
	return r.GetFlag(FlagH)
}

// ParityOverflowFlag returns the Parity/Overflow flag state.
func (r *Registers) ParityOverflowFlag() bool {
	return r.GetFlag(FlagPV)
}

// SubtractFlag returns the Add/Subtract flag state.
func (r *Registers) SubtractFlag() bool {
	return r.GetFlag(FlagN)
}

// CarryFlag returns the Carry flag state.
func (r *Registers) CarryFlag() bool {
	return r.GetFlag(FlagC)
}
