// Package cpu implements a subset of the Zilog Z80 CPU: the register file,
// the fetch-decode-execute engine, and the flag arithmetic of the supported
// instructions.
package cpu

import (
	"fmt"
	"math/bits"
)

// Memory interface for CPU to access the address space. Addresses are
// uint16, so all address arithmetic wraps modulo 65536 by construction.
type Memory interface {
	Read(addr uint16) uint8
	Write(addr uint16, value uint8)
}

// CPU represents the Z80 execution engine.
type CPU struct {
	Registers *Registers
	Memory    Memory

	// Halted is sticky: once HALT executes, Step is a no-op until some
	// external write clears it.
	Halted bool

	// Cycles accumulates the fixed cycle cost of every executed
	// instruction, including unrecognized opcodes.
	Cycles uint64
}

// New creates a new CPU instance.
func New(mem Memory) *CPU {
	return &CPU{
		Registers: NewRegisters(),
		Memory:    mem,
	}
}

// UnknownOpcodeError reports an opcode outside the implemented subset. The
// instruction consumed its cycle cost but changed no register or memory
// state beyond the opcode fetch itself.
type UnknownOpcodeError struct {
	Opcode uint8
	Addr   uint16
}

func (e *UnknownOpcodeError) Error() string {
	return fmt.Sprintf("unknown opcode 0x%02X at 0x%04X", e.Opcode, e.Addr)
}

// Step executes one instruction and returns cycles taken.
//
// If the CPU is halted, Step returns 0 and performs no state change. An
// unrecognized opcode costs 4 cycles, leaves registers and memory untouched
// (apart from the opcode fetch advancing PC), and is reported as an
// *UnknownOpcodeError rather than conflated with NOP.
func (c *CPU) Step() (uint8, error) {
	if c.Halted {
		return 0, nil
	}

	at := c.Registers.PC
	opcode := c.fetchByte()

	cycles, err := c.execute(opcode, at)

	c.Cycles += uint64(cycles)

	return cycles, err
}

// fetchByte fetches the next byte from memory and increments PC.
func (c *CPU) fetchByte() uint8 {
	value := c.Memory.Read(c.Registers.PC)
	c.Registers.PC++
	return value
}

// fetchWord fetches the next word (16-bit, little-endian) from memory and
// increments PC twice.
func (c *CPU) fetchWord() uint16 {
	low := uint16(c.fetchByte())
	high := uint16(c.fetchByte())
	return high<<8 | low
}

// Helper methods for arithmetic operations. Each sets only the flags its
// instruction defines; the undocumented Y and X bits are left as they were.

// inc8 increments an 8-bit value and sets flags. Carry is not affected.
func (c *CPU) inc8(value uint8) uint8 {
	result := value + 1

	c.Registers.SetFlagTo(FlagS, result&0x80 != 0)
	c.Registers.SetFlagTo(FlagZ, result == 0)
	c.Registers.SetFlagTo(FlagH, value&0x0F == 0x0F)
	c.Registers.SetFlagTo(FlagPV, value == 0x7F)
	c.Registers.ClearFlag(FlagN)

	return result
}

// dec8 decrements an 8-bit value and sets flags. Carry is not affected.
func (c *CPU) dec8(value uint8) uint8 {
	result := value - 1

	c.Registers.SetFlagTo(FlagS, result&0x80 != 0)
	c.Registers.SetFlagTo(FlagZ, result == 0)
	c.Registers.SetFlagTo(FlagH, value&0x0F == 0x00)
	c.Registers.SetFlagTo(FlagPV, value == 0x80)
	c.Registers.SetFlag(FlagN)

	return result
}

// add8 performs 8-bit addition and sets flags. P/V is signed overflow:
// the operands share a sign bit that differs from the result's sign bit.
func (c *CPU) add8(a, b uint8) uint8 {
	sum := uint16(a) + uint16(b)
	result := uint8(sum) //nolint:gosec // G115: intentional truncation to register width

	c.Registers.SetFlagTo(FlagS, result&0x80 != 0)
	c.Registers.SetFlagTo(FlagZ, result == 0)
	c.Registers.SetFlagTo(FlagH, (a&0x0F)+(b&0x0F) > 0x0F)
	c.Registers.SetFlagTo(FlagPV, (a^b)&0x80 == 0 && (a^result)&0x80 != 0)
	c.Registers.ClearFlag(FlagN)
	c.Registers.SetFlagTo(FlagC, sum > 0xFF)

	return result
}

// xor8 performs bitwise XOR against the accumulator and sets flags. P/V is
// parity for the logical group: set when the result has an even number of
// set bits.
func (c *CPU) xor8(value uint8) uint8 {
	result := c.Registers.A ^ value

	c.Registers.SetFlagTo(FlagS, result&0x80 != 0)
	c.Registers.SetFlagTo(FlagZ, result == 0)
	c.Registers.ClearFlag(FlagH)
	c.Registers.SetFlagTo(FlagPV, parity(result))
	c.Registers.ClearFlag(FlagN)
	c.Registers.ClearFlag(FlagC)

	return result
}

// parity reports whether v has an even number of set bits.
func parity(v uint8) bool {
	return bits.OnesCount8(v)%2 == 0
}
