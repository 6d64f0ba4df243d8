// Package machine ties the CPU and the address space together and exposes
// the operations a debugging front end drives: program load, single step,
// batched run, inspection and direct edits.
package machine

import (
	"github.com/vernetto/z80mini/internal/cpu"
	"github.com/vernetto/z80mini/internal/memory"
)

// Machine owns one CPU and its 64 KiB address space. A Machine has exactly
// one logical owner; concurrent access must be serialized by the caller.
type Machine struct {
	CPU *cpu.CPU
	RAM *memory.RAM
}

// State is a point-in-time copy of the whole machine: register file, full
// memory image, halt flag and cycle counter. It shares no storage with the
// live machine, so later steps never change an already-taken State.
type State struct {
	Registers cpu.Registers
	Memory    [memory.Size]uint8
	Halted    bool
	Cycles    uint64
}

// New creates a machine with power-on state: all registers zero except
// SP=0xFFFF, zeroed memory, not halted, zero cycles.
func New() *Machine {
	ram := memory.New()
	return &Machine{
		CPU: cpu.New(ram),
		RAM: ram,
	}
}

// Snapshot returns an independent copy of the machine state.
func (m *Machine) Snapshot() State {
	return State{
		Registers: *m.CPU.Registers,
		Memory:    m.RAM.Snapshot(),
		Halted:    m.CPU.Halted,
		Cycles:    m.CPU.Cycles,
	}
}

// WriteMemory stores value mod 256 at address mod 65536. Never fails.
func (m *Machine) WriteMemory(address, value int) {
	m.RAM.Write(uint16(address), uint8(value)) //nolint:gosec // G115: masking is the contract
}

// ReadMemory reads the byte at address mod 65536.
func (m *Machine) ReadMemory(address int) uint8 {
	return m.RAM.Read(uint16(address)) //nolint:gosec // G115: masking is the contract
}

// WriteRegister stores value into the named register, masked to the
// register's width. Only an unknown register name is an error.
func (m *Machine) WriteRegister(name cpu.RegisterName, value int) error {
	return m.CPU.Registers.Set(name, value)
}

// ReadRegister returns the named register's value.
func (m *Machine) ReadRegister(name cpu.RegisterName) (int, error) {
	return m.CPU.Registers.Get(name)
}

// LoadProgram writes bytes sequentially starting at origin (wrapping mod
// 65536) and points PC at origin. No other register is altered, unrelated
// memory is not cleared, and the halt flag is left as is: load-then-run on
// top of prior state is supported.
func (m *Machine) LoadProgram(origin int, bytes []uint8) {
	o := uint16(origin) //nolint:gosec // G115: masking is the contract
	m.RAM.Load(o, bytes)
	m.CPU.Registers.PC = o
}

// Step executes one instruction. See cpu.CPU.Step.
func (m *Machine) Step() (uint8, error) {
	return m.CPU.Step()
}

// Run steps until the CPU halts, an unrecognized opcode is hit, or maxSteps
// instructions have executed, whichever comes first. It returns the number
// of instructions executed and, for the unrecognized-opcode case, the
// *cpu.UnknownOpcodeError; the policy of skipping versus stopping stays
// with the caller, who can simply call Run again to skip.
func (m *Machine) Run(maxSteps int) (int, error) {
	for n := 0; n < maxSteps; n++ {
		cycles, err := m.CPU.Step()
		if err != nil {
			return n + 1, err
		}
		if cycles == 0 {
			// Halted before this step; nothing executed.
			return n, nil
		}
	}
	return maxSteps, nil
}

// Reset reinitializes the registers, clears the halt flag and zeroes the
// cycle counter. Memory is deliberately left as is; a cold start is
// Reset followed by ClearMemory.
func (m *Machine) Reset() {
	m.CPU.Registers = cpu.NewRegisters()
	m.CPU.Halted = false
	m.CPU.Cycles = 0
}

// ClearMemory zeroes the entire address space.
func (m *Machine) ClearMemory() {
	m.RAM.Clear()
}
