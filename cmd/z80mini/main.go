// Package main provides the z80mini CLI: assemble source files, run the
// resulting images and poke at the machine interactively.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/vernetto/z80mini/internal/asm"
	"github.com/vernetto/z80mini/internal/cpu"
	"github.com/vernetto/z80mini/internal/machine"
)

var (
	// ErrBadOrigin indicates an origin flag that does not parse as a
	// hexadecimal address.
	ErrBadOrigin = errors.New("origin must be a hexadecimal address")

	// ErrUnknownOpcode indicates the program hit an unimplemented opcode
	// under --strict.
	ErrUnknownOpcode = errors.New("program hit an unimplemented opcode")
)

// CLI represents the command-line interface structure.
type CLI struct {
	Asm AsmCmd `cmd:"" help:"Assemble a source file into a binary image."`
	Run RunCmd `cmd:"" help:"Assemble (or load) a program and run it."`
	Mon MonCmd `cmd:"" help:"Interactive machine monitor."`
}

// AsmCmd assembles a source file.
type AsmCmd struct {
	Source  string `arg:"" type:"existingfile" help:"Path to assembly source file."`
	Out     string `help:"Output image path (default: source with .bin extension)."`
	Listing bool   `short:"l" help:"Print an address/bytes/source listing."`
}

// Run executes the asm command.
func (c *AsmCmd) Run() error {
	source, err := os.ReadFile(c.Source)
	if err != nil {
		return fmt.Errorf("failed to read source: %w", err)
	}

	res := asm.Assemble(string(source))
	for _, p := range res.Problems {
		fmt.Fprintf(os.Stderr, "warning: %s\n", p)
	}

	out := c.Out
	if out == "" {
		out = strings.TrimSuffix(c.Source, filepath.Ext(c.Source)) + ".bin"
	}
	if err := os.WriteFile(out, res.Bytes, 0o644); err != nil {
		return fmt.Errorf("failed to write image: %w", err)
	}

	if c.Listing {
		printListing(res, strings.Split(string(source), "\n"))
	}

	fmt.Printf("%d bytes -> %s\n", len(res.Bytes), out)
	return nil
}

// printListing prints each emitted instruction with its image-relative
// address, its bytes and the source line that produced it.
func printListing(res *asm.Result, lines []string) {
	for i := 0; i < len(res.Bytes); {
		line := res.LineFor[uint16(i)] //nolint:gosec // G115: image offsets fit in 16 bits
		j := i
		for j < len(res.Bytes) && res.LineFor[uint16(j)] == line { //nolint:gosec // G115: image offsets fit in 16 bits
			j++
		}
		hex := make([]string, 0, j-i)
		for _, b := range res.Bytes[i:j] {
			hex = append(hex, fmt.Sprintf("%02X", b))
		}
		fmt.Printf("%04X  %-9s %4d: %s\n", i, strings.Join(hex, " "), line, strings.TrimSpace(lines[line]))
		i = j
	}
}

// RunCmd assembles (or loads a raw .bin) and executes a program.
type RunCmd struct {
	File     string `arg:"" type:"existingfile" help:"Assembly source, or a raw .bin image."`
	Origin   string `default:"0" help:"Load address (hex)."`
	MaxSteps int    `default:"1000000" help:"Instruction budget before giving up."`
	Trace    bool   `short:"t" help:"Print each instruction as it executes."`
	Strict   bool   `help:"Stop with an error on unimplemented opcodes instead of skipping them."`
}

// Run executes the run command.
func (c *RunCmd) Run() error {
	origin, err := strconv.ParseUint(c.Origin, 16, 64)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrBadOrigin, c.Origin)
	}

	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("failed to read program: %w", err)
	}

	var image []uint8
	if strings.EqualFold(filepath.Ext(c.File), ".bin") {
		image = data
	} else {
		res := asm.Assemble(string(data))
		for _, p := range res.Problems {
			fmt.Fprintf(os.Stderr, "warning: %s\n", p)
		}
		image = res.Bytes
	}

	m := machine.New()
	m.LoadProgram(int(origin), image) //nolint:gosec // G115: origin masked mod 65536

	if err := run(m, c.MaxSteps, c.Trace, c.Strict); err != nil {
		return err
	}

	printState(m.Snapshot())
	return nil
}

// run drives the machine until halt, budget exhaustion, or (under strict)
// an unimplemented opcode.
func run(m *machine.Machine, maxSteps int, trace, strict bool) error {
	for steps := 0; steps < maxSteps; {
		if m.CPU.Halted {
			return nil
		}
		if trace {
			text, _ := cpu.Disassemble(m.RAM, m.CPU.Registers.PC)
			fmt.Printf("%04X  %s\n", m.CPU.Registers.PC, text)
		}

		_, err := m.Step()
		var unknown *cpu.UnknownOpcodeError
		if errors.As(err, &unknown) {
			fmt.Fprintf(os.Stderr, "warning: %v\n", unknown)
			if strict {
				return fmt.Errorf("%w: %v", ErrUnknownOpcode, unknown)
			}
		}
		steps++
	}
	return nil
}

// printState prints a register and cycle summary from a snapshot.
func printState(s machine.State) {
	r := s.Registers
	fmt.Printf("A=%02X F=%02X B=%02X C=%02X D=%02X E=%02X H=%02X L=%02X\n",
		r.A, r.F, r.B, r.C, r.D, r.E, r.H, r.L)
	fmt.Printf("PC=%04X SP=%04X IX=%04X IY=%04X  halted=%v cycles=%d\n",
		r.PC, r.SP, r.IX, r.IY, s.Halted, s.Cycles)
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("z80mini"),
		kong.Description("A Z80-subset emulator and line assembler."),
		kong.UsageOnError(),
	)

	err := ctx.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
