package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/vernetto/z80mini/internal/asm"
	"github.com/vernetto/z80mini/internal/cpu"
	"github.com/vernetto/z80mini/internal/machine"
	"golang.org/x/term"
)

// MonCmd starts the interactive machine monitor.
type MonCmd struct {
	File   string `arg:"" optional:"" type:"existingfile" help:"Program to preload (source or raw .bin)."`
	Origin string `default:"0" help:"Load address (hex)."`
}

// Run executes the mon command.
func (c *MonCmd) Run() error {
	m := machine.New()

	if c.File != "" {
		origin, err := strconv.ParseUint(c.Origin, 16, 64)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrBadOrigin, c.Origin)
		}
		image, err := loadImage(c.File)
		if err != nil {
			return err
		}
		m.LoadProgram(int(origin), image) //nolint:gosec // G115: origin masked mod 65536
	}

	interactive := term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		fmt.Println("z80mini monitor; type ? for help")
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print("> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		fields := strings.Fields(strings.ToLower(scanner.Text()))
		if len(fields) == 0 {
			continue
		}
		if fields[0] == "q" || fields[0] == "quit" {
			return nil
		}
		if err := dispatch(m, fields); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}
}

// loadImage reads a program file, assembling it unless it is a raw .bin.
func loadImage(path string) ([]uint8, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read program: %w", err)
	}
	if strings.EqualFold(filepath.Ext(path), ".bin") {
		return data, nil
	}
	res := asm.Assemble(string(data))
	for _, p := range res.Problems {
		fmt.Fprintf(os.Stderr, "warning: %s\n", p)
	}
	return res.Bytes, nil
}

// dispatch runs one monitor command against the machine.
func dispatch(m *machine.Machine, fields []string) error {
	switch fields[0] {
	case "?", "help":
		printHelp()
		return nil

	case "s", "step":
		n := 1
		if len(fields) > 1 {
			v, err := strconv.Atoi(fields[1])
			if err != nil || v < 1 {
				return fmt.Errorf("step count %q", fields[1])
			}
			n = v
		}
		for i := 0; i < n; i++ {
			at := m.CPU.Registers.PC
			text, _ := cpu.Disassemble(m.RAM, at)
			cycles, err := m.Step()
			if err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}
			if cycles == 0 {
				fmt.Println("halted")
				break
			}
			fmt.Printf("%04X  %-12s cycles=%d\n", at, text, m.CPU.Cycles)
		}
		return nil

	case "r", "regs":
		printState(m.Snapshot())
		return nil

	case "m", "mem":
		if len(fields) < 2 {
			return fmt.Errorf("usage: m <addr> [len]")
		}
		addr, err := strconv.ParseUint(fields[1], 16, 64)
		if err != nil {
			return fmt.Errorf("address %q", fields[1])
		}
		length := 16
		if len(fields) > 2 {
			v, err := strconv.Atoi(fields[2])
			if err != nil || v < 1 {
				return fmt.Errorf("length %q", fields[2])
			}
			length = v
		}
		dumpMemory(m, int(addr), length) //nolint:gosec // G115: address masked mod 65536
		return nil

	case "p", "poke":
		if len(fields) != 3 {
			return fmt.Errorf("usage: p <addr> <value>")
		}
		addr, err := strconv.ParseUint(fields[1], 16, 64)
		if err != nil {
			return fmt.Errorf("address %q", fields[1])
		}
		value, err := strconv.ParseUint(fields[2], 16, 64)
		if err != nil {
			return fmt.Errorf("value %q", fields[2])
		}
		m.WriteMemory(int(addr), int(value)) //nolint:gosec // G115: masked by the machine
		return nil

	case "set":
		if len(fields) != 3 {
			return fmt.Errorf("usage: set <reg> <value>")
		}
		value, err := strconv.ParseUint(fields[2], 16, 64)
		if err != nil {
			return fmt.Errorf("value %q", fields[2])
		}
		return m.WriteRegister(cpu.RegisterName(fields[1]), int(value)) //nolint:gosec // G115: masked by the machine

	case "reset":
		m.Reset()
		return nil

	case "clear":
		m.ClearMemory()
		return nil

	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}

// dumpMemory prints length bytes starting at addr, 16 per row, from a
// snapshot so a running display never races the live machine.
func dumpMemory(m *machine.Machine, addr, length int) {
	s := m.Snapshot()
	for row := 0; row < length; row += 16 {
		n := min(16, length-row)
		hex := make([]string, 0, n)
		for i := 0; i < n; i++ {
			hex = append(hex, fmt.Sprintf("%02X", s.Memory[uint16(addr+row+i)])) //nolint:gosec // G115: address masked mod 65536
		}
		fmt.Printf("%04X  %s\n", uint16(addr+row), strings.Join(hex, " ")) //nolint:gosec // G115: address masked mod 65536
	}
}

func printHelp() {
	fmt.Print(`s [n]            step n instructions (default 1)
r                show registers
m <addr> [len]   dump memory (hex address)
p <addr> <val>   write a byte (hex)
set <reg> <val>  write a register (hex); regs: a f b c d e h l pc sp ix iy i r iff1 iff2 im
reset            reinitialize registers (memory kept)
clear            zero all memory
q                quit
`)
}
