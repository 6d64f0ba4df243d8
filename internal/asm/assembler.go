// Package asm implements a single-pass, line-oriented assembler for the
// CPU's instruction subset. Each source line is translated independently;
// lines that match no supported form emit nothing and shift no addresses.
package asm

import (
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
)

var (
	// ErrUnknownMnemonic indicates a mnemonic outside the supported set.
	ErrUnknownMnemonic = errors.New("unknown mnemonic")

	// ErrBadOperands indicates operands matching no supported form of the
	// mnemonic.
	ErrBadOperands = errors.New("operands match no supported form")

	// ErrBadNumber indicates a numeric operand that does not parse as
	// hexadecimal.
	ErrBadNumber = errors.New("operand is not a hexadecimal number")
)

// Problem describes a source line that assembled to nothing.
type Problem struct {
	Line int    // zero-based source line index
	Text string // the line as written, comment included
	Err  error
}

func (p Problem) String() string {
	return fmt.Sprintf("line %d: %q: %v", p.Line, p.Text, p.Err)
}

// Result holds one assembler invocation's output: the program image, a map
// from each emitted byte's image-relative address to the zero-based source
// line that produced it, and one Problem per skipped line. Lines that emit
// no bytes (blank, comment-only, malformed) contribute no map entries.
//
// A Result is produced atomically and the caller treats it as immutable.
type Result struct {
	Bytes    []uint8
	LineFor  map[uint16]int
	Problems []Problem
}

// LD destination registers and their immediate-load opcodes.
var ldOpcode = map[string]uint8{
	"B": 0x06,
	"C": 0x0E,
	"D": 0x16,
	"E": 0x1E,
	"H": 0x26,
	"L": 0x2E,
	"A": 0x3E,
}

// Assemble translates source text into machine bytes. It is deterministic
// and case-insensitive. Malformed lines are never fatal: each one is
// recorded as a Problem (and logged) and assembly continues on the next
// line.
func Assemble(source string) *Result {
	res := &Result{
		LineFor: make(map[uint16]int),
	}

	addr := uint16(0)
	for i, raw := range strings.Split(source, "\n") {
		line := raw
		if j := strings.IndexByte(line, ';'); j >= 0 {
			line = line[:j]
		}
		line = strings.ToUpper(strings.TrimSpace(line))
		if line == "" {
			continue
		}

		encoded, err := encodeLine(line)
		if err != nil {
			log.Printf("asm: line %d %q skipped: %v", i, raw, err)
			res.Problems = append(res.Problems, Problem{Line: i, Text: raw, Err: err})
			continue
		}

		for _, b := range encoded {
			res.LineFor[addr] = i
			res.Bytes = append(res.Bytes, b)
			addr++
		}
	}

	return res
}

// encodeLine translates one cleaned (comment-stripped, trimmed, uppercased,
// non-empty) line into machine bytes.
func encodeLine(line string) ([]uint8, error) {
	mnemonic := line
	field := ""
	if j := strings.IndexAny(line, " \t"); j >= 0 {
		mnemonic, field = line[:j], line[j:]
	}

	// All whitespace inside the operand field is collapsed before the
	// comma split. This merges multi-token operands into one token;
	// baseline behavior, kept as is.
	field = strings.Join(strings.Fields(field), "")

	var ops []string
	if field != "" {
		ops = strings.Split(field, ",")
	}

	switch mnemonic {
	case "NOP":
		if len(ops) != 0 {
			return nil, ErrBadOperands
		}
		return []uint8{0x00}, nil

	case "HALT":
		if len(ops) != 0 {
			return nil, ErrBadOperands
		}
		return []uint8{0x76}, nil

	case "XOR":
		if len(ops) != 1 || ops[0] != "A" {
			return nil, ErrBadOperands
		}
		return []uint8{0xAF}, nil

	case "INC":
		if len(ops) != 1 || ops[0] != "A" {
			return nil, ErrBadOperands
		}
		return []uint8{0x3C}, nil

	case "DEC":
		if len(ops) != 1 || ops[0] != "A" {
			return nil, ErrBadOperands
		}
		return []uint8{0x3D}, nil

	case "ADD":
		if len(ops) != 2 || ops[0] != "A" || ops[1] != "B" {
			return nil, ErrBadOperands
		}
		return []uint8{0x80}, nil

	case "LD":
		if len(ops) != 2 {
			return nil, ErrBadOperands
		}
		opcode, ok := ldOpcode[ops[0]]
		if !ok {
			return nil, fmt.Errorf("%w: LD destination %q", ErrBadOperands, ops[0])
		}
		n, err := parseHex(ops[1])
		if err != nil {
			return nil, err
		}
		return []uint8{opcode, uint8(n)}, nil //nolint:gosec // G115: immediate masked to 0xFF

	case "JP":
		if len(ops) != 1 {
			return nil, ErrBadOperands
		}
		nn, err := parseHex(ops[0])
		if err != nil {
			return nil, err
		}
		// Little-endian: low byte first.
		return []uint8{0xC3, uint8(nn), uint8(nn >> 8)}, nil //nolint:gosec // G115: operand masked to 0xFFFF

	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMnemonic, mnemonic)
	}
}

// parseHex parses a base-16 operand. Values wider than 16 bits are not an
// error; callers mask to operand width.
func parseHex(s string) (uint64, error) {
	n, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadNumber, s)
	}
	return n, nil
}
