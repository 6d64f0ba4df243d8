package asm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssembleEmpty(t *testing.T) {
	assert := assert.New(t)

	res := Assemble("")
	assert.Empty(res.Bytes)
	assert.Empty(res.LineFor)
	assert.Empty(res.Problems)
}

func TestAssembleProgram(t *testing.T) {
	assert := assert.New(t)

	source := strings.Join([]string{
		"XOR A",
		"LD A, 05",
		"LD B, 0A",
		"ADD A, B",
		"INC A",
		"HALT",
	}, "\n")

	res := Assemble(source)

	assert.Equal([]uint8{0xAF, 0x3E, 0x05, 0x06, 0x0A, 0x80, 0x3C, 0x76}, res.Bytes)
	assert.Equal(map[uint16]int{
		0x0000: 0,
		0x0001: 1,
		0x0002: 1,
		0x0003: 2,
		0x0004: 2,
		0x0005: 3,
		0x0006: 4,
		0x0007: 5,
	}, res.LineFor)
	assert.Empty(res.Problems)
}

func TestAssembleDeterministic(t *testing.T) {
	assert := assert.New(t)

	source := "XOR A\nLD A, 05\nJP 1234\nHALT"
	first := Assemble(source)
	second := Assemble(source)

	assert.Equal(first.Bytes, second.Bytes)
	assert.Equal(first.LineFor, second.LineFor)
}

func TestAssembleEveryLDDestination(t *testing.T) {
	assert := assert.New(t)

	tests := []struct {
		line string
		want []uint8
	}{
		{"LD B, 01", []uint8{0x06, 0x01}},
		{"LD C, 02", []uint8{0x0E, 0x02}},
		{"LD D, 03", []uint8{0x16, 0x03}},
		{"LD E, 04", []uint8{0x1E, 0x04}},
		{"LD H, 05", []uint8{0x26, 0x05}},
		{"LD L, 06", []uint8{0x2E, 0x06}},
		{"LD A, FF", []uint8{0x3E, 0xFF}},
	}

	for _, tt := range tests {
		res := Assemble(tt.line)
		assert.Equal(tt.want, res.Bytes, tt.line)
		assert.Empty(res.Problems, tt.line)
	}
}

func TestAssembleCaseAndComments(t *testing.T) {
	assert := assert.New(t)

	source := strings.Join([]string{
		"  xor a   ; clear the accumulator",
		"; a full-line comment",
		"",
		"ld a, 0f",
		"halt",
	}, "\n")

	res := Assemble(source)

	assert.Equal([]uint8{0xAF, 0x3E, 0x0F, 0x76}, res.Bytes)
	assert.Equal(map[uint16]int{0x0000: 0, 0x0001: 3, 0x0002: 3, 0x0003: 4}, res.LineFor)
	assert.Empty(res.Problems)
}

func TestAssembleCollapsesOperandWhitespace(t *testing.T) {
	assert := assert.New(t)

	// Whitespace in the operand field is collapsed before the comma split.
	res := Assemble("LD   A ,   05")
	assert.Equal([]uint8{0x3E, 0x05}, res.Bytes)
	assert.Empty(res.Problems)
}

func TestAssembleJPLittleEndian(t *testing.T) {
	assert := assert.New(t)

	res := Assemble("JP 1234")
	assert.Equal([]uint8{0xC3, 0x34, 0x12}, res.Bytes)
}

func TestAssembleMasksWideOperands(t *testing.T) {
	assert := assert.New(t)

	res := Assemble("LD A, 1FF")
	assert.Equal([]uint8{0x3E, 0xFF}, res.Bytes)
	assert.Empty(res.Problems)

	res = Assemble("JP 12345")
	assert.Equal([]uint8{0xC3, 0x45, 0x23}, res.Bytes)
	assert.Empty(res.Problems)
}

func TestAssembleUnknownLineShiftsNothing(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	source := strings.Join([]string{
		"XOR A",
		"FOO BAR",
		"HALT",
	}, "\n")

	res := Assemble(source)

	assert.Equal([]uint8{0xAF, 0x76}, res.Bytes)
	assert.Equal(map[uint16]int{0x0000: 0, 0x0001: 2}, res.LineFor)

	require.Len(res.Problems, 1)
	p := res.Problems[0]
	assert.Equal(1, p.Line)
	assert.Equal("FOO BAR", p.Text)
	assert.ErrorIs(p.Err, ErrUnknownMnemonic)
}

func TestAssembleProblems(t *testing.T) {
	tests := []struct {
		name string
		line string
		err  error
	}{
		{"unknown mnemonic", "RET", ErrUnknownMnemonic},
		{"xor of wrong register", "XOR B", ErrBadOperands},
		{"inc of wrong register", "INC B", ErrBadOperands},
		{"add of wrong pair", "ADD A, C", ErrBadOperands},
		{"ld to unknown register", "LD Q, 05", ErrBadOperands},
		{"ld missing operand", "LD A", ErrBadOperands},
		{"ld non-hex immediate", "LD A, GG", ErrBadNumber},
		{"jp non-hex target", "JP START", ErrBadNumber},
		{"nop with operand", "NOP 1", ErrBadOperands},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Assemble(tt.line)
			assert.Empty(t, res.Bytes)
			assert.Empty(t, res.LineFor)
			require.Len(t, res.Problems, 1)
			assert.ErrorIs(t, res.Problems[0].Err, tt.err)
		})
	}
}

func TestProblemString(t *testing.T) {
	p := Problem{Line: 3, Text: "FOO BAR", Err: ErrUnknownMnemonic}
	assert.Equal(t, `line 3: "FOO BAR": unknown mnemonic`, p.String())
}
