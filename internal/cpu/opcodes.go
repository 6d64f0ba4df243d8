package cpu

// execute dispatches one opcode and returns the number of cycles taken.
// at is the address the opcode was fetched from, used for diagnostics.
func (c *CPU) execute(opcode uint8, at uint16) (uint8, error) {
	switch opcode {
	case 0x00: // NOP
		return 4, nil

	// 8-bit immediate loads
	case 0x06: // LD B, n
		c.Registers.B = c.fetchByte()
		return 7, nil
	case 0x0E: // LD C, n
		c.Registers.C = c.fetchByte()
		return 7, nil
	case 0x16: // LD D, n
		c.Registers.D = c.fetchByte()
		return 7, nil
	case 0x1E: // LD E, n
		c.Registers.E = c.fetchByte()
		return 7, nil
	case 0x26: // LD H, n
		c.Registers.H = c.fetchByte()
		return 7, nil
	case 0x2E: // LD L, n
		c.Registers.L = c.fetchByte()
		return 7, nil
	case 0x3E: // LD A, n
		c.Registers.A = c.fetchByte()
		return 7, nil

	// Arithmetic and logic
	case 0x3C: // INC A
		c.Registers.A = c.inc8(c.Registers.A)
		return 4, nil
	case 0x3D: // DEC A
		c.Registers.A = c.dec8(c.Registers.A)
		return 4, nil
	case 0x80: // ADD A, B
		c.Registers.A = c.add8(c.Registers.A, c.Registers.B)
		return 4, nil
	case 0xAF: // XOR A
		c.Registers.A = c.xor8(c.Registers.A)
		return 4, nil

	// Jumps
	case 0xC3: // JP nn
		c.Registers.PC = c.fetchWord()
		return 10, nil
	case 0x18: // JR e
		offset := int8(c.fetchByte())                                  //nolint:gosec // G115: intentional signed conversion for relative jump
		c.Registers.PC = uint16(int32(c.Registers.PC) + int32(offset)) //nolint:gosec // G115: address arithmetic wraps mod 65536
		return 12, nil

	case 0x76: // HALT
		c.Halted = true
		return 4, nil

	default:
		return 4, &UnknownOpcodeError{Opcode: opcode, Addr: at}
	}
}
