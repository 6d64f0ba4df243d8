package cpu

import "fmt"

// Disassemble decodes the instruction at addr without executing it and
// returns its mnemonic plus the instruction length in bytes. Operand fetches
// wrap around the top of the address space the same way execution does.
// Unrecognized opcodes render as a DB directive.
func Disassemble(mem Memory, addr uint16) (string, uint16) {
	opcode := mem.Read(addr)

	switch opcode {
	case 0x00:
		return "NOP", 1
	case 0x06:
		return fmt.Sprintf("LD B, %02X", mem.Read(addr+1)), 2
	case 0x0E:
		return fmt.Sprintf("LD C, %02X", mem.Read(addr+1)), 2
	case 0x16:
		return fmt.Sprintf("LD D, %02X", mem.Read(addr+1)), 2
	case 0x1E:
		return fmt.Sprintf("LD E, %02X", mem.Read(addr+1)), 2
	case 0x26:
		return fmt.Sprintf("LD H, %02X", mem.Read(addr+1)), 2
	case 0x2E:
		return fmt.Sprintf("LD L, %02X", mem.Read(addr+1)), 2
	case 0x3E:
		return fmt.Sprintf("LD A, %02X", mem.Read(addr+1)), 2
	case 0x3C:
		return "INC A", 1
	case 0x3D:
		return "DEC A", 1
	case 0x80:
		return "ADD A, B", 1
	case 0xAF:
		return "XOR A", 1
	case 0xC3:
		nn := uint16(mem.Read(addr+1)) | uint16(mem.Read(addr+2))<<8
		return fmt.Sprintf("JP %04X", nn), 3
	case 0x18:
		offset := int8(mem.Read(addr + 1)) //nolint:gosec // G115: intentional signed conversion
		return fmt.Sprintf("JR %+d", offset), 2
	case 0x76:
		return "HALT", 1
	default:
		return fmt.Sprintf("DB %02X", opcode), 1
	}
}
