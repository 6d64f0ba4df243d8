// Package memory implements the flat 64 KiB Z80 address space.
package memory

// Size is the full address space in bytes. The backing array is never
// resized; every address is reduced modulo Size before use.
const Size = 0x10000

// RAM is the full 64 KiB address space. Addresses are uint16, so address
// arithmetic wraps modulo Size by construction and no access can fault.
type RAM struct {
	data [Size]uint8
}

// New creates a zeroed address space.
func New() *RAM {
	return &RAM{}
}

// Read reads a byte.
func (r *RAM) Read(addr uint16) uint8 {
	return r.data[addr]
}

// Write writes a byte.
func (r *RAM) Write(addr uint16, value uint8) {
	r.data[addr] = value
}

// Load writes bytes sequentially starting at origin, wrapping around the
// top of the address space. Memory outside the written range is untouched.
func (r *RAM) Load(origin uint16, bytes []uint8) {
	addr := origin
	for _, b := range bytes {
		r.data[addr] = b
		addr++
	}
}

// Clear zeroes the entire address space.
func (r *RAM) Clear() {
	clear(r.data[:])
}

// Snapshot returns an independent copy of the full address space. Later
// writes to the live RAM never show through a previously taken snapshot.
func (r *RAM) Snapshot() [Size]uint8 {
	return r.data
}
