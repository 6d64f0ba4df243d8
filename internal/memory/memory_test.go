package memory

import "testing"

func TestReadWrite(t *testing.T) {
	r := New()

	r.Write(0x1234, 0xAB)
	if got := r.Read(0x1234); got != 0xAB {
		t.Errorf("Read(0x1234) = %02X, want 0xAB", got)
	}
	if got := r.Read(0x1235); got != 0 {
		t.Errorf("Read(0x1235) = %02X, want 0 (untouched)", got)
	}
}

func TestLoadWrapsAroundTop(t *testing.T) {
	r := New()

	r.Load(0xFFFE, []uint8{0x01, 0x02, 0x03, 0x04})

	want := map[uint16]uint8{
		0xFFFE: 0x01,
		0xFFFF: 0x02,
		0x0000: 0x03,
		0x0001: 0x04,
	}
	for addr, value := range want {
		if got := r.Read(addr); got != value {
			t.Errorf("Read(%04X) = %02X, want %02X", addr, got, value)
		}
	}
}

func TestLoadLeavesOtherMemory(t *testing.T) {
	r := New()
	r.Write(0x8000, 0x77)

	r.Load(0x0000, []uint8{0x01, 0x02})

	if got := r.Read(0x8000); got != 0x77 {
		t.Errorf("Read(0x8000) = %02X, want 0x77 (load must not clear unrelated memory)", got)
	}
}

func TestLoadEmpty(t *testing.T) {
	r := New()
	r.Write(0x0000, 0x55)

	r.Load(0x0000, nil)

	if got := r.Read(0x0000); got != 0x55 {
		t.Errorf("Read(0x0000) = %02X, want 0x55 (empty load performs no writes)", got)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	r := New()
	r.Write(0x0100, 0x11)

	snap := r.Snapshot()
	r.Write(0x0100, 0x22)

	if snap[0x0100] != 0x11 {
		t.Errorf("snapshot[0x0100] = %02X, want 0x11 (snapshot must not alias live memory)", snap[0x0100])
	}
	if got := r.Read(0x0100); got != 0x22 {
		t.Errorf("Read(0x0100) = %02X, want 0x22", got)
	}
}

func TestClear(t *testing.T) {
	r := New()
	r.Write(0x0000, 0x01)
	r.Write(0xFFFF, 0x02)

	r.Clear()

	if r.Read(0x0000) != 0 || r.Read(0xFFFF) != 0 {
		t.Error("Clear should zero the whole address space")
	}
}
