package msx

import "testing"

func TestEmptySlotReadsFF(t *testing.T) {
	s := NewEmptySlot()
	if got := s.Read(0x1234); got != 0xFF {
		t.Fatalf("EmptySlot.Read = %#02x, want 0xFF", got)
	}
	s.Write(0x1234, 0x42)
	if got := s.Read(0x1234); got != 0xFF {
		t.Fatalf("EmptySlot.Write should be discarded, Read = %#02x", got)
	}
}

func TestROMSlotPadsWithFF(t *testing.T) {
	rom := []byte{0x01, 0x02, 0x03}
	s, err := NewROMSlot(rom, 0x0000, 0x10)
	if err != nil {
		t.Fatalf("NewROMSlot: %v", err)
	}
	if got := s.Read(0x0000); got != 0x01 {
		t.Fatalf("Read(0) = %#02x, want 0x01", got)
	}
	if got := s.Read(0x0003); got != 0xFF {
		t.Fatalf("Read(3) = %#02x, want 0xFF padding", got)
	}
}

func TestROMSlotOverflow(t *testing.T) {
	rom := make([]byte, 0x20)
	if _, err := NewROMSlot(rom, 0x0000, 0x10); err != ErrROMOverflow {
		t.Fatalf("NewROMSlot error = %v, want ErrROMOverflow", err)
	}
}

func TestROMSlotWritesPersistToShadowCopy(t *testing.T) {
	rom := []byte{0xAA, 0xBB}
	s, err := NewROMSlot(rom, 0x0000, 0x10)
	if err != nil {
		t.Fatalf("NewROMSlot: %v", err)
	}
	s.Write(0x0000, 0x99)
	if got := s.Read(0x0000); got != 0x99 {
		t.Fatalf("Read after Write = %#02x, want 0x99", got)
	}
	if rom[0] != 0xAA {
		t.Fatalf("original rom slice mutated, rom[0] = %#02x", rom[0])
	}
}

func TestRAMSlotInitialisedToFF(t *testing.T) {
	s := NewRAMSlot(0x4000, 0x10)
	if got := s.Read(0x4000); got != 0xFF {
		t.Fatalf("Read(base) = %#02x, want 0xFF", got)
	}
	s.Write(0x4005, 0x7E)
	if got := s.Read(0x4005); got != 0x7E {
		t.Fatalf("Read after Write = %#02x, want 0x7E", got)
	}
}
