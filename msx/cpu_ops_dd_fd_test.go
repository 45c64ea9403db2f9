package msx

import "testing"

func TestDDLoadIXImmediate(t *testing.T) {
	c, _ := newTestCPU(0xDD, 0x21, 0x00, 0x40) // LD IX,0x4000
	mustStep(t, c)
	if c.IX != 0x4000 {
		t.Fatalf("IX = %#04x, want 0x4000", c.IX)
	}
}

func TestDDIndexedMemoryLoad(t *testing.T) {
	c, bus := newTestCPU(0xDD, 0x7E, 0x05) // LD A,(IX+5)
	c.IX = 0x5000
	bus.mem[0x5005] = 0x77
	mustStep(t, c)
	if c.A != 0x77 {
		t.Fatalf("A = %#02x, want 0x77", c.A)
	}
}

func TestDDIndexedMemoryStore(t *testing.T) {
	c, bus := newTestCPU(0xDD, 0x77, 0x02) // LD (IX+2),A
	c.IX = 0x6000
	c.A = 0x99
	mustStep(t, c)
	if bus.mem[0x6002] != 0x99 {
		t.Fatalf("(IX+2) = %#02x, want 0x99", bus.mem[0x6002])
	}
}

func TestDDCBIndexedBitTest(t *testing.T) {
	c, bus := newTestCPU(0xDD, 0xCB, 0x03, 0x46) // BIT 0,(IX+3)
	c.IX = 0x7000
	bus.mem[0x7003] = 0x01
	mustStep(t, c)
	if c.Flag(FlagZ) {
		t.Fatal("Z should be clear, bit 0 is set at (IX+3)")
	}
}

func TestDDUnimplementedOpcodeReportsError(t *testing.T) {
	c, _ := newTestCPU(0xDD, 0x00) // 0x00 is not wired in ddOps
	if err := c.Step(); err == nil {
		t.Fatal("Step should return an error for an unwired DD opcode")
	}
}

func TestFDIndexedAddress(t *testing.T) {
	c, bus := newTestCPU(0xFD, 0x36, 0xFE, 0x55) // LD (IY-2),0x55
	c.IY = 0x8000
	mustStep(t, c)
	if bus.mem[0x7FFE] != 0x55 {
		t.Fatalf("(IY-2) = %#02x, want 0x55", bus.mem[0x7FFE])
	}
}
