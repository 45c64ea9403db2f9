package msx

import "testing"

func TestEDLDIRRepeatsUntilBCZero(t *testing.T) {
	c, bus := newTestCPU(0xED, 0xB0) // LDIR
	c.SetHL(0x2000)
	c.SetDE(0x3000)
	c.SetBC(0x0003)
	bus.mem[0x2000] = 0x01
	bus.mem[0x2001] = 0x02
	bus.mem[0x2002] = 0x03

	for c.BC() != 0 {
		if err := c.Step(); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}

	if bus.mem[0x3000] != 0x01 || bus.mem[0x3001] != 0x02 || bus.mem[0x3002] != 0x03 {
		t.Fatalf("block not copied: %02x %02x %02x", bus.mem[0x3000], bus.mem[0x3001], bus.mem[0x3002])
	}
	if c.HL() != 0x2003 || c.DE() != 0x3003 {
		t.Fatalf("HL/DE after LDIR = %#04x/%#04x, want 0x2003/0x3003", c.HL(), c.DE())
	}
}

func TestEDCPIRStopsOnMatch(t *testing.T) {
	c, bus := newTestCPU(0xED, 0xB1) // CPIR
	c.A = 0x42
	c.SetHL(0x4000)
	c.SetBC(0x0005)
	bus.mem[0x4000] = 0x00
	bus.mem[0x4001] = 0x42

	mustStep(t, c) // first iteration: no match, repeats
	if c.PC != 0 {
		t.Fatalf("PC = %#04x, want 0 (repeat keeps re-entering CPIR)", c.PC)
	}
	mustStep(t, c) // second iteration: matches 0x42, stops repeating
	if !c.Flag(FlagZ) {
		t.Fatal("Z should be set once A matches the scanned byte")
	}
	if c.PC != 2 {
		t.Fatalf("PC = %#04x, want 2 (CPIR stopped repeating)", c.PC)
	}
}

func TestEDNegatesAccumulator(t *testing.T) {
	c, _ := newTestCPU(0xED, 0x44) // NEG
	c.A = 0x01
	mustStep(t, c)
	if c.A != 0xFF {
		t.Fatalf("A = %#02x, want 0xFF", c.A)
	}
	if !c.Flag(FlagC) {
		t.Fatal("C should be set: NEG of a non-zero value always sets carry")
	}
}

func TestEDSetsInterruptMode(t *testing.T) {
	c, _ := newTestCPU(0xED, 0x56) // IM 1
	mustStep(t, c)
	if c.IM != 1 {
		t.Fatalf("IM = %d, want 1", c.IM)
	}
}

func TestEDInCPortThroughRegisterC(t *testing.T) {
	c, bus := newTestCPU(0xED, 0x78) // IN A,(C)
	c.C = portPSGData
	bus.ports[portPSGData] = 0x5A
	mustStep(t, c)
	if c.A != 0x5A {
		t.Fatalf("A = %#02x, want 0x5A", c.A)
	}
}
