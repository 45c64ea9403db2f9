package msx

import "testing"

// flatBus is a minimal Z80Bus backed by a flat 64KiB array, used to drive
// CPU unit tests without paging or real I/O devices.
type flatBus struct {
	mem   [0x10000]byte
	ports [256]byte
}

func newFlatBus() *flatBus { return &flatBus{} }

func (b *flatBus) Read(addr uint16) byte         { return b.mem[addr] }
func (b *flatBus) Write(addr uint16, v byte)     { b.mem[addr] = v }
func (b *flatBus) In(port byte) byte             { return b.ports[port] }
func (b *flatBus) Out(port byte, v byte)         { b.ports[port] = v }
func (b *flatBus) Tick(cycles int)               {}

func (b *flatBus) load(addr uint16, code ...byte) {
	for i, c := range code {
		b.mem[addr+uint16(i)] = c
	}
}

func newTestCPU(code ...byte) (*CPU, *flatBus) {
	bus := newFlatBus()
	bus.load(0, code...)
	c := NewCPU(bus)
	c.PC = 0
	return c, bus
}

func TestCPUResetValues(t *testing.T) {
	c, _ := newTestCPU()
	if c.A != 0xFF || c.F != 0x00 {
		t.Fatalf("A,F after reset = %#02x,%#02x, want 0xFF,0x00", c.A, c.F)
	}
	if c.SP != 0xF000 {
		t.Fatalf("SP after reset = %#04x, want 0xF000", c.SP)
	}
	if c.PC != 0 || c.IFF1 || c.IFF2 || c.IM != 0 || c.Halted {
		t.Fatalf("unexpected post-reset state: %+v", c)
	}
}

func TestCPUNOPAdvancesPCOnly(t *testing.T) {
	c, _ := newTestCPU(0x00)
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC != 1 {
		t.Fatalf("PC after NOP = %d, want 1", c.PC)
	}
}

func TestCPULDRegImmAndReg(t *testing.T) {
	c, _ := newTestCPU(0x3E, 0x42, 0x47) // LD A,0x42 ; LD B,A
	mustStep(t, c)
	if c.A != 0x42 {
		t.Fatalf("A = %#02x, want 0x42", c.A)
	}
	mustStep(t, c)
	if c.B != 0x42 {
		t.Fatalf("B = %#02x, want 0x42", c.B)
	}
}

func TestCPUAddSetsCarryAndZero(t *testing.T) {
	c, _ := newTestCPU(0x3E, 0xFF, 0xC6, 0x01) // LD A,0xFF ; ADD A,1
	mustStep(t, c)
	mustStep(t, c)
	if c.A != 0x00 {
		t.Fatalf("A = %#02x, want 0x00", c.A)
	}
	if !c.Flag(FlagZ) {
		t.Fatal("Z flag should be set")
	}
	if !c.Flag(FlagC) {
		t.Fatal("C flag should be set")
	}
}

func TestCPUHalt(t *testing.T) {
	c, _ := newTestCPU(0x76)
	mustStep(t, c)
	if !c.Halted {
		t.Fatal("Halted should be true after executing 0x76")
	}
	pcBefore := c.PC
	mustStep(t, c)
	if c.PC != pcBefore {
		t.Fatalf("PC advanced during HALT: %d -> %d", pcBefore, c.PC)
	}
}

func TestCPUJumpAbsolute(t *testing.T) {
	c, _ := newTestCPU(0xC3, 0x00, 0x10) // JP 0x1000
	mustStep(t, c)
	if c.PC != 0x1000 {
		t.Fatalf("PC = %#04x, want 0x1000", c.PC)
	}
}

func TestCPUCallAndRet(t *testing.T) {
	c, bus := newTestCPU(0xCD, 0x00, 0x20) // CALL 0x2000
	bus.load(0x2000, 0xC9)                 // RET
	mustStep(t, c)
	if c.PC != 0x2000 {
		t.Fatalf("PC after CALL = %#04x, want 0x2000", c.PC)
	}
	if c.SP != 0xF000-2 {
		t.Fatalf("SP after CALL = %#04x, want 0xEFFE", c.SP)
	}
	mustStep(t, c)
	if c.PC != 3 {
		t.Fatalf("PC after RET = %#04x, want 3", c.PC)
	}
	if c.SP != 0xF000 {
		t.Fatalf("SP after RET = %#04x, want 0xF000", c.SP)
	}
}

func TestCPUPushPop(t *testing.T) {
	c, _ := newTestCPU(0x21, 0x34, 0x12, 0xE5, 0xD1) // LD HL,0x1234 ; PUSH HL ; POP DE
	mustStep(t, c)
	if c.HL() != 0x1234 {
		t.Fatalf("HL = %#04x, want 0x1234", c.HL())
	}
	mustStep(t, c)
	mustStep(t, c)
	if c.DE() != 0x1234 {
		t.Fatalf("DE = %#04x, want 0x1234", c.DE())
	}
}

func TestCPUIRQServicingIM1(t *testing.T) {
	c, _ := newTestCPU(0x00)
	c.IFF1 = true
	c.IM = 1
	c.SetIRQLine(true)
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC != 0x0038 {
		t.Fatalf("PC after IM1 IRQ = %#04x, want 0x0038", c.PC)
	}
	if c.IFF1 {
		t.Fatal("IFF1 should be cleared on interrupt acceptance")
	}
}

func TestCPUNMIServicing(t *testing.T) {
	c, _ := newTestCPU(0x00)
	c.IFF1, c.IFF2 = true, true
	c.SetNMILine(true)
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if c.PC != 0x0066 {
		t.Fatalf("PC after NMI = %#04x, want 0x0066", c.PC)
	}
	if c.IFF1 {
		t.Fatal("IFF1 should be cleared on NMI acceptance")
	}
	if !c.IFF2 {
		t.Fatal("IFF2 should retain IFF1's pre-NMI value (true)")
	}
}

func TestCPUUnimplementedOpcodeReportsError(t *testing.T) {
	// 0xED 0xFF is not wired in initEDOps; opEDUnimplemented should fire.
	c, _ := newTestCPU(0xED, 0xFF)
	err := c.Step()
	if err == nil {
		t.Fatal("Step should return an error for an unimplemented ED opcode")
	}
}

func mustStep(t *testing.T, c *CPU) {
	t.Helper()
	if err := c.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
}
