package msx

import "testing"

func TestMachineNewEmptyAllSlotsEmpty(t *testing.T) {
	m := NewEmpty()
	if got := m.Bus.ReadByte(0x0000); got != 0xFF {
		t.Fatalf("ReadByte on empty slot = %#02x, want 0xFF", got)
	}
}

func TestMachineLoadROMAndStep(t *testing.T) {
	m := NewEmpty()
	rom := []byte{0x3E, 0x42, 0x76} // LD A,0x42 ; HALT
	if err := m.LoadROM(0, rom); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	m.Reset()
	if err := m.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if m.CPU.A != 0x42 {
		t.Fatalf("A = %#02x, want 0x42", m.CPU.A)
	}
	if err := m.Step(); err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !m.Halted() {
		t.Fatal("Halted() should be true after executing HALT")
	}
}

func TestMachineInstructionDisassemblesAtPC(t *testing.T) {
	m := NewEmpty()
	if err := m.LoadROM(0, []byte{0xC3, 0x00, 0x10}); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	m.Reset()
	entry := m.Instruction()
	if entry.Instruction != "JP $1000" {
		t.Fatalf("Instruction = %q, want JP $1000", entry.Instruction)
	}
	if entry.Data != "C3 00 10" {
		t.Fatalf("Data = %q, want \"C3 00 10\"", entry.Data)
	}
}

func TestMachineProgramStopsAtHundredInstructions(t *testing.T) {
	m := NewEmpty()
	rom := make([]byte, 0x200)
	for i := range rom {
		rom[i] = 0x00 // NOP
	}
	if err := m.LoadROM(0, rom); err != nil {
		t.Fatalf("LoadROM: %v", err)
	}
	m.Reset()
	entries := m.Program()
	if len(entries) != 100 {
		t.Fatalf("Program() len = %d, want 100", len(entries))
	}
}

func TestMachinePrimarySlotConfigReflectsPPI(t *testing.T) {
	m := NewEmpty()
	m.Bus.PPI.Write(PPIPrimarySlotPort, 0x1B)
	if got := m.PrimarySlotConfig(); got != 0x1B {
		t.Fatalf("PrimarySlotConfig = %#02x, want 0x1B", got)
	}
}
