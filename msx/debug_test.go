package msx

import "testing"

func TestDebugGetSetRegisterByName(t *testing.T) {
	m := NewEmpty()
	d := NewDebug(m)

	if !d.SetRegister("a", 0x7E) {
		t.Fatal("SetRegister(a) should recognise the name case-insensitively")
	}
	v, ok := d.GetRegister("A")
	if !ok || v != 0x7E {
		t.Fatalf("GetRegister(A) = %v,%v want 0x7E,true", v, ok)
	}

	if !d.SetRegister("HL", 0x1234) {
		t.Fatal("SetRegister(HL) should succeed")
	}
	if got, _ := d.GetRegister("H"); got != 0x12 {
		t.Fatalf("H = %#02x, want 0x12", got)
	}
	if got, _ := d.GetRegister("L"); got != 0x34 {
		t.Fatalf("L = %#02x, want 0x34", got)
	}
}

func TestDebugGetRegisterUnknownName(t *testing.T) {
	m := NewEmpty()
	d := NewDebug(m)
	if _, ok := d.GetRegister("ZZ"); ok {
		t.Fatal("GetRegister(ZZ) should report unknown")
	}
}

func TestDebugSnapshotFieldsAndFormat(t *testing.T) {
	m := NewEmpty()
	if err := m.LoadRAM(0); err != nil {
		t.Fatalf("LoadRAM: %v", err)
	}
	m.Reset()
	d := NewDebug(m)

	m.Bus.WriteByte(0x0000, 0x3E) // opcode byte at PC
	m.CPU.SetHL(0x0010)
	m.Bus.WriteByte(0x0010, 0x99) // byte at HL

	snap := d.Snapshot()
	if snap.Opcode != 0x3E {
		t.Fatalf("Opcode = %#02x, want 0x3E", snap.Opcode)
	}
	if snap.HLContents != 0x99 {
		t.Fatalf("HLContents = %#02x, want 0x99", snap.HLContents)
	}
	if snap.HL != 0x0010 {
		t.Fatalf("HL = %#04x, want 0x0010", snap.HL)
	}

	s := snap.String()
	want := "#0000 #3E - A: #FF B: #FF C: #FF D: #FF E: #FF H: #00 L: #10 - HL: #0010(#99) SP: #F000 - S: 0 Z: 0 H: 0 P/V: 0 N: 0 C: 0"
	if s != want {
		t.Fatalf("String() =\n%q\nwant\n%q", s, want)
	}
}

func TestDebugWroteToPPIPassthrough(t *testing.T) {
	m := NewEmpty()
	d := NewDebug(m)
	if d.WroteToPPI() {
		t.Fatal("WroteToPPI should start false")
	}
	m.Bus.Out(PPIPrimarySlotPort, 0x00)
	if !d.WroteToPPI() {
		t.Fatal("WroteToPPI should observe the edge through the Bus")
	}
}
