// machine.go - top-level lifecycle container tying CPU and Bus together.
//
// Grounded on the original msx/src/machine.rs Msx struct: New/LoadROM/
// LoadRAM/Reset/Step/PC/Halted/MemorySegments/PrimarySlotConfig all mirror
// its method set, adapted to Go idiom (exported struct fields instead of
// private-field-plus-getter, explicit error returns instead of unwrap()).
// ProgramEntry/Program/ProgramSlice mirror its disassembly passthroughs,
// built on this package's own Disassemble rather than a ported
// Instruction::parse.

package msx

import "fmt"

// Machine owns one CPU and one Bus and is the unit of construction for an
// MSX-family session (spec.md section 2, "core boundary").
type Machine struct {
	CPU *CPU
	Bus *Bus
}

// New constructs a Machine from four slots (index 0..3), wiring a fresh
// CPU to a fresh Bus built over them.
func New(slots [4]Slot) *Machine {
	bus := NewBus(slots)
	cpu := NewCPU(bus)
	return &Machine{CPU: cpu, Bus: bus}
}

// NewEmpty constructs a Machine with all four slots empty, ready for
// LoadROM/LoadRAM to populate.
func NewEmpty() *Machine {
	return New([4]Slot{NewEmptySlot(), NewEmptySlot(), NewEmptySlot(), NewEmptySlot()})
}

// Reset reinitialises both the CPU and the Bus (VDP/PSG/PPI) to their
// power-on state. Loaded slot contents are unaffected.
func (m *Machine) Reset() {
	m.CPU.Reset()
	m.Bus.Reset()
}

// Step advances the machine by exactly one CPU instruction (or one HALT
// tick, or one interrupt acceptance).
func (m *Machine) Step() error {
	return m.CPU.Step()
}

// LoadROM replaces slot idx with a ROM image.
func (m *Machine) LoadROM(idx int, rom []byte) error { return m.Bus.LoadROM(idx, rom) }

// LoadRAM replaces slot idx with fresh RAM.
func (m *Machine) LoadRAM(idx int) error { return m.Bus.LoadRAM(idx) }

// LoadEmpty replaces slot idx with an empty slot.
func (m *Machine) LoadEmpty(idx int) error { return m.Bus.LoadEmpty(idx) }

// PC returns the current program counter.
func (m *Machine) PC() uint16 { return m.CPU.PC }

// Halted reports whether the CPU is in the HALT state.
func (m *Machine) Halted() bool { return m.CPU.Halted }

// PrimarySlotConfig returns the PPI's current slot-select byte.
func (m *Machine) PrimarySlotConfig() byte { return m.Bus.PrimarySlotSelect() }

// MemorySegments returns the current slot-to-page mapping.
func (m *Machine) MemorySegments() []MemorySegment { return m.Bus.MemorySegments() }

// ProgramEntry is one disassembled instruction at a fixed address, with
// its raw encoding rendered as a hex string for display.
type ProgramEntry struct {
	Address     uint16
	Instruction string
	Data        string
}

func (e ProgramEntry) String() string {
	return fmt.Sprintf("%04X  %-10s  %s", e.Address, e.Data, e.Instruction)
}

func entryFromInstruction(in Instruction) ProgramEntry {
	var data string
	for i, b := range in.Bytes {
		if i > 0 {
			data += " "
		}
		data += fmt.Sprintf("%02X", b)
	}
	return ProgramEntry{Address: in.Address, Instruction: in.Text, Data: data}
}

// Instruction disassembles the instruction at the current PC.
func (m *Machine) Instruction() ProgramEntry {
	return entryFromInstruction(Disassemble(m.Bus.ReadByte, m.CPU.PC))
}

// ProgramSlice disassembles a run of instructions starting beforePC bytes
// before the current PC and covering size bytes of code.
func (m *Machine) ProgramSlice(beforePC, size uint16) []ProgramEntry {
	pc := m.CPU.PC
	start := pc
	if beforePC > pc {
		start = 0
	} else {
		start = pc - beforePC
	}
	end := start + size

	var entries []ProgramEntry
	for addr := start; addr < end; {
		in := Disassemble(m.Bus.ReadByte, addr)
		entries = append(entries, entryFromInstruction(in))
		addr += uint16(len(in.Bytes))
		if len(in.Bytes) == 0 {
			break
		}
	}
	return entries
}

// Program disassembles forward from the current PC, up to 100
// instructions, stopping at an address wraparound.
func (m *Machine) Program() []ProgramEntry {
	var entries []ProgramEntry
	pc := m.CPU.PC
	for len(entries) < 100 {
		in := Disassemble(m.Bus.ReadByte, pc)
		entries = append(entries, entryFromInstruction(in))
		next := pc + uint16(len(in.Bytes))
		if next < pc {
			break
		}
		pc = next
	}
	return entries
}
