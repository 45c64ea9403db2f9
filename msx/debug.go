// debug.go - register inspection surface and snapshot comparator for an
// external debugger/runner.
//
// GetRegister/SetRegister/GetRegisters follow the teacher's DebugZ80
// adapter in debug_cpu_z80.go (string-keyed lookup over the same register
// set, grouped by kind for a UI to organise). InternalState and its
// String() are ported from the original msx/src/internal_state.rs Display
// implementation, which this project uses verbatim as the canonical
// human-readable snapshot format for cross-checking runs against a
// reference trace (spec.md section 6, "debugger contract").

package msx

import (
	"fmt"
	"strings"
)

// RegisterInfo describes one named register for a debugger UI.
type RegisterInfo struct {
	Name     string
	BitWidth int
	Value    uint64
	Group    string
}

// Debug wraps a Machine with the read/write/snapshot surface an external
// debugger or runner needs, without exposing CPU/Bus internals directly.
type Debug struct {
	m *Machine
}

// NewDebug returns a Debug adapter over m.
func NewDebug(m *Machine) *Debug { return &Debug{m: m} }

// GetRegisters returns every CPU register for display.
func (d *Debug) GetRegisters() []RegisterInfo {
	c := d.m.CPU
	return []RegisterInfo{
		{Name: "A", BitWidth: 8, Value: uint64(c.A), Group: "general"},
		{Name: "F", BitWidth: 8, Value: uint64(c.F), Group: "flags"},
		{Name: "B", BitWidth: 8, Value: uint64(c.B), Group: "general"},
		{Name: "C", BitWidth: 8, Value: uint64(c.C), Group: "general"},
		{Name: "D", BitWidth: 8, Value: uint64(c.D), Group: "general"},
		{Name: "E", BitWidth: 8, Value: uint64(c.E), Group: "general"},
		{Name: "H", BitWidth: 8, Value: uint64(c.H), Group: "general"},
		{Name: "L", BitWidth: 8, Value: uint64(c.L), Group: "general"},
		{Name: "A'", BitWidth: 8, Value: uint64(c.A2), Group: "shadow"},
		{Name: "F'", BitWidth: 8, Value: uint64(c.F2), Group: "shadow"},
		{Name: "B'", BitWidth: 8, Value: uint64(c.B2), Group: "shadow"},
		{Name: "C'", BitWidth: 8, Value: uint64(c.C2), Group: "shadow"},
		{Name: "D'", BitWidth: 8, Value: uint64(c.D2), Group: "shadow"},
		{Name: "E'", BitWidth: 8, Value: uint64(c.E2), Group: "shadow"},
		{Name: "H'", BitWidth: 8, Value: uint64(c.H2), Group: "shadow"},
		{Name: "L'", BitWidth: 8, Value: uint64(c.L2), Group: "shadow"},
		{Name: "IX", BitWidth: 16, Value: uint64(c.IX), Group: "index"},
		{Name: "IY", BitWidth: 16, Value: uint64(c.IY), Group: "index"},
		{Name: "SP", BitWidth: 16, Value: uint64(c.SP), Group: "general"},
		{Name: "PC", BitWidth: 16, Value: uint64(c.PC), Group: "general"},
		{Name: "I", BitWidth: 8, Value: uint64(c.I), Group: "status"},
		{Name: "R", BitWidth: 8, Value: uint64(c.R), Group: "status"},
		{Name: "IM", BitWidth: 8, Value: uint64(c.IM), Group: "status"},
	}
}

// GetRegister looks up a single register by name (case-insensitive).
func (d *Debug) GetRegister(name string) (uint64, bool) {
	c := d.m.CPU
	switch strings.ToUpper(name) {
	case "A":
		return uint64(c.A), true
	case "F":
		return uint64(c.F), true
	case "B":
		return uint64(c.B), true
	case "C":
		return uint64(c.C), true
	case "D":
		return uint64(c.D), true
	case "E":
		return uint64(c.E), true
	case "H":
		return uint64(c.H), true
	case "L":
		return uint64(c.L), true
	case "IX":
		return uint64(c.IX), true
	case "IY":
		return uint64(c.IY), true
	case "SP":
		return uint64(c.SP), true
	case "PC":
		return uint64(c.PC), true
	case "I":
		return uint64(c.I), true
	case "R":
		return uint64(c.R), true
	case "IM":
		return uint64(c.IM), true
	case "AF":
		return uint64(c.AF()), true
	case "BC":
		return uint64(c.BC()), true
	case "DE":
		return uint64(c.DE()), true
	case "HL":
		return uint64(c.HL()), true
	}
	return 0, false
}

// SetRegister writes a single register by name, reporting whether name
// was recognised.
func (d *Debug) SetRegister(name string, value uint64) bool {
	c := d.m.CPU
	switch strings.ToUpper(name) {
	case "A":
		c.A = byte(value)
	case "F":
		c.F = byte(value)
	case "B":
		c.B = byte(value)
	case "C":
		c.C = byte(value)
	case "D":
		c.D = byte(value)
	case "E":
		c.E = byte(value)
	case "H":
		c.H = byte(value)
	case "L":
		c.L = byte(value)
	case "IX":
		c.IX = uint16(value)
	case "IY":
		c.IY = uint16(value)
	case "SP":
		c.SP = uint16(value)
	case "PC":
		c.PC = uint16(value)
	case "I":
		c.I = byte(value)
	case "R":
		c.R = byte(value)
	case "IM":
		c.IM = byte(value)
	case "AF":
		c.SetAF(uint16(value))
	case "BC":
		c.SetBC(uint16(value))
	case "DE":
		c.SetDE(uint16(value))
	case "HL":
		c.SetHL(uint16(value))
	default:
		return false
	}
	return true
}

// PC returns the current program counter.
func (d *Debug) PC() uint16 { return d.m.CPU.PC }

// Halted reports whether the CPU is in the HALT state.
func (d *Debug) Halted() bool { return d.m.CPU.Halted }

// ReadMemory reads a CPU-addressed byte through the slot map, the same
// path instruction fetch uses.
func (d *Debug) ReadMemory(addr uint16) byte { return d.m.Bus.ReadByte(addr) }

// WriteMemory writes a CPU-addressed byte through the slot map.
func (d *Debug) WriteMemory(addr uint16, value byte) { d.m.Bus.WriteByte(addr, value) }

// VRAMByte reads VDP memory out-of-band, bypassing the port latch.
func (d *Debug) VRAMByte(addr uint16) byte { return d.m.Bus.VDP.VRAMByte(addr) }

// WroteToPPI drains the one-shot "PPI write observed" edge.
func (d *Debug) WroteToPPI() bool { return d.m.Bus.WroteToPPI() }

// MemorySegments returns the current slot-to-page mapping.
func (d *Debug) MemorySegments() []MemorySegment { return d.m.Bus.MemorySegments() }

// InternalState is a point-in-time snapshot of CPU register state plus
// the opcode byte at PC and the memory byte at HL, with a String() format
// matching the original implementation's own trace output, for use
// comparing runs against a reference trace.
type InternalState struct {
	PC, SP     uint16
	A, B, C    byte
	D, E, H, L byte
	F          byte
	HL         uint16
	HLContents byte
	Opcode     byte
}

// Snapshot captures the current CPU and memory state into an
// InternalState, reading the opcode at PC and the byte at HL without
// advancing anything.
func (d *Debug) Snapshot() InternalState {
	c := d.m.CPU
	hl := c.HL()
	return InternalState{
		PC: c.PC, SP: c.SP,
		A: c.A, B: c.B, C: c.C,
		D: c.D, E: c.E, H: c.H,
		L: c.L, F: c.F,
		HL:         hl,
		HLContents: d.m.Bus.ReadByte(hl),
		Opcode:     d.m.Bus.ReadByte(c.PC),
	}
}

// String renders the snapshot as "#PPPP #OO - A: #AA B: #BB ... - HL:
// #HHHH(#VV) SP: #SSSS - S: 0/1 Z: 0/1 H: 0/1 P/V: 0/1 N: 0/1 C: 0/1",
// matching the original Rust Display implementation byte for byte so a
// reference trace log can be diffed directly against this core's output.
func (s InternalState) String() string {
	return fmt.Sprintf(
		"#%04X #%02X - A: #%02X B: #%02X C: #%02X D: #%02X E: #%02X H: #%02X L: #%02X - HL: #%04X(#%02X) SP: #%04X - %s",
		s.PC, s.Opcode, s.A, s.B, s.C, s.D, s.E, s.H, s.L, s.HL, s.HLContents, s.SP, s.flagsString(),
	)
}

func (s InternalState) flagsString() string {
	bit := func(mask byte) int {
		if s.F&mask != 0 {
			return 1
		}
		return 0
	}
	return fmt.Sprintf(
		"S: %d Z: %d H: %d P/V: %d N: %d C: %d",
		bit(FlagS), bit(FlagZ), bit(FlagH), bit(FlagPV), bit(FlagN), bit(FlagC),
	)
}
