// bus.go - four-slot paged memory bus and I/O port dispatch.
//
// Grounded on original msx/src/bus.rs (translate_address/memory_segments
// algorithm, PPI-write edge) and on the teacher's Z80Bus interface shape
// in cpu_z80.go, so CPU can be built against any implementation of it.

package msx

import "log"

// Z80Bus is the contract the CPU interpreter drives every memory and I/O
// access through (spec.md section 6, "CPU<->Bus contract").
type Z80Bus interface {
	Read(addr uint16) byte
	Write(addr uint16, value byte)
	In(port byte) byte
	Out(port byte, value byte)
	Tick(cycles int)
}

// I/O port ranges, dispatched by Bus.In/Bus.Out (spec.md section 4.2).
const (
	portVDPData    = 0x98
	portVDPControl = 0x99
	portPSGSelect  = 0xA0
	portPSGData    = 0xA1
	portPPILow     = 0xA8
	portPPIHigh    = 0xAB
)

// MemorySegment is a maximal run of contiguous 16KiB pages mapped to the
// same slot. It is derived on demand from the current slot-select byte,
// never stored authoritatively.
type MemorySegment struct {
	Start uint16
	End   uint16
	Slot  int
}

// Bus owns the four memory slots and the three I/O devices (VDP, PSG,
// PPI), and routes CPU memory and I/O operations between them.
type Bus struct {
	slots [4]Slot

	VDP *VDP
	PSG *PSG
	PPI *PPI

	wroteToPPI bool
	cycles     uint64
}

// NewBus builds a Bus from four slot instances (index 0..3) plus fresh
// VDP/PSG/PPI devices.
func NewBus(slots [4]Slot) *Bus {
	return &Bus{
		slots: slots,
		VDP:   NewVDP(),
		PSG:   NewPSG(),
		PPI:   NewPPI(),
	}
}

// Reset delegates to VDP, PSG, and PPI. It does not alter the slots
// themselves — slot replacement is explicit via LoadROM/LoadRAM/LoadEmpty.
func (b *Bus) Reset() {
	b.VDP.Reset()
	b.PSG.Reset()
	b.PPI.Reset()
	b.wroteToPPI = false
}

// page returns which of the four 16KiB CPU pages addr falls in.
func page(addr uint16) int {
	return int(addr>>14) & 0b11
}

// slotForPage returns the slot index mapped into the given page under
// the current primary-slot-select byte.
func (b *Bus) slotForPage(p int) int {
	s := b.PPI.PrimarySlotSelect()
	return int(s>>(2*p)) & 0b11
}

// ReadByte translates addr through the current slot map and reads the
// owning slot.
func (b *Bus) ReadByte(addr uint16) byte {
	idx := b.slotForPage(page(addr))
	return b.slots[idx].Read(addr)
}

// WriteByte translates addr through the current slot map and writes the
// owning slot.
func (b *Bus) WriteByte(addr uint16, value byte) {
	idx := b.slotForPage(page(addr))
	b.slots[idx].Write(addr, value)
}

// ReadWord reads a little-endian 16-bit value. The two halves are
// translated independently, so an access crossing a page boundary may
// read from two different slots (spec.md section 4.2).
func (b *Bus) ReadWord(addr uint16) uint16 {
	lo := uint16(b.ReadByte(addr))
	hi := uint16(b.ReadByte(addr + 1))
	return lo | hi<<8
}

// WriteWord writes a little-endian 16-bit value, low byte first.
func (b *Bus) WriteWord(addr uint16, value uint16) {
	b.WriteByte(addr, byte(value))
	b.WriteByte(addr+1, byte(value>>8))
}

// Read implements Z80Bus.
func (b *Bus) Read(addr uint16) byte { return b.ReadByte(addr) }

// Write implements Z80Bus.
func (b *Bus) Write(addr uint16, value byte) { b.WriteByte(addr, value) }

// In dispatches an I/O port read per the table in spec.md section 4.2.
func (b *Bus) In(port byte) byte {
	switch {
	case port == portVDPData || port == portVDPControl:
		return b.VDP.Read(port)
	case port == portPSGSelect || port == portPSGData:
		return b.PSG.ReadSelected()
	case port >= portPPILow && port <= portPPIHigh:
		return b.PPI.Read(port)
	default:
		log.Printf("msx: invalid I/O port %02X read", port)
		return 0xFF
	}
}

// Out dispatches an I/O port write per the table in spec.md section 4.2.
func (b *Bus) Out(port byte, value byte) {
	switch {
	case port == portVDPData || port == portVDPControl:
		b.VDP.Write(port, value)
	case port == portPSGSelect:
		b.PSG.SelectRegister(value)
	case port == portPSGData:
		b.PSG.WriteData(value)
	case port >= portPPILow && port <= portPPIHigh:
		b.wroteToPPI = true
		b.PPI.Write(port, value)
	default:
		log.Printf("msx: invalid I/O port %02X write", port)
	}
}

// Tick accumulates a cycle counter for host instrumentation. The core is
// instruction-stepped, not T-state-accurate (spec.md Non-goals), so this
// has no effect on timing-dependent behaviour.
func (b *Bus) Tick(cycles int) {
	b.cycles += uint64(cycles)
}

// WroteToPPI returns and clears the one-shot "PPI write observed" edge a
// debugger uses to notice a remap (spec.md section 4.3).
func (b *Bus) WroteToPPI() bool {
	w := b.wroteToPPI
	b.wroteToPPI = false
	return w
}

// LoadROM replaces slot idx with a ROM image occupying the full 64KiB
// slot address space, base 0x0000.
func (b *Bus) LoadROM(idx int, rom []byte) error {
	if idx < 0 || idx > 3 {
		return ErrSlotIndex
	}
	s, err := NewROMSlot(rom, 0x0000, 0x10000)
	if err != nil {
		return err
	}
	b.slots[idx] = s
	return nil
}

// LoadRAM replaces slot idx with a fresh 64KiB RAM region.
func (b *Bus) LoadRAM(idx int) error {
	if idx < 0 || idx > 3 {
		return ErrSlotIndex
	}
	b.slots[idx] = NewRAMSlot(0x0000, 0x10000)
	return nil
}

// LoadEmpty replaces slot idx with an Empty slot.
func (b *Bus) LoadEmpty(idx int) error {
	if idx < 0 || idx > 3 {
		return ErrSlotIndex
	}
	b.slots[idx] = NewEmptySlot()
	return nil
}

// PrimarySlotSelect returns the PPI's current slot-select byte.
func (b *Bus) PrimarySlotSelect() byte {
	return b.PPI.PrimarySlotSelect()
}

// MemorySegments derives the list of contiguous-slot runs under the
// current slot-select byte (spec.md section 3, "MemorySegment").
func (b *Bus) MemorySegments() []MemorySegment {
	s := b.PPI.PrimarySlotSelect()

	var segments []MemorySegment
	var cur *MemorySegment
	for p := 0; p < 4; p++ {
		slot := int(s>>(2*p)) & 0b11
		start := uint16(p * 0x4000)
		end := start + 0x3FFF

		if cur != nil && cur.Slot == slot {
			cur.End = end
			continue
		}
		if cur != nil {
			segments = append(segments, *cur)
		}
		cur = &MemorySegment{Start: start, End: end, Slot: slot}
	}
	if cur != nil {
		segments = append(segments, *cur)
	}
	return segments
}
