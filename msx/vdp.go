// vdp.go - TMS9918-family video display processor port protocol.
//
// Ported from the original MSX's msx/src/vdp.rs two-phase latch sequence,
// with the register/pointer branch corrected to the canonical TMS9918
// convention (bit 7 of the second control byte selects the branch — see
// SPEC_FULL.md section 4.5 for why this core does not reproduce the
// source's inverted test). Rendering is an external collaborator; this
// type only exposes the port protocol, VRAM, and registers.

package msx

import "log"

// VDP port addresses.
const (
	VDPDataPort    = 0x98
	VDPControlPort = 0x99
)

const vramSize = 0x4000

// DisplayMode is the VDP's derived screen mode, recomputed from R0/R1 on
// every write that touches them.
type DisplayMode int

const (
	Graphic1 DisplayMode = iota
	Graphic2
	Text1
	Multicolor
)

func (m DisplayMode) String() string {
	switch m {
	case Graphic1:
		return "Graphic1"
	case Graphic2:
		return "Graphic2"
	case Text1:
		return "Text1"
	case Multicolor:
		return "Multicolor"
	default:
		return "Unknown"
	}
}

// VDP models the TMS9918's VRAM, register file, and two-port command
// protocol.
type VDP struct {
	vram [vramSize]byte

	registers [8]byte
	status    byte

	address    uint16
	dataPreRead byte

	latch      byte
	latchValid bool

	displayMode DisplayMode
}

// NewVDP returns a freshly reset VDP.
func NewVDP() *VDP {
	v := &VDP{}
	v.Reset()
	return v
}

// Reset clears VRAM, registers, status, the VRAM pointer, and the latch.
func (v *VDP) Reset() {
	for i := range v.vram {
		v.vram[i] = 0
	}
	v.registers = [8]byte{}
	v.status = 0
	v.address = 0
	v.dataPreRead = 0
	v.latch = 0
	v.latchValid = false
	v.displayMode = Text1
}

// Read dispatches a VDP port read.
func (v *VDP) Read(port byte) byte {
	switch port {
	case VDPDataPort:
		return v.readData()
	case VDPControlPort:
		return v.readStatus()
	default:
		log.Printf("msx: vdp read from unexpected port %02X", port)
		return 0xFF
	}
}

// Write dispatches a VDP port write.
func (v *VDP) Write(port byte, value byte) {
	switch port {
	case VDPDataPort:
		v.writeData(value)
	case VDPControlPort:
		v.writeControl(value)
	default:
		log.Printf("msx: vdp write to unexpected port %02X", port)
	}
}

func (v *VDP) readData() byte {
	data := v.dataPreRead
	v.dataPreRead = v.vram[v.address]
	v.address = (v.address + 1) & 0x3FFF
	v.latchValid = false
	return data
}

func (v *VDP) writeData(d byte) {
	v.vram[v.address] = d
	v.dataPreRead = d
	v.address = (v.address + 1) & 0x3FFF
	v.latchValid = false
}

// readStatus clears the latch and the interrupt-request bit (bit 7) as a
// side effect, but is otherwise idempotent with respect to address.
func (v *VDP) readStatus() byte {
	s := v.status
	v.latchValid = false
	v.status &^= 0x80
	return s
}

func (v *VDP) writeControl(d byte) {
	if !v.latchValid {
		v.latch = d
		v.latchValid = true
		v.address = (v.address & 0x3F00) | uint16(d)
		return
	}

	l := v.latch
	v.latchValid = false

	if d&0x80 == 0 {
		// Pointer command: 6 high bits from d, low 8 bits from the
		// latched first byte.
		v.address = (uint16(l) | (uint16(d&0x3F) << 8)) & 0x3FFF
		if d&0x40 == 0 {
			// Read mode: pre-read and advance.
			v.dataPreRead = v.vram[v.address]
			v.address = (v.address + 1) & 0x3FFF
		}
		return
	}

	// Register command: low 3 bits of d select the register, the
	// latched first byte is the value.
	reg := d & 0x07
	v.registers[reg] = l
	if reg == 0 || reg == 1 {
		v.updateDisplayMode()
	}
}

func (v *VDP) updateDisplayMode() {
	mx := ((v.registers[0] & 0x0E) >> 1) | ((v.registers[1] & 0x18) << 2)
	switch mx {
	case 0:
		v.displayMode = Graphic1
	case 1:
		v.displayMode = Graphic2
	case 8:
		v.displayMode = Text1
	case 16:
		v.displayMode = Multicolor
	default:
		log.Printf("msx: vdp unsupported display mode bits %04b, defaulting to Text1", mx)
		v.displayMode = Text1
	}
}

// SetVBlank raises the VDP's interrupt-request status bit. Driven by an
// external collaborator that tracks scanline/frame timing (see
// spec.md section 4.5, "Interrupt hook").
func (v *VDP) SetVBlank() {
	v.status |= 0x80
}

// InterruptPending reports the raw interrupt-request bit without the
// read-clears-it side effect of a control-port read (readStatus).
func (v *VDP) InterruptPending() bool {
	return v.status&0x80 != 0
}

// DisplayMode returns the currently derived screen mode.
func (v *VDP) DisplayMode() DisplayMode { return v.displayMode }

// Address returns the current internal VRAM pointer.
func (v *VDP) Address() uint16 { return v.address }

// Register returns the raw content of control register n (0..7).
func (v *VDP) Register(n int) byte { return v.registers[n&0x07] }

// Status returns the raw status byte without the read-clears-it side
// effect (for non-destructive snapshotting by a debugger).
func (v *VDP) Status() byte { return v.status }

// VRAMByte reads VRAM out-of-band, bypassing the read-ahead buffer and
// address auto-increment — used by accessors that must not perturb VDP
// port state (disassemblers, renderers, debuggers).
func (v *VDP) VRAMByte(addr uint16) byte {
	return v.vram[addr&0x3FFF]
}

// VRAM returns the full VRAM contents for read-only inspection.
func (v *VDP) VRAM() []byte {
	return v.vram[:]
}
