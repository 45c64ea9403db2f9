// cpu_ops_ed.go - ED-prefixed extended opcode table.
//
// Grounded on the teacher's initEDOps/op{NEG,LDAI,LDAR,IM*,RETN,RETI,RRD,
// RLD,LDI,LDIR,...} family in cpu_z80.go. Where the teacher enumerates one
// method per register (opINBC, opINCC, ...), this table collapses the
// IN r,(C)/OUT (C),r and 16-bit LD (nn),rr/LD rr,(nn) groups into a single
// handler parameterised by the 3-bit register field, the same way the
// base and CB tables already do.

package msx

func (c *CPU) initEDOps() {
	for i := range c.edOps {
		c.edOps[i] = (*CPU).opEDUnimplemented
	}

	for base := byte(0x40); base <= 0x78; base += 8 {
		reg := (base >> 3) & 0x07
		c.edOps[base] = func(cpu *CPU) { cpu.opINrC(reg) }
		c.edOps[base+1] = func(cpu *CPU) { cpu.opOUTCr(reg) }
	}

	for _, op := range []byte{0x44, 0x4C, 0x54, 0x5C, 0x64, 0x6C, 0x74, 0x7C} {
		c.edOps[op] = (*CPU).opNEG
	}
	for _, op := range []byte{0x45, 0x55, 0x5D, 0x65, 0x6D, 0x75, 0x7D} {
		c.edOps[op] = (*CPU).opRETN
	}
	c.edOps[0x4D] = (*CPU).opRETI

	c.edOps[0x46] = (*CPU).opIM0
	c.edOps[0x66] = (*CPU).opIM0
	c.edOps[0x6E] = (*CPU).opIM0
	c.edOps[0x56] = (*CPU).opIM1
	c.edOps[0x76] = (*CPU).opIM1
	c.edOps[0x5E] = (*CPU).opIM2
	c.edOps[0x7E] = (*CPU).opIM2

	c.edOps[0x47] = (*CPU).opLDIA
	c.edOps[0x4F] = (*CPU).opLDRA
	c.edOps[0x57] = (*CPU).opLDAI
	c.edOps[0x5F] = (*CPU).opLDAR

	c.edOps[0x67] = (*CPU).opRRD
	c.edOps[0x6F] = (*CPU).opRLD

	c.edOps[0xA0] = (*CPU).opLDI
	c.edOps[0xB0] = (*CPU).opLDIR
	c.edOps[0xA8] = (*CPU).opLDD
	c.edOps[0xB8] = (*CPU).opLDDR
	c.edOps[0xA1] = (*CPU).opCPI
	c.edOps[0xB1] = (*CPU).opCPIR
	c.edOps[0xA9] = (*CPU).opCPD
	c.edOps[0xB9] = (*CPU).opCPDR
	c.edOps[0xA2] = (*CPU).opINI
	c.edOps[0xB2] = (*CPU).opINIR
	c.edOps[0xAA] = (*CPU).opIND
	c.edOps[0xBA] = (*CPU).opINDR
	c.edOps[0xA3] = (*CPU).opOUTI
	c.edOps[0xB3] = (*CPU).opOTIR
	c.edOps[0xAB] = (*CPU).opOUTD
	c.edOps[0xBB] = (*CPU).opOTDR

	pairLD := []struct {
		storeOp, loadOp byte
		get             func(*CPU) uint16
		set             func(*CPU, uint16)
	}{
		{0x43, 0x4B, (*CPU).BC, (*CPU).SetBC},
		{0x53, 0x5B, (*CPU).DE, (*CPU).SetDE},
		{0x63, 0x6B, (*CPU).HL, (*CPU).SetHL},
		{0x73, 0x7B, func(cpu *CPU) uint16 { return cpu.SP }, func(cpu *CPU, v uint16) { cpu.SP = v }},
	}
	for _, p := range pairLD {
		get, set := p.get, p.set
		c.edOps[p.storeOp] = func(cpu *CPU) {
			addr := cpu.fetchWord()
			v := get(cpu)
			cpu.write(addr, byte(v))
			cpu.write(addr+1, byte(v>>8))
			cpu.tick(20)
		}
		c.edOps[p.loadOp] = func(cpu *CPU) {
			addr := cpu.fetchWord()
			lo := uint16(cpu.read(addr))
			hi := uint16(cpu.read(addr + 1))
			set(cpu, lo|hi<<8)
			cpu.tick(20)
		}
	}

	adcSbc := []struct {
		op  byte
		alu func(*CPU, uint16, uint16) uint16
	}{
		{0x4A, (*CPU).adcHL16}, {0x5A, (*CPU).adcHL16}, {0x6A, (*CPU).adcHL16}, {0x7A, (*CPU).adcHL16},
		{0x42, (*CPU).sbcHL16}, {0x52, (*CPU).sbcHL16}, {0x62, (*CPU).sbcHL16}, {0x72, (*CPU).sbcHL16},
	}
	pairSrc := []func(*CPU) uint16{(*CPU).BC, (*CPU).DE, (*CPU).HL, func(cpu *CPU) uint16 { return cpu.SP }}
	for i, entry := range adcSbc {
		alu := entry.alu
		src := pairSrc[i%4]
		c.edOps[entry.op] = func(cpu *CPU) {
			cpu.SetHL(alu(cpu, cpu.HL(), src(cpu)))
			cpu.tick(15)
		}
	}
}

func (c *CPU) opEDUnimplemented() {
	c.lastErr = &UnknownOpcodeError{PC: c.PC - 2, Prefix: []byte{0xED}, Opcode: c.prefixOpcode}
}

func (c *CPU) opINrC(reg byte) {
	v := c.in(c.C)
	if reg != 6 {
		c.writeReg8(reg, v)
	}
	c.SetFlag(FlagZ, v == 0)
	c.SetFlag(FlagS, v&0x80 != 0)
	c.SetFlag(FlagH, false)
	c.SetFlag(FlagN, false)
	c.SetFlag(FlagPV, parity8(v))
	c.tick(12)
}

func (c *CPU) opOUTCr(reg byte) {
	var v byte
	if reg == 6 {
		v = 0
	} else {
		v = c.readReg8(reg)
	}
	c.out(c.C, v)
	c.tick(12)
}

func (c *CPU) opNEG() {
	a := c.A
	res := byte(0 - int(a))
	c.A = res
	c.F = FlagN
	c.SetFlag(FlagZ, res == 0)
	c.SetFlag(FlagS, res&0x80 != 0)
	c.SetFlag(FlagH, a&0x0F != 0)
	c.SetFlag(FlagPV, a == 0x80)
	c.SetFlag(FlagC, a != 0)
	c.F |= res & (FlagX | FlagY)
	c.tick(8)
}

func (c *CPU) opLDIA() { c.I = c.A; c.tick(9) }
func (c *CPU) opLDRA() { c.R = c.A; c.tick(9) }

func (c *CPU) updateLDAIRFlags() {
	carry := c.F & FlagC
	v := c.A
	c.F = carry
	c.SetFlag(FlagZ, v == 0)
	c.SetFlag(FlagS, v&0x80 != 0)
	c.SetFlag(FlagPV, c.IFF2)
	c.F |= v & (FlagX | FlagY)
}

func (c *CPU) opLDAI() { c.A = c.I; c.updateLDAIRFlags(); c.tick(9) }
func (c *CPU) opLDAR() { c.A = c.R; c.updateLDAIRFlags(); c.tick(9) }

func (c *CPU) opIM0() { c.IM = 0; c.tick(8) }
func (c *CPU) opIM1() { c.IM = 1; c.tick(8) }
func (c *CPU) opIM2() { c.IM = 2; c.tick(8) }

func (c *CPU) opRETN() {
	c.PC = c.popWord()
	c.IFF1 = c.IFF2
	c.tick(14)
}

func (c *CPU) opRETI() {
	c.PC = c.popWord()
	c.IFF1 = c.IFF2
	c.tick(14)
}

func (c *CPU) updateAParityFlagsPreserveCarry() {
	carry := c.F & FlagC
	v := c.A
	c.F = carry
	c.SetFlag(FlagZ, v == 0)
	c.SetFlag(FlagS, v&0x80 != 0)
	c.SetFlag(FlagPV, parity8(v))
	c.F |= v & (FlagX | FlagY)
}

func (c *CPU) opRRD() {
	addr := c.HL()
	v := c.read(addr)
	c.write(addr, (c.A<<4)|(v>>4))
	c.A = (c.A & 0xF0) | (v & 0x0F)
	c.updateAParityFlagsPreserveCarry()
	c.tick(18)
}

func (c *CPU) opRLD() {
	addr := c.HL()
	v := c.read(addr)
	c.write(addr, (v<<4)|(c.A&0x0F))
	c.A = (c.A & 0xF0) | (v >> 4)
	c.updateAParityFlagsPreserveCarry()
	c.tick(18)
}

func (c *CPU) updateLDIFlags(value byte, bc uint16) {
	sum := c.A + value
	c.F = c.F & (FlagS | FlagZ | FlagC)
	c.SetFlag(FlagPV, bc != 0)
	c.F |= sum & (FlagX | FlagY)
}

func (c *CPU) opLDI() {
	v := c.read(c.HL())
	c.write(c.DE(), v)
	c.SetHL(c.HL() + 1)
	c.SetDE(c.DE() + 1)
	bc := c.BC() - 1
	c.SetBC(bc)
	c.updateLDIFlags(v, bc)
	c.tick(16)
}

func (c *CPU) opLDIR() {
	c.opLDI()
	if c.BC() != 0 {
		c.PC -= 2
		c.tick(5)
	}
}

func (c *CPU) opLDD() {
	v := c.read(c.HL())
	c.write(c.DE(), v)
	c.SetHL(c.HL() - 1)
	c.SetDE(c.DE() - 1)
	bc := c.BC() - 1
	c.SetBC(bc)
	c.updateLDIFlags(v, bc)
	c.tick(16)
}

func (c *CPU) opLDDR() {
	c.opLDD()
	if c.BC() != 0 {
		c.PC -= 2
		c.tick(5)
	}
}

func (c *CPU) opCPI() {
	v := c.read(c.HL())
	c.SetHL(c.HL() + 1)
	bc := c.BC() - 1
	c.SetBC(bc)
	c.subA(v, 0, false)
	c.SetFlag(FlagPV, bc != 0)
	c.tick(16)
}

func (c *CPU) opCPIR() {
	c.opCPI()
	if c.BC() != 0 && !c.Flag(FlagZ) {
		c.PC -= 2
		c.tick(5)
	}
}

func (c *CPU) opCPD() {
	v := c.read(c.HL())
	c.SetHL(c.HL() - 1)
	bc := c.BC() - 1
	c.SetBC(bc)
	c.subA(v, 0, false)
	c.SetFlag(FlagPV, bc != 0)
	c.tick(16)
}

func (c *CPU) opCPDR() {
	c.opCPD()
	if c.BC() != 0 && !c.Flag(FlagZ) {
		c.PC -= 2
		c.tick(5)
	}
}

func (c *CPU) updateBlockIOFlags() {
	keep := c.F & (FlagS | FlagH | FlagPV | FlagC | FlagX | FlagY)
	c.F = keep | FlagN
	c.SetFlag(FlagZ, c.B == 0)
}

func (c *CPU) opINI() {
	v := c.in(c.C)
	c.write(c.HL(), v)
	c.B--
	c.SetHL(c.HL() + 1)
	c.updateBlockIOFlags()
	c.tick(16)
}

func (c *CPU) opINIR() {
	c.opINI()
	if c.B != 0 {
		c.PC -= 2
		c.tick(5)
	}
}

func (c *CPU) opIND() {
	v := c.in(c.C)
	c.write(c.HL(), v)
	c.B--
	c.SetHL(c.HL() - 1)
	c.updateBlockIOFlags()
	c.tick(16)
}

func (c *CPU) opINDR() {
	c.opIND()
	if c.B != 0 {
		c.PC -= 2
		c.tick(5)
	}
}

func (c *CPU) opOUTI() {
	v := c.read(c.HL())
	c.B--
	c.out(c.C, v)
	c.SetHL(c.HL() + 1)
	c.updateBlockIOFlags()
	c.tick(16)
}

func (c *CPU) opOTIR() {
	c.opOUTI()
	if c.B != 0 {
		c.PC -= 2
		c.tick(5)
	}
}

func (c *CPU) opOUTD() {
	v := c.read(c.HL())
	c.B--
	c.out(c.C, v)
	c.SetHL(c.HL() - 1)
	c.updateBlockIOFlags()
	c.tick(16)
}

func (c *CPU) opOTDR() {
	c.opOUTD()
	if c.B != 0 {
		c.PC -= 2
		c.tick(5)
	}
}
