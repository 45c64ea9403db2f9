// cpu_ops_dd_fd.go - IX/IY index-register opcode tables.
//
// Covers the documented DD/FD forms only: index-register loads and
// arithmetic, the (IX+d)/(IY+d) memory forms, and the DD CB/FD CB indexed
// bit/rotate/shift group. The undocumented IXH/IXL-as-8-bit-register
// opcodes the teacher's own ddOps/fdOps tables likewise omit are not
// implemented here either (see DESIGN.md).

package msx

func (c *CPU) initDDOps() {
	for i := range c.ddOps {
		c.ddOps[i] = (*CPU).opDDUnimplemented
	}
	c.installIndexOps(&c.ddOps, prefixDD)
}

func (c *CPU) initFDOps() {
	for i := range c.fdOps {
		c.fdOps[i] = (*CPU).opFDUnimplemented
	}
	c.installIndexOps(&c.fdOps, prefixFD)
}

func (c *CPU) installIndexOps(table *[256]func(*CPU), which prefixMode) {
	table[0x21] = (*CPU).opLDIdxNN
	table[0x22] = (*CPU).opLDNNIdx
	table[0x2A] = (*CPU).opLDIdxNNMem
	table[0xE5] = (*CPU).opPUSHIdx
	table[0xE1] = (*CPU).opPOPIdx
	table[0xF9] = (*CPU).opLDSPIdx
	table[0x36] = (*CPU).opLDIdxDN
	table[0x34] = (*CPU).opINCIdxD
	table[0x35] = (*CPU).opDECIdxD
	table[0xE9] = (*CPU).opJPIdx
	if which == prefixDD {
		table[0xCB] = (*CPU).opDDCBPrefix
		table[0xE3] = (*CPU).opEXSPIX
	} else {
		table[0xCB] = (*CPU).opFDCBPrefix
		table[0xE3] = (*CPU).opEXSPIY
	}
	table[0x09] = (*CPU).opADDIdxBC
	table[0x19] = (*CPU).opADDIdxDE
	table[0x29] = (*CPU).opADDIdxIdx
	table[0x39] = (*CPU).opADDIdxSP
	table[0x23] = (*CPU).opINCIdx
	table[0x2B] = (*CPU).opDECIdx

	for opcode := byte(0x46); opcode <= 0x7E; opcode += 0x08 {
		if opcode == 0x76 {
			continue
		}
		dest := (opcode >> 3) & 0x07
		table[opcode] = func(cpu *CPU) { cpu.opLDRegIdxD(dest) }
	}
	for opcode := byte(0x70); opcode <= 0x77; opcode++ {
		if opcode == 0x76 {
			continue
		}
		src := opcode & 0x07
		table[opcode] = func(cpu *CPU) { cpu.opLDIdxDReg(src) }
	}
	for opcode := byte(0x86); opcode <= 0xBE; opcode += 0x08 {
		alu := aluOp((opcode >> 3) & 0x07)
		table[opcode] = func(cpu *CPU) { cpu.opALUIdxD(alu) }
	}
}

func (c *CPU) opDDUnimplemented() {
	c.lastErr = &UnknownOpcodeError{PC: c.PC - 2, Prefix: []byte{0xDD}, Opcode: c.prefixOpcode}
}

func (c *CPU) opFDUnimplemented() {
	c.lastErr = &UnknownOpcodeError{PC: c.PC - 2, Prefix: []byte{0xFD}, Opcode: c.prefixOpcode}
}

func (c *CPU) opLDIdxNN() { c.setIndexReg(c.fetchWord()); c.tick(14) }

func (c *CPU) opLDNNIdx() {
	addr := c.fetchWord()
	v := c.indexReg()
	c.write(addr, byte(v))
	c.write(addr+1, byte(v>>8))
	c.tick(20)
}

func (c *CPU) opLDIdxNNMem() {
	addr := c.fetchWord()
	lo := uint16(c.read(addr))
	hi := uint16(c.read(addr + 1))
	c.setIndexReg(lo | hi<<8)
	c.tick(20)
}

func (c *CPU) opPUSHIdx() { c.pushWord(c.indexReg()); c.tick(15) }
func (c *CPU) opPOPIdx()  { c.setIndexReg(c.popWord()); c.tick(14) }
func (c *CPU) opLDSPIdx() { c.SP = c.indexReg(); c.tick(10) }

func (c *CPU) opLDIdxDN() {
	addr := c.indexedAddr()
	v := c.fetchByte()
	c.write(addr, v)
	c.tick(19)
}

func (c *CPU) opINCIdxD() {
	addr := c.indexedAddr()
	c.write(addr, c.inc8(c.read(addr)))
	c.tick(23)
}

func (c *CPU) opDECIdxD() {
	addr := c.indexedAddr()
	c.write(addr, c.dec8(c.read(addr)))
	c.tick(23)
}

func (c *CPU) opJPIdx() { c.PC = c.indexReg(); c.tick(8) }

func (c *CPU) opEXSPIX() {
	v := c.popWord()
	c.pushWord(c.IX)
	c.IX = v
	c.tick(23)
}

func (c *CPU) opEXSPIY() {
	v := c.popWord()
	c.pushWord(c.IY)
	c.IY = v
	c.tick(23)
}

func (c *CPU) opADDIdxBC() { c.setIndexReg(c.addHL16(c.indexReg(), c.BC())); c.tick(15) }
func (c *CPU) opADDIdxDE() { c.setIndexReg(c.addHL16(c.indexReg(), c.DE())); c.tick(15) }
func (c *CPU) opADDIdxIdx() {
	v := c.indexReg()
	c.setIndexReg(c.addHL16(v, v))
	c.tick(15)
}
func (c *CPU) opADDIdxSP() { c.setIndexReg(c.addHL16(c.indexReg(), c.SP)); c.tick(15) }
func (c *CPU) opINCIdx()   { c.setIndexReg(c.indexReg() + 1); c.tick(10) }
func (c *CPU) opDECIdx()   { c.setIndexReg(c.indexReg() - 1); c.tick(10) }

func (c *CPU) opLDRegIdxD(dest byte) {
	addr := c.indexedAddr()
	c.writeReg8(dest, c.read(addr))
	c.tick(19)
}

func (c *CPU) opLDIdxDReg(src byte) {
	addr := c.indexedAddr()
	c.write(addr, c.readReg8(src))
	c.tick(19)
}

func (c *CPU) opALUIdxD(op aluOp) {
	addr := c.indexedAddr()
	c.performALU(op, c.read(addr))
	c.tick(19)
}

func (c *CPU) opDDCBPrefix() {
	disp := int8(c.fetchByte())
	opcode := c.fetchOpcode()
	addr := uint16(int32(c.IX) + int32(disp))
	c.cbIndexed(addr, opcode)
}

func (c *CPU) opFDCBPrefix() {
	disp := int8(c.fetchByte())
	opcode := c.fetchOpcode()
	addr := uint16(int32(c.IY) + int32(disp))
	c.cbIndexed(addr, opcode)
}

// cbIndexed performs a DD CB/FD CB rotate-shift/BIT/RES/SET operation on
// (IX+d)/(IY+d). Any register field bits in opcode other than 6 ((HL))
// are the undocumented "copy result into register too" forms, which this
// core does not implement: the operation always targets memory only.
func (c *CPU) cbIndexed(addr uint16, opcode byte) {
	group := opcode >> 6
	v := c.read(addr)
	switch group {
	case 0:
		sub := (opcode >> 3) & 0x07
		res, carry := rotateShift8(sub, v, c.Flag(FlagC))
		c.write(addr, res)
		c.F = 0
		c.SetFlag(FlagC, carry)
		c.SetFlag(FlagZ, res == 0)
		c.SetFlag(FlagS, res&0x80 != 0)
		c.SetFlag(FlagPV, parity8(res))
		c.F |= res & (FlagX | FlagY)
	case 1:
		bit := (opcode >> 3) & 0x07
		set := v&(1<<bit) != 0
		c.SetFlag(FlagZ, !set)
		c.SetFlag(FlagPV, !set)
		c.SetFlag(FlagH, true)
		c.SetFlag(FlagN, false)
		c.SetFlag(FlagS, bit == 7 && set)
	case 2:
		bit := (opcode >> 3) & 0x07
		c.write(addr, v&^(1<<bit))
	default:
		bit := (opcode >> 3) & 0x07
		c.write(addr, v|(1<<bit))
	}
	c.tick(23)
}
