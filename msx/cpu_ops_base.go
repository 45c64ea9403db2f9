// cpu_ops_base.go - unprefixed opcode table and handlers.
//
// Table construction mirrors the teacher's initBaseOps in cpu_z80.go: the
// 0x40-0x7F LD r,r' block and the 0x80-0xBF ALU block are each filled by a
// small loop decoding dest/src from the opcode bits, rather than 64
// individual assignments.

package msx

func (c *CPU) initBaseOps() {
	for i := range c.baseOps {
		c.baseOps[i] = (*CPU).opBaseUnimplemented
	}

	c.baseOps[0x00] = (*CPU).opNOP
	c.baseOps[0x76] = (*CPU).opHALT

	for opcode := 0x40; opcode <= 0x7F; opcode++ {
		if opcode == 0x76 {
			continue
		}
		op := byte(opcode)
		dest := (op >> 3) & 0x07
		src := op & 0x07
		c.baseOps[op] = func(cpu *CPU) { cpu.opLDRegReg(dest, src) }
	}

	ldRegImm := map[byte]byte{0x06: 0, 0x0E: 1, 0x16: 2, 0x1E: 3, 0x26: 4, 0x2E: 5, 0x36: 6, 0x3E: 7}
	for opcode, reg := range ldRegImm {
		dest := reg
		c.baseOps[opcode] = func(cpu *CPU) { cpu.opLDRegImm(dest) }
	}

	aluBases := []struct {
		base byte
		op   aluOp
	}{
		{0x80, aluAdd}, {0x88, aluAdc}, {0x90, aluSub}, {0x98, aluSbc},
		{0xA0, aluAnd}, {0xA8, aluXor}, {0xB0, aluOr}, {0xB8, aluCp},
	}
	for _, ab := range aluBases {
		op := ab.op
		for opcode := ab.base; opcode <= ab.base+7; opcode++ {
			src := opcode & 0x07
			c.baseOps[opcode] = func(cpu *CPU) { cpu.opALUReg(op, src) }
		}
	}

	aluImm := map[byte]aluOp{0xC6: aluAdd, 0xCE: aluAdc, 0xD6: aluSub, 0xDE: aluSbc, 0xE6: aluAnd, 0xEE: aluXor, 0xF6: aluOr, 0xFE: aluCp}
	for opcode, op := range aluImm {
		alu := op
		c.baseOps[opcode] = func(cpu *CPU) { cpu.opALUImm(alu) }
	}

	c.baseOps[0x27] = (*CPU).opDAA
	c.baseOps[0x2F] = (*CPU).opCPL
	c.baseOps[0x37] = (*CPU).opSCF
	c.baseOps[0x3F] = (*CPU).opCCF

	c.baseOps[0x01] = (*CPU).opLDBCNN
	c.baseOps[0x11] = (*CPU).opLDDENN
	c.baseOps[0x21] = (*CPU).opLDHLNN
	c.baseOps[0x31] = (*CPU).opLDSPNN
	c.baseOps[0x09] = (*CPU).opADDHLBC
	c.baseOps[0x19] = (*CPU).opADDHLDE
	c.baseOps[0x29] = (*CPU).opADDHLHL
	c.baseOps[0x39] = (*CPU).opADDHLSP
	c.baseOps[0x03] = (*CPU).opINCBC
	c.baseOps[0x13] = (*CPU).opINCDE
	c.baseOps[0x23] = (*CPU).opINCHL16
	c.baseOps[0x33] = (*CPU).opINCSP
	c.baseOps[0x0B] = (*CPU).opDECBC
	c.baseOps[0x1B] = (*CPU).opDECDE
	c.baseOps[0x2B] = (*CPU).opDECHL16
	c.baseOps[0x3B] = (*CPU).opDECSP

	c.baseOps[0xC5] = (*CPU).opPUSHBC
	c.baseOps[0xD5] = (*CPU).opPUSHDE
	c.baseOps[0xE5] = (*CPU).opPUSHHL
	c.baseOps[0xF5] = (*CPU).opPUSHAF
	c.baseOps[0xC1] = (*CPU).opPOPBC
	c.baseOps[0xD1] = (*CPU).opPOPDE
	c.baseOps[0xE1] = (*CPU).opPOPHL
	c.baseOps[0xF1] = (*CPU).opPOPAF

	c.baseOps[0xC3] = (*CPU).opJPNN
	c.baseOps[0x18] = (*CPU).opJR
	c.baseOps[0x10] = (*CPU).opDJNZ
	c.baseOps[0xCD] = (*CPU).opCALLNN
	c.baseOps[0xC9] = (*CPU).opRET
	c.baseOps[0xE9] = (*CPU).opJPHL

	c.baseOps[0xE3] = (*CPU).opEXSPHL
	c.baseOps[0x08] = (*CPU).opEXAFAF2
	c.baseOps[0xEB] = (*CPU).opEXDEHL
	c.baseOps[0xD9] = (*CPU).opEXX

	c.baseOps[0x22] = (*CPU).opLDNNHL
	c.baseOps[0x2A] = (*CPU).opLDHLNNMem
	c.baseOps[0x32] = (*CPU).opLDNNA
	c.baseOps[0x3A] = (*CPU).opLDANN
	c.baseOps[0x02] = (*CPU).opLDBCA
	c.baseOps[0x0A] = (*CPU).opLDABC
	c.baseOps[0x12] = (*CPU).opLDDEA
	c.baseOps[0x1A] = (*CPU).opLDADE
	c.baseOps[0xF9] = (*CPU).opLDSPHL

	c.baseOps[0xD3] = (*CPU).opOUTNA
	c.baseOps[0xDB] = (*CPU).opINAN

	c.baseOps[0x07] = (*CPU).opRLCA
	c.baseOps[0x0F] = (*CPU).opRRCA
	c.baseOps[0x17] = (*CPU).opRLA
	c.baseOps[0x1F] = (*CPU).opRRA

	for rst := byte(0); rst < 8; rst++ {
		addr := uint16(rst) * 8
		c.baseOps[0xC7+rst*8] = func(cpu *CPU) { cpu.opRST(addr) }
	}

	incOps := map[byte]byte{0x04: 0, 0x0C: 1, 0x14: 2, 0x1C: 3, 0x24: 4, 0x2C: 5, 0x3C: 7}
	for opcode, reg := range incOps {
		r := reg
		c.baseOps[opcode] = func(cpu *CPU) { cpu.opINCReg(r) }
	}
	c.baseOps[0x34] = (*CPU).opINCHLMem
	decOps := map[byte]byte{0x05: 0, 0x0D: 1, 0x15: 2, 0x1D: 3, 0x25: 4, 0x2D: 5, 0x3D: 7}
	for opcode, reg := range decOps {
		r := reg
		c.baseOps[opcode] = func(cpu *CPU) { cpu.opDECReg(r) }
	}
	c.baseOps[0x35] = (*CPU).opDECHLMem

	condJP := map[byte]byte{0xC2: 0, 0xCA: 1, 0xD2: 2, 0xDA: 3, 0xE2: 4, 0xEA: 5, 0xF2: 6, 0xFA: 7}
	for opcode, cc := range condJP {
		cond := cc
		c.baseOps[opcode] = func(cpu *CPU) { cpu.opJPCond(cond) }
	}
	condJR := map[byte]byte{0x20: 4, 0x28: 5, 0x30: 6, 0x38: 7}
	for opcode, cc := range condJR {
		cond := cc
		c.baseOps[opcode] = func(cpu *CPU) { cpu.opJRCond(cond) }
	}
	condCALL := map[byte]byte{0xC4: 0, 0xCC: 1, 0xD4: 2, 0xDC: 3, 0xE4: 4, 0xEC: 5, 0xF4: 6, 0xFC: 7}
	for opcode, cc := range condCALL {
		cond := cc
		c.baseOps[opcode] = func(cpu *CPU) { cpu.opCALLCond(cond) }
	}
	condRET := map[byte]byte{0xC0: 0, 0xC8: 1, 0xD0: 2, 0xD8: 3, 0xE0: 4, 0xE8: 5, 0xF0: 6, 0xF8: 7}
	for opcode, cc := range condRET {
		cond := cc
		c.baseOps[opcode] = func(cpu *CPU) { cpu.opRETCond(cond) }
	}

	c.baseOps[0xCB] = (*CPU).opCBPrefix
	c.baseOps[0xDD] = (*CPU).opDDPrefix
	c.baseOps[0xFD] = (*CPU).opFDPrefix
	c.baseOps[0xED] = (*CPU).opEDPrefix
	c.baseOps[0xF3] = (*CPU).opDI
	c.baseOps[0xFB] = (*CPU).opEI
}

func (c *CPU) opBaseUnimplemented() {
	c.lastErr = &UnknownOpcodeError{PC: c.PC - 1, Opcode: c.prefixOpcode}
}

func (c *CPU) opNOP() { c.tick(4) }

func (c *CPU) opHALT() {
	c.Halted = true
	c.tick(4)
}

func (c *CPU) opDI() {
	c.IFF1, c.IFF2 = false, false
	c.tick(4)
}

func (c *CPU) opEI() {
	c.iffDelay = 2
	c.tick(4)
}

// readReg8/writeReg8 decode a 3-bit register field (B,C,D,E,H,L,(HL),A).
func (c *CPU) readReg8(code byte) byte {
	switch code {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return c.read(c.HL())
	default:
		return c.A
	}
}

func (c *CPU) writeReg8(code byte, value byte) {
	switch code {
	case 0:
		c.B = value
	case 1:
		c.C = value
	case 2:
		c.D = value
	case 3:
		c.E = value
	case 4:
		c.H = value
	case 5:
		c.L = value
	case 6:
		c.write(c.HL(), value)
	default:
		c.A = value
	}
}

func (c *CPU) opLDRegReg(dest, src byte) {
	v := c.readReg8(src)
	c.writeReg8(dest, v)
	if dest == 6 || src == 6 {
		c.tick(7)
	} else {
		c.tick(4)
	}
}

func (c *CPU) opLDRegImm(dest byte) {
	v := c.fetchByte()
	c.writeReg8(dest, v)
	if dest == 6 {
		c.tick(10)
	} else {
		c.tick(7)
	}
}

func (c *CPU) opALUReg(op aluOp, src byte) {
	c.performALU(op, c.readReg8(src))
	if src == 6 {
		c.tick(7)
	} else {
		c.tick(4)
	}
}

func (c *CPU) opALUImm(op aluOp) {
	v := c.fetchByte()
	c.performALU(op, v)
	c.tick(7)
}

func (c *CPU) opINCReg(reg byte) {
	switch reg {
	case 0:
		c.B = c.inc8(c.B)
	case 1:
		c.C = c.inc8(c.C)
	case 2:
		c.D = c.inc8(c.D)
	case 3:
		c.E = c.inc8(c.E)
	case 4:
		c.H = c.inc8(c.H)
	case 5:
		c.L = c.inc8(c.L)
	default:
		c.A = c.inc8(c.A)
	}
	c.tick(4)
}

func (c *CPU) opDECReg(reg byte) {
	switch reg {
	case 0:
		c.B = c.dec8(c.B)
	case 1:
		c.C = c.dec8(c.C)
	case 2:
		c.D = c.dec8(c.D)
	case 3:
		c.E = c.dec8(c.E)
	case 4:
		c.H = c.dec8(c.H)
	case 5:
		c.L = c.dec8(c.L)
	default:
		c.A = c.dec8(c.A)
	}
	c.tick(4)
}

func (c *CPU) opINCHLMem() {
	addr := c.HL()
	c.write(addr, c.inc8(c.read(addr)))
	c.tick(11)
}

func (c *CPU) opDECHLMem() {
	addr := c.HL()
	c.write(addr, c.dec8(c.read(addr)))
	c.tick(11)
}

func (c *CPU) opDAA() {
	a := c.A
	adjust := byte(0)
	carry := c.Flag(FlagC)
	halfCarry := c.Flag(FlagH)
	sub := c.Flag(FlagN)

	if halfCarry || (!sub && a&0x0F > 9) {
		adjust |= 0x06
	}
	if carry || (!sub && a > 0x99) {
		adjust |= 0x60
		carry = true
	}

	var res byte
	if sub {
		res = a - adjust
	} else {
		res = a + adjust
	}
	c.A = res

	c.SetFlag(FlagC, carry)
	c.SetFlag(FlagH, (sub && halfCarry && a&0x0F < 6) || (!sub && a&0x0F > 9))
	c.SetFlag(FlagS, res&0x80 != 0)
	c.SetFlag(FlagZ, res == 0)
	c.SetFlag(FlagPV, parity8(res))
	c.F = (c.F &^ (FlagX | FlagY)) | res&(FlagX|FlagY)
	c.tick(4)
}

func (c *CPU) opCPL() {
	c.A = ^c.A
	c.SetFlag(FlagH, true)
	c.SetFlag(FlagN, true)
	c.F = (c.F &^ (FlagX | FlagY)) | c.A&(FlagX|FlagY)
	c.tick(4)
}

func (c *CPU) opSCF() {
	c.SetFlag(FlagC, true)
	c.SetFlag(FlagH, false)
	c.SetFlag(FlagN, false)
	c.F = (c.F &^ (FlagX | FlagY)) | c.A&(FlagX|FlagY)
	c.tick(4)
}

func (c *CPU) opCCF() {
	old := c.Flag(FlagC)
	c.SetFlag(FlagH, old)
	c.SetFlag(FlagC, !old)
	c.SetFlag(FlagN, false)
	c.F = (c.F &^ (FlagX | FlagY)) | c.A&(FlagX|FlagY)
	c.tick(4)
}

func (c *CPU) opLDBCNN() { c.SetBC(c.fetchWord()); c.tick(10) }
func (c *CPU) opLDDENN() { c.SetDE(c.fetchWord()); c.tick(10) }
func (c *CPU) opLDHLNN() { c.SetHL(c.fetchWord()); c.tick(10) }
func (c *CPU) opLDSPNN() { c.SP = c.fetchWord(); c.tick(10) }

func (c *CPU) opADDHLBC() { c.SetHL(c.addHL16(c.HL(), c.BC())); c.tick(11) }
func (c *CPU) opADDHLDE() { c.SetHL(c.addHL16(c.HL(), c.DE())); c.tick(11) }
func (c *CPU) opADDHLHL() { c.SetHL(c.addHL16(c.HL(), c.HL())); c.tick(11) }
func (c *CPU) opADDHLSP() { c.SetHL(c.addHL16(c.HL(), c.SP)); c.tick(11) }

func (c *CPU) opINCBC() { c.SetBC(c.BC() + 1); c.tick(6) }
func (c *CPU) opINCDE() { c.SetDE(c.DE() + 1); c.tick(6) }
func (c *CPU) opINCHL16() { c.SetHL(c.HL() + 1); c.tick(6) }
func (c *CPU) opINCSP() { c.SP++; c.tick(6) }
func (c *CPU) opDECBC() { c.SetBC(c.BC() - 1); c.tick(6) }
func (c *CPU) opDECDE() { c.SetDE(c.DE() - 1); c.tick(6) }
func (c *CPU) opDECHL16() { c.SetHL(c.HL() - 1); c.tick(6) }
func (c *CPU) opDECSP() { c.SP--; c.tick(6) }

func (c *CPU) opPUSHBC() { c.pushWord(c.BC()); c.tick(11) }
func (c *CPU) opPUSHDE() { c.pushWord(c.DE()); c.tick(11) }
func (c *CPU) opPUSHHL() { c.pushWord(c.HL()); c.tick(11) }
func (c *CPU) opPUSHAF() { c.pushWord(c.AF()); c.tick(11) }
func (c *CPU) opPOPBC() { c.SetBC(c.popWord()); c.tick(10) }
func (c *CPU) opPOPDE() { c.SetDE(c.popWord()); c.tick(10) }
func (c *CPU) opPOPHL() { c.SetHL(c.popWord()); c.tick(10) }
func (c *CPU) opPOPAF() { c.SetAF(c.popWord()); c.tick(10) }

func (c *CPU) opJPNN() { c.PC = c.fetchWord(); c.tick(10) }

func (c *CPU) opJR() {
	d := int8(c.fetchByte())
	c.PC = uint16(int32(c.PC) + int32(d))
	c.tick(12)
}

func (c *CPU) opDJNZ() {
	d := int8(c.fetchByte())
	c.B--
	if c.B != 0 {
		c.PC = uint16(int32(c.PC) + int32(d))
		c.tick(13)
	} else {
		c.tick(8)
	}
}

func (c *CPU) opCALLNN() {
	target := c.fetchWord()
	c.pushWord(c.PC)
	c.PC = target
	c.tick(17)
}

func (c *CPU) opRET() {
	c.PC = c.popWord()
	c.tick(10)
}

func (c *CPU) opJPHL() { c.PC = c.HL(); c.tick(4) }

func (c *CPU) opEXSPHL() {
	v := c.popWord()
	c.pushWord(c.HL())
	c.SetHL(v)
	c.tick(19)
}

func (c *CPU) opEXAFAF2() { c.ExAF(); c.tick(4) }
func (c *CPU) opEXDEHL() {
	d, h := c.DE(), c.HL()
	c.SetDE(h)
	c.SetHL(d)
	c.tick(4)
}
func (c *CPU) opEXX() { c.Exx(); c.tick(4) }

func (c *CPU) opLDNNHL() {
	addr := c.fetchWord()
	c.write(addr, c.L)
	c.write(addr+1, c.H)
	c.tick(16)
}

func (c *CPU) opLDHLNNMem() {
	addr := c.fetchWord()
	c.L = c.read(addr)
	c.H = c.read(addr + 1)
	c.tick(16)
}

func (c *CPU) opLDNNA() {
	addr := c.fetchWord()
	c.write(addr, c.A)
	c.tick(13)
}

func (c *CPU) opLDANN() {
	addr := c.fetchWord()
	c.A = c.read(addr)
	c.tick(13)
}

func (c *CPU) opLDBCA() { c.write(c.BC(), c.A); c.tick(7) }
func (c *CPU) opLDABC() { c.A = c.read(c.BC()); c.tick(7) }
func (c *CPU) opLDDEA() { c.write(c.DE(), c.A); c.tick(7) }
func (c *CPU) opLDADE() { c.A = c.read(c.DE()); c.tick(7) }

func (c *CPU) opLDSPHL() { c.SP = c.HL(); c.tick(6) }

func (c *CPU) opOUTNA() {
	port := c.fetchByte()
	c.out(port, c.A)
	c.tick(11)
}

func (c *CPU) opINAN() {
	port := c.fetchByte()
	c.A = c.in(port)
	c.tick(11)
}

func (c *CPU) opRLCA() {
	carry := c.A&0x80 != 0
	c.A = c.A<<1 | boolByte(carry)
	c.SetFlag(FlagC, carry)
	c.SetFlag(FlagH, false)
	c.SetFlag(FlagN, false)
	c.F = (c.F &^ (FlagX | FlagY)) | c.A&(FlagX|FlagY)
	c.tick(4)
}

func (c *CPU) opRRCA() {
	carry := c.A&0x01 != 0
	c.A = c.A>>1 | boolByte(carry)<<7
	c.SetFlag(FlagC, carry)
	c.SetFlag(FlagH, false)
	c.SetFlag(FlagN, false)
	c.F = (c.F &^ (FlagX | FlagY)) | c.A&(FlagX|FlagY)
	c.tick(4)
}

func (c *CPU) opRLA() {
	carryIn := boolByte(c.Flag(FlagC))
	carryOut := c.A&0x80 != 0
	c.A = c.A<<1 | carryIn
	c.SetFlag(FlagC, carryOut)
	c.SetFlag(FlagH, false)
	c.SetFlag(FlagN, false)
	c.F = (c.F &^ (FlagX | FlagY)) | c.A&(FlagX|FlagY)
	c.tick(4)
}

func (c *CPU) opRRA() {
	carryIn := boolByte(c.Flag(FlagC))
	carryOut := c.A&0x01 != 0
	c.A = c.A>>1 | carryIn<<7
	c.SetFlag(FlagC, carryOut)
	c.SetFlag(FlagH, false)
	c.SetFlag(FlagN, false)
	c.F = (c.F &^ (FlagX | FlagY)) | c.A&(FlagX|FlagY)
	c.tick(4)
}

func (c *CPU) opRST(addr uint16) {
	c.pushWord(c.PC)
	c.PC = addr
	c.tick(11)
}

// condition evaluates one of the eight cc codes JP/JR/CALL/RET encode.
func (c *CPU) condition(cc byte) bool {
	switch cc {
	case 0:
		return !c.Flag(FlagZ)
	case 1:
		return c.Flag(FlagZ)
	case 2:
		return !c.Flag(FlagC)
	case 3:
		return c.Flag(FlagC)
	case 4:
		return !c.Flag(FlagPV)
	case 5:
		return c.Flag(FlagPV)
	case 6:
		return !c.Flag(FlagS)
	default:
		return c.Flag(FlagS)
	}
}

func (c *CPU) opJPCond(cc byte) {
	target := c.fetchWord()
	if c.condition(cc) {
		c.PC = target
	}
	c.tick(10)
}

func (c *CPU) opJRCond(cc byte) {
	d := int8(c.fetchByte())
	if c.condition(cc) {
		c.PC = uint16(int32(c.PC) + int32(d))
		c.tick(12)
	} else {
		c.tick(7)
	}
}

func (c *CPU) opCALLCond(cc byte) {
	target := c.fetchWord()
	if c.condition(cc) {
		c.pushWord(c.PC)
		c.PC = target
		c.tick(17)
	} else {
		c.tick(10)
	}
}

func (c *CPU) opRETCond(cc byte) {
	if c.condition(cc) {
		c.PC = c.popWord()
		c.tick(11)
	} else {
		c.tick(5)
	}
}

func (c *CPU) opCBPrefix() {
	opcode := c.fetchOpcode()
	handler := c.cbOps[opcode]
	handler(c)
}

func (c *CPU) opDDPrefix() {
	opcode := c.fetchOpcode()
	prev := c.prefix
	c.prefix = prefixDD
	c.prefixOpcode = opcode
	c.ddOps[opcode](c)
	c.prefix = prev
}

func (c *CPU) opFDPrefix() {
	opcode := c.fetchOpcode()
	prev := c.prefix
	c.prefix = prefixFD
	c.prefixOpcode = opcode
	c.fdOps[opcode](c)
	c.prefix = prev
}

func (c *CPU) opEDPrefix() {
	opcode := c.fetchOpcode()
	c.prefixOpcode = opcode
	handler := c.edOps[opcode]
	handler(c)
}
