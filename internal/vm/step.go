package vm

import "github.com/tapedevice/tape/internal/ops"

// StepKind classifies what happened during one call to Step.
type StepKind int

const (
	StepOK StepKind = iota
	StepBreakpoint
	StepCharInputRequested
	StepStringInputRequested
	StepHalt
	StepEOF
	StepError
)

// StepResult reports the outcome of a single Step call. CharInputRequested
// and StringInputRequested are restartable: the instruction that triggered
// them has not been consumed and pc has not advanced, so calling Step again
// after the host feeds the Keyboard re-attempts the same rchr/rstr.
type StepResult struct {
	Kind StepKind
	Err  error
}

func (e *Engine) readU16(addr uint16) uint16 {
	return uint16(e.Mem[addr])<<8 | uint16(e.Mem[addr+1])
}

func (e *Engine) writeU16(addr uint16, v uint16) {
	e.Mem[addr] = byte(v >> 8)
	e.Mem[addr+1] = byte(v)
}

func (e *Engine) push(b byte) {
	e.Reg.SP--
	e.Mem[e.Reg.SP] = b
}

func (e *Engine) pop() byte {
	b := e.Mem[e.Reg.SP]
	e.Reg.SP++
	return b
}

func (e *Engine) pushU16(v uint16) {
	e.push(byte(v >> 8))
	e.push(byte(v))
}

func (e *Engine) popU16() uint16 {
	lo := e.pop()
	hi := e.pop()
	return uint16(hi)<<8 | uint16(lo)
}

// Step decodes and executes exactly one instruction, unless pc is a
// breakpoint (Step then clears that breakpoint and returns StepBreakpoint)
// or that instruction is a keyboard read with nothing queued; in both cases
// Step returns without mutating pc at all.
func (e *Engine) Step() StepResult {
	if e.Halted {
		return StepResult{Kind: StepHalt}
	}
	if e.Breakpoints[e.PC] {
		delete(e.Breakpoints, e.PC)
		return StepResult{Kind: StepBreakpoint}
	}

	opByte := e.Mem[e.PC]
	op, width, ok := ops.Decode(opByte)
	if !ok {
		return e.fault(progErrf(e.PC, opByte, "unrecognized opcode"))
	}

	operand := func(i int) byte { return e.Mem[e.PC+1+uint16(i)] }
	operandU16 := func(i int) uint16 { return e.readU16(e.PC + 1 + uint16(i)) }

	advance := func() StepResult {
		if !ops.IsJump(op) {
			e.PC += uint16(width)
		}
		return StepResult{Kind: StepOK}
	}

	switch op {
	case ops.Nop:
		return advance()
	case ops.Halt:
		e.Halted = true
		return StepResult{Kind: StepHalt}
	case ops.Debug:
		return advance()

	// --- arithmetic -----------------------------------------------------
	case ops.AddRegReg:
		dst, src := e.dataReg(operand(0)), e.dataReg(operand(1))
		if dst == nil || src == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		sum := uint16(*dst) + uint16(*src)
		e.Reg.Overflow = sum > 0xFF
		e.Reg.ACC = byte(sum)
		return advance()
	case ops.AddRegVal:
		dst := e.dataReg(operand(0))
		if dst == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		sum := uint16(*dst) + uint16(operand(1))
		e.Reg.Overflow = sum > 0xFF
		e.Reg.ACC = byte(sum)
		return advance()
	case ops.AddRegAreg:
		dst, areg := e.dataReg(operand(0)), e.addrReg(operand(1))
		if dst == nil || areg == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		sum := uint16(*dst) + uint16(e.Mem[*areg])
		e.Reg.Overflow = sum > 0xFF
		e.Reg.ACC = byte(sum)
		return advance()
	case ops.SubRegReg:
		dst, src := e.dataReg(operand(0)), e.dataReg(operand(1))
		if dst == nil || src == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		e.Reg.Overflow = *src > *dst
		e.Reg.ACC = *dst - *src
		return advance()
	case ops.SubRegVal:
		dst := e.dataReg(operand(0))
		if dst == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		v := operand(1)
		e.Reg.Overflow = v > *dst
		e.Reg.ACC = *dst - v
		return advance()
	case ops.SubRegAreg:
		dst, areg := e.dataReg(operand(0)), e.addrReg(operand(1))
		if dst == nil || areg == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		v := e.Mem[*areg]
		e.Reg.Overflow = v > *dst
		e.Reg.ACC = *dst - v
		return advance()
	case ops.IncReg:
		id := operand(0)
		if d := e.dataReg(id); d != nil {
			e.Reg.Overflow = *d == 0xFF
			*d++
		} else if a := e.addrReg(id); a != nil {
			e.Reg.Overflow = *a == 0xFFFF
			*a++
		} else {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		return advance()
	case ops.DecReg:
		id := operand(0)
		if d := e.dataReg(id); d != nil {
			e.Reg.Overflow = *d == 0
			*d--
		} else if a := e.addrReg(id); a != nil {
			e.Reg.Overflow = *a == 0
			*a--
		} else {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		return advance()

	// --- bitwise ----------------------------------------------------------
	case ops.AndRegReg:
		dst, src := e.dataReg(operand(0)), e.dataReg(operand(1))
		if dst == nil || src == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		*dst &= *src
		return advance()
	case ops.AndRegVal:
		dst := e.dataReg(operand(0))
		if dst == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		*dst &= operand(1)
		return advance()
	case ops.AndRegAreg:
		dst, areg := e.dataReg(operand(0)), e.addrReg(operand(1))
		if dst == nil || areg == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		*dst &= e.Mem[*areg]
		return advance()
	case ops.OrRegReg:
		dst, src := e.dataReg(operand(0)), e.dataReg(operand(1))
		if dst == nil || src == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		*dst |= *src
		return advance()
	case ops.OrRegVal:
		dst := e.dataReg(operand(0))
		if dst == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		*dst |= operand(1)
		return advance()
	case ops.OrRegAreg:
		dst, areg := e.dataReg(operand(0)), e.addrReg(operand(1))
		if dst == nil || areg == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		*dst |= e.Mem[*areg]
		return advance()
	case ops.XorRegReg:
		dst, src := e.dataReg(operand(0)), e.dataReg(operand(1))
		if dst == nil || src == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		*dst ^= *src
		return advance()
	case ops.XorRegVal:
		dst := e.dataReg(operand(0))
		if dst == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		*dst ^= operand(1)
		return advance()
	case ops.XorRegAreg:
		dst, areg := e.dataReg(operand(0)), e.addrReg(operand(1))
		if dst == nil || areg == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		*dst ^= e.Mem[*areg]
		return advance()
	case ops.NotReg:
		dst := e.dataReg(operand(0))
		if dst == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		*dst = ^*dst
		return advance()

	// --- copy / swap --------------------------------------------------
	case ops.CpyRegReg:
		dst, src := e.dataReg(operand(0)), e.dataReg(operand(1))
		if dst == nil || src == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		*dst = *src
		return advance()
	case ops.CpyRegVal:
		dst := e.dataReg(operand(0))
		if dst == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		*dst = operand(1)
		return advance()
	case ops.CpyRegAreg:
		dst, areg := e.dataReg(operand(0)), e.addrReg(operand(1))
		if dst == nil || areg == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		*dst = e.Mem[*areg]
		return advance()
	case ops.CpyAregAreg:
		dst, src := e.addrReg(operand(0)), e.addrReg(operand(1))
		if dst == nil || src == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		*dst = *src
		return advance()
	case ops.CpyAregAddr:
		dst := e.addrReg(operand(0))
		if dst == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		*dst = operandU16(1)
		return advance()
	case ops.CpyAregRegReg:
		dst, hi, lo := e.addrReg(operand(0)), e.dataReg(operand(1)), e.dataReg(operand(2))
		if dst == nil || hi == nil || lo == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		*dst = uint16(*hi)<<8 | uint16(*lo)
		return advance()
	case ops.CpyRegRegAreg:
		hi, lo, areg := e.dataReg(operand(0)), e.dataReg(operand(1)), e.addrReg(operand(2))
		if hi == nil || lo == nil || areg == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		v := *areg
		*hi = byte(v >> 8)
		*lo = byte(v)
		return advance()
	case ops.SwpRegReg:
		a, b := e.dataReg(operand(0)), e.dataReg(operand(1))
		if a == nil || b == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		*a, *b = *b, *a
		return advance()
	case ops.SwpAregAreg:
		a, b := e.addrReg(operand(0)), e.addrReg(operand(1))
		if a == nil || b == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		*a, *b = *b, *a
		return advance()

	// --- compare: result always lands in ACC ---------------------------
	case ops.CmpRegReg:
		a, b := e.dataReg(operand(0)), e.dataReg(operand(1))
		if a == nil || b == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		e.Reg.ACC = compare(*a, *b)
		return advance()
	case ops.CmpRegVal:
		a := e.dataReg(operand(0))
		if a == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		e.Reg.ACC = compare(*a, operand(1))
		return advance()
	case ops.CmpRegAreg:
		a, areg := e.dataReg(operand(0)), e.addrReg(operand(1))
		if a == nil || areg == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		e.Reg.ACC = compare(*a, e.Mem[*areg])
		return advance()
	case ops.CmpAregAreg:
		a, b := e.addrReg(operand(0)), e.addrReg(operand(1))
		if a == nil || b == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		e.Reg.ACC = compare16(*a, *b)
		return advance()
	case ops.CmpAregAddr:
		a := e.addrReg(operand(0))
		if a == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		e.Reg.ACC = compare16(*a, operandU16(1))
		return advance()
	case ops.CmpAregRegReg:
		areg, hi, lo := e.addrReg(operand(0)), e.dataReg(operand(1)), e.dataReg(operand(2))
		if areg == nil || hi == nil || lo == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		e.Reg.ACC = compare16(*areg, uint16(*hi)<<8|uint16(*lo))
		return advance()
	case ops.CmpRegRegAreg:
		hi, lo, areg := e.dataReg(operand(0)), e.dataReg(operand(1)), e.addrReg(operand(2))
		if hi == nil || lo == nil || areg == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		e.Reg.ACC = compare16(uint16(*hi)<<8|uint16(*lo), *areg)
		return advance()

	// --- control transfer ------------------------------------------------
	case ops.JmpAddr:
		e.PC = operandU16(0)
		return StepResult{Kind: StepOK}
	case ops.JmpAreg:
		e.PC = *e.addrReg(operand(0))
		return StepResult{Kind: StepOK}
	case ops.JeAddr:
		return e.condJump(e.Reg.ACC == ops.CompareEqual, operandU16(0), width)
	case ops.JeAreg:
		return e.condJump(e.Reg.ACC == ops.CompareEqual, *e.addrReg(operand(0)), width)
	case ops.JneAddr:
		return e.condJump(e.Reg.ACC != ops.CompareEqual, operandU16(0), width)
	case ops.JneAreg:
		return e.condJump(e.Reg.ACC != ops.CompareEqual, *e.addrReg(operand(0)), width)
	case ops.JlAddr:
		return e.condJump(e.Reg.ACC == ops.CompareLesser, operandU16(0), width)
	case ops.JlAreg:
		return e.condJump(e.Reg.ACC == ops.CompareLesser, *e.addrReg(operand(0)), width)
	case ops.JgAddr:
		return e.condJump(e.Reg.ACC == ops.CompareGreater, operandU16(0), width)
	case ops.JgAreg:
		return e.condJump(e.Reg.ACC == ops.CompareGreater, *e.addrReg(operand(0)), width)
	case ops.OverAddr:
		return e.condJump(e.Reg.Overflow, operandU16(0), width)
	case ops.OverAreg:
		return e.condJump(e.Reg.Overflow, *e.addrReg(operand(0)), width)
	case ops.NoverAddr:
		return e.condJump(!e.Reg.Overflow, operandU16(0), width)
	case ops.NoverAreg:
		return e.condJump(!e.Reg.Overflow, *e.addrReg(operand(0)), width)

	// --- memory ------------------------------------------------------
	case ops.MemrAddr:
		e.Reg.ACC = e.Mem[operandU16(0)]
		return advance()
	case ops.MemrAreg:
		e.Reg.ACC = e.Mem[*e.addrReg(operand(0))]
		return advance()
	case ops.MemwAddr:
		e.Mem[operandU16(0)] = e.Reg.ACC
		return advance()
	case ops.MemwAreg:
		e.Mem[*e.addrReg(operand(0))] = e.Reg.ACC
		return advance()
	case ops.MempAddr:
		e.printChars(operandU16(0), e.Reg.ACC)
		return advance()
	case ops.MempAreg:
		areg := e.addrReg(operand(0))
		if areg == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		e.printChars(*areg, e.Reg.ACC)
		return advance()

	// --- stack frames -----------------------------------------------
	case ops.CallAddr:
		e.doCall(operandU16(0), width)
		return StepResult{Kind: StepOK}
	case ops.CallAreg:
		e.doCall(*e.addrReg(operand(0)), width)
		return StepResult{Kind: StepOK}
	case ops.Ret:
		e.PC = e.popU16()
		e.Reg.FP = e.popU16()
		for e.Reg.SP < e.Reg.FP {
			e.pop()
		}
		return StepResult{Kind: StepOK}
	case ops.PushReg:
		id := operand(0)
		if d := e.dataReg(id); d != nil {
			e.push(*d)
		} else if a := e.addrReg(id); a != nil {
			e.pushU16(*a)
		} else {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		return advance()
	case ops.PushVal:
		e.push(operand(0))
		return advance()
	case ops.PopReg:
		id := operand(0)
		if d := e.dataReg(id); d != nil {
			*d = e.pop()
		} else if a := e.addrReg(id); a != nil {
			*a = e.popU16()
		} else {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		return advance()
	case ops.ArgRegVal:
		dst := e.dataReg(operand(0))
		if dst == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		*dst = e.Mem[e.Reg.FP+uint16(operand(1))]
		return advance()
	case ops.ArgRegReg:
		dst, offReg := e.dataReg(operand(0)), e.dataReg(operand(1))
		if dst == nil || offReg == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		*dst = e.Mem[e.Reg.FP+uint16(*offReg)]
		return advance()

	// --- printing ------------------------------------------------------
	case ops.PrtReg:
		e.printDecimal(uint32(*e.dataReg(operand(0))))
		return advance()
	case ops.PrtVal:
		e.printDecimal(uint32(operand(0)))
		return advance()
	case ops.PrtAreg:
		e.printDecimal(uint32(*e.addrReg(operand(0))))
		return advance()
	case ops.PrtdAreg:
		areg := e.addrReg(operand(0))
		if areg == nil {
			return e.fault(progErrf(e.PC, opByte, "bad register operand"))
		}
		e.Printer.Print(e.readCString(*areg))
		return advance()
	case ops.Prtln:
		e.Printer.Newline()
		return advance()
	case ops.PrtcReg:
		e.Printer.Print(string(rune(*e.dataReg(operand(0)))))
		return advance()
	case ops.PrtcVal:
		e.Printer.Print(string(rune(operand(0))))
		return advance()
	case ops.PrtcAreg:
		e.Printer.Print(string(rune(byte(*e.addrReg(operand(0))))))
		return advance()
	case ops.PrtsStr:
		e.Printer.Print(e.readCString(operandU16(0)))
		return advance()

	// --- keyboard ------------------------------------------------------
	case ops.RchrReg:
		c, ok := e.Keyboard.NextChar()
		if !ok {
			return StepResult{Kind: StepCharInputRequested}
		}
		*e.dataReg(operand(0)) = c
		return advance()
	case ops.RstrAddr:
		line, ok := e.Keyboard.NextLine()
		if !ok {
			return StepResult{Kind: StepStringInputRequested}
		}
		e.writeCString(operandU16(0), line)
		e.Reg.ACC = byte(min(len(line), 255))
		return advance()
	case ops.RstrAreg:
		line, ok := e.Keyboard.NextLine()
		if !ok {
			return StepResult{Kind: StepStringInputRequested}
		}
		e.writeCString(*e.addrReg(operand(0)), line)
		e.Reg.ACC = byte(min(len(line), 255))
		return advance()
	case ops.IpollAddr:
		return e.condJump(e.inputAvailable(), operandU16(0), width)
	case ops.IpollAreg:
		return e.condJump(e.inputAvailable(), *e.addrReg(operand(0)), width)

	// --- misc ------------------------------------------------------
	case ops.Time:
		t := e.clock()
		e.Reg.D0, e.Reg.D1, e.Reg.D2, e.Reg.D3 = byte(t>>24), byte(t>>16), byte(t>>8), byte(t)
		return advance()
	case ops.RandReg:
		*e.dataReg(operand(0)) = byte(e.rng())
		return advance()
	case ops.SeedReg:
		e.reseed(uint64(*e.dataReg(operand(0))))
		return advance()

	// --- file I/O ------------------------------------------------------
	case ops.FopenReg:
		return e.fileOp(e.File.Open(*e.dataReg(operand(0))), advance)
	case ops.FopenVal:
		return e.fileOp(e.File.Open(operand(0)), advance)
	case ops.FilerRegAddr:
		return e.fileRead(int(*e.dataReg(operand(0))), operandU16(1), advance)
	case ops.FilerValAddr:
		return e.fileRead(int(operand(0)), operandU16(1), advance)
	case ops.FilerRegAreg:
		return e.fileRead(int(*e.dataReg(operand(0))), *e.addrReg(operand(1)), advance)
	case ops.FilerValAreg:
		return e.fileRead(int(operand(0)), *e.addrReg(operand(1)), advance)
	case ops.FilewRegAddr:
		return e.fileWrite(int(*e.dataReg(operand(0))), operandU16(1), advance)
	case ops.FilewValAddr:
		return e.fileWrite(int(operand(0)), operandU16(1), advance)
	case ops.FilewRegAreg:
		return e.fileWrite(int(*e.dataReg(operand(0))), *e.addrReg(operand(1)), advance)
	case ops.FilewValAreg:
		return e.fileWrite(int(operand(0)), *e.addrReg(operand(1)), advance)
	case ops.FilewRegReg:
		return e.fileWriteByte(*e.dataReg(operand(1)), int(*e.dataReg(operand(0))), advance)
	case ops.FilewRegVal:
		return e.fileWriteByte(operand(1), int(*e.dataReg(operand(0))), advance)
	case ops.FilewValReg:
		return e.fileWriteByte(*e.dataReg(operand(1)), int(operand(0)), advance)
	case ops.FilewValVal:
		return e.fileWriteByte(operand(1), int(operand(0)), advance)
	case ops.FseekReg:
		return e.fileSeek(*e.dataReg(operand(0)), advance)
	case ops.FseekVal:
		return e.fileSeek(operand(0), advance)
	case ops.FskipRegReg:
		return e.fileSkip(int(*e.dataReg(operand(0))), advance)
	case ops.FskipRegVal:
		return e.fileSkip(int(*e.dataReg(operand(0))), advance)
	case ops.FskipValReg:
		return e.fileSkip(int(operand(0)), advance)
	case ops.FskipValVal:
		return e.fileSkip(int(operand(0)), advance)
	case ops.FchkRegAddr:
		return e.condJump(e.fileHasBytes(int(*e.dataReg(operand(0)))), operandU16(1), width)
	case ops.FchkValAddr:
		return e.condJump(e.fileHasBytes(int(operand(0))), operandU16(1), width)
	case ops.FchkRegAreg:
		return e.condJump(e.fileHasBytes(int(*e.dataReg(operand(0)))), *e.addrReg(operand(1)), width)
	case ops.FchkValAreg:
		return e.condJump(e.fileHasBytes(int(operand(0))), *e.addrReg(operand(1)), width)

	// --- data element pointer ------------------------------------------
	case ops.LdAregDataRegReg, ops.LdAregDataRegVal, ops.LdAregDataValReg, ops.LdAregDataValVal:
		row, col := operand(3), operand(4)
		if op == ops.LdAregDataRegReg || op == ops.LdAregDataRegVal {
			row = *e.dataReg(row)
		}
		if op == ops.LdAregDataRegReg || op == ops.LdAregDataValReg {
			col = *e.dataReg(col)
		}
		base := operandU16(1)
		addr := base + 1 + uint16(e.Mem[base])
		for i := uint16(0); i < uint16(row); i++ {
			addr += uint16(e.Mem[base+1+i])
		}
		*e.addrReg(operand(0)) = addr + uint16(col)
		return advance()

	default:
		return e.fault(progErrf(e.PC, opByte, "opcode recognized but not dispatched"))
	}
}

func (e *Engine) fault(err *ProgError) StepResult {
	return StepResult{Kind: StepError, Err: err}
}

func (e *Engine) condJump(take bool, target uint16, width int) StepResult {
	if take {
		e.PC = target
	} else {
		e.PC += uint16(width)
	}
	return StepResult{Kind: StepOK}
}

func (e *Engine) doCall(target uint16, width int) {
	e.pushU16(e.Reg.FP)
	e.pushU16(e.PC + uint16(width))
	e.Reg.FP = e.Reg.SP
	e.PC = target
}

func compare(a, b byte) byte {
	switch {
	case a == b:
		return ops.CompareEqual
	case a < b:
		return ops.CompareLesser
	default:
		return ops.CompareGreater
	}
}

func compare16(a, b uint16) byte {
	switch {
	case a == b:
		return ops.CompareEqual
	case a < b:
		return ops.CompareLesser
	default:
		return ops.CompareGreater
	}
}

func (e *Engine) printDecimal(v uint32) {
	e.Printer.Print(itoa(v))
}

func itoa(v uint32) string {
	if v == 0 {
		return "0"
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = byte('0' + v%10)
		v /= 10
	}
	return string(buf[i:])
}

// printChars prints count consecutive bytes starting at addr as characters.
func (e *Engine) printChars(addr uint16, count byte) {
	for i := uint16(0); i < uint16(count); i++ {
		e.Printer.Print(string(rune(e.Mem[addr+i])))
	}
}

func (e *Engine) readCString(addr uint16) string {
	n := e.Mem[addr]
	return string(e.Mem[addr+1 : addr+1+uint16(n)])
}

func (e *Engine) writeCString(addr uint16, s string) {
	n := len(s)
	if n > 255 {
		n = 255
	}
	e.Mem[addr] = byte(n)
	copy(e.Mem[addr+1:addr+1+uint16(n)], s[:n])
}

func (e *Engine) inputAvailable() bool {
	return e.Keyboard.HasChar() || e.Keyboard.HasLine()
}
