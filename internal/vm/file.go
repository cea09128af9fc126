package vm

import "io"

// fileOp finishes fopen once the host has tried to open the file: it
// writes the file's length big-endian across D0 (high) through D3 (low)
// and seeks back to the start. Failures are fatal ProgErrors, since the
// assembler-level contract is that a program checks fchk before attempting
// reads it cannot be sure will succeed.
func (e *Engine) fileOp(err error, advance func() StepResult) StepResult {
	if err != nil {
		return e.fault(progErrf(e.PC, e.Mem[e.PC], "file operation failed: %v", err))
	}
	size, err := e.File.Len()
	if err != nil {
		return e.fault(progErrf(e.PC, e.Mem[e.PC], "file length failed: %v", err))
	}
	e.Reg.D0, e.Reg.D1, e.Reg.D2, e.Reg.D3 = byte(size>>24), byte(size>>16), byte(size>>8), byte(size)
	if _, err := e.File.Seek(0, io.SeekStart); err != nil {
		return e.fault(progErrf(e.PC, e.Mem[e.PC], "file seek failed: %v", err))
	}
	return advance()
}

func (e *Engine) fileRead(count int, dest uint16, advance func() StepResult) StepResult {
	buf := make([]byte, count)
	n, err := e.File.Read(buf)
	if err != nil && err != io.EOF {
		return e.fault(progErrf(e.PC, e.Mem[e.PC], "file read failed: %v", err))
	}
	copy(e.Mem[dest:], buf[:n])
	e.Reg.ACC = byte(n)
	return advance()
}

func (e *Engine) fileWrite(count int, src uint16, advance func() StepResult) StepResult {
	n, err := e.File.Write(e.Mem[src : int(src)+count])
	if err != nil {
		return e.fault(progErrf(e.PC, e.Mem[e.PC], "file write failed: %v", err))
	}
	if err := e.File.Flush(); err != nil {
		return e.fault(progErrf(e.PC, e.Mem[e.PC], "file flush failed: %v", err))
	}
	e.Reg.ACC = byte(n)
	return advance()
}

// fileWriteByte is the direct-value write family (filew <count> <byte>):
// it writes a single byte count times as a fill pattern, without touching
// general memory.
func (e *Engine) fileWriteByte(value byte, count int, advance func() StepResult) StepResult {
	buf := make([]byte, count)
	for i := range buf {
		buf[i] = value
	}
	n, err := e.File.Write(buf)
	if err != nil {
		return e.fault(progErrf(e.PC, e.Mem[e.PC], "file write failed: %v", err))
	}
	if err := e.File.Flush(); err != nil {
		return e.fault(progErrf(e.PC, e.Mem[e.PC], "file flush failed: %v", err))
	}
	e.Reg.ACC = byte(n)
	return advance()
}

// fileSeek sets D3 (the seek offset's low byte) from the operand, then
// seeks to the u32 big-endian value spanning D0 (high) through D3 (low).
func (e *Engine) fileSeek(low byte, advance func() StepResult) StepResult {
	e.Reg.D3 = low
	offset := int64(e.Reg.D0)<<24 | int64(e.Reg.D1)<<16 | int64(e.Reg.D2)<<8 | int64(e.Reg.D3)
	if _, err := e.File.Seek(offset, io.SeekStart); err != nil {
		return e.fault(progErrf(e.PC, e.Mem[e.PC], "file seek failed: %v", err))
	}
	return advance()
}

func (e *Engine) fileSkip(n int, advance func() StepResult) StepResult {
	oldPos, err := e.File.Seek(0, io.SeekCurrent)
	if err != nil {
		return e.fault(progErrf(e.PC, e.Mem[e.PC], "file skip failed: %v", err))
	}
	newPos, err := e.File.Seek(int64(n), io.SeekCurrent)
	if err != nil {
		return e.fault(progErrf(e.PC, e.Mem[e.PC], "file skip failed: %v", err))
	}
	e.Reg.ACC = byte(newPos - oldPos)
	return advance()
}

func (e *Engine) fileHasBytes(want int) bool {
	pos, err := e.File.Seek(0, io.SeekCurrent)
	if err != nil {
		return false
	}
	size, err := e.File.Len()
	if err != nil {
		return false
	}
	return int64(size)-pos >= int64(want)
}
