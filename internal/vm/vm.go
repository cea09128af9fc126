// Package vm implements the tape device execution engine: a fixed-ISA
// 8/16-bit virtual machine with 64KiB of byte-addressable memory, a small
// register file, a descending call stack, and cooperative keyboard/file
// I/O. Nothing in this package performs real I/O or blocks; Printer,
// Keyboard and File are host-supplied and the engine only ever calls them
// synchronously from within Step.
package vm

import (
	"time"

	"github.com/tapedevice/tape/internal/ops"
)

const memSize = 1 << 16

// Registers holds the device's entire register file. ACC doubles as the
// compare-result register: 0 equal, 1 lesser, 2 greater.
type Registers struct {
	ACC, D0, D1, D2, D3 byte
	A0, A1              uint16
	SP, FP              uint16
	Overflow            bool
}

// Engine is one running instance of the tape device: its memory, registers
// and program counter, plus the host devices it was booted with.
type Engine struct {
	Mem [memSize]byte
	Reg Registers
	PC  uint16

	Printer  Printer
	Keyboard Keyboard
	File     File

	Halted      bool
	Breakpoints map[uint16]bool

	clock    func() uint32
	rngState uint64
}

// New constructs an Engine with sp and fp initialized to the top of memory,
// as the call/ret protocol requires (section 4.6). Host devices default to
// no-ops; callers normally override them before running a loaded program.
func New() *Engine {
	e := &Engine{
		Printer:     discardPrinter{},
		Keyboard:    NullKeyboard{},
		File:        NullFile{},
		Breakpoints: map[uint16]bool{},
		clock: func() uint32 {
			return uint32(time.Now().Unix())
		},
		rngState: 0x2545F4914F6CDD1D,
	}
	e.Reg.SP = 0xFFFF
	e.Reg.FP = 0xFFFF
	return e
}

// rng advances the engine's xorshift64 generator and returns the next
// pseudo-random byte. seed reseeds it; the tape device has no entropy
// source of its own, so the program drives the seed explicitly.
func (e *Engine) rng() byte {
	x := e.rngState
	x ^= x << 13
	x ^= x >> 7
	x ^= x << 17
	e.rngState = x
	return byte(x)
}

func (e *Engine) reseed(v uint64) {
	if v == 0 {
		v = 1
	}
	e.rngState = v
}

// Load copies ops into memory starting at address 0 and resets pc to 0. It
// does not touch registers or the stack pointers, so a caller can Load
// multiple times against the same Engine for successive debug runs.
func (e *Engine) Load(program []byte) {
	copy(e.Mem[:], program)
	e.PC = 0
}

func (e *Engine) dataReg(id byte) *byte {
	switch id {
	case ops.RegACC:
		return &e.Reg.ACC
	case ops.RegD0:
		return &e.Reg.D0
	case ops.RegD1:
		return &e.Reg.D1
	case ops.RegD2:
		return &e.Reg.D2
	case ops.RegD3:
		return &e.Reg.D3
	default:
		return nil
	}
}

func (e *Engine) addrReg(id byte) *uint16 {
	switch id {
	case ops.RegA0:
		return &e.Reg.A0
	case ops.RegA1:
		return &e.Reg.A1
	default:
		return nil
	}
}

type discardPrinter struct{}

func (discardPrinter) Print(string)  {}
func (discardPrinter) Eprint(string) {}
func (discardPrinter) Newline()      {}
