package asm

import (
	"github.com/tapedevice/tape/internal/ops"
	"github.com/tapedevice/tape/internal/tape"
)

// ArgKind classifies one resolved operand of an OpInstance.
type ArgKind int

const (
	ArgNumber ArgKind = iota // a literal value, 0-255 or a resolved/unresolved u16 address
	ArgReg                   // a register id byte (ops.RegACC etc)
	ArgRef                   // a bare identifier: a label, string key or data key
)

// Arg is one already-classified operand, still carrying enough information
// for the generator to either emit it directly (Number, Reg) or back-patch
// it later (Ref).
type Arg struct {
	Kind   ArgKind
	Reg    byte
	Number uint16
	Ref    string
}

// OpInstance is one parsed instruction: its chosen opcode variant plus
// resolved operands, in source order.
type OpInstance struct {
	Line    int
	Variant ops.Variant
	Args    []Arg
}

// StringDef is one `.strings` entry.
type StringDef struct {
	Key   string
	Value string
}

// DataDef is one `.data` entry, already run through ParseData.
type DataDef struct {
	Key   string
	Bytes []byte
}

// ProgramModel is the fully parsed, not-yet-generated program: everything
// the front end (Parse) produces and the back end (Generate) consumes.
type ProgramModel struct {
	Header  tape.Header
	Strings []StringDef
	Data    []DataDef
	Labels  map[string]int // label name -> index into Ops
	Ops     []OpInstance
}
