package ops

// Kind classifies one operand slot of an opcode variant, as the assembler's
// parser needs to see it to pick the right encoding.
type Kind int

const (
	KindNone Kind = iota
	KindDataReg
	KindAddrReg
	KindAnyReg // register id byte, class resolved at runtime (inc/dec/push/pop)
	KindNumber // literal 0-255
	KindAddr   // literal @NNNN, or a label reference resolved at link time
	KindStrKey // bare identifier resolved against the strings table
	KindDataKey
)

// Variant is one opcode form of a mnemonic: a concrete Opcode together with
// the operand shape that selects it.
type Variant struct {
	Op      Opcode
	Operand []Kind
}

// Mnemonics maps every source-level instruction name to its opcode variants.
// The assembler walks a mnemonic's variant list and picks the first whose
// Operand kinds match the parsed operand tokens; see SPEC_FULL.md section 4.1.
var Mnemonics = map[string][]Variant{
	"add": {
		{AddRegReg, []Kind{KindDataReg, KindDataReg}},
		{AddRegVal, []Kind{KindDataReg, KindNumber}},
		{AddRegAreg, []Kind{KindDataReg, KindAddrReg}},
	},
	"sub": {
		{SubRegReg, []Kind{KindDataReg, KindDataReg}},
		{SubRegVal, []Kind{KindDataReg, KindNumber}},
		{SubRegAreg, []Kind{KindDataReg, KindAddrReg}},
	},
	"inc": {{IncReg, []Kind{KindAnyReg}}},
	"dec": {{DecReg, []Kind{KindAnyReg}}},

	"and": {
		{AndRegReg, []Kind{KindDataReg, KindDataReg}},
		{AndRegVal, []Kind{KindDataReg, KindNumber}},
		{AndRegAreg, []Kind{KindDataReg, KindAddrReg}},
	},
	"or": {
		{OrRegReg, []Kind{KindDataReg, KindDataReg}},
		{OrRegVal, []Kind{KindDataReg, KindNumber}},
		{OrRegAreg, []Kind{KindDataReg, KindAddrReg}},
	},
	"xor": {
		{XorRegReg, []Kind{KindDataReg, KindDataReg}},
		{XorRegVal, []Kind{KindDataReg, KindNumber}},
		{XorRegAreg, []Kind{KindDataReg, KindAddrReg}},
	},
	"not": {{NotReg, []Kind{KindDataReg}}},

	"cpy": {
		{CpyRegReg, []Kind{KindDataReg, KindDataReg}},
		{CpyRegVal, []Kind{KindDataReg, KindNumber}},
		{CpyRegAreg, []Kind{KindDataReg, KindAddrReg}},
		{CpyAregAreg, []Kind{KindAddrReg, KindAddrReg}},
		{CpyAregAddr, []Kind{KindAddrReg, KindAddr}},
		{CpyAregRegReg, []Kind{KindAddrReg, KindDataReg, KindDataReg}},
		{CpyRegRegAreg, []Kind{KindDataReg, KindDataReg, KindAddrReg}},
	},
	"swp": {
		{SwpRegReg, []Kind{KindDataReg, KindDataReg}},
		{SwpAregAreg, []Kind{KindAddrReg, KindAddrReg}},
	},

	"cmp": {
		{CmpRegReg, []Kind{KindDataReg, KindDataReg}},
		{CmpRegVal, []Kind{KindDataReg, KindNumber}},
		{CmpRegAreg, []Kind{KindDataReg, KindAddrReg}},
		{CmpAregAreg, []Kind{KindAddrReg, KindAddrReg}},
		{CmpAregAddr, []Kind{KindAddrReg, KindAddr}},
		{CmpAregRegReg, []Kind{KindAddrReg, KindDataReg, KindDataReg}},
		{CmpRegRegAreg, []Kind{KindDataReg, KindDataReg, KindAddrReg}},
	},

	"jmp":   {{JmpAddr, []Kind{KindAddr}}, {JmpAreg, []Kind{KindAddrReg}}},
	"je":    {{JeAddr, []Kind{KindAddr}}, {JeAreg, []Kind{KindAddrReg}}},
	"jne":   {{JneAddr, []Kind{KindAddr}}, {JneAreg, []Kind{KindAddrReg}}},
	"jl":    {{JlAddr, []Kind{KindAddr}}, {JlAreg, []Kind{KindAddrReg}}},
	"jg":    {{JgAddr, []Kind{KindAddr}}, {JgAreg, []Kind{KindAddrReg}}},
	"over":  {{OverAddr, []Kind{KindAddr}}, {OverAreg, []Kind{KindAddrReg}}},
	"nover": {{NoverAddr, []Kind{KindAddr}}, {NoverAreg, []Kind{KindAddrReg}}},

	"memr": {{MemrAddr, []Kind{KindAddr}}, {MemrAreg, []Kind{KindAddrReg}}},
	"memw": {{MemwAddr, []Kind{KindAddr}}, {MemwAreg, []Kind{KindAddrReg}}},
	"memp": {{MempAddr, []Kind{KindAddr}}, {MempAreg, []Kind{KindAddrReg}}},

	"ld": {
		{LdAregDataRegReg, []Kind{KindAddrReg, KindDataKey, KindDataReg, KindDataReg}},
		{LdAregDataRegVal, []Kind{KindAddrReg, KindDataKey, KindDataReg, KindNumber}},
		{LdAregDataValReg, []Kind{KindAddrReg, KindDataKey, KindNumber, KindDataReg}},
		{LdAregDataValVal, []Kind{KindAddrReg, KindDataKey, KindNumber, KindNumber}},
	},

	"call": {{CallAddr, []Kind{KindAddr}}, {CallAreg, []Kind{KindAddrReg}}},
	"ret":  {{Ret, nil}},
	"push": {{PushReg, []Kind{KindAnyReg}}, {PushVal, []Kind{KindNumber}}},
	"pop":  {{PopReg, []Kind{KindAnyReg}}},
	"arg": {
		{ArgRegVal, []Kind{KindDataReg, KindNumber}},
		{ArgRegReg, []Kind{KindDataReg, KindDataReg}},
	},

	"prt":   {{PrtReg, []Kind{KindDataReg}}, {PrtVal, []Kind{KindNumber}}, {PrtAreg, []Kind{KindAddrReg}}},
	"prtln": {{Prtln, nil}},
	"prtc":  {{PrtcReg, []Kind{KindDataReg}}, {PrtcVal, []Kind{KindNumber}}, {PrtcAreg, []Kind{KindAddrReg}}},
	"prtd":  {{PrtdAreg, []Kind{KindAddrReg}}},
	"prts":  {{PrtsStr, []Kind{KindStrKey}}},

	"fopen": {{FopenReg, []Kind{KindDataReg}}, {FopenVal, []Kind{KindNumber}}},
	"filer": {
		{FilerRegAddr, []Kind{KindDataReg, KindAddr}},
		{FilerValAddr, []Kind{KindNumber, KindAddr}},
		{FilerRegAreg, []Kind{KindDataReg, KindAddrReg}},
		{FilerValAreg, []Kind{KindNumber, KindAddrReg}},
	},
	"filew": {
		{FilewRegAddr, []Kind{KindDataReg, KindAddr}},
		{FilewValAddr, []Kind{KindNumber, KindAddr}},
		{FilewRegAreg, []Kind{KindDataReg, KindAddrReg}},
		{FilewValAreg, []Kind{KindNumber, KindAddrReg}},
		{FilewRegReg, []Kind{KindDataReg, KindDataReg}},
		{FilewRegVal, []Kind{KindDataReg, KindNumber}},
		{FilewValReg, []Kind{KindNumber, KindDataReg}},
		{FilewValVal, []Kind{KindNumber, KindNumber}},
	},
	"fseek": {{FseekReg, []Kind{KindDataReg}}, {FseekVal, []Kind{KindNumber}}},
	"fskip": {
		{FskipRegReg, []Kind{KindDataReg, KindDataReg}},
		{FskipRegVal, []Kind{KindDataReg, KindNumber}},
		{FskipValReg, []Kind{KindNumber, KindDataReg}},
		{FskipValVal, []Kind{KindNumber, KindNumber}},
	},
	"fchk": {
		{FchkRegAddr, []Kind{KindDataReg, KindAddr}},
		{FchkValAddr, []Kind{KindNumber, KindAddr}},
		{FchkRegAreg, []Kind{KindDataReg, KindAddrReg}},
		{FchkValAreg, []Kind{KindNumber, KindAddrReg}},
	},

	"ipoll": {{IpollAddr, []Kind{KindAddr}}, {IpollAreg, []Kind{KindAddrReg}}},
	"rchr":  {{RchrReg, []Kind{KindDataReg}}},
	"rstr":  {{RstrAddr, []Kind{KindAddr}}, {RstrAreg, []Kind{KindAddrReg}}},

	"time": {{Time, nil}},
	"rand": {{RandReg, []Kind{KindDataReg}}},
	"seed": {{SeedReg, []Kind{KindDataReg}}},

	"debug": {{Debug, nil}},
	"halt":  {{Halt, nil}},
	"nop":   {{Nop, nil}},
}

// Mnemonic returns the source-level instruction name for an opcode, used by
// the decompiler. Variant suffixes are not recovered; "cpy" covers all seven
// cpy encodings alike.
func Mnemonic(op Opcode) (string, bool) {
	for name, variants := range Mnemonics {
		for _, v := range variants {
			if v.Op == op {
				return name, true
			}
		}
	}
	return "", false
}
