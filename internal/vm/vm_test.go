package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tapedevice/tape/internal/ops"
)

func TestAddRegVal(t *testing.T) {
	e := New()
	e.Load([]byte{byte(ops.AddRegVal), ops.RegD0, 5, byte(ops.Halt)})
	e.Reg.D0 = 10

	res := e.Step()
	assert.Equal(t, StepOK, res.Kind)
	assert.Equal(t, byte(15), e.Reg.ACC)

	res = e.Step()
	assert.Equal(t, StepHalt, res.Kind)
	assert.True(t, e.Halted)
}

func TestAddOverflowFlag(t *testing.T) {
	e := New()
	e.Load([]byte{byte(ops.AddRegVal), ops.RegD0, 1})
	e.Reg.D0 = 0xFF
	e.Step()
	assert.True(t, e.Reg.Overflow)
	assert.Equal(t, byte(0), e.Reg.ACC)
}

func TestJmpAddr(t *testing.T) {
	e := New()
	e.Load([]byte{byte(ops.JmpAddr), 0, 5, 0, 0, byte(ops.Halt)})
	e.Step()
	assert.Equal(t, uint16(5), e.PC)
}

func TestCmpAndConditionalJump(t *testing.T) {
	e := New()
	e.Load([]byte{
		byte(ops.CmpRegVal), ops.RegD0, 3, // ACC = cmp(d0, 3)
		byte(ops.JeAddr), 0, 10, // if equal, jump to 10
		byte(ops.Halt),
	})
	e.Reg.D0 = 3
	e.Step() // cmp
	assert.Equal(t, ops.CompareEqual, e.Reg.ACC)
	e.Step() // je
	assert.Equal(t, uint16(10), e.PC)
}

func TestCallRetStackFrame(t *testing.T) {
	e := New()
	// call function at addr 6; function does ret.
	e.Load([]byte{
		byte(ops.CallAddr), 0, 6,
		byte(ops.Halt),
		0, 0, // padding to addr 6
		byte(ops.Ret),
	})
	startSP := e.Reg.SP
	res := e.Step() // call
	assert.Equal(t, StepOK, res.Kind)
	assert.Equal(t, uint16(6), e.PC)
	assert.Less(t, e.Reg.SP, startSP)

	res = e.Step() // ret
	assert.Equal(t, StepOK, res.Kind)
	assert.Equal(t, uint16(3), e.PC) // pc+width of call = 0+3
	assert.Equal(t, startSP, e.Reg.SP)
}

func TestRchrSuspendsWithoutConsuming(t *testing.T) {
	e := New()
	e.Load([]byte{byte(ops.RchrReg), ops.RegD0, byte(ops.Halt)})
	kb := &fakeKeyboard{}
	e.Keyboard = kb

	res := e.Step()
	assert.Equal(t, StepCharInputRequested, res.Kind)
	assert.Equal(t, uint16(0), e.PC)

	kb.char = 'x'
	kb.hasChar = true
	res = e.Step()
	assert.Equal(t, StepOK, res.Kind)
	assert.Equal(t, byte('x'), e.Reg.D0)
}

type fakeKeyboard struct {
	char    byte
	hasChar bool
}

func (k *fakeKeyboard) NextChar() (byte, bool) {
	if !k.hasChar {
		return 0, false
	}
	k.hasChar = false
	return k.char, true
}
func (k *fakeKeyboard) NextLine() (string, bool) { return "", false }
func (k *fakeKeyboard) HasChar() bool            { return k.hasChar }
func (k *fakeKeyboard) HasLine() bool            { return false }
