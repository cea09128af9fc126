package asm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tapedevice/tape/internal/tape"
)

func TestParseAndGenerateSimpleProgram(t *testing.T) {
	src := `
.name "hello"
.version "1"
.strings
greeting "hi"
.ops
start:
  cpy d0 5
  prts greeting
  jmp start
`
	model, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, model.Ops, 3)

	blob, debug, err := Generate(model)
	require.NoError(t, err)
	require.NotNil(t, debug)

	tp, err := tape.Decode(blob)
	require.NoError(t, err)
	assert.Equal(t, "hello", tp.Header.Name)
	assert.Equal(t, "1", tp.Header.Version)

	jmpTarget := debug.LabelAddresses["start"]
	assert.Equal(t, debug.OpAddresses[0], jmpTarget)
}

func TestParseRejectsUnknownMnemonic(t *testing.T) {
	_, err := Parse(".ops\nbogus d0 1\n")
	assert.Error(t, err)
}

func TestParseRejectsUndefinedReference(t *testing.T) {
	_, err := Parse(".ops\nprts nope\n")
	assert.Error(t, err)
}

func TestParseResolvesForwardLabel(t *testing.T) {
	src := ".ops\njmp later\nlater:\nhalt\n"
	model, err := Parse(src)
	require.NoError(t, err)
	_, _, err = Generate(model)
	require.NoError(t, err)
	assert.Contains(t, model.Labels, "later")
}

func TestParseConstSubstitution(t *testing.T) {
	src := ".data\nconst three 3\n.ops\ncpy d0 three\nhalt\n"
	model, err := Parse(src)
	require.NoError(t, err)
	require.Len(t, model.Ops, 2)
	assert.Equal(t, uint16(3), model.Ops[0].Args[1].Number)
}
