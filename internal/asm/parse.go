package asm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/tapedevice/tape/internal/ops"
)

type section int

const (
	sectionHeader section = iota
	sectionStrings
	sectionData
	sectionOps
)

// Parse reads tape device assembly source and produces a fully resolved
// ProgramModel: labels forward-declared, constants substituted, operand
// tokens classified and matched against an opcode variant. Generate takes
// it from there to produce the tape binary.
func Parse(source string) (*ProgramModel, error) {
	lines := preprocess(source)

	model := &ProgramModel{Labels: map[string]int{}}
	constants := map[string][]string{}
	sect := sectionHeader

	for _, ln := range lines {
		raw := ln.text
		trimmed := strings.TrimSpace(raw)
		if trimmed == "" {
			continue
		}

		switch trimmed {
		case ".strings":
			sect = sectionStrings
			continue
		case ".data":
			sect = sectionData
			continue
		case ".ops":
			sect = sectionOps
			continue
		}

		switch sect {
		case sectionHeader:
			if err := parseHeaderLine(trimmed, model); err != nil {
				return nil, errors.Wrapf(err, "line %d", ln.num)
			}
		case sectionStrings:
			key, val, err := parseKeyedString(trimmed)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", ln.num)
			}
			model.Strings = append(model.Strings, StringDef{Key: key, Value: val})
		case sectionData:
			if strings.HasPrefix(trimmed, "const ") {
				name, toks, err := parseConst(trimmed)
				if err != nil {
					return nil, errors.Wrapf(err, "line %d", ln.num)
				}
				constants[name] = toks
				continue
			}
			key, lit, err := parseKeyedLiteral(trimmed)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", ln.num)
			}
			bytes, err := ParseData(lit)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d: data %q", ln.num, key)
			}
			model.Data = append(model.Data, DataDef{Key: key, Bytes: bytes})
		case sectionOps:
			if label, ok := strings.CutSuffix(trimmed, ":"); ok {
				label = strings.TrimSpace(label)
				if _, exists := model.Labels[label]; exists {
					return nil, errors.Errorf("line %d: label %q redefined", ln.num, label)
				}
				model.Labels[label] = len(model.Ops)
				continue
			}
			toks := substituteConstants(tokenize(trimmed), constants)
			inst, err := parseOp(toks)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", ln.num)
			}
			inst.Line = ln.num
			model.Ops = append(model.Ops, inst)
		}
	}

	if err := validateRefs(model); err != nil {
		return nil, err
	}
	return model, nil
}

type sourceLine struct {
	num  int
	text string
}

// preprocess strips full-line and trailing "//" comments and records
// original line numbers for diagnostics.
func preprocess(source string) []sourceLine {
	var out []sourceLine
	for i, raw := range strings.Split(source, "\n") {
		if idx := strings.Index(raw, "//"); idx >= 0 {
			raw = raw[:idx]
		}
		out = append(out, sourceLine{num: i + 1, text: raw})
	}
	return out
}

func parseHeaderLine(line string, model *ProgramModel) error {
	switch {
	case strings.HasPrefix(line, ".name "):
		model.Header.Name = unquote(strings.TrimSpace(strings.TrimPrefix(line, ".name ")))
	case strings.HasPrefix(line, ".version "):
		model.Header.Version = unquote(strings.TrimSpace(strings.TrimPrefix(line, ".version ")))
	default:
		return fmt.Errorf("expected .name or .version in header, got %q", line)
	}
	return nil
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func parseKeyedString(line string) (string, string, error) {
	fields := strings.SplitN(line, " ", 2)
	if len(fields) != 2 {
		return "", "", fmt.Errorf("expected `key \"value\"`, got %q", line)
	}
	return fields[0], unquote(strings.TrimSpace(fields[1])), nil
}

func parseKeyedLiteral(line string) (string, string, error) {
	fields := strings.SplitN(line, " ", 2)
	if len(fields) != 2 {
		return "", "", fmt.Errorf("expected `key [...]`, got %q", line)
	}
	return fields[0], strings.TrimSpace(fields[1]), nil
}

func parseConst(line string) (string, []string, error) {
	rest := strings.TrimSpace(strings.TrimPrefix(line, "const "))
	fields := strings.Fields(rest)
	if len(fields) < 2 {
		return "", nil, fmt.Errorf("expected `const name token...`, got %q", line)
	}
	return fields[0], fields[1:], nil
}

func tokenize(line string) []string {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == ','
	})
	return fields
}

func substituteConstants(toks []string, constants map[string][]string) []string {
	var out []string
	for _, t := range toks {
		if repl, ok := constants[t]; ok {
			out = append(out, repl...)
			continue
		}
		out = append(out, t)
	}
	return out
}

var registerIDs = map[string]byte{
	"acc": ops.RegACC,
	"d0":  ops.RegD0,
	"d1":  ops.RegD1,
	"d2":  ops.RegD2,
	"d3":  ops.RegD3,
	"a0":  ops.RegA0,
	"a1":  ops.RegA1,
}

// classifiedToken is one operand token after lexical classification, before
// it is matched against an opcode variant's expected Kind.
type classifiedToken struct {
	isReg   bool
	reg     byte
	isAddr  bool // written as @NNNN: a literal address, never a reference
	isNum   bool
	num     uint16
	isIdent bool // bare identifier: a label, string key or data key
	ident   string
}

func classifyToken(tok string) (classifiedToken, error) {
	if reg, ok := registerIDs[strings.ToLower(tok)]; ok {
		return classifiedToken{isReg: true, reg: reg}, nil
	}
	if strings.HasPrefix(tok, "@") {
		n, err := parseNumberLiteral(tok[1:])
		if err != nil {
			return classifiedToken{}, fmt.Errorf("bad address literal %q: %w", tok, err)
		}
		return classifiedToken{isAddr: true, num: n}, nil
	}
	if n, err := parseNumberLiteral(tok); err == nil {
		return classifiedToken{isNum: true, num: n}, nil
	}
	if len(tok) == 3 && tok[0] == '\'' && tok[2] == '\'' {
		return classifiedToken{isNum: true, num: uint16(tok[1])}, nil
	}
	return classifiedToken{isIdent: true, ident: tok}, nil
}

func parseNumberLiteral(tok string) (uint16, error) {
	switch {
	case strings.HasPrefix(tok, "x"):
		n, err := strconv.ParseUint(tok[1:], 16, 16)
		return uint16(n), err
	case strings.HasPrefix(tok, "b"):
		n, err := strconv.ParseUint(tok[1:], 2, 16)
		return uint16(n), err
	default:
		n, err := strconv.ParseUint(tok, 10, 16)
		return uint16(n), err
	}
}

// matches reports whether a classified token can fill an operand slot of
// the given kind.
func (c classifiedToken) matches(k ops.Kind) bool {
	switch k {
	case ops.KindDataReg:
		return c.isReg && ops.IsDataRegister(c.reg)
	case ops.KindAddrReg:
		return c.isReg && ops.IsAddrRegister(c.reg)
	case ops.KindAnyReg:
		return c.isReg
	case ops.KindNumber:
		return c.isNum && c.num <= 0xFF
	case ops.KindAddr:
		return c.isAddr || c.isIdent
	case ops.KindStrKey, ops.KindDataKey:
		return c.isIdent
	default:
		return false
	}
}

func (c classifiedToken) toArg(k ops.Kind) Arg {
	switch k {
	case ops.KindDataReg, ops.KindAddrReg, ops.KindAnyReg:
		return Arg{Kind: ArgReg, Reg: c.reg}
	case ops.KindNumber:
		return Arg{Kind: ArgNumber, Number: c.num}
	case ops.KindAddr:
		if c.isAddr {
			return Arg{Kind: ArgNumber, Number: c.num}
		}
		return Arg{Kind: ArgRef, Ref: c.ident}
	case ops.KindStrKey, ops.KindDataKey:
		return Arg{Kind: ArgRef, Ref: c.ident}
	default:
		return Arg{}
	}
}

func parseOp(toks []string) (OpInstance, error) {
	if len(toks) == 0 {
		return OpInstance{}, fmt.Errorf("empty instruction")
	}
	mnemonic := strings.ToLower(toks[0])
	variants, ok := ops.Mnemonics[mnemonic]
	if !ok {
		return OpInstance{}, fmt.Errorf("unknown mnemonic %q", mnemonic)
	}
	operandToks := toks[1:]

	classified := make([]classifiedToken, len(operandToks))
	for i, t := range operandToks {
		c, err := classifyToken(t)
		if err != nil {
			return OpInstance{}, err
		}
		classified[i] = c
	}

	for _, v := range variants {
		if len(v.Operand) != len(classified) {
			continue
		}
		ok := true
		for i, k := range v.Operand {
			if !classified[i].matches(k) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		args := make([]Arg, len(classified))
		for i, k := range v.Operand {
			args[i] = classified[i].toArg(k)
		}
		return OpInstance{Variant: v, Args: args}, nil
	}
	return OpInstance{}, fmt.Errorf("no variant of %q matches %d operand(s) %v", mnemonic, len(operandToks), operandToks)
}

// validateRefs enforces the assembler's single global key namespace: no key
// may be defined twice or as more than one of a string key, a data key and
// a label, and every Arg with Kind ArgRef must resolve to exactly one of
// them.
func validateRefs(model *ProgramModel) error {
	strs := map[string]bool{}
	for _, s := range model.Strings {
		if strs[s.Key] {
			return fmt.Errorf("duplicate key %q", s.Key)
		}
		strs[s.Key] = true
	}
	data := map[string]bool{}
	for _, d := range model.Data {
		if strs[d.Key] || data[d.Key] {
			return fmt.Errorf("duplicate key %q", d.Key)
		}
		data[d.Key] = true
	}
	for name := range model.Labels {
		if strs[name] || data[name] {
			return fmt.Errorf("duplicate key %q", name)
		}
	}
	for _, inst := range model.Ops {
		for _, a := range inst.Args {
			if a.Kind != ArgRef {
				continue
			}
			_, isLabel := model.Labels[a.Ref]
			if !strs[a.Ref] && !data[a.Ref] && !isLabel {
				return fmt.Errorf("line %d: undefined reference %q", inst.Line, a.Ref)
			}
		}
	}
	return nil
}
