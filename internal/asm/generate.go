package asm

import (
	"encoding/binary"
	"sort"

	"github.com/pkg/errors"
	"github.com/tapedevice/tape/internal/ops"
	"github.com/tapedevice/tape/internal/tape"
)

// DebugModel carries the address information a debugger needs that the raw
// tape bytes don't otherwise expose: where each source line's instruction
// landed, and where each label resolved to.
type DebugModel struct {
	LabelAddresses map[string]uint16
	OpAddresses    []uint16 // parallel to ProgramModel.Ops
	OpLines        []int    // parallel to ProgramModel.Ops
}

// Generate lowers a parsed ProgramModel to a tape binary. Addresses are
// resolved in three passes: lay out ops bytes (recording each label's
// address and each unresolved reference's byte position as we go), lay out
// the strings+data region, then back-patch every recorded reference
// position with its resolved absolute address.
func Generate(model *ProgramModel) ([]byte, *DebugModel, error) {
	opsBytes, labelAddrs, refTargets, opAddrs, err := generateOps(model)
	if err != nil {
		return nil, nil, err
	}
	if len(opsBytes) > tape.MaxOpsBytes {
		return nil, nil, errors.Errorf("ops block is %d bytes, max is %d", len(opsBytes), tape.MaxOpsBytes)
	}

	stringBytes, stringOffsets := generateStrings(model)
	if len(stringBytes) > tape.MaxStringBytes {
		return nil, nil, errors.Errorf("strings region is %d bytes, max is %d", len(stringBytes), tape.MaxStringBytes)
	}
	dataBytes, dataOffsets := generateData(model, len(stringBytes))
	if len(dataBytes) > tape.MaxDataBytes {
		return nil, nil, errors.Errorf("data region is %d bytes, max is %d", len(dataBytes), tape.MaxDataBytes)
	}

	regionOffset := tape.RegionStart(opsBytes)
	resolved := map[string]uint16{}
	for name, addr := range labelAddrs {
		resolved[name] = addr
	}
	for name, off := range stringOffsets {
		resolved[name] = regionOffset + uint16(off)
	}
	for name, off := range dataOffsets {
		resolved[name] = regionOffset + uint16(len(stringBytes)+off)
	}

	for name, positions := range refTargets {
		addr, ok := resolved[name]
		if !ok {
			return nil, nil, errors.Errorf("internal error: unresolved reference %q survived validation", name)
		}
		for _, pos := range positions {
			binary.BigEndian.PutUint16(opsBytes[pos:pos+2], addr)
		}
	}

	region := append(append([]byte{}, stringBytes...), dataBytes...)
	blob, err := tape.Encode(model.Header, opsBytes, region)
	if err != nil {
		return nil, nil, err
	}

	debug := &DebugModel{LabelAddresses: resolved, OpAddresses: opAddrs}
	for _, inst := range model.Ops {
		debug.OpLines = append(debug.OpLines, inst.Line)
	}
	return blob, debug, nil
}

func generateOps(model *ProgramModel) (opsBytes []byte, labelAddrs map[string]uint16, refTargets map[string][]int, opAddrs []uint16, err error) {
	labelAddrs = map[string]uint16{}
	refTargets = map[string][]int{}

	opOffsets := make([]int, len(model.Ops)+1)
	offset := 0
	for i, inst := range model.Ops {
		opOffsets[i] = offset
		offset += ops.Width(inst.Variant.Op)
	}
	opOffsets[len(model.Ops)] = offset

	for name, idx := range model.Labels {
		labelAddrs[name] = uint16(opOffsets[idx])
	}

	buf := make([]byte, 0, offset)
	for _, inst := range model.Ops {
		opAddrs = append(opAddrs, uint16(len(buf)))
		buf = append(buf, byte(inst.Variant.Op))
		for slot, kind := range inst.Variant.Operand {
			arg := inst.Args[slot]
			switch kind {
			case ops.KindDataReg, ops.KindAddrReg, ops.KindAnyReg:
				buf = append(buf, arg.Reg)
			case ops.KindNumber:
				buf = append(buf, byte(arg.Number))
			case ops.KindAddr:
				if arg.Kind == ArgRef {
					refTargets[arg.Ref] = append(refTargets[arg.Ref], len(buf))
					buf = append(buf, 0, 0)
				} else {
					buf = binary.BigEndian.AppendUint16(buf, arg.Number)
				}
			case ops.KindStrKey, ops.KindDataKey:
				refTargets[arg.Ref] = append(refTargets[arg.Ref], len(buf))
				buf = append(buf, 0, 0)
			}
		}
	}
	return buf, labelAddrs, refTargets, opAddrs, nil
}

// generateStrings lays out every `.strings` entry as a length-prefixed byte
// run (one byte length, then payload), sorted by key so the layout is
// deterministic across runs. prts and rstr address the length byte.
func generateStrings(model *ProgramModel) ([]byte, map[string]int) {
	keys := make([]string, len(model.Strings))
	byKey := map[string]string{}
	for i, s := range model.Strings {
		keys[i] = s.Key
		byKey[s.Key] = s.Value
	}
	sort.Strings(keys)

	var buf []byte
	offsets := map[string]int{}
	for _, k := range keys {
		offsets[k] = len(buf)
		v := byKey[k]
		n := len(v)
		if n > 255 {
			n = 255
		}
		buf = append(buf, byte(n))
		buf = append(buf, v[:n]...)
	}
	return buf, offsets
}

// generateData lays out every `.data` entry's already-encoded bytes, sorted
// by key. The returned offsets are relative to the start of the data
// region; the second parameter is unused, and the caller adds the length of
// the strings region that precedes it in the combined region.
func generateData(model *ProgramModel, _ int) ([]byte, map[string]int) {
	keys := make([]string, len(model.Data))
	byKey := map[string][]byte{}
	for i, d := range model.Data {
		keys[i] = d.Key
		byKey[d.Key] = d.Bytes
	}
	sort.Strings(keys)

	var buf []byte
	offsets := map[string]int{}
	for _, k := range keys {
		offsets[k] = len(buf)
		buf = append(buf, byKey[k]...)
	}
	return buf, offsets
}
