// Package tape implements the on-disk tape binary format shared by the
// assembler's code generator and the engine's loader: a fixed header
// (magic, version, program name, program version), a length-prefixed ops
// block, and a combined strings+data region that ops reference by absolute
// memory address (the ops length plus the offset within the region).
package tape

import (
	"encoding/binary"
	"fmt"
)

const (
	MagicHi = 0xFD
	MagicLo = 0xA0

	FormatVersion = 1

	MaxNameLen    = 20
	MaxVersionLen = 10

	MaxOpsBytes    = 65535
	MaxStringBytes = 65535
	MaxDataBytes   = 65535
)

// Header is the fixed prologue of a tape file.
type Header struct {
	Name    string
	Version string
}

// Tape is a fully decoded program image: the header, the raw ops bytes
// (already back-patched by the assembler, or as read from disk), and the
// offset at which the strings+data region begins within the ops' shared
// address space.
type Tape struct {
	Header       Header
	Ops          []byte
	StringsData  []byte // the merged strings+data region
	RegionOffset uint16 // absolute address of StringsData[0] once loaded into memory
}

// EncodeHeader renders the magic, version byte and length-prefixed name and
// version fields. It does not include the ops-length prefix; the generator
// appends that once ops bytes are ready.
func EncodeHeader(h Header) ([]byte, error) {
	if len(h.Name) > MaxNameLen {
		return nil, fmt.Errorf("tape: program name %q exceeds %d bytes", h.Name, MaxNameLen)
	}
	if len(h.Version) > MaxVersionLen {
		return nil, fmt.Errorf("tape: program version %q exceeds %d bytes", h.Version, MaxVersionLen)
	}
	out := []byte{MagicHi, MagicLo, FormatVersion}
	out = append(out, byte(len(h.Name)))
	out = append(out, h.Name...)
	out = append(out, byte(len(h.Version)))
	out = append(out, h.Version...)
	return out, nil
}

// DecodeHeader reads the fixed prologue from the front of b and returns the
// header plus the number of bytes consumed.
func DecodeHeader(b []byte) (Header, int, error) {
	if len(b) < 3 {
		return Header{}, 0, fmt.Errorf("tape: file too short for header")
	}
	if b[0] != MagicHi || b[1] != MagicLo {
		return Header{}, 0, fmt.Errorf("tape: bad magic %#02x%02x", b[0], b[1])
	}
	if b[2] != FormatVersion {
		return Header{}, 0, fmt.Errorf("tape: unsupported format version %d", b[2])
	}
	i := 3
	if i >= len(b) {
		return Header{}, 0, fmt.Errorf("tape: truncated header")
	}
	nameLen := int(b[i])
	i++
	if i+nameLen > len(b) {
		return Header{}, 0, fmt.Errorf("tape: truncated program name")
	}
	name := string(b[i : i+nameLen])
	i += nameLen
	if i >= len(b) {
		return Header{}, 0, fmt.Errorf("tape: truncated header")
	}
	verLen := int(b[i])
	i++
	if i+verLen > len(b) {
		return Header{}, 0, fmt.Errorf("tape: truncated program version")
	}
	version := string(b[i : i+verLen])
	i += verLen
	return Header{Name: name, Version: version}, i, nil
}

// Encode assembles a full tape image from its header, ops bytes and the
// merged strings+data region. The region immediately follows the ops
// block, so once loaded it starts at address len(ops) (see RegionStart),
// which is the base the caller used when back-patching addresses.
func Encode(h Header, ops, stringsData []byte) ([]byte, error) {
	if len(ops) > MaxOpsBytes {
		return nil, fmt.Errorf("tape: ops block is %d bytes, max is %d", len(ops), MaxOpsBytes)
	}
	headerBytes, err := EncodeHeader(h)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(headerBytes)+2+len(ops)+len(stringsData))
	out = append(out, headerBytes...)
	out = binary.BigEndian.AppendUint16(out, uint16(len(ops)))
	out = append(out, ops...)
	out = append(out, stringsData...)
	return out, nil
}

// Decode splits a full tape image back into its header, ops block and
// trailing strings+data region.
func Decode(b []byte) (*Tape, error) {
	header, n, err := DecodeHeader(b)
	if err != nil {
		return nil, err
	}
	if n+2 > len(b) {
		return nil, fmt.Errorf("tape: truncated ops length")
	}
	opsLen := int(binary.BigEndian.Uint16(b[n : n+2]))
	n += 2
	if n+opsLen > len(b) {
		return nil, fmt.Errorf("tape: truncated ops block")
	}
	ops := b[n : n+opsLen]
	n += opsLen
	return &Tape{
		Header:       header,
		Ops:          ops,
		StringsData:  b[n:],
		RegionOffset: RegionStart(ops),
	}, nil
}

// RegionStart returns the absolute address the strings+data region will
// occupy once Ops and StringsData are laid out contiguously in memory
// starting at address 0 — the same layout Load uses.
func RegionStart(ops []byte) uint16 {
	return uint16(len(ops))
}
