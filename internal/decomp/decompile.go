// Package decomp renders a tape's ops block back into a readable listing.
// It does not recover label names or the original source layout: jump
// targets print as raw addresses, and string/data operands print as
// "@offset" into the combined region.
package decomp

import (
	"fmt"
	"strings"

	"github.com/tapedevice/tape/internal/ops"
)

// Decompile walks opsBytes one instruction at a time and returns one line
// per instruction, each prefixed with its byte address.
func Decompile(opsBytes []byte) (string, error) {
	var b strings.Builder
	pc := 0
	for pc < len(opsBytes) {
		op, width, ok := ops.Decode(opsBytes[pc])
		if !ok {
			return "", fmt.Errorf("decomp: unrecognized opcode %#02x at offset %d", opsBytes[pc], pc)
		}
		if pc+width > len(opsBytes) {
			return "", fmt.Errorf("decomp: truncated instruction at offset %d", pc)
		}
		name, ok := ops.Mnemonic(op)
		if !ok {
			name = fmt.Sprintf("op_%02x", byte(op))
		}
		fmt.Fprintf(&b, "%04x: %s", pc, name)
		if operands := opsBytes[pc+1 : pc+width]; len(operands) > 0 {
			b.WriteByte(' ')
			writeOperands(&b, op, operands)
		}
		b.WriteByte('\n')
		pc += width
	}
	return b.String(), nil
}

func writeOperands(b *strings.Builder, op ops.Opcode, operands []byte) {
	// AddrOffset counts from the start of the instruction, which includes
	// the opcode byte that operands[] already excludes.
	if instrOff, ok := ops.AddrOffset(op); ok {
		off := instrOff - 1
		addr := uint16(operands[off])<<8 | uint16(operands[off+1])
		for i := 0; i < off; i++ {
			fmt.Fprintf(b, "%#02x ", operands[i])
		}
		fmt.Fprintf(b, "@%d", addr)
		for i := off + 2; i < len(operands); i++ {
			fmt.Fprintf(b, " %#02x", operands[i])
		}
		return
	}
	parts := make([]string, len(operands))
	for i, o := range operands {
		parts[i] = fmt.Sprintf("%#02x", o)
	}
	b.WriteString(strings.Join(parts, " "))
}
