package vm

import "github.com/pkg/errors"

var errNoFileConfigured = errors.New("vm: no file device configured")

// ProgError is a fatal, non-recoverable fault raised while executing an
// instruction: a bad opcode, an out-of-range register id, an unopened
// file access. Step returns it wrapped in a
// StepResult rather than panicking, so a host can print diagnostics and
// exit cleanly.
type ProgError struct {
	PC      uint16
	Opcode  byte
	Message string
}

func (e *ProgError) Error() string {
	return errors.Errorf("pc=%#04x op=%#02x: %s", e.PC, e.Opcode, e.Message).Error()
}

func progErrf(pc uint16, op byte, format string, args ...interface{}) *ProgError {
	return &ProgError{PC: pc, Opcode: op, Message: errors.Errorf(format, args...).Error()}
}
