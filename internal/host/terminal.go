// Package host provides the reference host devices used by the tape CLI:
// a terminal Printer/Keyboard pair built on bufio and golang.org/x/term, and
// a plain-file File backed by os.File. Nothing in internal/vm imports this
// package; the dependency runs one way, CLI -> host -> vm interfaces.
package host

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

// TerminalPrinter buffers program output until Flush, so a run loop can
// drain it once per Step instead of issuing a syscall per character.
type TerminalPrinter struct {
	out, err *bufio.Writer
	mu       sync.Mutex
}

func NewTerminalPrinter(out, errOut io.Writer) *TerminalPrinter {
	return &TerminalPrinter{out: bufio.NewWriter(out), err: bufio.NewWriter(errOut)}
}

func (p *TerminalPrinter) Print(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out.WriteString(s)
}

func (p *TerminalPrinter) Eprint(s string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.err.WriteString(s)
}

func (p *TerminalPrinter) Newline() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out.WriteByte('\n')
}

func (p *TerminalPrinter) Flush() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.out.Flush(); err != nil {
		return err
	}
	return p.err.Flush()
}

// RawKeyboard reads single keystrokes from a file descriptor placed in raw
// mode via golang.org/x/term. It never blocks the engine: NextChar/NextLine
// only return what the background reader has already queued.
type RawKeyboard struct {
	fd       int
	oldState *term.State
	chars    chan byte
	lines    chan string
	scanner  *bufio.Scanner
}

// NewRawKeyboard puts fd into raw mode and starts a background reader that
// feeds single bytes into an internal queue. Call Restore when done.
func NewRawKeyboard(fd int) (*RawKeyboard, error) {
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("host: failed to enter raw mode: %w", err)
	}
	kb := &RawKeyboard{fd: fd, oldState: old, chars: make(chan byte, 256), lines: make(chan string, 16)}
	go kb.readLoop()
	return kb, nil
}

func (k *RawKeyboard) readLoop() {
	buf := make([]byte, 1)
	for {
		n, err := os.NewFile(uintptr(k.fd), "stdin").Read(buf)
		if err != nil || n == 0 {
			close(k.chars)
			return
		}
		k.chars <- buf[0]
	}
}

func (k *RawKeyboard) NextChar() (byte, bool) {
	select {
	case c, ok := <-k.chars:
		return c, ok
	default:
		return 0, false
	}
}

// NextLine returns a line only if one is waiting on the lines queue. The
// background reader queues single bytes only and nothing else fills the
// lines queue, so queued characters are not assembled into lines and
// NextLine reports no line.
func (k *RawKeyboard) NextLine() (string, bool) {
	select {
	case l, ok := <-k.lines:
		return l, ok
	default:
		return "", false
	}
}

func (k *RawKeyboard) HasChar() bool { return len(k.chars) > 0 }
func (k *RawKeyboard) HasLine() bool { return len(k.lines) > 0 }

// Restore leaves raw mode and puts the terminal back the way NewRawKeyboard
// found it.
func (k *RawKeyboard) Restore() error {
	if k.oldState == nil {
		return nil
	}
	return term.Restore(k.fd, k.oldState)
}

// LineKeyboard is a non-terminal Keyboard for piped/test input: it reads
// whole lines from r and serves them a character at a time for rchr, and
// whole for rstr.
type LineKeyboard struct {
	scanner *bufio.Scanner
	pending strings.Builder
	pendIdx int
}

func NewLineKeyboard(r io.Reader) *LineKeyboard {
	return &LineKeyboard{scanner: bufio.NewScanner(r)}
}

func (k *LineKeyboard) fill() bool {
	if k.pendIdx < k.pending.Len() {
		return true
	}
	if !k.scanner.Scan() {
		return false
	}
	k.pending.Reset()
	k.pending.WriteString(k.scanner.Text())
	k.pendIdx = 0
	return true
}

func (k *LineKeyboard) NextChar() (byte, bool) {
	if !k.fill() {
		return 0, false
	}
	s := k.pending.String()
	if k.pendIdx >= len(s) {
		return 0, false
	}
	c := s[k.pendIdx]
	k.pendIdx++
	return c, true
}

func (k *LineKeyboard) NextLine() (string, bool) {
	if !k.scanner.Scan() {
		return "", false
	}
	return k.scanner.Text(), true
}

func (k *LineKeyboard) HasChar() bool { return k.pendIdx < k.pending.Len() }
func (k *LineKeyboard) HasLine() bool { return false }
