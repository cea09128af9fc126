package vm

// Printer is the host's sink for program output. Implementations must never
// block or fail: print operations are fire-and-forget from the engine's
// point of view.
type Printer interface {
	Print(s string)
	Eprint(s string)
	Newline()
}

// Keyboard is a host-fed, non-blocking source of interactive input. The
// engine never waits on it: rchr/rstr ask once per Step call, and if nothing
// is queued yet the engine reports CharInputRequested/StringInputRequested
// and leaves pc untouched so the same instruction runs again once the host
// has fed more input and re-invoked Step.
type Keyboard interface {
	NextChar() (byte, bool)
	NextLine() (string, bool)
	HasChar() bool
	HasLine() bool
}

// File is the single optional seekable stream a program may open. The host
// supplies the set of candidate paths at boot; fopen selects among them by
// index. whence follows io.Seeker conventions (io.SeekStart etc).
type File interface {
	Open(index byte) error
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	Seek(offset int64, whence int) (int64, error)
	Flush() error
	Len() (uint32, error)
}

// NullKeyboard never has input available; programs that never execute rchr
// or rstr can use it in place of a real terminal.
type NullKeyboard struct{}

func (NullKeyboard) NextChar() (byte, bool)   { return 0, false }
func (NullKeyboard) NextLine() (string, bool) { return "", false }
func (NullKeyboard) HasChar() bool            { return false }
func (NullKeyboard) HasLine() bool            { return false }

// NullFile reports "no file available" for every opcode that touches a
// file; fopen against it always fails.
type NullFile struct{}

func (NullFile) Open(index byte) error               { return errNoFileConfigured }
func (NullFile) Read(p []byte) (int, error)           { return 0, errNoFileConfigured }
func (NullFile) Write(p []byte) (int, error)          { return 0, errNoFileConfigured }
func (NullFile) Seek(int64, int) (int64, error)       { return 0, errNoFileConfigured }
func (NullFile) Flush() error                         { return errNoFileConfigured }
func (NullFile) Len() (uint32, error)                 { return 0, errNoFileConfigured }
