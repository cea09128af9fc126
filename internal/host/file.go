package host

import (
	"fmt"
	"io"
	"os"
)

// PlainFile implements vm.File over a real os.File, chosen at fopen-time
// from a fixed set of candidate paths supplied when the host was
// constructed — the tape device only ever has one file open at a time.
type PlainFile struct {
	candidates []string
	f          *os.File
}

func NewPlainFile(candidates []string) *PlainFile {
	return &PlainFile{candidates: candidates}
}

func (p *PlainFile) Open(index byte) error {
	if int(index) >= len(p.candidates) {
		return fmt.Errorf("host: file candidate index %d out of range (%d candidates)", index, len(p.candidates))
	}
	if p.f != nil {
		return fmt.Errorf("host: a file is already open")
	}
	f, err := os.OpenFile(p.candidates[index], os.O_RDWR|os.O_CREATE, 0o644)
	if err != nil {
		return err
	}
	p.f = f
	return nil
}

func (p *PlainFile) Read(b []byte) (int, error) {
	if p.f == nil {
		return 0, fmt.Errorf("host: no file open")
	}
	return p.f.Read(b)
}

func (p *PlainFile) Write(b []byte) (int, error) {
	if p.f == nil {
		return 0, fmt.Errorf("host: no file open")
	}
	return p.f.Write(b)
}

func (p *PlainFile) Seek(offset int64, whence int) (int64, error) {
	if p.f == nil {
		return 0, fmt.Errorf("host: no file open")
	}
	if whence == io.SeekStart {
		info, err := p.f.Stat()
		if err != nil {
			return 0, err
		}
		if offset > info.Size() {
			return 0, fmt.Errorf("host: seek to %d is past end of file (%d bytes)", offset, info.Size())
		}
	}
	return p.f.Seek(offset, whence)
}

func (p *PlainFile) Flush() error {
	if p.f == nil {
		return fmt.Errorf("host: no file open")
	}
	return p.f.Sync()
}

func (p *PlainFile) Len() (uint32, error) {
	if p.f == nil {
		return 0, fmt.Errorf("host: no file open")
	}
	info, err := p.f.Stat()
	if err != nil {
		return 0, err
	}
	return uint32(info.Size()), nil
}

func (p *PlainFile) Close() error {
	if p.f == nil {
		return nil
	}
	return p.f.Close()
}
