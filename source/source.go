// Package source provides the byte-oriented readable stream contract the
// parser reads from, plus two implementations: a plain wrapper around any
// io.Reader, and a seekable wrapper that uses native seeking to skip
// efficiently.
package source

import (
	"fmt"
	"io"
)

// Source is a forward-only byte stream with a monotonically increasing
// position. Implementations must never let position go backwards.
type Source interface {
	// Read reads into buf, like io.Reader.
	Read(buf []byte) (int, error)
	// Position returns the offset of the next byte Read will return.
	Position() int64
	// SkipDistance advances the position by n bytes without returning them.
	// n must be >= 0; a negative n is a programming error and panics.
	SkipDistance(n int64) error
	// SkipTo advances the position to the absolute offset pos. pos must be
	// >= Position(); a backward target is a programming error and panics.
	SkipTo(pos int64) error
}

// Plain wraps any io.Reader and tracks position by counting bytes read.
// Skipping is implemented by discarding bytes, since the underlying reader
// offers no native seek.
type Plain struct {
	r   io.Reader
	pos int64
}

// NewPlain wraps r as a Source.
func NewPlain(r io.Reader) *Plain {
	return &Plain{r: r}
}

func (p *Plain) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	p.pos += int64(n)
	return n, err
}

func (p *Plain) Position() int64 { return p.pos }

func (p *Plain) SkipDistance(n int64) error {
	if n < 0 {
		panic(fmt.Sprintf("source: negative skip distance %d", n))
	}
	if n == 0 {
		return nil
	}
	written, err := io.CopyN(io.Discard, p.r, n)
	p.pos += written
	if err != nil {
		return fmt.Errorf("source: skip %d bytes at %d: %w", n, p.pos-written, err)
	}
	return nil
}

func (p *Plain) SkipTo(pos int64) error {
	if pos < p.pos {
		panic(fmt.Sprintf("source: backward skip from %d to %d", p.pos, pos))
	}
	return p.SkipDistance(pos - p.pos)
}

// Seekable wraps an io.ReadSeeker, using native Seek for SkipDistance/SkipTo
// instead of discarding bytes.
type Seekable struct {
	rs  io.ReadSeeker
	pos int64
}

// NewSeekable wraps rs as a Source whose starting position is rs's current
// offset.
func NewSeekable(rs io.ReadSeeker) (*Seekable, error) {
	pos, err := rs.Seek(0, io.SeekCurrent)
	if err != nil {
		return nil, fmt.Errorf("source: determine initial position: %w", err)
	}
	return &Seekable{rs: rs, pos: pos}, nil
}

func (s *Seekable) Read(buf []byte) (int, error) {
	n, err := s.rs.Read(buf)
	s.pos += int64(n)
	return n, err
}

func (s *Seekable) Position() int64 { return s.pos }

func (s *Seekable) SkipDistance(n int64) error {
	if n < 0 {
		panic(fmt.Sprintf("source: negative skip distance %d", n))
	}
	return s.SkipTo(s.pos + n)
}

func (s *Seekable) SkipTo(pos int64) error {
	if pos < s.pos {
		panic(fmt.Sprintf("source: backward skip from %d to %d", s.pos, pos))
	}
	if pos == s.pos {
		return nil
	}
	newPos, err := s.rs.Seek(pos, io.SeekStart)
	if err != nil {
		return fmt.Errorf("source: seek to %d: %w", pos, err)
	}
	s.pos = newPos
	return nil
}
