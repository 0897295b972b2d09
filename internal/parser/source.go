package parser

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// ErrInvalidText is returned by ReadText when the requested bytes do not
// decode under the source's encoding.
var ErrInvalidText = errors.New("parser: bytes are not valid text")

// Source is the cursor capability the parser runs over. The cursor only
// moves forward; DistanceTo scans ahead without consuming anything.
type Source interface {
	// PeekByte reports the byte at the cursor without consuming it.
	PeekByte() (byte, bool)
	// Advance moves the cursor forward n bytes, clamped to end-of-input.
	Advance(n int)
	// DistanceTo reports how many bytes lie between the cursor and the next
	// occurrence of c, not counting c itself.
	DistanceTo(c byte) (int, bool)
	// ReadText decodes and consumes n bytes. On a decode failure nothing
	// is consumed; the parser stops at that point.
	ReadText(n int) (string, error)
	// Remaining reports how many unread bytes are left.
	Remaining() int
}

func decodeText(enc encoding.Encoding, raw []byte) (string, error) {
	if enc == nil || enc == unicode.UTF8 {
		if !utf8.Valid(raw) {
			return "", ErrInvalidText
		}
		return string(raw), nil
	}
	s, err := enc.NewDecoder().String(string(raw))
	if err != nil {
		return "", ErrInvalidText
	}
	return s, nil
}

// bytesSource is the owned-array adapter: a fully materialized byte slice
// with an explicit integer cursor.
type bytesSource struct {
	buf []byte
	pos int
	enc encoding.Encoding
}

// NewBytesSource returns a Source over b. A nil encoding means strict UTF-8.
func NewBytesSource(b []byte, enc encoding.Encoding) Source {
	return &bytesSource{buf: b, enc: enc}
}

// NewStringSource returns a Source over the bytes of s. A nil encoding means
// strict UTF-8.
func NewStringSource(s string, enc encoding.Encoding) Source {
	return &bytesSource{buf: []byte(s), enc: enc}
}

func (s *bytesSource) PeekByte() (byte, bool) {
	if s.pos >= len(s.buf) {
		return 0, false
	}
	return s.buf[s.pos], true
}

func (s *bytesSource) Advance(n int) {
	s.pos += n
	if s.pos > len(s.buf) {
		s.pos = len(s.buf)
	}
}

func (s *bytesSource) DistanceTo(c byte) (int, bool) {
	i := bytes.IndexByte(s.buf[s.pos:], c)
	if i < 0 {
		return 0, false
	}
	return i, true
}

func (s *bytesSource) ReadText(n int) (string, error) {
	if n > len(s.buf)-s.pos {
		n = len(s.buf) - s.pos
	}
	text, err := decodeText(s.enc, s.buf[s.pos:s.pos+n])
	if err != nil {
		return "", err
	}
	s.pos += n
	return text, nil
}

func (s *bytesSource) Remaining() int {
	return len(s.buf) - s.pos
}

// bufferSource is the streaming adapter: it reads from a growable
// bytes.Buffer whose readable window shrinks as the cursor advances.
type bufferSource struct {
	buf *bytes.Buffer
	enc encoding.Encoding
}

// NewBufferSource returns a Source that consumes buf. A nil encoding means
// strict UTF-8.
func NewBufferSource(buf *bytes.Buffer, enc encoding.Encoding) Source {
	return &bufferSource{buf: buf, enc: enc}
}

func (s *bufferSource) PeekByte() (byte, bool) {
	window := s.buf.Bytes()
	if len(window) == 0 {
		return 0, false
	}
	return window[0], true
}

func (s *bufferSource) Advance(n int) {
	s.buf.Next(n)
}

func (s *bufferSource) DistanceTo(c byte) (int, bool) {
	// Bytes is the unread window; scanning it consumes nothing.
	i := bytes.IndexByte(s.buf.Bytes(), c)
	if i < 0 {
		return 0, false
	}
	return i, true
}

func (s *bufferSource) ReadText(n int) (string, error) {
	window := s.buf.Bytes()
	if n > len(window) {
		n = len(window)
	}
	text, err := decodeText(s.enc, window[:n])
	if err != nil {
		return "", err
	}
	s.buf.Next(n)
	return text, nil
}

func (s *bufferSource) Remaining() int {
	return s.buf.Len()
}
