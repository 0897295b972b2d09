// Package parser implements the dotenv line parser: a forward-only cursor
// over a byte sequence that yields key/value entries.
//
// The grammar is deliberately small. A line is a comment (leading '#'), a
// blank line, or KEY=VALUE. Only the first '=' splits key from value. Values
// wrapped in double quotes lose the quotes and have the literal two-byte
// sequence \n expanded to a newline; single-quoted values lose the quotes
// only; anything else passes through untouched.
//
// Parsing is total: it never returns an error. A trailing fragment that
// cannot be parsed (no '=', empty key, bytes that do not decode) ends the
// parse, and everything produced up to that point is the result.
package parser

import (
	"bytes"
	"strings"

	"golang.org/x/text/encoding"
)

// Parser walks a Source and produces entries until the input is exhausted.
// A Parser is built for one Source and is not reused.
type Parser struct {
	src Source
}

// New returns a Parser over src.
func New(src Source) *Parser {
	return &Parser{src: src}
}

// Parse drives the parser to exhaustion and returns every entry in file
// order.
func (p *Parser) Parse() []Entry {
	var entries []Entry
	for {
		e, ok := p.Next()
		if !ok {
			return entries
		}
		entries = append(entries, e)
	}
}

// Next returns the next entry. It reports false when the input is exhausted
// or the remaining bytes cannot form an entry; the cursor does not back up,
// so Next keeps reporting false after that.
func (p *Parser) Next() (Entry, bool) {
	for {
		p.skipSpaces()

		c, ok := p.src.PeekByte()
		if !ok {
			return Entry{}, false
		}

		switch c {
		case '#':
			d, ok := p.src.DistanceTo('\n')
			if !ok {
				// Comment with no trailing newline: nothing left to parse.
				return Entry{}, false
			}
			p.src.Advance(d + 1)
		case '\n':
			p.src.Advance(1)
		default:
			return p.entry()
		}
	}
}

func (p *Parser) skipSpaces() {
	for {
		c, ok := p.src.PeekByte()
		if !ok || c != ' ' {
			return
		}
		p.src.Advance(1)
	}
}

func (p *Parser) entry() (Entry, bool) {
	d, ok := p.src.DistanceTo('=')
	if !ok || d == 0 {
		// No '=' left, or an empty key: discard the rest of the input.
		return Entry{}, false
	}

	key, err := p.src.ReadText(d)
	if err != nil {
		return Entry{}, false
	}
	p.src.Advance(1) // the '='

	n, ok := p.src.DistanceTo('\n')
	if !ok {
		// Last line of the file has no trailing newline.
		n = p.src.Remaining()
	}
	raw, err := p.src.ReadText(n)
	if err != nil {
		return Entry{}, false
	}
	// The newline stays put; the next iteration consumes it as a blank line.

	return Entry{Key: key, Value: unquote(raw)}, true
}

// unquote strips one pair of matching quote characters. Double quotes also
// expand the literal sequence \n to a newline; no other escape is
// recognized. Mismatched or absent quotes leave the value untouched.
func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	switch {
	case s[0] == '"' && s[len(s)-1] == '"':
		return strings.ReplaceAll(s[1:len(s)-1], `\n`, "\n")
	case s[0] == '\'' && s[len(s)-1] == '\'':
		return s[1 : len(s)-1]
	}
	return s
}

// Parse parses b with a nil (strict UTF-8) encoding.
func Parse(b []byte) []Entry {
	return New(NewBytesSource(b, nil)).Parse()
}

// ParseWithEncoding parses b, decoding key and value text with enc.
func ParseWithEncoding(b []byte, enc encoding.Encoding) []Entry {
	return New(NewBytesSource(b, enc)).Parse()
}

// ParseString parses the bytes of s with a nil (strict UTF-8) encoding.
func ParseString(s string) []Entry {
	return New(NewStringSource(s, nil)).Parse()
}

// ParseBuffer parses and consumes the readable window of buf.
func ParseBuffer(buf *bytes.Buffer, enc encoding.Encoding) []Entry {
	return New(NewBufferSource(buf, enc)).Parse()
}
