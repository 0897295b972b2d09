package envfile

import (
	"fmt"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
)

// EncodingByName resolves an IANA charset name ("utf-8", "latin1",
// "windows-1252", ...) to an Encoding. Empty and UTF-8 names resolve to nil,
// which the parser treats as strict UTF-8.
func EncodingByName(name string) (encoding.Encoding, error) {
	if name == "" {
		return nil, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("unknown encoding %q", name)
	}
	if enc == unicode.UTF8 {
		return nil, nil
	}
	return enc, nil
}

// EncodingName reports the IANA name of enc, defaulting to utf-8.
func EncodingName(enc encoding.Encoding) string {
	if enc == nil {
		return "utf-8"
	}
	name, err := ianaindex.IANA.Name(enc)
	if err != nil {
		return "unknown"
	}
	return strings.ToLower(name)
}
