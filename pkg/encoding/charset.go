// Package encoding decodes legacy-encoded OBJ and MTL text to UTF-8.
package encoding

import (
	"errors"
	"fmt"
	"io"
	"strings"

	xencoding "golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnknownCharset is returned for a charset label no decoder knows.
var ErrUnknownCharset = errors.New("unknown charset")

// Lookup returns the encoding for a WHATWG label such as "windows-1252",
// "latin1" or "euc-kr". An empty label passes bytes through unchanged.
func Lookup(label string) (xencoding.Encoding, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return xencoding.Nop, nil
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, label)
	}
	return enc, nil
}

// Name returns the canonical name of enc, or "raw" for pass-through.
func Name(enc xencoding.Encoding) string {
	if enc == xencoding.Nop {
		return "raw"
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return "unknown"
	}
	return name
}

// NewReader decodes r from enc. A leading byte order mark is stripped and
// overrides enc.
func NewReader(r io.Reader, enc xencoding.Encoding) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(enc.NewDecoder()))
}
