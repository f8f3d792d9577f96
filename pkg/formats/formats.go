// Package formats provides parsers for the Wavefront OBJ and MTL text formats.
//
// The package works at the record level: splitting lines into a keyword and
// its arguments, decoding face-vertex tokens, rebasing OBJ indices, and
// streaming MTL files into a material bank. Mesh assembly lives in
// internal/engine/model.
package formats

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Parse errors shared by the OBJ and MTL readers.
var (
	ErrInvalidOBJPath    = errors.New("invalid OBJ path: expected a name ending in .obj")
	ErrInvalidFaceVertex = errors.New("invalid face vertex")
	ErrIndexOutOfRange   = errors.New("index out of range")
	ErrMalformedRecord   = errors.New("malformed record")
)

// ParseError locates a parse failure in a source file.
type ParseError struct {
	File string // Source file, empty when parsing an anonymous reader
	Line int    // 1-based line number
	Err  error
}

func (e *ParseError) Error() string {
	if e.File == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.File, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SplitRecord splits a line into its record keyword and arguments.
// ok is false for blank lines and comments.
func SplitRecord(line string) (keyword string, args []string, ok bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return "", nil, false
	}
	return fields[0], fields[1:], true
}

// ParseFloats parses between min and max leading arguments as float32.
// Arguments past max are ignored.
func ParseFloats(args []string, min, max int) ([]float32, error) {
	if len(args) < min {
		return nil, fmt.Errorf("%w: want at least %d numbers, got %d", ErrMalformedRecord, min, len(args))
	}
	n := len(args)
	if n > max {
		n = max
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a number", ErrMalformedRecord, args[i])
		}
		out[i] = float32(v)
	}
	return out, nil
}
