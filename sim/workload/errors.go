package workload

import (
	"errors"
	"fmt"
)

// ErrUnexpectedEOF reports a process file that ends before every declared
// integer has been read.
var ErrUnexpectedEOF = errors.New("reached end of file while looking for another integer")

// ParseError describes malformed workload input.
type ParseError struct {
	Path   string // file name, or "" for in-memory input
	Offset int    // byte offset where the problem was detected
	Msg    string
	Err    error // underlying cause, may be nil
}

func (e *ParseError) Error() string {
	where := e.Path
	if where == "" {
		where = "<input>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: offset %d: %s: %v", where, e.Offset, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: offset %d: %s", where, e.Offset, e.Msg)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// QuantumError reports a quantum argument that is not a decimal integer.
type QuantumError struct {
	Text string
	Err  error
}

func (e *QuantumError) Error() string {
	return fmt.Sprintf("invalid quantum %q: %v", e.Text, e.Err)
}

func (e *QuantumError) Unwrap() error {
	return e.Err
}
