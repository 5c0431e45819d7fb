package phpserial

import (
	"errors"
	"fmt"
)

// ErrTruncated is wrapped by SyntaxError when input ends before a value is complete
var ErrTruncated = errors.New("unexpected end of input")

// SyntaxError describes malformed serialized input
type SyntaxError struct {
	Offset int
	Msg    string
	err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("phpserial: %s at offset %d", e.Msg, e.Offset)
}

func (e *SyntaxError) Unwrap() error {
	return e.err
}

func newSyntaxError(offset int, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

func truncatedError(offset int) *SyntaxError {
	return &SyntaxError{Offset: offset, Msg: ErrTruncated.Error(), err: ErrTruncated}
}
