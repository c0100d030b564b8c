package frame

import (
	"errors"
	"fmt"
)

var (
	// ErrIncomplete is returned by Check when the buffer does not yet hold a
	// complete frame. It is not a failure: the caller has to read more bytes.
	ErrIncomplete = errors.New("incomplete frame")

	// ErrProtocol is matched (via errors.Is) by every *ProtocolError.
	ErrProtocol = errors.New("protocol error")
)

// ProtocolError describes structurally invalid input: an unknown type tag,
// a malformed length or integer, a missing terminator or a length that
// exceeds the configured limits. A stream that produced a ProtocolError
// cannot be realigned and should be closed.
type ProtocolError struct {
	Offset int    // byte offset into the inspected buffer
	Msg    string // description of the violation
}

// Error implements the error interface.
func (e *ProtocolError) Error() string {
	return fmt.Sprintf("protocol error at byte %d: %s", e.Offset, e.Msg)
}

// Is makes errors.Is(err, ErrProtocol) hold for every ProtocolError.
func (e *ProtocolError) Is(target error) bool {
	return target == ErrProtocol
}

func newProtocolError(offset int, format string, args ...interface{}) *ProtocolError {
	return &ProtocolError{
		Offset: offset,
		Msg:    fmt.Sprintf(format, args...),
	}
}
