package frame

import (
	"bytes"
	"strconv"
)

const (
	// MaxBulkLength is the largest bulk payload a peer may announce (512 MiB).
	MaxBulkLength = 512 * 1024 * 1024
	// MaxArrayLength is the largest element count a peer may announce.
	MaxArrayLength = 1024 * 1024
	// MaxLineLength bounds simple strings, errors and decimal fields. Without
	// it a peer could stream bytes without CRLF and grow the buffer forever.
	MaxLineLength = 64 * 1024
	// MaxDepth bounds array nesting.
	MaxDepth = 32
)

var crlf = []byte("\r\n")

// --------------------------------------------------------------------------
// Public API
// --------------------------------------------------------------------------

// Check reports whether buf starts with one complete, well-formed frame and
// returns its length in bytes. No frame values are built.
//
// Returns ErrIncomplete when more bytes are required and a *ProtocolError
// when the input can never become a valid frame.
func Check(buf []byte) (int, error) {
	c := cursor{buf: buf}
	if err := c.check(0); err != nil {
		return 0, err
	}
	return c.pos, nil
}

// Parse decodes the frame at the start of buf and returns it together with
// the number of bytes consumed. buf must have passed Check; on unchecked
// input Parse still fails safely but its error kind is unspecified.
//
// Bulk payloads are copied, so buf may be reused after Parse returns.
func Parse(buf []byte) (Frame, int, error) {
	c := cursor{buf: buf}
	f, err := c.parse(0)
	if err != nil {
		return Frame{}, 0, err
	}
	return f, c.pos, nil
}

// --------------------------------------------------------------------------
// Cursor
// --------------------------------------------------------------------------

// cursor walks a byte slice. pos only moves forward.
type cursor struct {
	buf []byte
	pos int
}

func (c *cursor) remaining() int {
	return len(c.buf) - c.pos
}

func (c *cursor) getU8() (byte, error) {
	if c.remaining() < 1 {
		return 0, ErrIncomplete
	}
	b := c.buf[c.pos]
	c.pos++
	return b, nil
}

// getLine returns the bytes up to the next CRLF and moves past the CRLF.
func (c *cursor) getLine() ([]byte, error) {
	rest := c.buf[c.pos:]
	idx := bytes.Index(rest, crlf)
	if idx < 0 {
		if len(rest) > MaxLineLength {
			return nil, newProtocolError(c.pos, "line exceeds %d bytes", MaxLineLength)
		}
		return nil, ErrIncomplete
	}
	if idx > MaxLineLength {
		return nil, newProtocolError(c.pos, "line exceeds %d bytes", MaxLineLength)
	}
	c.pos += idx + 2
	return rest[:idx], nil
}

// getDecimal reads a CRLF terminated signed decimal.
func (c *cursor) getDecimal() (int64, error) {
	start := c.pos
	line, err := c.getLine()
	if err != nil {
		return 0, err
	}
	if !canonicalDecimal(line) {
		return 0, newProtocolError(start, "invalid decimal %q", line)
	}
	n, err := strconv.ParseInt(string(line), 10, 64)
	if err != nil {
		return 0, newProtocolError(start, "invalid decimal %q", line)
	}
	return n, nil
}

// canonicalDecimal reports whether line is written the way strconv.AppendInt
// writes it: an optional '-', no '+', no leading zeros and no "-0".
func canonicalDecimal(line []byte) bool {
	digits := line
	if len(digits) > 0 && digits[0] == '-' {
		digits = digits[1:]
	}
	if len(digits) == 0 {
		return false
	}
	if digits[0] == '0' && (len(digits) > 1 || len(digits) < len(line)) {
		return false
	}
	for _, b := range digits {
		if b < '0' || b > '9' {
			return false
		}
	}
	return true
}

// getLength reads the length field of a bulk or array frame.
// It returns -1 for the null encoding and rejects every other negative value.
func (c *cursor) getLength(limit int64) (int64, error) {
	start := c.pos
	n, err := c.getDecimal()
	if err != nil {
		return 0, err
	}
	if n == -1 {
		return -1, nil
	}
	if n < 0 {
		return 0, newProtocolError(start, "invalid length %d", n)
	}
	if n > limit {
		return 0, newProtocolError(start, "length %d exceeds limit %d", n, limit)
	}
	return n, nil
}

// skipPayload moves past n payload bytes and the CRLF that must follow them.
func (c *cursor) skipPayload(n int) error {
	if c.remaining() < n+2 {
		return ErrIncomplete
	}
	end := c.pos + n
	if c.buf[end] != '\r' || c.buf[end+1] != '\n' {
		return newProtocolError(end, "missing terminator after bulk payload")
	}
	c.pos = end + 2
	return nil
}

// --------------------------------------------------------------------------
// Check
// --------------------------------------------------------------------------

func (c *cursor) check(depth int) error {
	if depth > MaxDepth {
		return newProtocolError(c.pos, "nesting deeper than %d", MaxDepth)
	}

	start := c.pos
	tag, err := c.getU8()
	if err != nil {
		return err
	}

	switch tag {
	case '+', '-':
		_, err := c.getLine()
		return err
	case ':':
		_, err := c.getDecimal()
		return err
	case '$':
		n, err := c.getLength(MaxBulkLength)
		if err != nil || n == -1 {
			return err
		}
		return c.skipPayload(int(n))
	case '*':
		n, err := c.getLength(MaxArrayLength)
		if err != nil || n == -1 {
			return err
		}
		for i := int64(0); i < n; i++ {
			if err := c.check(depth + 1); err != nil {
				return err
			}
		}
		return nil
	default:
		return newProtocolError(start, "invalid frame type byte %q", tag)
	}
}

// --------------------------------------------------------------------------
// Parse
// --------------------------------------------------------------------------

func (c *cursor) parse(depth int) (Frame, error) {
	if depth > MaxDepth {
		return Frame{}, newProtocolError(c.pos, "nesting deeper than %d", MaxDepth)
	}

	start := c.pos
	tag, err := c.getU8()
	if err != nil {
		return Frame{}, err
	}

	switch tag {
	case '+', '-':
		line, err := c.getLine()
		if err != nil {
			return Frame{}, err
		}
		if tag == '+' {
			return NewSimple(string(line)), nil
		}
		return NewError(string(line)), nil

	case ':':
		n, err := c.getDecimal()
		if err != nil {
			return Frame{}, err
		}
		return NewInteger(n), nil

	case '$':
		n, err := c.getLength(MaxBulkLength)
		if err != nil {
			return Frame{}, err
		}
		if n == -1 {
			return NewNull(), nil
		}
		payloadStart := c.pos
		if err := c.skipPayload(int(n)); err != nil {
			return Frame{}, err
		}
		payload := make([]byte, n)
		copy(payload, c.buf[payloadStart:payloadStart+int(n)])
		return NewBulk(payload), nil

	case '*':
		n, err := c.getLength(MaxArrayLength)
		if err != nil {
			return Frame{}, err
		}
		if n == -1 {
			return NewNull(), nil
		}
		elems := make([]Frame, 0, n)
		for i := int64(0); i < n; i++ {
			e, err := c.parse(depth + 1)
			if err != nil {
				return Frame{}, err
			}
			elems = append(elems, e)
		}
		return NewArray(elems...), nil

	default:
		return Frame{}, newProtocolError(start, "invalid frame type byte %q", tag)
	}
}
