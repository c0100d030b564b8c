package frame

import (
	"bufio"
	"fmt"
	"strconv"
)

// Encode returns the wire representation of f.
func Encode(f Frame) ([]byte, error) {
	return AppendFrame(nil, f)
}

// AppendFrame appends the wire representation of f to dst and returns the
// extended slice. Only frames with an unknown Type fail to encode.
//
// Array frames are encoded for completeness (clients send their requests as
// arrays); the server itself never answers with one.
func AppendFrame(dst []byte, f Frame) ([]byte, error) {
	switch f.Type {
	case TypeSimple:
		dst = append(dst, '+')
		dst = append(dst, f.Str...)
		return append(dst, '\r', '\n'), nil
	case TypeError:
		dst = append(dst, '-')
		dst = append(dst, f.Str...)
		return append(dst, '\r', '\n'), nil
	case TypeInteger:
		dst = append(dst, ':')
		return appendDecimal(dst, f.Int), nil
	case TypeNull:
		return append(dst, "$-1\r\n"...), nil
	case TypeBulk:
		dst = append(dst, '$')
		dst = appendDecimal(dst, int64(len(f.Bulk)))
		dst = append(dst, f.Bulk...)
		return append(dst, '\r', '\n'), nil
	case TypeArray:
		dst = append(dst, '*')
		dst = appendDecimal(dst, int64(len(f.Array)))
		var err error
		for _, e := range f.Array {
			if dst, err = AppendFrame(dst, e); err != nil {
				return dst, err
			}
		}
		return dst, nil
	default:
		return dst, fmt.Errorf("cannot encode frame of type %s", f.Type)
	}
}

// WriteFrame encodes f into w. The caller decides when to flush.
func WriteFrame(w *bufio.Writer, f Frame) error {
	buf, err := AppendFrame(w.AvailableBuffer(), f)
	if err != nil {
		return err
	}
	_, err = w.Write(buf)
	return err
}

// appendDecimal writes n as ASCII decimal followed by CRLF
func appendDecimal(dst []byte, n int64) []byte {
	dst = strconv.AppendInt(dst, n, 10)
	return append(dst, '\r', '\n')
}
