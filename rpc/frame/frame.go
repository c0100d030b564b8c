package frame

import (
	"bytes"
	"fmt"
)

// --------------------------------------------------------------------------
// Frame Type
// --------------------------------------------------------------------------

// Type is the variant tag of a Frame.
type Type uint8

const (
	TypeSimple  Type = iota // +text
	TypeError               // -text
	TypeInteger             // :decimal
	TypeBulk                // $len payload
	TypeNull                // $-1
	TypeArray               // *len frames...
)

func (t Type) String() string {
	switch t {
	case TypeSimple:
		return "Simple"
	case TypeError:
		return "Error"
	case TypeInteger:
		return "Integer"
	case TypeBulk:
		return "Bulk"
	case TypeNull:
		return "Null"
	case TypeArray:
		return "Array"
	default:
		return fmt.Sprintf("Unknown(%d)", t)
	}
}

// --------------------------------------------------------------------------
// Frame Structure
// --------------------------------------------------------------------------

// Frame is a single protocol message. Which field carries the payload
// depends on Type:
//   - TypeSimple, TypeError: Str
//   - TypeInteger: Int
//   - TypeBulk: Bulk
//   - TypeArray: Array
//   - TypeNull: no payload
type Frame struct {
	Type  Type
	Str   string
	Int   int64
	Bulk  []byte
	Array []Frame
}

// --------------------------------------------------------------------------
// Frame Factory Functions
// --------------------------------------------------------------------------

// NewSimple creates a simple string frame
func NewSimple(s string) Frame {
	return Frame{Type: TypeSimple, Str: s}
}

// NewError creates an error frame
func NewError(s string) Frame {
	return Frame{Type: TypeError, Str: s}
}

// NewInteger creates an integer frame
func NewInteger(n int64) Frame {
	return Frame{Type: TypeInteger, Int: n}
}

// NewBulk creates a bulk frame. The payload is not copied.
func NewBulk(b []byte) Frame {
	return Frame{Type: TypeBulk, Bulk: b}
}

// NewNull creates a null frame
func NewNull() Frame {
	return Frame{Type: TypeNull}
}

// NewArray creates an array frame from the given elements
func NewArray(elems ...Frame) Frame {
	if elems == nil {
		elems = []Frame{}
	}
	return Frame{Type: TypeArray, Array: elems}
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// Equal reports whether two frames carry the same variant and payload.
// A nil and an empty bulk payload are considered equal.
func (f Frame) Equal(other Frame) bool {
	if f.Type != other.Type {
		return false
	}
	switch f.Type {
	case TypeSimple, TypeError:
		return f.Str == other.Str
	case TypeInteger:
		return f.Int == other.Int
	case TypeBulk:
		return bytes.Equal(f.Bulk, other.Bulk)
	case TypeArray:
		if len(f.Array) != len(other.Array) {
			return false
		}
		for i := range f.Array {
			if !f.Array[i].Equal(other.Array[i]) {
				return false
			}
		}
		return true
	default:
		return true
	}
}

// String returns a human-readable representation used in logs
func (f Frame) String() string {
	switch f.Type {
	case TypeSimple:
		return fmt.Sprintf("Simple(%q)", f.Str)
	case TypeError:
		return fmt.Sprintf("Error(%q)", f.Str)
	case TypeInteger:
		return fmt.Sprintf("Integer(%d)", f.Int)
	case TypeBulk:
		return fmt.Sprintf("Bulk(%q)", f.Bulk)
	case TypeNull:
		return "Null"
	case TypeArray:
		var sb bytes.Buffer
		sb.WriteString("Array[")
		for i, e := range f.Array {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(e.String())
		}
		sb.WriteString("]")
		return sb.String()
	default:
		return f.Type.String()
	}
}
