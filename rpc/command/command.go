package command

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ValentinKolb/sKV/rpc/frame"
)

// ErrDecode is wrapped by every error FromFrame returns. It marks a frame
// that is well-formed on the wire but not a valid command.
var ErrDecode = errors.New("invalid command frame")

// CommandType defines the recognized commands.
type CommandType uint8

const (
	CommandTUnrecognized CommandType = iota // Well-formed request with an unknown verb.
	CommandTGet                             // Read the value of a key.
	CommandTSet                             // Insert or overwrite the value of a key.
)

func (ct CommandType) String() string {
	switch ct {
	case CommandTUnrecognized:
		return "Unrecognized"
	case CommandTGet:
		return "GET"
	case CommandTSet:
		return "SET"
	default:
		return fmt.Sprintf("Unknown(%d)", ct)
	}
}

// Command is a decoded request
type Command struct {
	Type  CommandType
	Name  string // verb as sent by the client
	Key   string // Used for: Get, Set
	Value []byte // Used for: Set
}

// --------------------------------------------------------------------------
// Command Factory Functions
// --------------------------------------------------------------------------

// NewGet creates a GET command
func NewGet(key string) *Command {
	return &Command{Type: CommandTGet, Name: "GET", Key: key}
}

// NewSet creates a SET command
func NewSet(key string, value []byte) *Command {
	return &Command{Type: CommandTSet, Name: "SET", Key: key, Value: value}
}

// --------------------------------------------------------------------------
// Decoding
// --------------------------------------------------------------------------

// FromFrame interprets a request frame.
//
// Only arrays whose elements are bulk (or simple) strings are commands. The
// verb is matched case-insensitively. A wrong frame shape or argument count
// returns an error wrapping ErrDecode; an unknown verb decodes successfully
// as CommandTUnrecognized.
func FromFrame(f frame.Frame) (*Command, error) {
	if f.Type != frame.TypeArray {
		return nil, fmt.Errorf("%w: expected array, got %s", ErrDecode, f.Type)
	}
	if len(f.Array) == 0 {
		return nil, fmt.Errorf("%w: empty array", ErrDecode)
	}

	args := make([][]byte, len(f.Array))
	for i, e := range f.Array {
		arg, err := argBytes(e)
		if err != nil {
			return nil, fmt.Errorf("%w: argument %d: %v", ErrDecode, i, err)
		}
		args[i] = arg
	}

	name := string(args[0])
	switch strings.ToUpper(name) {
	case "GET":
		if len(args) != 2 {
			return nil, arityError("GET", 1, len(args)-1)
		}
		return &Command{Type: CommandTGet, Name: name, Key: string(args[1])}, nil
	case "SET":
		if len(args) != 3 {
			return nil, arityError("SET", 2, len(args)-1)
		}
		return &Command{Type: CommandTSet, Name: name, Key: string(args[1]), Value: args[2]}, nil
	default:
		return &Command{Type: CommandTUnrecognized, Name: name}, nil
	}
}

// ToFrame encodes the command as the array of bulk strings a client sends.
// Unrecognized commands are encoded with their verb only.
func (c *Command) ToFrame() frame.Frame {
	switch c.Type {
	case CommandTGet:
		return frame.NewArray(
			frame.NewBulk([]byte("GET")),
			frame.NewBulk([]byte(c.Key)),
		)
	case CommandTSet:
		return frame.NewArray(
			frame.NewBulk([]byte("SET")),
			frame.NewBulk([]byte(c.Key)),
			frame.NewBulk(c.Value),
		)
	default:
		return frame.NewArray(frame.NewBulk([]byte(c.Name)))
	}
}

// String returns a short representation used in logs (values are omitted)
func (c *Command) String() string {
	switch c.Type {
	case CommandTGet:
		return fmt.Sprintf("GET %q", c.Key)
	case CommandTSet:
		return fmt.Sprintf("SET %q (%d bytes)", c.Key, len(c.Value))
	default:
		return fmt.Sprintf("Unrecognized(%q)", c.Name)
	}
}

// --------------------------------------------------------------------------
// Helper
// --------------------------------------------------------------------------

// argBytes extracts the textual payload of an argument frame
func argBytes(f frame.Frame) ([]byte, error) {
	switch f.Type {
	case frame.TypeBulk:
		return f.Bulk, nil
	case frame.TypeSimple:
		return []byte(f.Str), nil
	default:
		return nil, fmt.Errorf("expected bulk string, got %s", f.Type)
	}
}

func arityError(verb string, want, got int) error {
	return fmt.Errorf("%w: wrong number of arguments for '%s' (expected %d, got %d)", ErrDecode, verb, want, got)
}
