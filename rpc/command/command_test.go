package command

import (
	"errors"
	"testing"

	"github.com/ValentinKolb/sKV/rpc/frame"
)

func bulk(s string) frame.Frame {
	return frame.NewBulk([]byte(s))
}

// TestFromFrame checks decoding of valid requests
func TestFromFrame(t *testing.T) {
	tests := []struct {
		name  string
		in    frame.Frame
		typ   CommandType
		key   string
		value string
	}{
		{"get", frame.NewArray(bulk("GET"), bulk("foo")), CommandTGet, "foo", ""},
		{"lowercase get", frame.NewArray(bulk("get"), bulk("foo")), CommandTGet, "foo", ""},
		{"mixed case set", frame.NewArray(bulk("sEt"), bulk("foo"), bulk("bar")), CommandTSet, "foo", "bar"},
		{"set empty value", frame.NewArray(bulk("SET"), bulk("foo"), bulk("")), CommandTSet, "foo", ""},
		{"simple string args", frame.NewArray(frame.NewSimple("GET"), frame.NewSimple("k")), CommandTGet, "k", ""},
		{"unknown verb", frame.NewArray(bulk("PING"), bulk("")), CommandTUnrecognized, "", ""},
		{"unknown verb without args", frame.NewArray(bulk("FLUSHALL")), CommandTUnrecognized, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := FromFrame(tt.in)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if cmd.Type != tt.typ {
				t.Errorf("Expected type %s, got %s", tt.typ, cmd.Type)
			}
			if cmd.Key != tt.key {
				t.Errorf("Expected key %q, got %q", tt.key, cmd.Key)
			}
			if string(cmd.Value) != tt.value {
				t.Errorf("Expected value %q, got %q", tt.value, cmd.Value)
			}
		})
	}
}

// TestUnrecognizedKeepsName verifies the verb is preserved for logging
func TestUnrecognizedKeepsName(t *testing.T) {
	cmd, err := FromFrame(frame.NewArray(bulk("Ping")))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if cmd.Name != "Ping" {
		t.Errorf("Expected name 'Ping', got %q", cmd.Name)
	}
}

// TestDecodeErrors checks that malformed requests are rejected with ErrDecode
func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   frame.Frame
	}{
		{"simple top level", frame.NewSimple("GET foo")},
		{"bulk top level", bulk("GET")},
		{"null top level", frame.NewNull()},
		{"integer top level", frame.NewInteger(1)},
		{"empty array", frame.NewArray()},
		{"get without key", frame.NewArray(bulk("GET"))},
		{"get with two keys", frame.NewArray(bulk("GET"), bulk("a"), bulk("b"))},
		{"set without value", frame.NewArray(bulk("SET"), bulk("a"))},
		{"set with extra arg", frame.NewArray(bulk("SET"), bulk("a"), bulk("b"), bulk("c"))},
		{"integer verb", frame.NewArray(frame.NewInteger(1), bulk("a"))},
		{"null key", frame.NewArray(bulk("GET"), frame.NewNull())},
		{"nested array", frame.NewArray(bulk("GET"), frame.NewArray(bulk("a")))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := FromFrame(tt.in)
			if err == nil {
				t.Fatalf("Expected error, got command %s", cmd)
			}
			if !errors.Is(err, ErrDecode) {
				t.Errorf("Expected ErrDecode, got %v", err)
			}
		})
	}
}

// TestToFrameRoundTrip verifies that client-side encoding decodes to the same command
func TestToFrameRoundTrip(t *testing.T) {
	for _, cmd := range []*Command{NewGet("foo"), NewSet("foo", []byte("bar")), NewSet("k", []byte{})} {
		wire, err := frame.Encode(cmd.ToFrame())
		if err != nil {
			t.Fatalf("Failed to encode %s: %v", cmd, err)
		}
		f, _, err := frame.Parse(wire)
		if err != nil {
			t.Fatalf("Failed to parse %q: %v", wire, err)
		}
		got, err := FromFrame(f)
		if err != nil {
			t.Fatalf("Failed to decode %s: %v", f, err)
		}
		if got.Type != cmd.Type || got.Key != cmd.Key || string(got.Value) != string(cmd.Value) {
			t.Errorf("Command %s doesn't match after round trip: %s", cmd, got)
		}
	}
}

// TestGetWireFormat checks the exact request bytes for GET
func TestGetWireFormat(t *testing.T) {
	wire, err := frame.Encode(NewGet("foo").ToFrame())
	if err != nil {
		t.Fatalf("Failed to encode: %v", err)
	}
	if string(wire) != "*2\r\n$3\r\nGET\r\n$3\r\nfoo\r\n" {
		t.Errorf("Unexpected wire format %q", wire)
	}
}
