package common

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lni/dragonboat/v4/logger"
)

// TestParseLogLevel checks all accepted spellings and the error case
func TestParseLogLevel(t *testing.T) {
	tests := map[string]logger.LogLevel{
		"debug":   logger.DEBUG,
		"INFO":    logger.INFO,
		"warn":    logger.WARNING,
		"warning": logger.WARNING,
		"Error":   logger.ERROR,
	}
	for in, want := range tests {
		got, err := ParseLogLevel(in)
		if err != nil {
			t.Errorf("ParseLogLevel(%q) returned error: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("ParseLogLevel(%q) = %v, expected %v", in, got, want)
		}
	}

	if _, err := ParseLogLevel("verbose"); err == nil {
		t.Error("Expected error for unknown level")
	}
}

// TestLoggerStreams verifies level filtering and that warnings go to the error stream
func TestLoggerStreams(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewLoggerFactory(&out, &errOut)("store")
	l.SetLevel(logger.INFO)

	l.Debugf("hidden %d", 1)
	l.Infof("visible %d", 2)
	l.Warningf("careful")
	l.Errorf("broken")

	if strings.Contains(out.String(), "hidden") {
		t.Errorf("Debug message written at info level: %q", out.String())
	}
	if !strings.Contains(out.String(), "INFO  | store           | visible 2") {
		t.Errorf("Unexpected info output: %q", out.String())
	}
	if strings.Contains(out.String(), "careful") || strings.Contains(out.String(), "broken") {
		t.Errorf("Warnings or errors written to the output stream: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "WARN") || !strings.Contains(errOut.String(), "ERROR | store           | broken") {
		t.Errorf("Unexpected error output: %q", errOut.String())
	}
}

// TestServerConfigValidate checks the validation rules
func TestServerConfigValidate(t *testing.T) {
	valid := ServerConfig{
		ShardCount: 3,
		Transport:  ServerTransportConfig{Endpoint: "127.0.0.1:6379"},
		LogLevel:   "info",
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Valid config rejected: %v", err)
	}

	tests := map[string]func(c *ServerConfig){
		"zero shards":      func(c *ServerConfig) { c.ShardCount = 0 },
		"empty endpoint":   func(c *ServerConfig) { c.Transport.Endpoint = "" },
		"negative timeout": func(c *ServerConfig) { c.TimeoutSecond = -1 },
		"bad log level":    func(c *ServerConfig) { c.LogLevel = "loud" },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := valid
			mutate(&c)
			if err := c.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

// TestConfigString checks that the rendered configuration contains the key settings
func TestConfigString(t *testing.T) {
	s := (&ServerConfig{
		ShardCount: 8,
		Transport:  ServerTransportConfig{Endpoint: "0.0.0.0:7000"},
		LogLevel:   "debug",
	}).String()
	for _, want := range []string{"0.0.0.0:7000", "Shards", "8", "debug", "disabled"} {
		if !strings.Contains(s, want) {
			t.Errorf("Server config string misses %q:\n%s", want, s)
		}
	}

	c := (&ClientConfig{QueueSize: 32, Transport: ClientTransportConfig{Endpoint: "localhost:6379"}}).String()
	if !strings.Contains(c, "localhost:6379") || !strings.Contains(c, "32") {
		t.Errorf("Client config string misses settings:\n%s", c)
	}
}
