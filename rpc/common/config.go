package common

import (
	"fmt"
	"strconv"
	"strings"
)

// --------------------------------------------------------------------------
// Transport configuration structs
// --------------------------------------------------------------------------

// SocketConf holds socket buffer settings (0 keeps the OS default)
type SocketConf struct {
	WriteBufferSize int
	ReadBufferSize  int
}

// TCPConf holds TCP specific settings, ignored by the unix transport
type TCPConf struct {
	TCPNoDelay      bool
	TCPKeepAliveSec int
	TCPLingerSec    int // 0 keeps the OS default
}

// ServerTransportConfig holds the listener settings of the server
type ServerTransportConfig struct {
	Endpoint string
	SocketConf
	TCPConf
}

// ClientTransportConfig holds the connection settings of the client
type ClientTransportConfig struct {
	Endpoint string
	SocketConf
	TCPConf
}

// --------------------------------------------------------------------------
// RPC server configuration struct
// --------------------------------------------------------------------------

// ServerConfig holds all configuration parameters of a sKV server.
type ServerConfig struct {
	// Number of shards of the store
	ShardCount int

	// Listener settings
	Transport ServerTransportConfig

	// Per-read/write deadline in seconds, 0 disables deadlines
	TimeoutSecond int64

	// Address of the metrics HTTP endpoint, empty disables it
	MetricsEndpoint string

	// Logging configuration
	LogLevel string
}

// Validate checks the configuration for values the server cannot work with
func (c *ServerConfig) Validate() error {
	if c.ShardCount < 1 {
		return fmt.Errorf("shard count must be at least 1, got %d", c.ShardCount)
	}
	if c.Transport.Endpoint == "" {
		return fmt.Errorf("endpoint must not be empty")
	}
	if c.TimeoutSecond < 0 {
		return fmt.Errorf("timeout must not be negative, got %d", c.TimeoutSecond)
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// String returns a formatted string representation of the configuration
func (c *ServerConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// RPC settings
	addSection("RPC Server")
	addField("Endpoint", c.Transport.Endpoint)
	addField("Timeout", formatTimeout(c.TimeoutSecond))
	addField("TCP No Delay", strconv.FormatBool(c.Transport.TCPNoDelay))
	addField("TCP Keep Alive", fmt.Sprintf("%d sec", c.Transport.TCPKeepAliveSec))

	// Store
	addSection("Store")
	addField("Shards", strconv.Itoa(c.ShardCount))

	// Observability
	addSection("Logging")
	addField("Log Level", c.LogLevel)
	if c.MetricsEndpoint != "" {
		addField("Metrics Endpoint", c.MetricsEndpoint)
	} else {
		addField("Metrics Endpoint", "disabled")
	}

	return sb.String()
}

// --------------------------------------------------------------------------
// RPC client configuration struct
// --------------------------------------------------------------------------

// ClientConfig holds all configuration parameters of the forwarding client
type ClientConfig struct {
	// Per-request timeout in seconds, 0 disables it
	TimeoutSecond int

	// Number of requests that may wait for the connection
	QueueSize int

	// Connection settings
	Transport ClientTransportConfig
}

// String returns a formatted string representation of the client configuration
func (c *ClientConfig) String() string {
	var sb strings.Builder

	// Create helper functions for consistent formatting
	addSection := func(title string) {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("%s\n", strings.ToUpper(title)))
	}

	addField := func(name, value string) {
		sb.WriteString(fmt.Sprintf("  %-22s: %s\n", name, value))
	}

	// General Client Settings
	addSection("Client Configuration")
	addField("Endpoint", c.Transport.Endpoint)
	addField("Timeout", formatTimeout(int64(c.TimeoutSecond)))
	addField("Queue Size", strconv.Itoa(c.QueueSize))
	addField("TCP No Delay", strconv.FormatBool(c.Transport.TCPNoDelay))

	return sb.String()
}

func formatTimeout(sec int64) string {
	if sec <= 0 {
		return "none"
	}
	return fmt.Sprintf("%d sec", sec)
}
