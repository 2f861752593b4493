package server

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultHost         = "localhost"
	DefaultPort         = 8086
	DefaultTimeout      = 10000 * time.Millisecond
	DefaultSchemaWindow = 720 * time.Hour // 30 days

	DefaultListenPort = 8080
)

// InfluxConfig holds the resolved InfluxDB connection configuration.
// It is constructed once at process start and never mutated afterwards.
type InfluxConfig struct {
	Host         string
	Port         int
	Token        string
	Org          string
	UseSSL       bool
	VerifySSL    bool
	Timeout      time.Duration
	SchemaWindow time.Duration
}

// URL returns the base URL of the InfluxDB server.
func (c InfluxConfig) URL() string {
	scheme := "http"
	if c.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s:%d", scheme, c.Host, c.Port)
}

// ConfigError reports an invalid or incomplete connection configuration.
// It is fatal at startup: the process must refuse to serve.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}

// ResolveInfluxConfig reads the InfluxDB connection configuration from the
// environment, applying documented defaults. It only inspects the environment
// and never contacts the network.
//
// INFLUXDB_TOKEN and INFLUXDB_ORG are required; all other variables fall back
// to defaults when unset.
func ResolveInfluxConfig() (InfluxConfig, error) {
	cfg := InfluxConfig{
		Host:         DefaultHost,
		Port:         DefaultPort,
		Token:        os.Getenv("INFLUXDB_TOKEN"),
		Org:          os.Getenv("INFLUXDB_ORG"),
		UseSSL:       false,
		VerifySSL:    true,
		Timeout:      DefaultTimeout,
		SchemaWindow: DefaultSchemaWindow,
	}

	if host := os.Getenv("INFLUXDB_HOST"); host != "" {
		cfg.Host = host
	}

	if port := os.Getenv("INFLUXDB_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil || p <= 0 {
			return InfluxConfig{}, &ConfigError{Reason: fmt.Sprintf("INFLUXDB_PORT must be a positive integer, got %q", port)}
		}
		cfg.Port = p
	}

	if useSSL := os.Getenv("INFLUXDB_USE_SSL"); useSSL != "" {
		v, err := strconv.ParseBool(useSSL)
		if err != nil {
			return InfluxConfig{}, &ConfigError{Reason: fmt.Sprintf("INFLUXDB_USE_SSL must be a boolean, got %q", useSSL)}
		}
		cfg.UseSSL = v
	}

	if verifySSL := os.Getenv("INFLUXDB_VERIFY_SSL"); verifySSL != "" {
		v, err := strconv.ParseBool(verifySSL)
		if err != nil {
			return InfluxConfig{}, &ConfigError{Reason: fmt.Sprintf("INFLUXDB_VERIFY_SSL must be a boolean, got %q", verifySSL)}
		}
		cfg.VerifySSL = v
	}

	if timeout := os.Getenv("INFLUXDB_TIMEOUT"); timeout != "" {
		ms, err := strconv.Atoi(timeout)
		if err != nil || ms <= 0 {
			return InfluxConfig{}, &ConfigError{Reason: fmt.Sprintf("INFLUXDB_TIMEOUT must be a positive integer (milliseconds), got %q", timeout)}
		}
		cfg.Timeout = time.Duration(ms) * time.Millisecond
	}

	if window := os.Getenv("INFLUXDB_SCHEMA_WINDOW"); window != "" {
		d, err := time.ParseDuration(window)
		if err != nil || d <= 0 {
			return InfluxConfig{}, &ConfigError{Reason: fmt.Sprintf("INFLUXDB_SCHEMA_WINDOW must be a positive duration, got %q", window)}
		}
		cfg.SchemaWindow = d
	}

	if cfg.Token == "" {
		return InfluxConfig{}, &ConfigError{Reason: "missing token (set INFLUXDB_TOKEN)"}
	}
	if cfg.Org == "" {
		return InfluxConfig{}, &ConfigError{Reason: "missing organization (set INFLUXDB_ORG)"}
	}

	return cfg, nil
}

// ListenConfig holds the transport listen settings for the MCP server and
// the health endpoint.
type ListenConfig struct {
	Transport string
	Host      string
	Port      int
}

// Addr returns the host:port listen address.
func (c ListenConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ResolveListenConfig reads the transport listen settings from the
// environment. All settings have defaults; an unparsable port is a
// configuration error.
func ResolveListenConfig() (ListenConfig, error) {
	cfg := ListenConfig{
		Transport: "streamable-http",
		Host:      "",
		Port:      DefaultListenPort,
	}

	if transport := os.Getenv("MCP_TRANSPORT"); transport != "" {
		switch transport {
		case "stdio", "sse", "streamable-http":
			cfg.Transport = transport
		default:
			return ListenConfig{}, &ConfigError{Reason: fmt.Sprintf("MCP_TRANSPORT must be stdio, sse, or streamable-http, got %q", transport)}
		}
	}

	if host := os.Getenv("MCP_LISTEN_HOST"); host != "" {
		cfg.Host = host
	}

	if port := os.Getenv("MCP_LISTEN_PORT"); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil || p <= 0 {
			return ListenConfig{}, &ConfigError{Reason: fmt.Sprintf("MCP_LISTEN_PORT must be a positive integer, got %q", port)}
		}
		cfg.Port = p
	}

	return cfg, nil
}
