package server

import (
	"net"
	"time"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Host is the interface to bind; empty binds all interfaces.
	Host string `mapstructure:"host" default:""`
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"3000"`
	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" default:"10"`
}

// ListenAddr returns the address passed to the listener.
func (c Config) ListenAddr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// ShutdownTimeout returns the graceful shutdown budget, defaulting to 10s.
func (c Config) ShutdownTimeout() time.Duration {
	if c.ShutdownTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}
