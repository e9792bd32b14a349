package network

import "time"

// Config holds HTTP control surface configuration
type Config struct {
	// Address to bind; empty disables the listener
	Address string

	// Timing
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns loopback-only defaults
func DefaultConfig() *Config {
	return &Config{
		Address:         "127.0.0.1:7777",
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		ShutdownTimeout: 5 * time.Second,
	}
}
