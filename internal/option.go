package internal

import "time"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config  *Config
	now     func() time.Time
	mcpMode bool
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithClock overrides the application clock. Used in tests to pin "today".
func WithClock(now func() time.Time) Option {
	return func(a *application) {
		a.now = now
	}
}

// WithMCPMode runs the application as an MCP stdio server instead of an
// HTTP server.
func WithMCPMode(enabled bool) Option {
	return func(a *application) {
		a.mcpMode = enabled
	}
}
