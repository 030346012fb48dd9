package app

import (
	"github.com/rs/zerolog"
)

// Context carries the configuration and logger handle every pipeline call
// receives explicitly. It is constructed once in main; the pipeline never
// reaches for process-wide state.
type Context struct {
	Config *Config
	Logger zerolog.Logger
}

// NewContext creates the application context
func NewContext(config *Config, logger zerolog.Logger) *Context {
	return &Context{
		Config: config,
		Logger: logger,
	}
}

// Named returns a child logger tagged with the component name
func (c *Context) Named(component string) zerolog.Logger {
	return c.Logger.With().Str("component", component).Logger()
}
