package querycache

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"
)

// Config exposes cache configuration options.
type Config struct {
	// DefaultStaleAfter is the staleness window applied to descriptors that
	// do not carry an explicit one. Must be non-negative. The zero default
	// means any aged entry refetches on the next FetchOrRefresh, which is the
	// conservative choice for data freshness.
	DefaultStaleAfter time.Duration

	// Clock supplies the current time. Defaults to time.Now when nil.
	Clock func() time.Time

	// Logger receives debug-level cache events (populate, refresh,
	// invalidate). The zero value discards everything.
	Logger zerolog.Logger
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return Config{
		DefaultStaleAfter: 0,
		Clock:             time.Now,
		Logger:            zerolog.Nop(),
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.DefaultStaleAfter, validation.Min(time.Duration(0))),
	)
}
