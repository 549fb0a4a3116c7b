package logging

import (
	"context"

	"github.com/rs/zerolog"
)

// maxLoggedURLLength caps URLs in log fields; search URLs carry long
// tracking suffixes.
const maxLoggedURLLength = 120

// FromContext extracts the logger from context
// If no logger is found, returns a disabled logger (no-op)
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext returns a new context with the logger attached
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}

// WithComponent creates a child logger with a component field
func WithComponent(ctx context.Context, component string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("component", component).Logger()
	return WithContext(ctx, childLogger)
}

// WithURL creates a child logger with a truncated url field
func WithURL(ctx context.Context, url string) context.Context {
	logger := FromContext(ctx)
	childLogger := logger.With().Str("url", TruncateURL(url)).Logger()
	return WithContext(ctx, childLogger)
}

// TruncateURL shortens u for log output, keeping the prefix.
func TruncateURL(u string) string {
	runes := []rune(u)
	if len(runes) <= maxLoggedURLLength {
		return u
	}
	return string(runes[:maxLoggedURLLength-3]) + "..."
}
