package automaton

import "log/slog"

// DefaultMaxPatternLength bounds pattern size unless Options override it.
const DefaultMaxPatternLength = 256

// Options configures pattern compilation.
type Options struct {
	// MaxPatternLength is the longest pattern accepted, in bytes.
	// Zero disables the limit.
	MaxPatternLength int

	// Logger for compilation events. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		MaxPatternLength: DefaultMaxPatternLength,
	}
}
