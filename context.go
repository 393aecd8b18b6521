package pathname

import (
	"context"
	"log/slog"
)

type contextKey int

const (
	dirModeKey contextKey = iota
	fileModeKey
	loggerKey
)

// WithDirMode returns a context that carries the mode used for directories
// created by Mkdir and MkdirAll.
//
// If no directory mode is set in the context, the default mode 0755 is
// used.
func WithDirMode(ctx context.Context, mode Mode) context.Context {
	return context.WithValue(ctx, dirModeKey, mode)
}

// WithFileMode returns a context that carries the mode used for files
// created by CreateTemp.
//
// If no file mode is set in the context, the default mode 0600 is used.
func WithFileMode(ctx context.Context, mode Mode) context.Context {
	return context.WithValue(ctx, fileModeKey, mode)
}

// DirMode retrieves the directory mode from context.
// Returns 0755 if no mode is set.
func DirMode(ctx context.Context) Mode {
	if mode, ok := ctx.Value(dirModeKey).(Mode); ok {
		return mode
	}
	return 0755
}

// FileMode retrieves the file mode from context.
// Returns 0600 if no mode is set.
func FileMode(ctx context.Context) Mode {
	if mode, ok := ctx.Value(fileModeKey).(Mode); ok {
		return mode
	}
	return 0600
}

// WithLogger returns a context that carries a logger for the filesystem
// operations. They log at debug level only.
func WithLogger(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// Logger retrieves the logger from context.
// Returns a logger that discards everything if none is set.
func Logger(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok && l != nil {
		return l
	}
	return discard
}

var discard = slog.New(slog.DiscardHandler)
