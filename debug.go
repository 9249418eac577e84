package orrery

import (
	"fmt"
	"log/slog"
	"os"
)

// logLevel controls the default logger. SetDebugMode lowers it to Debug.
var logLevel = new(slog.LevelVar)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})).
	With("lib", "orrery")

// globalDebug mirrors the most recently set World debug flag so that object
// operations (which lack a World pointer) can check it cheaply. Only valid
// with a single World.
var globalDebug bool

// SetLogger replaces the package logger. Passing nil restores the default
// stderr text logger.
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})).
			With("lib", "orrery")
	}
	logger = l
}

// Logger returns the package logger.
func Logger() *slog.Logger {
	return logger
}

func logFor(component string) *slog.Logger {
	return logger.With("component", component)
}

func setDebug(enabled bool) {
	globalDebug = enabled
	if enabled {
		logLevel.Set(slog.LevelDebug)
	} else {
		logLevel.Set(slog.LevelInfo)
	}
}

// debugCheckDisposed panics with a descriptive message when a disposed object
// is used in a world operation. Only called in debug mode.
func debugCheckDisposed(o *Object, op string) {
	if o.disposed {
		panic(fmt.Sprintf("orrery debug: %s on disposed object %q", op, o.Name))
	}
}

// debugMaxObjects is the world size above which debug mode warns, since every
// probe walks the full object list.
const debugMaxObjects = 2000

func debugCheckObjectCount(w *World) {
	if len(w.objects) > debugMaxObjects {
		logFor("world").Warn("object count exceeds probe threshold",
			"count", len(w.objects), "threshold", debugMaxObjects)
	}
}
