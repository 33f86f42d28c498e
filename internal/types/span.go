// Package types provides small value types shared across the lexer, parser,
// and builder: source spans, diagnostics, and the logging façade.
package types

import (
	"context"
	"log/slog"
)

// ByteOffset is a byte position in source text.
type ByteOffset uint32

// Span is a half-open byte range in source text: [Start, End).
type Span struct {
	Start ByteOffset
	End   ByteOffset
}

// Synthetic is the span used for compiler-generated constructs (pre-seeded
// well-known roots, implied attributes) that have no source location.
var Synthetic = Span{}

// NewSpan creates a Span from start and end byte offsets.
func NewSpan(start, end ByteOffset) Span {
	return Span{Start: start, End: end}
}

// LevelTrace is a custom log level, more verbose than slog.LevelDebug.
// Use for per-token, per-node, or per-import iteration logging.
const LevelTrace = slog.Level(-8)

var noCtx = context.Background() //nolint:gochecknoglobals

// Logger wraps *slog.Logger with nil-safe convenience methods so every
// phase (lexer, parser, builder) can accept an optional logger and pay
// zero overhead when none is configured.
type Logger struct {
	L *slog.Logger
}

// Enabled reports whether logging is active at the given level.
func (lg *Logger) Enabled(level slog.Level) bool {
	return lg.L != nil && lg.L.Enabled(noCtx, level)
}

// Log emits a structured message at the given level. No-op if nil or disabled.
func (lg *Logger) Log(level slog.Level, msg string, attrs ...slog.Attr) {
	if lg.L != nil && lg.L.Enabled(noCtx, level) {
		lg.L.LogAttrs(noCtx, level, msg, attrs...)
	}
}

// TraceEnabled reports whether trace-level logging is active.
func (lg *Logger) TraceEnabled() bool {
	return lg.Enabled(LevelTrace)
}

// Trace emits a message at the custom trace level.
func (lg *Logger) Trace(msg string, attrs ...slog.Attr) {
	lg.Log(LevelTrace, msg, attrs...)
}
