package logcore

import (
	"context"
	"sync/atomic"
)

// inner is the atomically-swapped state of a [Logger]: a filter and the
// handler set it feeds. Readers always observe one consistent (filter,
// handlers) pair, never a torn update, because the whole struct is replaced
// by pointer via atomic.Pointer.
type inner struct {
	filter   Filter
	handlers []*Handler
}

// Logger is the public entry point of the logging core. Its zero value is
// not usable; construct one with [NewLogger].
type Logger struct {
	_ noCopy

	state atomic.Pointer[inner]

	// Baggage selects which OpenTelemetry baggage keys are folded into the
	// attribute pack for every log call. Nil (the default) emits none.
	Baggage BaggageFilter
	// Trace, if true, adds the active span's trace_id/span_id attributes
	// from the call's context.
	Trace bool
}

// NewLogger constructs a Logger with the given filter (nil means "always
// accept") and handler set.
func NewLogger(filter Filter, handlers ...*Handler) *Logger {
	l := &Logger{}
	l.state.Store(&inner{filter: filter, handlers: handlers})
	return l
}

// SetFilter atomically replaces the logger's filter without touching its
// handler set.
func (l *Logger) SetFilter(f Filter) {
	for {
		old := l.state.Load()
		next := &inner{filter: f, handlers: old.handlers}
		if l.state.CompareAndSwap(old, next) {
			return
		}
	}
}

// SetHandlers atomically replaces the logger's handler set without touching
// its filter.
func (l *Logger) SetHandlers(handlers ...*Handler) {
	for {
		old := l.state.Load()
		next := &inner{filter: old.filter, handlers: handlers}
		if l.state.CompareAndSwap(old, next) {
			return
		}
	}
}

// Log is the shortest logging path: no attributes, no deferred formatting.
func (l *Logger) Log(ctx context.Context, severity Severity, pattern string) {
	l.log(ctx, severity, pattern, nil, nil)
}

// LogAttrs logs with attributes attached to the call but no deferred
// formatting; pattern is used verbatim as the formatted message.
func (l *Logger) LogAttrs(ctx context.Context, severity Severity, pattern string, attrs ...Attr) {
	var pack Pack
	if len(attrs) > 0 {
		pack = Pack{List(attrs)}
	}
	l.log(ctx, severity, pattern, pack, nil)
}

// LogFunc logs with attributes and a supplier invoked to produce the
// formatted message, but only if the logger's filter accepts the record —
// callers with an expensive rendering should prefer this over pre-formatting
// pattern themselves.
func (l *Logger) LogFunc(ctx context.Context, severity Severity, pattern string, supplier func() string, attrs ...Attr) {
	var pack Pack
	if len(attrs) > 0 {
		pack = Pack{List(attrs)}
	}
	l.log(ctx, severity, pattern, pack, supplier)
}

func (l *Logger) log(ctx context.Context, severity Severity, pattern string, callAttrs Pack, supplier func() string) {
	st := l.state.Load()

	// Assemble the pack on the stack: call attributes first, then scoped
	// frames (innermost wins), then OTel enrichment.
	pack := make(Pack, 0, len(callAttrs)+2)
	pack = append(pack, callAttrs...)
	if ctx != nil {
		collectScope(ctx, &pack)
		collectBaggage(ctx, l.Baggage, &pack)
		if l.Trace {
			collectTrace(ctx, &pack)
		}
	}

	r := NewRecord(severity, pattern, pack)
	if st.filter.apply(r) == Deny {
		return
	}
	formatted := ""
	if supplier != nil {
		formatted = supplier()
	}
	r = r.Activate(formatted)

	for _, h := range st.handlers {
		h.Handle(r)
	}
}
