package logcore

import (
	"os"
	"time"
)

// Record is the immutable representation of a single log event.
//
// A Record is either inactive (Formatted equals Message, Timestamp is the
// zero [time.Time]) or active (after [Record.Activate]). Handlers only ever
// observe active records. Every string and attribute reference inside a
// Record must outlive the Record; to retain one across a log call, convert
// it to an [OwnedRecord] first.
type Record struct {
	severity  Severity
	message   string
	formatted string
	timestamp time.Time
	pid       int
	tid       int64
	attrs     Pack
}

// NewRecord constructs an inactive Record. It captures the process id and a
// best-effort thread id synchronously, on the calling goroutine, so that an
// async sink's worker goroutine cannot misattribute origin identity.
func NewRecord(severity Severity, pattern string, attrs Pack) Record {
	return Record{
		severity:  severity,
		message:   pattern,
		formatted: pattern,
		pid:       os.Getpid(),
		tid:       tid(),
		attrs:     attrs,
	}
}

// Activate freezes r: it sets Formatted (leaving it equal to Message when
// formatted is empty) and stamps Timestamp with [Clock]. It is semantically
// idempotent — last write wins — but is called exactly once per record in
// practice, deferred until after filtering so a denied record never pays for
// a clock read.
func (r Record) Activate(formatted string) Record {
	if formatted != "" {
		r.formatted = formatted
	}
	r.timestamp = Clock()
	return r
}

// Active reports whether r has been through [Record.Activate].
func (r Record) Active() bool { return !r.timestamp.IsZero() }

// Severity returns the record's severity.
func (r Record) Severity() Severity { return r.severity }

// Message returns the original, pre-formatting pattern string.
func (r Record) Message() string { return r.message }

// Formatted returns the rendered message. Before activation this equals
// Message.
func (r Record) Formatted() string { return r.formatted }

// Timestamp returns the instant the record was activated. It is the zero
// value for an inactive record.
func (r Record) Timestamp() time.Time { return r.timestamp }

// PID returns the OS process id captured at construction.
func (r Record) PID() int { return r.pid }

// TID returns the best-effort OS thread id captured at construction.
func (r Record) TID() int64 { return r.tid }

// Attrs returns the attribute pack referenced by the record.
func (r Record) Attrs() Pack { return r.attrs }

// WithAttrs returns a copy of r referencing a different attribute pack.
func (r Record) WithAttrs(p Pack) Record {
	r.attrs = p
	return r
}
