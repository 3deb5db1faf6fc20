package sink

import (
	"github.com/rs/zerolog"

	"github.com/quay/logcore"
)

// Zerolog adapts the core's (record, formatted payload) contract onto an
// *rs/zerolog.Logger, so an application that already standardized on
// zerolog for some of its output (say, a shared request-logging middleware)
// can still receive events from this core's handlers. This mirrors the
// teacher package's own zerolog-backed facade, just inverted: here zerolog
// is a sink, not the thing the core wraps wholesale.
type Zerolog struct {
	Logger *zerolog.Logger
}

// NewZerolog constructs a Zerolog sink writing through l.
func NewZerolog(l *zerolog.Logger) *Zerolog {
	return &Zerolog{Logger: l}
}

// Emit implements [logcore.Sink]. The record's own formatted message and
// attributes are re-emitted as zerolog fields rather than re-parsing the
// already-formatted payload, since zerolog wants structured fields, not
// text.
func (s *Zerolog) Emit(r logcore.Record, _ []byte) error {
	ev := s.Logger.WithLevel(severityToZerolog(r.Severity()))
	ev = ev.Int("pid", r.PID()).Int64("tid", r.TID())
	r.Attrs().All(func(a logcore.Attr) bool {
		switch a.Value.Kind() {
		case logcore.KindInt64:
			ev = ev.Int64(a.Key, a.Value.Int64())
		case logcore.KindFloat64:
			ev = ev.Float64(a.Key, a.Value.Float64())
		default:
			ev = ev.Str(a.Key, valueString(a.Value))
		}
		return true
	})
	ev.Msg(r.Formatted())
	return nil
}

func valueString(v logcore.Value) string {
	if v.Kind() == logcore.KindFunc {
		v = v.Resolve()
	}
	if v.Kind() == logcore.KindString {
		return v.String()
	}
	return ""
}

// severityToZerolog maps the core's syslog-flavored [logcore.Severity] scale
// onto zerolog's levels, clamping to the nearest defined level.
func severityToZerolog(s logcore.Severity) zerolog.Level {
	switch {
	case s >= logcore.SeverityEmergency:
		return zerolog.PanicLevel
	case s >= logcore.SeverityCritical:
		return zerolog.FatalLevel
	case s >= logcore.SeverityError:
		return zerolog.ErrorLevel
	case s >= logcore.SeverityWarning:
		return zerolog.WarnLevel
	case s >= logcore.SeverityInfo:
		return zerolog.InfoLevel
	case s >= logcore.SeverityDebug:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}
