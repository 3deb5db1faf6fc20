package config

import (
	"fmt"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/quay/logcore"
	"github.com/quay/logcore/formatter"
	"github.com/quay/logcore/sink"
)

// registerBuiltins installs the formatter, sink and filter kinds this
// module ships into r.
func registerBuiltins(r *Registry) {
	r.RegisterFormatter("string", buildStringFormatter)

	r.RegisterSink("null", buildNullSink)
	r.RegisterSink("console", buildConsoleSink)
	r.RegisterSink("file", buildFileSink)
	r.RegisterSink("zerolog", buildZerologSink)

	r.RegisterHandler("blocking", buildBlockingHandler)

	r.RegisterFilter("severity", buildSeverityFilter)
}

func buildStringFormatter(n Node) (logcore.Formatter, error) {
	pat, ok := n.Field("pattern")
	if !ok {
		return nil, &NodeError{Path: n.Path(), Err: fmt.Errorf("config: string formatter requires a \"pattern\" field")}
	}
	s, err := pat.String()
	if err != nil {
		return nil, err
	}
	f, err := formatter.Parse(s)
	if err != nil {
		return nil, &NodeError{Path: pat.Path(), Err: err}
	}
	return f, nil
}

func buildNullSink(Node) (logcore.Sink, error) {
	return sink.Null{}, nil
}

func buildConsoleSink(n Node) (logcore.Sink, error) {
	target := sink.Stdout
	if t, ok := n.Field("target"); ok {
		s, err := t.String()
		if err != nil {
			return nil, err
		}
		if s == "stderr" {
			target = sink.Stderr
		}
	}
	var colors sink.Colors
	if c, ok := n.Field("colors"); ok && !c.IsZero() {
		colors = make(sink.Colors)
		if c.raw != nil {
			for i := 0; i+1 < len(c.raw.Content); i += 2 {
				name := c.raw.Content[i].Value
				var code string
				if err := c.raw.Content[i+1].Decode(&code); err != nil {
					return nil, &NodeError{Path: c.Path(), Err: err}
				}
				sev, err := parseSeverity(name)
				if err != nil {
					return nil, &NodeError{Path: c.Path(), Err: err}
				}
				colors[sev] = code
			}
		}
	}
	return sink.NewConsole(target, colors), nil
}

func buildFileSink(n Node) (logcore.Sink, error) {
	namePattern, ok := n.Field("path")
	if !ok {
		return nil, &NodeError{Path: n.Path(), Err: fmt.Errorf("config: file sink requires a \"path\" field")}
	}
	path, err := namePattern.String()
	if err != nil {
		return nil, err
	}

	var newFlusher func() sink.Flusher
	if fl, ok := n.Field("flush"); ok {
		if events, ok := fl.Field("every_events"); ok {
			n, err := events.Int()
			if err != nil {
				return nil, err
			}
			newFlusher = sink.FlushEveryEvents(n)
		} else if bytesField, ok := fl.Field("every_bytes"); ok {
			s, err := bytesField.String()
			if err != nil {
				return nil, err
			}
			n, err := ParseSize(s)
			if err != nil {
				return nil, &NodeError{Path: bytesField.Path(), Err: err}
			}
			newFlusher = sink.FlushEveryBytes(int(n))
		}
	}

	f, err := sink.NewFile(path, newFlusher)
	if err != nil {
		return nil, &NodeError{Path: n.Path(), Err: err}
	}
	return f, nil
}

func buildZerologSink(n Node) (logcore.Sink, error) {
	l := zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()
	return sink.NewZerolog(&l), nil
}

// buildBlockingHandler builds the standard synchronous [logcore.Handler]:
// Handle runs the formatter and every sink's Emit in the calling goroutine,
// in order, before returning. Sinks wrapped in [sink.Async] by the builder
// still queue asynchronously underneath; "blocking" describes this
// handler's own dispatch, not what its sinks do with a record afterward.
func buildBlockingHandler(n Node, f logcore.Formatter, filter logcore.Filter, sinks []logcore.Sink) (*logcore.Handler, error) {
	return logcore.NewHandler(f, filter, sinks...), nil
}

func buildSeverityFilter(n Node) (logcore.Filter, error) {
	th, ok := n.Field("threshold")
	if !ok {
		return nil, &NodeError{Path: n.Path(), Err: fmt.Errorf("config: severity filter requires a \"threshold\" field")}
	}
	s, err := th.String()
	if err != nil {
		return nil, err
	}
	sev, err := parseSeverity(s)
	if err != nil {
		return nil, &NodeError{Path: th.Path(), Err: err}
	}
	return logcore.SeverityFilter(sev), nil
}

// reverseDefaultNames maps the conventional severity names back onto their
// numeric values, the inverse of [logcore.DefaultSeverityNames].
var reverseDefaultNames = func() map[string]logcore.Severity {
	m := make(map[string]logcore.Severity, len(logcore.DefaultSeverityNames))
	for sev, name := range logcore.DefaultSeverityNames {
		m[name] = sev
	}
	return m
}()

// parseSeverity accepts either a conventional severity name ("WARNING") or
// a bare decimal integer.
func parseSeverity(s string) (logcore.Severity, error) {
	if sev, ok := reverseDefaultNames[s]; ok {
		return sev, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("config: %q is not a known severity name or integer", s)
	}
	return logcore.Severity(n), nil
}
