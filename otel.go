package logcore

import (
	"context"
	"fmt"
	"regexp"
	"strconv"

	"go.opentelemetry.io/otel/baggage"
	"go.opentelemetry.io/otel/trace"
)

// OpenTelemetry enrichment, grounded in the teacher's own addCtx/context.go:
// baggage members attached to a context are folded into the attribute pack
// just like scoped frames, and the active span's trace/span IDs are added
// when present. A BaggageFilter lets callers restrict which baggage keys
// leak into logs, since baggage propagates across service boundaries and may
// carry more than should be logged.

// BaggageFilter selects which OpenTelemetry baggage keys are folded into the
// attribute pack by [Logger.Log] and friends. A nil filter means "no
// baggage member is ever emitted" (the safe default — baggage is for
// propagation, not logging, unless a logger opts in).
type BaggageFilter func(key string) bool

// needEscape matches a string that needs to be escaped either into an ASCII
// or a percent-encoded representation, per the W3C Baggage spec.
var needEscape = regexp.MustCompile(`%(?:$|([0-9a-fA-F]?[^0-9a-fA-F]))|[^\x21\x23-\x2B\x2D-\x3A\x3C-\x5B\x5D-\x7E]`)

var pctEncode = regexp.MustCompile(`%(?:$|([0-9a-fA-F][^0-9a-fA-F])|[^0-9a-fA-F])| |"|,|;|\\`)

func escapeBaggageValue(v string) string {
	v = pctEncode.ReplaceAllStringFunc(v, func(m string) (r string) {
		for _, c := range m {
			switch c {
			case '%':
				r += "%25"
			case ' ':
				r += "%20"
			case '"':
				r += "%22"
			case ',':
				r += "%2C"
			case ';':
				r += "%3B"
			case '\\':
				r += "%5C"
			default:
				r += string(c)
			}
		}
		if len(m) == len(r) {
			panic(fmt.Sprintf("logcore: programmer error: pulled odd string %q", m))
		}
		return r
	})
	v = strconv.QuoteToASCII(v)
	return v[1 : len(v)-1]
}

// ContextWithBaggage is a convenience helper over go.opentelemetry.io/otel's
// baggage API. It takes key/value pairs and adds them to ctx's baggage,
// percent-encoding values that need it. Any trailing unpaired key is
// silently dropped.
func ContextWithBaggage(ctx context.Context, pairs ...string) context.Context {
	b := baggage.FromContext(ctx)
	pairs = pairs[:len(pairs)-len(pairs)%2]
	for i := 0; i < len(pairs); i += 2 {
		k, v := pairs[i], pairs[i+1]
		if needEscape.MatchString(v) {
			v = escapeBaggageValue(v)
		}
		m, err := baggage.NewMember(k, v)
		if err != nil {
			continue
		}
		n, err := b.SetMember(m)
		if err != nil {
			continue
		}
		b = n
	}
	return baggage.ContextWithBaggage(ctx, b)
}

// collectBaggage appends a List of the baggage members of ctx selected by
// filter to *pack. A nil filter adds nothing.
func collectBaggage(ctx context.Context, filter BaggageFilter, pack *Pack) {
	if filter == nil {
		return
	}
	b := baggage.FromContext(ctx)
	members := b.Members()
	if len(members) == 0 {
		return
	}
	var list List
	for _, m := range members {
		if !filter(m.Key()) {
			continue
		}
		list = append(list, String(m.Key(), m.Value()))
	}
	if len(list) > 0 {
		*pack = append(*pack, list)
	}
}

// collectTrace appends the active span's trace and span IDs to *pack, if ctx
// carries a valid span context.
func collectTrace(ctx context.Context, pack *Pack) {
	sc := trace.SpanContextFromContext(ctx)
	if !sc.IsValid() {
		return
	}
	*pack = append(*pack, List{
		String("trace_id", sc.TraceID().String()),
		String("span_id", sc.SpanID().String()),
	})
}
