package formatter

import (
	"fmt"
	"strings"
	"time"
)

// renderTimestamp renders t according to a strftime-style spec with a
// local:/utc: prefix toggle (default UTC), plus a %f extension for
// microsecond precision not present in classic strftime.
func renderTimestamp(spec string, t time.Time) string {
	local := false
	switch {
	case strings.HasPrefix(spec, "local:"):
		local = true
		spec = spec[len("local:"):]
	case strings.HasPrefix(spec, "utc:"):
		spec = spec[len("utc:"):]
	}
	if spec == "" {
		spec = "%Y-%m-%dT%H:%M:%S%z"
	}
	if local {
		t = t.Local()
	} else {
		t = t.UTC()
	}
	return strftime(spec, t)
}

// strftime implements the subset of strftime(3) directives the core needs,
// translating each onto the standard library's reference-time formatting.
func strftime(spec string, t time.Time) string {
	var b strings.Builder
	for i := 0; i < len(spec); i++ {
		c := spec[i]
		if c != '%' || i+1 == len(spec) {
			b.WriteByte(c)
			continue
		}
		i++
		switch spec[i] {
		case 'Y':
			b.WriteString(t.Format("2006"))
		case 'm':
			b.WriteString(t.Format("01"))
		case 'd':
			b.WriteString(t.Format("02"))
		case 'H':
			b.WriteString(t.Format("15"))
		case 'M':
			b.WriteString(t.Format("04"))
		case 'S':
			b.WriteString(t.Format("05"))
		case 'f':
			fmt.Fprintf(&b, "%06d", t.Nanosecond()/1000)
		case 'z':
			b.WriteString(t.Format("-0700"))
		case 'Z':
			b.WriteString(t.Format("MST"))
		case '%':
			b.WriteByte('%')
		default:
			b.WriteByte('%')
			b.WriteByte(spec[i])
		}
	}
	return b.String()
}
