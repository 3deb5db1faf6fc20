package formatter

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/quay/logcore"
)

func (f *StringFormatter) renderToken(w io.Writer, t token, r logcore.Record) error {
	switch t.kind {
	case tokLiteral:
		_, err := w.Write(t.lit)
		return err
	case tokField:
		return f.renderField(w, t, r)
	case tokVariadic:
		return f.renderVariadic(w, t, r)
	default:
		return fmt.Errorf("formatter: unknown token kind %d", t.kind)
	}
}

func (f *StringFormatter) renderField(w io.Writer, t token, r logcore.Record) error {
	switch t.field {
	case fieldMessage:
		return writeSpec(w, t.fspec, r.Formatted())
	case fieldSeverity:
		return writeSpec(w, t.fspec, r.Severity().Name())
	case fieldProcess:
		return writeSpec(w, t.fspec, strconv.Itoa(r.PID()))
	case fieldThread:
		return writeSpec(w, t.fspec, strconv.FormatInt(r.TID(), 10))
	case fieldTimestamp:
		return writeSpec(w, t.fspec, renderTimestamp(t.tsSpec, r.Timestamp()))
	case fieldAttr:
		v, ok := r.Attrs().Get(t.name)
		if !ok {
			if t.fspec.optional {
				return writeSpec(w, t.fspec, "")
			}
			return writeSpec(w, t.fspec, "none")
		}
		return writeSpec(w, t.fspec, valueText(v))
	default:
		return fmt.Errorf("formatter: unknown field kind %d", t.field)
	}
}

func (f *StringFormatter) renderVariadic(w io.Writer, t token, r logcore.Record) error {
	var items []string
	r.Attrs().All(func(a logcore.Attr) bool {
		if f.consumed[a.Key] {
			return true
		}
		item := strings.ReplaceAll(t.itemPattern, "{name}", a.Key)
		item = strings.ReplaceAll(item, "{value}", valueText(a.Value))
		items = append(items, item)
		return true
	})
	_, err := io.WriteString(w, strings.Join(items, t.separator))
	return err
}

// valueText renders a logcore.Value as text, resolving deferred-format
// values by invoking their function exactly once.
func valueText(v logcore.Value) string {
	switch v.Kind() {
	case logcore.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case logcore.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case logcore.KindString:
		return v.String()
	case logcore.KindFunc:
		return v.Resolve().String()
	default:
		return ""
	}
}
