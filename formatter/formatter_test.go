package formatter_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/quay/logcore"
	"github.com/quay/logcore/formatter"
)

func render(t *testing.T, pattern string, r logcore.Record) string {
	t.Helper()
	f, err := formatter.Parse(pattern)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", pattern, err)
	}
	var buf bytes.Buffer
	if err := f.Render(&buf, r); err != nil {
		t.Fatalf("Render error: %v", err)
	}
	return buf.String()
}

func TestSeverityAndMessagePlaceholders(t *testing.T) {
	r := logcore.NewRecord(logcore.Severity(3), "hi", nil).Activate("hi")
	got := render(t, "{severity}: {message}", r)
	if got != "3: hi" {
		t.Fatalf("got %q, want %q", got, "3: hi")
	}
}

func TestVariadicPlaceholderWithSeparator(t *testing.T) {
	attrs := logcore.Pack{logcore.List{
		logcore.Int64("a", 1),
		logcore.String("b", "x"),
	}}
	r := logcore.NewRecord(logcore.SeverityInfo, "m", attrs).Activate("m")

	got := render(t, "{...:{{name}={value}:p}{, :s}s}", r)
	if got != "a=1, b=x" {
		t.Fatalf("got %q, want %q", got, "a=1, b=x")
	}
}

func TestVariadicExcludesConsumedNames(t *testing.T) {
	attrs := logcore.Pack{logcore.List{
		logcore.Int64("a", 1),
		logcore.String("b", "x"),
	}}
	r := logcore.NewRecord(logcore.SeverityInfo, "m", attrs).Activate("m")

	got := render(t, "{a} {...:{{name}={value}:p}{, :s}s}", r)
	if got != "1 b=x" {
		t.Fatalf("got %q, want %q", got, "1 b=x")
	}
}

func TestMissingAttrRendersNoneUnlessOptional(t *testing.T) {
	r := logcore.NewRecord(logcore.SeverityInfo, "m", nil).Activate("m")
	if got := render(t, "{missing}", r); got != "none" {
		t.Fatalf("got %q, want %q", got, "none")
	}
	if got := render(t, "{missing:?}", r); got != "" {
		t.Fatalf("got %q, want empty string", got)
	}
}

func TestFieldSpecAlignmentAndWidth(t *testing.T) {
	r := logcore.NewRecord(logcore.SeverityInfo, "m", nil).Activate("m")
	cases := []struct {
		pattern, want string
	}{
		{"{message:>6}", "     m"},
		{"{message:<6}", "m     "},
		{"{message:^5}", "  m  "},
		{"{message:*^5}", "**m**"},
	}
	for _, c := range cases {
		if got := render(t, c.pattern, r); got != c.want {
			t.Errorf("render(%q) = %q, want %q", c.pattern, got, c.want)
		}
	}
}

func TestTimestampPlaceholderDefaultsToUTC(t *testing.T) {
	fixed := time.Date(2026, 7, 29, 12, 0, 0, 0, time.UTC)
	old := logcore.Clock
	logcore.Clock = func() time.Time { return fixed }
	defer func() { logcore.Clock = old }()

	r := logcore.NewRecord(logcore.SeverityInfo, "m", nil).Activate("m")
	got := render(t, "{timestamp:%Y-%m-%d}", r)
	if got != "2026-07-29" {
		t.Fatalf("got %q, want %q", got, "2026-07-29")
	}
}

func TestEscapedBraces(t *testing.T) {
	r := logcore.NewRecord(logcore.SeverityInfo, "m", nil).Activate("m")
	got := render(t, "{{literal}}", r)
	if got != "{literal}" {
		t.Fatalf("got %q, want %q", got, "{literal}")
	}
}

func TestParseCachesByPattern(t *testing.T) {
	f1, err := formatter.Parse("{message}")
	if err != nil {
		t.Fatal(err)
	}
	f2, err := formatter.Parse("{message}")
	if err != nil {
		t.Fatal(err)
	}
	r := logcore.NewRecord(logcore.SeverityInfo, "cached", nil).Activate("cached")
	var b1, b2 bytes.Buffer
	if err := f1.Render(&b1, r); err != nil {
		t.Fatal(err)
	}
	if err := f2.Render(&b2, r); err != nil {
		t.Fatal(err)
	}
	if b1.String() != b2.String() {
		t.Fatalf("cached parses render differently: %q vs %q", b1.String(), b2.String())
	}
}

func TestParseRejectsUnmatchedBrace(t *testing.T) {
	if _, err := formatter.Parse("{unterminated"); err == nil {
		t.Fatal("expected an error for an unterminated placeholder")
	}
}
