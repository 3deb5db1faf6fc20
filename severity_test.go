package logcore

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSeverityNameFallsBackToDecimal(t *testing.T) {
	SeverityTable(nil)
	if got := Severity(7).Name(); got != "7" {
		t.Fatalf("Name() = %q, want %q", got, "7")
	}
}

func TestSeverityNameUsesInstalledTable(t *testing.T) {
	SeverityTable(DefaultSeverityNames)
	defer SeverityTable(nil)

	if got := SeverityWarning.Name(); got != "WARNING" {
		t.Fatalf("Name() = %q, want %q", got, "WARNING")
	}
	if got := Severity(1000).Name(); got != "1000" {
		t.Fatalf("Name() for an absent severity = %q, want decimal fallback", got)
	}
}

func TestDefaultSeverityNamesCoversSyslogAliases(t *testing.T) {
	want := map[Severity]string{
		SeverityTrace:     "TRACE",
		SeverityDebug:     "DEBUG",
		SeverityInfo:      "INFO",
		SeverityNotice:    "NOTICE",
		SeverityWarning:   "WARNING",
		SeverityError:     "ERROR",
		SeverityCritical:  "CRITICAL",
		SeverityAlert:     "ALERT",
		SeverityEmergency: "EMERGENCY",
	}
	if diff := cmp.Diff(want, DefaultSeverityNames); diff != "" {
		t.Fatalf("DefaultSeverityNames mismatch (-want +got):\n%s", diff)
	}
}
