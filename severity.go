package logcore

import "strconv"

// Severity is the caller-defined integer scale a [Record] is tagged with.
// Lower values are less severe.
type Severity int32

// A handful of syslog(3)-compatible aliases, kept at a 4-count gap between
// adjacent levels (except SeverityNotice, which sits halfway between Info
// and Warning) so callers can interpose custom levels between them — the
// same convention quay/zlog's v2 handler uses for its slog.Level aliases.
const (
	// SeverityEverything is a nice low number, low enough to almost
	// certainly catch anything emitted.
	SeverityEverything Severity = -100

	SeverityTrace    Severity = -8
	SeverityDebug    Severity = -4
	SeverityInfo     Severity = 0
	SeverityNotice   Severity = 2
	SeverityWarning  Severity = 4
	SeverityError    Severity = 8
	SeverityCritical Severity = 12
	SeverityAlert    Severity = 16
	// SeverityEmergency is documented, by convention, as a panic condition.
	// This package does no special handling of Go panics at this level.
	SeverityEmergency Severity = 20
)

// severityNames is consulted by formatter placeholders that render a
// severity by name rather than by number. It is nil by default; set it via
// [SeverityTable] to opt in.
var severityNames map[Severity]string

// SeverityTable installs a process-wide severity→name mapping used by
// formatters rendering the "severity" placeholder. Passing nil restores the
// default (numeric-only) behavior.
func SeverityTable(names map[Severity]string) {
	severityNames = names
}

// Name renders s using the installed [SeverityTable], falling back to the
// decimal representation if no table is installed or s is absent from it.
func (s Severity) Name() string {
	if severityNames != nil {
		if n, ok := severityNames[s]; ok {
			return n
		}
	}
	return strconv.FormatInt(int64(s), 10)
}

// DefaultSeverityNames is a convenience table mapping the syslog-compatible
// aliases declared above to their conventional names. It is not installed
// automatically; pass it to [SeverityTable] to opt in.
var DefaultSeverityNames = map[Severity]string{
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
