package logcore

// Action is the three-valued result of evaluating a [Filter] against a
// [Record].
type Action int

const (
	// Neutral defers the decision to the next filter in a chain; if no
	// later filter accepts or denies, the chain accepts by default.
	Neutral Action = iota
	// Accept forces the record through any remaining filters in the chain.
	Accept
	// Deny drops the record; no handler observes it.
	Deny
)

// String implements [fmt.Stringer].
func (a Action) String() string {
	switch a {
	case Accept:
		return "accept"
	case Deny:
		return "deny"
	default:
		return "neutral"
	}
}

// Filter is a pure predicate over a [Record]. A nil Filter is treated as
// always Neutral.
type Filter func(Record) Action

// apply evaluates f against r, treating a nil f as Neutral.
func (f Filter) apply(r Record) Action {
	if f == nil {
		return Neutral
	}
	return f(r)
}

// SeverityFilter accepts records whose severity is at least threshold and
// denies everything else.
func SeverityFilter(threshold Severity) Filter {
	return func(r Record) Action {
		if r.Severity() >= threshold {
			return Accept
		}
		return Deny
	}
}

// Chain composes filters in order: the first Deny or Accept stops
// evaluation and decides the result, so a record accepted by one filter is
// not re-examined by later ones; if every filter returns Neutral, the chain
// accepts by default (an empty chain always accepts).
func Chain(filters ...Filter) Filter {
	return func(r Record) Action {
		for _, f := range filters {
			switch f.apply(r) {
			case Deny:
				return Deny
			case Accept:
				return Accept
			}
		}
		// Every filter was Neutral: a neutral chain accepts by default.
		return Accept
	}
}
