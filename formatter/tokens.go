package formatter

import "fmt"

type tokenKind uint8

const (
	tokLiteral tokenKind = iota
	tokField
	tokVariadic
)

type fieldKind uint8

const (
	fieldMessage fieldKind = iota
	fieldSeverity
	fieldTimestamp
	fieldProcess
	fieldThread
	fieldAttr
)

type token struct {
	kind tokenKind

	// tokLiteral
	lit []byte

	// tokField
	field  fieldKind
	name   string // attribute name, for fieldAttr
	tsSpec string // raw timestamp sub-spec, for fieldTimestamp
	fspec  fieldSpec

	// tokVariadic
	itemPattern string
	separator   string
}

// parse tokenizes pattern into a sequence of literal/field/variadic tokens.
func parse(pattern string) ([]token, error) {
	var toks []token
	var lit []byte
	flush := func() {
		if len(lit) > 0 {
			toks = append(toks, token{kind: tokLiteral, lit: append([]byte(nil), lit...)})
			lit = lit[:0]
		}
	}

	i, n := 0, len(pattern)
	for i < n {
		switch c := pattern[i]; c {
		case '{':
			if i+1 < n && pattern[i+1] == '{' {
				lit = append(lit, '{')
				i += 2
				continue
			}
			flush()
			end, err := matchBrace(pattern, i)
			if err != nil {
				return nil, err
			}
			inner := pattern[i+1 : end]
			tok, err := parsePlaceholder(inner)
			if err != nil {
				return nil, err
			}
			toks = append(toks, tok)
			i = end + 1
		case '}':
			if i+1 < n && pattern[i+1] == '}' {
				lit = append(lit, '}')
				i += 2
				continue
			}
			return nil, fmt.Errorf("unescaped '}' at offset %d", i)
		default:
			lit = append(lit, c)
			i++
		}
	}
	flush()
	return toks, nil
}

// matchBrace returns the index of the '}' matching the '{' at s[open],
// honoring nested brace groups (used by the variadic sub-patterns).
func matchBrace(s string, open int) (int, error) {
	depth := 1
	for j := open + 1; j < len(s); j++ {
		switch s[j] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return j, nil
			}
		}
	}
	return 0, fmt.Errorf("unmatched '{' at offset %d", open)
}

// parsePlaceholder parses the content between a placeholder's outer braces
// (not including the braces themselves).
func parsePlaceholder(inner string) (token, error) {
	if len(inner) >= 4 && inner[:4] == "...:" {
		return parseVariadic(inner[4:])
	}

	name, spec, hasSpec := cutFirstColon(inner)
	if name == "" {
		return token{}, fmt.Errorf("empty placeholder name in %q", inner)
	}

	t := token{kind: tokField, name: name, fspec: fieldSpec{precision: -1}}
	switch name {
	case "message":
		t.field = fieldMessage
	case "severity":
		t.field = fieldSeverity
	case "process":
		t.field = fieldProcess
	case "thread":
		t.field = fieldThread
	case "timestamp":
		t.field = fieldTimestamp
		if hasSpec {
			t.tsSpec = spec
		}
		return t, nil
	default:
		t.field = fieldAttr
	}
	if hasSpec {
		fs, err := parseFieldSpec(spec)
		if err != nil {
			return token{}, fmt.Errorf("placeholder %q: %w", name, err)
		}
		t.fspec = fs
	}
	return t, nil
}

// cutFirstColon splits s on its first top-level ':', returning found=false
// when there is none.
func cutFirstColon(s string) (before, after string, found bool) {
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			return s[:i], s[i+1:], true
		}
	}
	return s, "", false
}

// parseVariadic parses the body of a `{...:...}` placeholder, already past
// the "...:" prefix: two brace-delimited sub-patterns (item pattern then
// separator, distinguished by position; each group's trailing tag letter is
// ignored) followed by a single overall type character.
func parseVariadic(s string) (token, error) {
	item, _, rest, err := extractBraceGroup(s)
	if err != nil {
		return token{}, fmt.Errorf("variadic item pattern: %w", err)
	}
	sep, _, rest, err := extractBraceGroup(rest)
	if err != nil {
		return token{}, fmt.Errorf("variadic separator: %w", err)
	}
	// rest is the trailing overall type character(s); not semantically
	// load-bearing for this core (the substitution is always textual), but
	// validated for non-emptiness to catch obviously truncated patterns.
	if rest == "" {
		return token{}, fmt.Errorf("variadic placeholder missing trailing type character")
	}
	return token{kind: tokVariadic, itemPattern: item, separator: sep}, nil
}

// extractBraceGroup parses one `{content:tag}`-shaped group from the start
// of s (content may itself contain nested brace placeholders), returning the
// content (with any trailing ":tag" stripped), the tag character (0 if
// absent), and the remainder of s following the group.
func extractBraceGroup(s string) (content string, tag byte, rest string, err error) {
	if len(s) == 0 || s[0] != '{' {
		return "", 0, "", fmt.Errorf("expected '{' at offset 0 of %q", s)
	}
	end, err := matchBrace(s, 0)
	if err != nil {
		return "", 0, "", err
	}
	group := s[1:end]
	rest = s[end+1:]
	if len(group) >= 2 && group[len(group)-2] == ':' {
		return group[:len(group)-2], group[len(group)-1], rest, nil
	}
	return group, 0, rest, nil
}
