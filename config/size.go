package config

import (
	"fmt"
	"strconv"
	"strings"
)

// sizeUnits maps a recognized suffix to its multiplier. Decimal units
// (kB, MB, GB) use powers of 1000; binary units (KiB, MiB, GiB) use powers
// of 1024. A bare number or trailing "B" means bytes.
var sizeUnits = []struct {
	suffix string
	mult   int64
}{
	{"GiB", 1 << 30},
	{"MiB", 1 << 20},
	{"KiB", 1 << 10},
	{"GB", 1_000_000_000},
	{"MB", 1_000_000},
	{"kB", 1_000},
	{"B", 1},
}

// ParseSize parses a byte-size string such as "256kB", "4MiB", or a bare
// "1024" (bytes). Suffixes are matched longest-first and are
// case-sensitive, matching the conventional k/M/G and Ki/Mi/Gi prefixes.
func ParseSize(s string) (int64, error) {
	s = strings.TrimSpace(s)
	for _, u := range sizeUnits {
		if rest, ok := strings.CutSuffix(s, u.suffix); ok {
			rest = strings.TrimSpace(rest)
			if rest == "" {
				return 0, fmt.Errorf("config: size %q: missing number before suffix", s)
			}
			n, err := strconv.ParseFloat(rest, 64)
			if err != nil {
				return 0, fmt.Errorf("config: size %q: %w", s, err)
			}
			return int64(n * float64(u.mult)), nil
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("config: size %q: unrecognized suffix or not an integer", s)
	}
	return n, nil
}
