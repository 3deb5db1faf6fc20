package config

import "testing"

func TestParseSize(t *testing.T) {
	cases := []struct {
		in   string
		want int64
	}{
		{"1024", 1024},
		{"1B", 1},
		{"256kB", 256_000},
		{"1MB", 1_000_000},
		{"1KiB", 1024},
		{"4MiB", 4 * (1 << 20)},
		{"1GiB", 1 << 30},
	}
	for _, c := range cases {
		got, err := ParseSize(c.in)
		if err != nil {
			t.Errorf("ParseSize(%q) error: %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseSize(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestParseSizeRejectsGarbage(t *testing.T) {
	if _, err := ParseSize("not-a-size"); err == nil {
		t.Fatal("expected an error")
	}
}
