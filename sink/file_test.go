package sink

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/quay/logcore"
)

func TestFileSinkAppendsAndFlushes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.log")

	f, err := NewFile(path, FlushEveryEvents(1))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r := logcore.NewRecord(logcore.SeverityInfo, "m", nil).Activate("m")
	if err := f.Emit(r, []byte("first")); err != nil {
		t.Fatal(err)
	}
	if err := f.Emit(r, []byte("second")); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "first\nsecond\n" {
		t.Fatalf("got %q, want %q", string(got), "first\nsecond\n")
	}
}

func TestFileSinkRoutesByPattern(t *testing.T) {
	dir := t.TempDir()
	pattern := filepath.Join(dir, "{component}.log")

	f, err := NewFile(pattern, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	r := logcore.NewRecord(logcore.SeverityInfo, "m", logcore.Pack{
		logcore.List{logcore.String("component", "web")},
	}).Activate("m")
	if err := f.Emit(r, []byte("hit")); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	got, err := os.ReadFile(filepath.Join(dir, "web.log"))
	if err != nil {
		t.Fatalf("expected a web.log destination: %v", err)
	}
	if string(got) != "hit\n" {
		t.Fatalf("got %q, want %q", string(got), "hit\n")
	}
}

func TestByteFlusherTriggersAtThreshold(t *testing.T) {
	fl := FlushEveryBytes(10)()
	if fl.Note(4) {
		t.Fatal("flushed before reaching threshold")
	}
	if !fl.Note(7) {
		t.Fatal("did not flush once threshold was reached")
	}
	if fl.Note(1) {
		t.Fatal("counter did not reset after flushing")
	}
}
