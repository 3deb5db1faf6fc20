package logcore

import (
	"context"
	"testing"
)

type recordingSink struct {
	records []Record
}

func (s *recordingSink) Emit(r Record, _ []byte) error {
	s.records = append(s.records, r)
	return nil
}

func TestLoggerFiltersBeforeHandlers(t *testing.T) {
	sink := &recordingSink{}
	h := NewHandler(nil, nil, sink)
	l := NewLogger(SeverityFilter(SeverityWarning), h)

	l.Log(context.Background(), SeverityInfo, "dropped")
	l.Log(context.Background(), SeverityError, "kept")

	if len(sink.records) != 1 {
		t.Fatalf("got %d records, want 1", len(sink.records))
	}
	if sink.records[0].Message() != "kept" {
		t.Fatalf("Message() = %q, want %q", sink.records[0].Message(), "kept")
	}
}

func TestLoggerSkipsSupplierWhenDenied(t *testing.T) {
	sink := &recordingSink{}
	h := NewHandler(nil, nil, sink)
	l := NewLogger(SeverityFilter(SeverityWarning), h)

	called := false
	l.LogFunc(context.Background(), SeverityInfo, "m", func() string {
		called = true
		return "m"
	})
	if called {
		t.Fatal("supplier invoked for a denied record")
	}
}

func TestLoggerMergesCallAttrsAndScope(t *testing.T) {
	sink := &recordingSink{}
	h := NewHandler(nil, nil, sink)
	l := NewLogger(nil, h)

	ctx, guard := PushScope(context.Background(), List{String("req", "abc")})
	defer guard.Pop()

	l.LogAttrs(ctx, SeverityInfo, "m", String("call", "value"))

	if len(sink.records) != 1 {
		t.Fatalf("got %d records, want 1", len(sink.records))
	}
	attrs := sink.records[0].Attrs()
	if v, ok := attrs.Get("req"); !ok || v.String() != "abc" {
		t.Fatalf("scoped attribute missing or wrong: %v, %v", v, ok)
	}
	if v, ok := attrs.Get("call"); !ok || v.String() != "value" {
		t.Fatalf("call attribute missing or wrong: %v, %v", v, ok)
	}
}

func TestLoggerSetFilterPreservesHandlers(t *testing.T) {
	sink := &recordingSink{}
	h := NewHandler(nil, nil, sink)
	l := NewLogger(nil, h)

	l.SetFilter(SeverityFilter(SeverityError))
	l.Log(context.Background(), SeverityInfo, "dropped")
	l.Log(context.Background(), SeverityError, "kept")

	if len(sink.records) != 1 || sink.records[0].Message() != "kept" {
		t.Fatalf("sink.records = %+v, want exactly one \"kept\" record", sink.records)
	}
}

func TestHandlerIsolatesSinkPanic(t *testing.T) {
	panicky := sinkFunc(func(Record, []byte) error { panic("boom") })
	sink := &recordingSink{}
	h := NewHandler(nil, nil, panicky, sink)

	h.Handle(NewRecord(SeverityInfo, "m", nil).Activate(""))

	if len(sink.records) != 1 {
		t.Fatalf("well-behaved sink got %d records, want 1 despite the other sink panicking", len(sink.records))
	}
}

// sinkFunc adapts a function to [Sink], for tests that need a sink with
// unusual behavior (panicking, erroring) without a dedicated type.
type sinkFunc func(Record, []byte) error

func (f sinkFunc) Emit(r Record, b []byte) error { return f(r, b) }
