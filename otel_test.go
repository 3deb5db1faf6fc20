package logcore

import (
	"context"
	"testing"
)

func TestContextWithBaggageEscapesAndCollects(t *testing.T) {
	ctx := ContextWithBaggage(context.Background(), "user", "has space")

	var pack Pack
	collectBaggage(ctx, func(string) bool { return true }, &pack)

	v, ok := pack.Get("user")
	if !ok {
		t.Fatal("baggage member not collected")
	}
	if v.String() != "has space" {
		t.Fatalf("baggage value = %q, want %q (round-tripped through escaping)", v.String(), "has space")
	}
}

func TestCollectBaggageHonorsFilter(t *testing.T) {
	ctx := ContextWithBaggage(context.Background(), "a", "1", "b", "2")

	var pack Pack
	collectBaggage(ctx, func(key string) bool { return key == "a" }, &pack)

	if _, ok := pack.Get("a"); !ok {
		t.Fatal("filtered-in member missing")
	}
	if _, ok := pack.Get("b"); ok {
		t.Fatal("filtered-out member present")
	}
}

func TestCollectBaggageNilFilterAddsNothing(t *testing.T) {
	ctx := ContextWithBaggage(context.Background(), "a", "1")
	var pack Pack
	collectBaggage(ctx, nil, &pack)
	if pack.Len() != 0 {
		t.Fatalf("pack.Len() = %d, want 0 with a nil filter", pack.Len())
	}
}

func TestContextWithBaggageDropsTrailingUnpairedKey(t *testing.T) {
	ctx := ContextWithBaggage(context.Background(), "a", "1", "orphan")
	var pack Pack
	collectBaggage(ctx, func(string) bool { return true }, &pack)
	if _, ok := pack.Get("orphan"); ok {
		t.Fatal("unpaired trailing key should have been dropped, not added")
	}
	if v, ok := pack.Get("a"); !ok || v.String() != "1" {
		t.Fatalf("paired member lost: %v, %v", v, ok)
	}
}
