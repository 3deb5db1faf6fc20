package logcore

import "io"

// Kind discriminates the variants of a [Value].
type Kind uint8

const (
	// KindInt64 holds a signed 64-bit integer.
	KindInt64 Kind = iota
	// KindFloat64 holds an IEEE-754 double.
	KindFloat64
	// KindString holds a string.
	//
	// Unlike the source material's C++ distinction between a non-owning
	// string view and an owned string, a Go string header is always safe to
	// copy: the backing bytes are immutable and kept alive by the garbage
	// collector for as long as any string value references them. There is
	// therefore no separate "owned string" variant here.
	KindString
	// KindFunc holds a deferred-format function, invoked lazily to produce
	// text. Resolving a Value of this kind (see [Value.Resolve]) replaces it
	// with the KindString result of calling the function once.
	KindFunc
)

// String returns a human-readable name for k, used in diagnostics.
func (k Kind) String() string {
	switch k {
	case KindInt64:
		return "int64"
	case KindFloat64:
		return "float64"
	case KindString:
		return "string"
	case KindFunc:
		return "func"
	default:
		return "invalid"
	}
}

// FormatFunc is a deferred-format hook: it writes its rendering to w and
// reports how many bytes were written.
type FormatFunc func(w io.Writer) (int, error)

// Value is a tagged union over the four attribute value variants described
// by the record model: a signed integer, a double, a string, and a
// deferred-format function.
//
// The zero Value is a KindInt64 of 0.
type Value struct {
	kind Kind
	i64  int64
	f64  float64
	str  string
	fn   FormatFunc
}

// Int64Value wraps i as a [Value].
func Int64Value(i int64) Value { return Value{kind: KindInt64, i64: i} }

// Float64Value wraps f as a [Value].
func Float64Value(f float64) Value { return Value{kind: KindFloat64, f64: f} }

// StringValue wraps s as a [Value].
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// FuncValue wraps fn as a lazily-rendered [Value].
//
// fn is invoked each time the value is resolved into text: by a [Formatter]
// rendering it, or when it is captured into an [OwnedRecord]. The result is
// not cached, so a record rendered by several handlers calls fn once per
// rendering.
func FuncValue(fn FormatFunc) Value { return Value{kind: KindFunc, fn: fn} }

// Kind reports which variant v holds.
func (v Value) Kind() Kind { return v.kind }

// Int64 returns the wrapped integer. It panics if v is not a KindInt64.
func (v Value) Int64() int64 {
	if v.kind != KindInt64 {
		panic("logcore: Value.Int64 called on a " + v.kind.String() + " value")
	}
	return v.i64
}

// Float64 returns the wrapped double. It panics if v is not a KindFloat64.
func (v Value) Float64() float64 {
	if v.kind != KindFloat64 {
		panic("logcore: Value.Float64 called on a " + v.kind.String() + " value")
	}
	return v.f64
}

// String returns the wrapped string. It panics if v is not a KindString.
//
// Use [Value.Text] to render any kind (including KindFunc) to a string.
func (v Value) String() string {
	if v.kind != KindString {
		panic("logcore: Value.String called on a " + v.kind.String() + " value")
	}
	return v.str
}

// Func returns the wrapped deferred-format function. It panics if v is not a
// KindFunc.
func (v Value) Func() FormatFunc {
	if v.kind != KindFunc {
		panic("logcore: Value.Func called on a " + v.kind.String() + " value")
	}
	return v.fn
}

// Resolve returns a KindString (or numeric) Value with any KindFunc
// materialized by calling its function against an internal buffer. Non-func
// values are returned unchanged.
func (v Value) Resolve() Value {
	if v.kind != KindFunc {
		return v
	}
	b := newBuffer()
	defer b.Release()
	_, _ = v.fn(b)
	return StringValue(string(*b))
}

// Attr is a single key/value pair in an [List].
type Attr struct {
	Key   string
	Value Value
}

// Int64 constructs an Attr holding a KindInt64 [Value].
func Int64(key string, i int64) Attr { return Attr{Key: key, Value: Int64Value(i)} }

// Float64 constructs an Attr holding a KindFloat64 [Value].
func Float64(key string, f float64) Attr { return Attr{Key: key, Value: Float64Value(f)} }

// String constructs an Attr holding a KindString [Value].
func String(key, s string) Attr { return Attr{Key: key, Value: StringValue(s)} }

// Func constructs an Attr holding a KindFunc [Value].
func Func(key string, fn FormatFunc) Attr { return Attr{Key: key, Value: FuncValue(fn)} }

// List is an ordered sequence of attribute pairs, typically small (16 or
// fewer entries). The zero List is empty and ready to use.
type List []Attr

// Get returns the value for key and whether it was found. Lookup is linear
// in len(l); the last matching entry wins, matching append-only construction
// of a scope chain (inner frames shadow outer ones with the same key).
func (l List) Get(key string) (Value, bool) {
	for i := len(l) - 1; i >= 0; i-- {
		if l[i].Key == key {
			return l[i].Value, true
		}
	}
	return Value{}, false
}

// Pack is an ordered sequence of references to attribute lists, assembled at
// log-call time from per-call attributes, scoped attributes, and any
// handler-side additions. A Pack is never mutated after a [Record] built from
// it is activated.
type Pack []List

// Get returns the value for key, searching lists from the end of the pack
// backwards (the most recently appended list wins), and whether it was
// found.
func (p Pack) Get(key string) (Value, bool) {
	for i := len(p) - 1; i >= 0; i-- {
		if v, ok := p[i].Get(key); ok {
			return v, true
		}
	}
	return Value{}, false
}

// Len returns the total number of attribute pairs across every list in p.
func (p Pack) Len() int {
	n := 0
	for _, l := range p {
		n += len(l)
	}
	return n
}

// All calls yield for every attribute pair in p, outermost list first,
// in-list order preserved. Iteration stops early if yield returns false.
func (p Pack) All(yield func(Attr) bool) {
	for _, l := range p {
		for _, a := range l {
			if !yield(a) {
				return
			}
		}
	}
}
