package logcore

import (
	"context"
	"sync/atomic"
)

// Scoped attribute manager.
//
// The source material models this as a thread-local singly-linked list
// rooted by a per-thread "current frame" pointer, mutated by constructing
// and destroying stack-allocated guard objects in strict LIFO order. Go has
// no supported thread-local storage and does not pin goroutines to OS
// threads, so this chain is carried on a [context.Context] value instead —
// the idiomatic Go substitute, and the same mechanism the teacher package
// uses to propagate OpenTelemetry baggage through a call chain. Lexical
// `defer`-scoped pushes give the same LIFO guarantee the source's
// stack-allocated guards required from manual destructor ordering;
// [ScopeStrict] additionally detects genuine misuse (a [ScopeGuard] popped
// out of order, e.g. because the caller stored guards in a slice instead of
// deferring them immediately).

// ScopeStrict controls whether a [ScopeGuard] popped out of LIFO order
// panics (true, the default, mirroring the source's debug-build assertion)
// or is silently tolerated (false).
var ScopeStrict = true

type scopeCtxKey struct{}

// scopeChain is the shared, mutable state backing the LIFO check for one
// root context's frame chain. It is allocated once, when the first frame is
// pushed onto a context with no existing chain.
type scopeChain struct {
	depth atomic.Int64
}

// scopeFrame is a single node in the scoped attribute chain.
type scopeFrame struct {
	list  List
	prev  *scopeFrame
	chain *scopeChain
	depth int64
}

func scopeFrameFrom(ctx context.Context) *scopeFrame {
	f, _ := ctx.Value(scopeCtxKey{}).(*scopeFrame)
	return f
}

// ScopeGuard tracks the frame a [PushScope] call installed, so that
// [ScopeGuard.Pop] can assert it is being removed in the correct order.
type ScopeGuard struct {
	f *scopeFrame
}

// PushScope attaches list as a new, innermost frame on ctx's scoped
// attribute chain and returns a context carrying it along with a guard.
// Callers should pop the guard lexically:
//
//	ctx, done := logcore.PushScope(ctx, logcore.List{logcore.String("request", "r1")})
//	defer done.Pop()
func PushScope(ctx context.Context, list List) (context.Context, *ScopeGuard) {
	prev := scopeFrameFrom(ctx)
	var c *scopeChain
	var depth int64
	if prev == nil {
		c = &scopeChain{}
		depth = 1
	} else {
		c = prev.chain
		depth = prev.depth + 1
	}
	c.depth.Store(depth)
	f := &scopeFrame{list: list, prev: prev, chain: c, depth: depth}
	return context.WithValue(ctx, scopeCtxKey{}, f), &ScopeGuard{f: f}
}

// Pop releases the frame g tracks. If [ScopeStrict] is enabled and g is
// popped out of LIFO order relative to other frames on the same chain, Pop
// panics.
func (g *ScopeGuard) Pop() {
	if g == nil || g.f == nil {
		return
	}
	c := g.f.chain
	cur := c.depth.Load()
	if cur != g.f.depth {
		if ScopeStrict {
			panic("logcore: scoped frame popped out of LIFO order")
		}
		return
	}
	c.depth.Store(g.f.depth - 1)
}

// collectScope appends every attribute list on ctx's scoped chain to *pack,
// outermost frame first so that the innermost (most call-site-specific)
// frame is appended last — giving it priority under [Pack.Get]'s "last
// append wins" search order.
func collectScope(ctx context.Context, pack *Pack) {
	var frames []List
	for f := scopeFrameFrom(ctx); f != nil; f = f.prev {
		frames = append(frames, f.list)
	}
	for i := len(frames) - 1; i >= 0; i-- {
		*pack = append(*pack, frames[i])
	}
}

// ScopeDepth reports how many frames are currently pushed on ctx's chain. It
// is mostly useful for tests.
func ScopeDepth(ctx context.Context) int64 {
	if f := scopeFrameFrom(ctx); f != nil {
		return f.depth
	}
	return 0
}
