package sink

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/quay/logcore"
)

// OverflowPolicy selects what an [Async] sink does when its queue is full.
type OverflowPolicy int

const (
	// DropSilently discards the record with no signal to the caller.
	DropSilently OverflowPolicy = iota
	// DropWithError discards the record and returns [ErrQueueFull] from
	// Emit.
	DropWithError
	// Block makes Emit wait until space is available (or the sink starts
	// shutting down, in which case the record is dropped rather than
	// risking a deadlock against a [Async.Close] that will never finish
	// draining a queue nobody is reading from).
	Block
)

// ErrQueueFull is returned by [Async.Emit] under [DropWithError] when the
// queue has no free slot.
var ErrQueueFull = errors.New("sink: async queue full")

const (
	stateRunning int32 = iota
	stateStopping
	stateClosed
)

type asyncItem struct {
	rec       *logcore.OwnedRecord
	formatted []byte
}

// Async wraps another [logcore.Sink] behind a bounded MPSC queue and a
// single consumer goroutine — the idiomatic Go rendition of the source
// material's Vyukov-style bounded MPMC queue: a buffered channel already
// gives linearized, FIFO-per-producer enqueue semantics with a single
// reader, without hand-rolling lock-free code the teacher never needed
// either.
type Async struct {
	_ noCopy

	wrapped logcore.Sink
	ch      chan asyncItem
	stopCh  chan struct{}
	policy  OverflowPolicy
	state   atomic.Int32
	wg      sync.WaitGroup
	OnError func(error)
}

type noCopy struct{}

func (noCopy) Lock()   {}
func (noCopy) Unlock() {}

// NewAsync wraps sink behind a queue of 2^capacityExp slots (capacityExp
// must be in [0, 20], giving a 1-slot queue at 0 and a 1,048,576-slot queue
// at 20) with the given overflow policy, and starts its worker goroutine.
func NewAsync(wrapped logcore.Sink, capacityExp int, policy OverflowPolicy) (*Async, error) {
	if capacityExp < 0 || capacityExp > 20 {
		return nil, fmt.Errorf("sink: capacity exponent %d out of range [0, 20]", capacityExp)
	}
	a := &Async{
		wrapped: wrapped,
		ch:      make(chan asyncItem, 1<<capacityExp),
		stopCh:  make(chan struct{}),
		policy:  policy,
	}
	a.wg.Add(1)
	go a.run()
	return a, nil
}

// Emit implements [logcore.Sink]. It deep-copies r into an [logcore.OwnedRecord]
// (capturing any deferred-format attribute text before handing off) and
// attempts to enqueue it for the worker goroutine.
func (a *Async) Emit(r logcore.Record, formatted []byte) error {
	if a.state.Load() != stateRunning {
		return nil
	}
	item := asyncItem{
		rec:       logcore.NewOwnedRecord(r),
		formatted: append([]byte(nil), formatted...),
	}
	switch a.policy {
	case Block:
		select {
		case a.ch <- item:
			return nil
		case <-a.stopCh:
			return nil
		}
	default:
		select {
		case a.ch <- item:
			return nil
		default:
			if a.policy == DropWithError {
				return ErrQueueFull
			}
			return nil
		}
	}
}

// run is the sole consumer goroutine: it dequeues FIFO and forwards to the
// wrapped sink until told to stop, then drains whatever is still buffered
// before returning — at-least-once delivery for every accepted entry.
func (a *Async) run() {
	defer a.wg.Done()
	for {
		select {
		case item := <-a.ch:
			a.deliver(item)
		case <-a.stopCh:
			a.drain()
			return
		}
	}
}

func (a *Async) drain() {
	for {
		select {
		case item := <-a.ch:
			a.deliver(item)
		default:
			return
		}
	}
}

func (a *Async) deliver(item asyncItem) {
	if err := a.wrapped.Emit(item.rec.View(), item.formatted); err != nil && a.OnError != nil {
		a.OnError(err)
	}
}

// Close stops accepting new records, drains whatever is already queued into
// the wrapped sink, and joins the worker goroutine. It is safe to call
// exactly once; subsequent calls are no-ops.
func (a *Async) Close() error {
	if !a.state.CompareAndSwap(stateRunning, stateStopping) {
		return nil
	}
	close(a.stopCh)
	a.wg.Wait()
	a.state.Store(stateClosed)
	return nil
}
