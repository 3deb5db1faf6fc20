package logcore

// OwnedRecord is an independent copy of a [Record], suitable for handoff
// across goroutines (notably into the async sink's queue). Construction
// deep-copies the message, the formatted payload, and every attribute value;
// any [KindFunc] value is resolved — its function is invoked exactly once —
// and the resulting text becomes an owned string.
//
// Because Go strings are immutable and garbage-collected, there is no
// separate "view" representation to keep pointer-stable across moves: an
// *OwnedRecord is always handled by pointer, and its [OwnedRecord.View]
// simply reconstructs a [Record] over the already-independent storage it
// holds.
type OwnedRecord struct {
	record Record
}

// NewOwnedRecord deep-copies r into an independent OwnedRecord.
func NewOwnedRecord(r Record) *OwnedRecord {
	lists := make([]List, len(r.attrs))
	for i, l := range r.attrs {
		lists[i] = captureList(l)
	}
	r.attrs = lists
	return &OwnedRecord{record: r}
}

// captureList deep-copies a List, resolving any KindFunc values.
func captureList(l List) List {
	out := make(List, len(l))
	for i, a := range l {
		out[i] = Attr{Key: a.Key, Value: a.Value.Resolve()}
	}
	return out
}

// View reconstructs a [Record] referencing the owned storage. The returned
// Record remains valid indefinitely: nothing about it depends on storage
// owned by whatever produced the original Record.
func (o *OwnedRecord) View() Record {
	return o.record
}
