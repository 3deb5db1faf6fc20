// Package sink provides the [logcore.Sink] implementations required by the
// core: a no-op sink, a TTY-aware console sink, a pattern-named file sink
// with pluggable flush policies, an async wrapper around any sink, and an
// interop sink adapting onto an *rs/zerolog.Logger.
package sink

import "github.com/quay/logcore"

// Null is a [logcore.Sink] that discards every record.
type Null struct{}

// Emit implements [logcore.Sink].
func (Null) Emit(logcore.Record, []byte) error { return nil }
