package logcore

import (
	"time"
)

// noCopy is a trick for ensuring a value isn't copied around after first
// use; embed it and run `go vet` with the copylocks check enabled.
type noCopy struct{}

// Lock implements [sync.Locker].
func (noCopy) Lock() {}

// Unlock implements [sync.Locker].
func (noCopy) Unlock() {}

// Clock is the time source consulted by [Record.Activate]. Tests may
// override it to get deterministic timestamps; production code should leave
// it untouched.
var Clock = time.Now
