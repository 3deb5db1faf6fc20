package sink

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"sync"

	"github.com/quay/logcore"
	"github.com/quay/logcore/formatter"
)

// Flusher decides when a [File] destination should be flushed to disk.
// Note is called once per emitted event with the number of bytes just
// written to that destination; it returns whether the destination should be
// flushed now, and resets its own internal counter when it does.
type Flusher interface {
	Note(n int) bool
}

type eventFlusher struct {
	every, count int
}

// FlushEveryEvents returns a [Flusher] factory that flushes after every n
// events written to a given destination.
func FlushEveryEvents(n int) func() Flusher {
	return func() Flusher { return &eventFlusher{every: n} }
}

func (f *eventFlusher) Note(int) bool {
	f.count++
	if f.count >= f.every {
		f.count = 0
		return true
	}
	return false
}

type byteFlusher struct {
	every, count int
}

// FlushEveryBytes returns a [Flusher] factory that flushes once at least n
// bytes have been written to a given destination since the last flush.
func FlushEveryBytes(n int) func() Flusher {
	return func() Flusher { return &byteFlusher{every: n} }
}

func (f *byteFlusher) Note(n int) bool {
	f.count += n
	if f.count >= f.every {
		f.count = 0
		return true
	}
	return false
}

// fileDest is one opened destination: its own handle, buffered writer, and
// flush policy instance, so multiple destinations driven off one pattern
// (say, one log file per request id) don't share flush-count state.
type fileDest struct {
	f       *os.File
	w       *bufio.Writer
	flusher Flusher
}

// File appends formatted records to a filename derived from each record via
// the same pattern grammar [formatter.StringFormatter] implements, so a
// single File sink can fan out to many destinations (e.g. one file per
// "component" attribute). Writes to a given destination are serialized.
type File struct {
	mu         sync.Mutex
	name       *formatter.StringFormatter
	newFlusher func() Flusher
	dests      map[string]*fileDest
}

// NewFile constructs a File sink. namePattern is compiled with
// [formatter.Parse] and re-rendered per record to choose a destination path;
// a pattern with no placeholders simply appends to one file. newFlusher
// defaults to flushing after every event if nil.
func NewFile(namePattern string, newFlusher func() Flusher) (*File, error) {
	f, err := formatter.Parse(namePattern)
	if err != nil {
		return nil, fmt.Errorf("sink: file name pattern: %w", err)
	}
	if newFlusher == nil {
		newFlusher = FlushEveryEvents(1)
	}
	return &File{name: f, newFlusher: newFlusher, dests: make(map[string]*fileDest)}, nil
}

// Emit implements [logcore.Sink].
func (s *File) Emit(r logcore.Record, formatted []byte) error {
	var nameBuf bytes.Buffer
	if err := s.name.Render(&nameBuf, r); err != nil {
		return fmt.Errorf("sink: rendering file name: %w", err)
	}
	name := nameBuf.String()

	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.dests[name]
	if !ok {
		f, err := os.OpenFile(name, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("sink: opening %q: %w", name, err)
		}
		d = &fileDest{f: f, w: bufio.NewWriter(f), flusher: s.newFlusher()}
		s.dests[name] = d
	}

	n, err := d.w.Write(formatted)
	if err == nil && (len(formatted) == 0 || formatted[len(formatted)-1] != '\n') {
		var nn int
		nn, err = d.w.Write([]byte{'\n'})
		n += nn
	}
	if err != nil {
		return err
	}
	if d.flusher.Note(n) {
		return d.w.Flush()
	}
	return nil
}

// Close flushes and closes every destination opened by s.
func (s *File) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	var first error
	for name, d := range s.dests {
		if err := d.w.Flush(); err != nil && first == nil {
			first = err
		}
		if err := d.f.Close(); err != nil && first == nil {
			first = err
		}
		delete(s.dests, name)
	}
	return first
}
