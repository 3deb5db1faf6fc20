package sink

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/quay/logcore"
)

// Target selects which standard stream a [Console] writes to.
type Target int

const (
	// Stdout writes to the process's standard output.
	Stdout Target = iota
	// Stderr writes to the process's standard error.
	Stderr
)

// Colors maps a severity to an SGR parameter sequence (without the leading
// "\x1b[" or trailing "m"), e.g. "31" for red. A nil or missing entry means
// "no color applied".
type Colors map[logcore.Severity]string

// DefaultColors is a reasonable severity→color mapping, loosely mirroring
// quay/zlog v2's ZLOG_COLORS defaults: warnings yellow, errors and above
// red, everything else uncolored.
var DefaultColors = Colors{
	logcore.SeverityWarning:   "33",
	logcore.SeverityError:     "31",
	logcore.SeverityCritical:  "31;1",
	logcore.SeverityAlert:     "31;1",
	logcore.SeverityEmergency: "31;1",
}

// consoleMu is shared by every [Console] in the process, so that two
// Console values writing to the same stream cannot interleave their writes.
var consoleMu sync.Mutex

// Console writes formatted records to stdout or stderr, applying a
// severity→color map when the underlying stream is a TTY. Emit holds the
// process-wide consoleMu for its whole color/payload/reset write sequence,
// so concurrent callers interleave line-by-line rather than byte-by-byte.
type Console struct {
	w      io.Writer
	isTTY  bool
	colors Colors
}

// NewConsole constructs a Console writing to target. If colors is nil,
// [DefaultColors] is used. TTY detection uses mattn/go-isatty; output is
// passed through mattn/go-colorable so ANSI escapes work on legacy Windows
// consoles too.
func NewConsole(target Target, colors Colors) *Console {
	var f *os.File
	switch target {
	case Stderr:
		f = os.Stderr
	default:
		f = os.Stdout
	}
	if colors == nil {
		colors = DefaultColors
	}
	return &Console{
		w:      colorable.NewColorable(f),
		isTTY:  isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()),
		colors: colors,
	}
}

// Emit implements [logcore.Sink].
func (c *Console) Emit(r logcore.Record, formatted []byte) error {
	consoleMu.Lock()
	defer consoleMu.Unlock()

	if c.isTTY {
		if code, ok := c.colors[r.Severity()]; ok && code != "" {
			if _, err := fmt.Fprintf(c.w, "\x1b[%sm", code); err != nil {
				return err
			}
			defer fmt.Fprint(c.w, "\x1b[0m")
		}
	}
	if _, err := c.w.Write(formatted); err != nil {
		return err
	}
	if len(formatted) == 0 || formatted[len(formatted)-1] != '\n' {
		_, err := c.w.Write([]byte{'\n'})
		return err
	}
	return nil
}
