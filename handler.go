package logcore

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Formatter renders a [Record] into w. Implementations are expected to
// parse their configuration (a pattern string, say) once at construction and
// do no further allocation during Render beyond what the writer's own growth
// requires. See the formatter subpackage for the string-pattern
// implementation required by the core.
type Formatter interface {
	Render(w io.Writer, r Record) error
}

// Sink consumes a rendered record. Emit is free to fail; a failing Sink
// never takes down the [Logger] that reached it — see [Handler.Handle]. See
// the sink subpackage for the required Null/Console/File implementations.
type Sink interface {
	Emit(r Record, formatted []byte) error
}

// lastResort is where the core reports its own misbehavior: sink failures,
// recovered panics, and similar conditions that must never propagate to a
// logging call's caller. It is a package-level *zerolog.Logger, writing to
// stderr by default, so that operators get one consistent diagnostic stream
// regardless of which sink misbehaved — the same role quay/zlog's own
// zerolog-backed facade plays for its package-level functions.
var lastResort = zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
	w.Out = os.Stderr
})).With().Timestamp().Logger()

// SetLastResort overrides the logger used to report sink failures and
// recovered panics. It exists primarily for tests.
func SetLastResort(l zerolog.Logger) {
	lastResort = l
}

// Handler composes exactly one [Formatter] with zero or more [Sink]s behind
// an optional per-handler [Filter].
type Handler struct {
	Formatter Formatter
	Sinks     []Sink
	Filter    Filter
}

// NewHandler constructs a Handler. filter may be nil (always accept).
func NewHandler(formatter Formatter, filter Filter, sinks ...Sink) *Handler {
	return &Handler{Formatter: formatter, Sinks: sinks, Filter: filter}
}

// Handle renders r once (if the handler's filter does not deny it) and
// fans the result out to every sink. A sink that returns an error, or that
// panics, is caught and reported to [lastResort]; it never propagates to the
// caller or affects any other sink.
func (h *Handler) Handle(r Record) {
	if h.Filter.apply(r) == Deny {
		return
	}
	buf := newBuffer()
	defer buf.Release()
	if h.Formatter != nil {
		if err := h.Formatter.Render(buf, r); err != nil {
			lastResort.Error().Err(err).Msg("logcore: formatter failed")
			return
		}
	}
	payload := []byte(*buf)
	for _, s := range h.Sinks {
		h.emit(s, r, payload)
	}
}

// emit calls s.Emit under a panic barrier.
func (h *Handler) emit(s Sink, r Record, payload []byte) {
	defer func() {
		if rec := recover(); rec != nil {
			lastResort.Error().Interface("panic", rec).Msg("logcore: sink panicked")
		}
	}()
	if err := s.Emit(r, payload); err != nil {
		lastResort.Error().Err(err).Msg("logcore: sink failed")
	}
}
