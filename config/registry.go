package config

import (
	"fmt"

	"github.com/quay/logcore"
)

// FormatterFactory builds a [logcore.Formatter] from its configuration node.
type FormatterFactory func(Node) (logcore.Formatter, error)

// SinkFactory builds a [logcore.Sink] from its configuration node.
type SinkFactory func(Node) (logcore.Sink, error)

// FilterFactory builds a [logcore.Filter] from its configuration node.
type FilterFactory func(Node) (logcore.Filter, error)

// HandlerFactory builds a [logcore.Handler] from its configuration node,
// given the formatter, filter and sinks [Build] already resolved from
// that same node's "formatter", "filter" and "sinks" fields. Unlike the
// other factory kinds a handler factory cannot build its sub-components
// itself: the node doesn't carry enough information on its own to pick a
// formatter's type without another registry lookup that's already been
// done by the caller.
type HandlerFactory func(n Node, formatter logcore.Formatter, filter logcore.Filter, sinks []logcore.Sink) (*logcore.Handler, error)

// Registry maps a component kind ("formatter", "sink", "handler", "filter")
// and a caller-chosen type name to the factory that builds it, so [Build]
// can turn a "type: console" node into a *sink.Console without a
// hardcoded switch. Register built-ins with [NewRegistry]; add
// application-specific kinds with the Register* methods before calling
// [Build].
type Registry struct {
	formatters map[string]FormatterFactory
	sinks      map[string]SinkFactory
	handlers   map[string]HandlerFactory
	filters    map[string]FilterFactory
}

// NewRegistry returns a Registry preloaded with the standard formatter,
// sink, handler and filter kinds this module ships.
func NewRegistry() *Registry {
	r := &Registry{
		formatters: make(map[string]FormatterFactory),
		sinks:      make(map[string]SinkFactory),
		handlers:   make(map[string]HandlerFactory),
		filters:    make(map[string]FilterFactory),
	}
	registerBuiltins(r)
	return r
}

// RegisterFormatter adds or replaces the factory for the formatter kind
// named typeName.
func (r *Registry) RegisterFormatter(typeName string, f FormatterFactory) {
	r.formatters[typeName] = f
}

// RegisterSink adds or replaces the factory for the sink kind named
// typeName.
func (r *Registry) RegisterSink(typeName string, f SinkFactory) {
	r.sinks[typeName] = f
}

// RegisterHandler adds or replaces the factory for the handler kind named
// typeName.
func (r *Registry) RegisterHandler(typeName string, f HandlerFactory) {
	r.handlers[typeName] = f
}

// RegisterFilter adds or replaces the factory for the filter kind named
// typeName.
func (r *Registry) RegisterFilter(typeName string, f FilterFactory) {
	r.filters[typeName] = f
}

func (r *Registry) buildFormatter(n Node) (logcore.Formatter, error) {
	typeName, err := typeOf(n)
	if err != nil {
		return nil, err
	}
	f, ok := r.formatters[typeName]
	if !ok {
		return nil, &NodeError{Path: n.Path(), Err: fmt.Errorf("config: unknown formatter type %q", typeName)}
	}
	return f(n)
}

func (r *Registry) buildSink(n Node) (logcore.Sink, error) {
	typeName, err := typeOf(n)
	if err != nil {
		return nil, err
	}
	s, ok := r.sinks[typeName]
	if !ok {
		return nil, &NodeError{Path: n.Path(), Err: fmt.Errorf("config: unknown sink type %q", typeName)}
	}
	return s(n)
}

// buildHandler dispatches n's "type" field (default "blocking") to the
// matching registered [HandlerFactory], passing along the formatter, filter
// and sinks the caller already built for n.
func (r *Registry) buildHandler(n Node, formatter logcore.Formatter, filter logcore.Filter, sinks []logcore.Sink) (*logcore.Handler, error) {
	typeName := "blocking"
	if t, ok := n.Field("type"); ok {
		s, err := t.String()
		if err != nil {
			return nil, err
		}
		typeName = s
	}
	h, ok := r.handlers[typeName]
	if !ok {
		return nil, &NodeError{Path: n.Path(), Err: fmt.Errorf("config: unknown handler type %q", typeName)}
	}
	return h(n, formatter, filter, sinks)
}

func (r *Registry) buildFilter(n Node) (logcore.Filter, error) {
	typeName, err := typeOf(n)
	if err != nil {
		return nil, err
	}
	f, ok := r.filters[typeName]
	if !ok {
		return nil, &NodeError{Path: n.Path(), Err: fmt.Errorf("config: unknown filter type %q", typeName)}
	}
	return f(n)
}

func typeOf(n Node) (string, error) {
	t, ok := n.Field("type")
	if !ok {
		return "", &NodeError{Path: n.Path(), Err: fmt.Errorf("config: missing required \"type\" field")}
	}
	return t.String()
}
