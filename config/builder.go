package config

import (
	"fmt"

	"github.com/quay/logcore"
	"github.com/quay/logcore/sink"
)

// Build parses a top-level logger configuration document and constructs a
// fully wired [logcore.Logger]. The document shape is:
//
//	filter:                  # optional, applies to the whole logger
//	  type: severity
//	  threshold: WARNING
//	handlers:
//	  - formatter:
//	      type: string
//	      pattern: "{timestamp}: {message}"
//	    filter: {...}        # optional, applies to this handler only
//	    sinks:
//	      - type: console
//	        async:           # optional; wraps this sink
//	          capacity_exp: 8
//	          overflow: block
func Build(reg *Registry, doc Node) (*logcore.Logger, error) {
	var loggerFilter logcore.Filter
	if f, ok := doc.Field("filter"); ok {
		built, err := reg.buildFilter(f)
		if err != nil {
			return nil, err
		}
		loggerFilter = built
	}

	handlersNode, ok := doc.Field("handlers")
	if !ok {
		return nil, &NodeError{Path: doc.Path(), Err: fmt.Errorf("config: document has no \"handlers\" list")}
	}

	var handlers []*logcore.Handler
	err := handlersNode.Each(func(hn Node) error {
		h, err := buildHandlerNode(reg, hn)
		if err != nil {
			return err
		}
		handlers = append(handlers, h)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return logcore.NewLogger(loggerFilter, handlers...), nil
}

// buildHandlerNode resolves a handler node's formatter, optional filter and
// sinks, then dispatches to the registry's handler-factory family (keyed on
// the node's "type" field, default "blocking") to assemble the handler
// itself.
func buildHandlerNode(reg *Registry, n Node) (*logcore.Handler, error) {
	formatterNode, ok := n.Field("formatter")
	if !ok {
		return nil, &NodeError{Path: n.Path(), Err: fmt.Errorf("config: handler has no \"formatter\"")}
	}
	f, err := reg.buildFormatter(formatterNode)
	if err != nil {
		return nil, err
	}

	var handlerFilter logcore.Filter
	if fn, ok := n.Field("filter"); ok {
		handlerFilter, err = reg.buildFilter(fn)
		if err != nil {
			return nil, err
		}
	}

	sinksNode, ok := n.Field("sinks")
	if !ok {
		return nil, &NodeError{Path: n.Path(), Err: fmt.Errorf("config: handler has no \"sinks\" list")}
	}

	var sinks []logcore.Sink
	err = sinksNode.Each(func(sn Node) error {
		s, err := buildSinkMaybeAsync(reg, sn)
		if err != nil {
			return err
		}
		sinks = append(sinks, s)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return reg.buildHandler(n, f, handlerFilter, sinks)
}

func buildSinkMaybeAsync(reg *Registry, n Node) (logcore.Sink, error) {
	s, err := reg.buildSink(n)
	if err != nil {
		return nil, err
	}

	asyncNode, ok := n.Field("async")
	if !ok {
		return s, nil
	}

	capExpNode, _ := asyncNode.Field("capacity_exp")
	capExp := capExpNode.IntOr(4)
	policy := sink.DropSilently
	if p, ok := asyncNode.Field("overflow"); ok {
		name, err := p.String()
		if err != nil {
			return nil, err
		}
		switch name {
		case "error":
			policy = sink.DropWithError
		case "block":
			policy = sink.Block
		case "silent":
			policy = sink.DropSilently
		default:
			return nil, &NodeError{Path: p.Path(), Err: fmt.Errorf("config: unknown overflow policy %q", name)}
		}
	}

	async, err := sink.NewAsync(s, capExp, policy)
	if err != nil {
		return nil, &NodeError{Path: asyncNode.Path(), Err: err}
	}
	return async, nil
}
