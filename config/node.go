// Package config builds a wired [logcore.Logger] from a YAML document: a
// node tree (via gopkg.in/yaml.v3's cursor-preserving yaml.Node) walked by a
// path-aware accessor, a registry mapping named component kinds to
// factories, and a builder that assembles handlers, filters and sinks
// (including async wrapping) into a running logger.
package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Node wraps a *yaml.Node together with the JSON-pointer-style path that
// reached it (e.g. "/handlers/0/sink"), so errors can cite both a source
// line/column and a logical location without every accessor threading a
// path string by hand.
type Node struct {
	raw  *yaml.Node
	path string
}

// ParseDocument parses data as a YAML document and returns its root content
// node. An empty document yields a zero Node (IsZero reports true).
func ParseDocument(data []byte) (Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Node{}, fmt.Errorf("config: parsing document: %w", err)
	}
	if len(doc.Content) == 0 {
		return Node{}, nil
	}
	return Node{raw: doc.Content[0], path: ""}, nil
}

// IsZero reports whether n carries no underlying node.
func (n Node) IsZero() bool { return n.raw == nil }

// Path returns the JSON-pointer-style path that reached n, e.g.
// "/handlers/0/sinks/1".
func (n Node) Path() string {
	if n.path == "" {
		return "/"
	}
	return n.path
}

// Line returns the 1-based source line n.raw started at, or 0 for a zero
// Node.
func (n Node) Line() int {
	if n.raw == nil {
		return 0
	}
	return n.raw.Line
}

// Column returns the 1-based source column n.raw started at, or 0 for a
// zero Node.
func (n Node) Column() int {
	if n.raw == nil {
		return 0
	}
	return n.raw.Column
}

// Field returns the value node mapped to key on n, which must be a mapping
// node. ok is false if n is not a mapping or has no such key.
func (n Node) Field(key string) (child Node, ok bool) {
	if n.raw == nil || n.raw.Kind != yaml.MappingNode {
		return Node{}, false
	}
	for i := 0; i+1 < len(n.raw.Content); i += 2 {
		if n.raw.Content[i].Value == key {
			return Node{raw: n.raw.Content[i+1], path: n.path + "/" + key}, true
		}
	}
	return Node{}, false
}

// Len returns the number of elements in n, which must be a sequence node;
// 0 otherwise.
func (n Node) Len() int {
	if n.raw == nil || n.raw.Kind != yaml.SequenceNode {
		return 0
	}
	return len(n.raw.Content)
}

// Index returns the i'th element of n, which must be a sequence node. ok is
// false if n is not a sequence or i is out of range.
func (n Node) Index(i int) (child Node, ok bool) {
	if n.raw == nil || n.raw.Kind != yaml.SequenceNode || i < 0 || i >= len(n.raw.Content) {
		return Node{}, false
	}
	return Node{raw: n.raw.Content[i], path: fmt.Sprintf("%s/%d", n.path, i)}, true
}

// Each calls fn with every element of n, which must be a sequence node,
// stopping at the first error.
func (n Node) Each(fn func(Node) error) error {
	for i := 0; i < n.Len(); i++ {
		child, _ := n.Index(i)
		if err := fn(child); err != nil {
			return err
		}
	}
	return nil
}

// String decodes n as a scalar string.
func (n Node) String() (string, error) {
	var s string
	if err := n.Decode(&s); err != nil {
		return "", err
	}
	return s, nil
}

// StringOr decodes n as a scalar string, returning def if n is zero.
func (n Node) StringOr(def string) string {
	if n.IsZero() {
		return def
	}
	s, err := n.String()
	if err != nil {
		return def
	}
	return s
}

// Int decodes n as a scalar integer.
func (n Node) Int() (int, error) {
	var i int
	if err := n.Decode(&i); err != nil {
		return 0, err
	}
	return i, nil
}

// IntOr decodes n as a scalar integer, returning def if n is zero.
func (n Node) IntOr(def int) int {
	if n.IsZero() {
		return def
	}
	i, err := n.Int()
	if err != nil {
		return def
	}
	return i
}

// Bool decodes n as a scalar boolean.
func (n Node) Bool() (bool, error) {
	var b bool
	if err := n.Decode(&b); err != nil {
		return false, err
	}
	return b, nil
}

// Decode unmarshals n's underlying node into v, per yaml.Node.Decode.
func (n Node) Decode(v any) error {
	if n.raw == nil {
		return &NodeError{Path: n.path, Err: fmt.Errorf("config: missing node")}
	}
	if err := n.raw.Decode(v); err != nil {
		return &NodeError{Path: n.path, Line: n.raw.Line, Column: n.raw.Column, Err: err}
	}
	return nil
}

// NodeError reports a failure decoding or interpreting a [Node], citing
// both its logical path and source position.
type NodeError struct {
	Path         string
	Line, Column int
	Err          error
}

func (e *NodeError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("config: %s (line %d, column %d): %s", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("config: %s: %s", e.Path, e.Err)
}

func (e *NodeError) Unwrap() error { return e.Err }
