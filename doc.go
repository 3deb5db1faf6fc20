// Package logcore is a structured logging core: an in-process pipeline that
// accepts log events from application goroutines, filters them against a
// caller-supplied predicate, renders them into textual payloads under
// caller-chosen encodings, and delivers them to one or more configured
// sinks.
//
// The core is intentionally narrow. Concrete network transports, terminal
// coloring beyond what drives an external colorizer, syslog/journald
// protocol integration, and CLI/bootstrap code are treated as external
// collaborators; this package states only the interfaces it consumes from
// them.
//
// Data flow: an application goroutine calls [Logger.Log] (or [Logger.LogAttrs],
// [Logger.LogFunc]); the call is checked against the logger's [Filter], scoped
// attributes are collected from the [context.Context] (see [PushScope]),
// and the resulting [Record] is fanned out to every configured [Handler].
package logcore
