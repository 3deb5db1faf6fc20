//go:build linux

package logcore

import "golang.org/x/sys/unix"

// tid returns the OS thread id of the calling goroutine's underlying thread.
//
// Go does not pin goroutines to OS threads, so this value is best-effort: it
// identifies whichever thread happened to run the call, mirroring the
// source's "platform-native thread handle" as closely as the runtime allows.
func tid() int64 {
	return int64(unix.Gettid())
}
