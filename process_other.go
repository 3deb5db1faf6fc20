//go:build !linux

package logcore

import "os"

// tid falls back to the process id on platforms where x/sys does not expose
// a native thread-id syscall. This keeps Record.TID well-defined everywhere
// at the cost of precision off Linux.
func tid() int64 {
	return int64(os.Getpid())
}
