/*
Package keymapfile is the shell-facing adapter between a keymap JSON file on
disk and package keymap. Acquiring bytes from disk, and reloading them when
the file changes, is a shell concern — the core engine package never
imports this package.

----------------------------------------------------------------------

# BSD License

All rights reserved. License information is available in the LICENSE file.
*/
package keymapfile

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'keymapfile'
func tracer() tracing.Trace {
	return tracing.Select("keymapfile")
}
