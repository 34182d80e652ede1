/*
Package config loads the shell-facing settings a reference Unicorn shell
needs that the Functional Core has no opinion about: which keymap file to
load, whether to watch it for hot-reload, and which keys the shell treats
as quick-commit keys for a visible candidate window.

----------------------------------------------------------------------

# BSD License

All rights reserved. License information is available in the LICENSE file.
*/
package config

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'config'
func tracer() tracing.Trace {
	return tracing.Select("config")
}
