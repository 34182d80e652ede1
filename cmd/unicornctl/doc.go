/*
Command unicornctl is a reference shell for the Unicorn engine. It is not a
real platform input method: it drives one engine.Engine against raw
terminal keystrokes and prints the actions a real IME frontend would apply
(composition updates, candidate windows, final commits).

----------------------------------------------------------------------

# BSD License

All rights reserved. License information is available in the LICENSE file.
*/
package main

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'unicornctl'
func tracer() tracing.Trace {
	return tracing.Select("unicornctl")
}
