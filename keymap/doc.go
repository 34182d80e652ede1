/*
Package keymap implements Unicorn's immutable trigger trie.

A keymap is a rooted tree of single-rune edges. Each node carries an
ordered list of candidate output strings for the prefix spelled out by the
path from the root, and a set of children keyed by the next input rune.
The tree is built once, from a JSON description, and is safe to share by
pointer across any number of engines afterward.

----------------------------------------------------------------------

# BSD License

All rights reserved. License information is available in the LICENSE file.
*/
package keymap

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'keymap'
func tracer() tracing.Trace {
	return tracing.Select("keymap")
}
