/*
Package engine implements Unicorn's Functional Core: the deterministic,
single-threaded state machine that consumes one Unicode scalar at a time
and emits the ordered list of actions the host shell must apply.

Engine has no runtime errors and no logging dependency — every keystroke
is handled in bounded time and degenerates to Reject rather than failing.
Construction (loading a keymap) is the only place errors can occur; see
package keymap.

----------------------------------------------------------------------

# BSD License

All rights reserved. License information is available in the LICENSE file.
*/
package engine
