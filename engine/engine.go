package engine

import (
	"io"
	"os"

	"github.com/vic0103520/unicorn/action"
	"github.com/vic0103520/unicorn/keymap"
)

const (
	backspace = 0x08
	trigger   = '\\'
)

// Engine is the sole mutable entity of the Functional Core: one composition
// session against an immutable keymap. One Engine is owned exclusively by
// one shell; concurrent calls on the same Engine are not supported. The
// keymap itself may be shared by any number of Engines.
type Engine struct {
	root          *keymap.Node
	active        bool
	buffer        []rune
	node          *keymap.Node
	selectedIndex int
}

// NewFromKeymap creates an Engine against an already-built keymap root.
// The returned Engine starts inactive.
func NewFromKeymap(root *keymap.Node) *Engine {
	return &Engine{root: root, node: root}
}

// NewFromJSON parses an in-memory keymap document and returns a fresh
// inactive Engine, or a *keymap.KeymapLoadError.
func NewFromJSON(data []byte) (*Engine, error) {
	root, err := keymap.ParseBytes(data)
	if err != nil {
		return nil, err
	}
	return NewFromKeymap(root), nil
}

// NewFromReader parses a keymap document streamed from r.
func NewFromReader(r io.Reader) (*Engine, error) {
	root, err := keymap.Parse(r)
	if err != nil {
		return nil, err
	}
	return NewFromKeymap(root), nil
}

// NewFromPath reads and parses the keymap document at path. This is the
// one place Engine touches the filesystem directly; richer on-disk policy
// (hot reload, file watching) lives in package keymap/keymapfile, outside
// the core.
func NewFromPath(path string) (*Engine, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, keymap.NewIOError(err)
	}
	return NewFromJSON(data)
}

// ProcessKey consumes one Unicode scalar and returns the ordered list of
// actions the shell must apply, in order. The list is never empty: at
// minimum it contains one Reject.
func (e *Engine) ProcessKey(c rune) []action.Action {
	switch {
	case !e.active:
		return e.processInactive(c)
	case c == backspace:
		return e.processBackspace()
	case c == trigger:
		return e.processRetrigger()
	default:
		return e.processContinuation(c)
	}
}

// processInactive handles a keystroke while no session is in progress: any
// root child may activate one, not only '\'. An inactive Engine rejects any
// character the root does not define.
func (e *Engine) processInactive(c rune) []action.Action {
	child, ok := e.root.Child(c)
	if !ok {
		return []action.Action{action.NewReject()}
	}
	return e.activate(c, child)
}

// activate starts a fresh session at the given root child and returns the
// composition action for it.
func (e *Engine) activate(c rune, node *keymap.Node) []action.Action {
	e.active = true
	e.buffer = []rune{c}
	e.node = node
	e.selectedIndex = 0
	return e.composeActions(e.bufferString())
}

// processBackspace removes the last rune of the buffer, walking the trie
// back up to the corresponding node, or deactivates entirely if the
// buffer would become empty.
func (e *Engine) processBackspace() []action.Action {
	if len(e.buffer) == 0 {
		// Defensive: the active⇔buffer-non-empty invariant should prevent
		// this from ever firing.
		e.deactivateState()
		return []action.Action{action.NewReject()}
	}
	if len(e.buffer) == 1 {
		e.deactivateState()
		return []action.Action{action.NewUpdateComposition("")}
	}
	e.buffer = e.buffer[:len(e.buffer)-1]
	node, ok := keymap.WalkString(e.root, e.bufferString())
	if !ok {
		// Unreachable: buffer is a prefix we already walked forward once.
		node = e.root
	}
	e.node = node
	e.selectedIndex = 0
	return e.composeActions(e.bufferString())
}

// processRetrigger handles a trigger keystroke arriving mid-session: a
// single keystroke both commits the in-flight composition and starts a
// fresh one.
func (e *Engine) processRetrigger() []action.Action {
	text := e.bufferString()
	var commitText string
	switch {
	case text == "\\":
		commitText = "\\"
	default:
		if cands := e.node.Candidates(); e.selectedIndex < len(cands) {
			commitText = cands[e.selectedIndex]
		} else {
			commitText = text
		}
	}
	commit := action.NewCommit(commitText)

	child, ok := e.root.Child(trigger)
	if !ok {
		// This keymap never configured '\' as a root child: treat it like
		// any other character instead of re-triggering.
		return e.processContinuation(trigger)
	}
	reactivated := e.activate(trigger, child)
	return append([]action.Action{commit}, reactivated...)
}

// processContinuation advances an in-progress session by one rune,
// committing immediately when it lands on a leaf with zero or one
// candidates.
func (e *Engine) processContinuation(c rune) []action.Action {
	next, ok := e.node.Child(c)
	if !ok {
		return []action.Action{action.NewReject()}
	}
	newBuffer := e.bufferString() + string(c)
	if next.IsLeaf() {
		cands := next.Candidates()
		switch len(cands) {
		case 1:
			e.deactivateState()
			return []action.Action{action.NewCommit(cands[0])}
		case 0:
			e.deactivateState()
			return []action.Action{action.NewCommit(newBuffer)}
		}
		// A leaf with >=2 candidates is still a valid point to show a
		// candidate window from; fall through to the push-and-show path.
	}
	e.buffer = append(e.buffer, c)
	e.node = next
	e.selectedIndex = 0
	return e.composeActions(e.bufferString())
}

// composeActions returns ShowCandidates when the current node has at
// least two candidates, else UpdateComposition — both carrying text.
func (e *Engine) composeActions(text string) []action.Action {
	if len(e.node.Candidates()) >= 2 {
		return []action.Action{action.NewShowCandidates(text)}
	}
	return []action.Action{action.NewUpdateComposition(text)}
}

// GetCandidates returns the candidate list of the current node, or nil if
// the engine is inactive.
func (e *Engine) GetCandidates() []string {
	if !e.active {
		return nil
	}
	cands := e.node.Candidates()
	if len(cands) == 0 {
		return nil
	}
	return append([]string(nil), cands...)
}

// SelectCandidate sets the selected candidate index. Out-of-range indices
// clamp to the nearest valid index rather than being ignored, so a shell
// that scrolled past a shrinking candidate list never leaves the engine
// pointing at a stale row.
func (e *Engine) SelectCandidate(index int) {
	if !e.active {
		return
	}
	cands := e.node.Candidates()
	if len(cands) == 0 {
		e.selectedIndex = 0
		return
	}
	if index < 0 {
		index = 0
	}
	if index >= len(cands) {
		index = len(cands) - 1
	}
	e.selectedIndex = index
}

// Deactivate forces the engine back to its inactive resting state. Used
// by the shell on focus loss or explicit cancel.
func (e *Engine) Deactivate() {
	e.deactivateState()
}

// SetKeymap swaps the underlying keymap, deactivating any in-flight
// composition. Shells that hot-reload a keymap file (package
// keymap/keymapfile) call this once a replacement root has parsed
// successfully.
func (e *Engine) SetKeymap(root *keymap.Node) {
	e.root = root
	e.deactivateState()
}

func (e *Engine) deactivateState() {
	e.active = false
	e.buffer = e.buffer[:0]
	e.node = e.root
	e.selectedIndex = 0
}

// Active reports whether a composition session is in progress.
func (e *Engine) Active() bool { return e.active }

// Buffer returns the raw trigger sequence typed so far, including the
// leading activator rune. Empty iff the engine is inactive.
func (e *Engine) Buffer() string { return e.bufferString() }

// SelectedIndex returns the currently selected candidate index.
func (e *Engine) SelectedIndex() int { return e.selectedIndex }

func (e *Engine) bufferString() string { return string(e.buffer) }
