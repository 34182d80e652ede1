package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"golang.org/x/term"

	"github.com/vic0103520/unicorn/action"
	"github.com/vic0103520/unicorn/config"
	"github.com/vic0103520/unicorn/engine"
	"github.com/vic0103520/unicorn/keymap"
	"github.com/vic0103520/unicorn/keymap/keymapfile"
)

func main() {
	keymapFlag := flag.String("keymap", "", "path to a keymap JSON file (overrides the config file)")
	configFlag := flag.String("config", "unicornctl.toml", "path to a shell config TOML file")
	flag.Parse()

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, "unicornctl: loading config:", err)
		os.Exit(1)
	}
	keymapPath := cfg.Keymap.Path
	if *keymapFlag != "" {
		keymapPath = *keymapFlag
	}

	eng, err := engine.NewFromPath(keymapPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "unicornctl: loading keymap:", err)
		os.Exit(1)
	}

	// Reloaded roots are handed to the main loop through this channel
	// rather than applied directly from the watcher goroutine: Engine is
	// not safe for concurrent use, and ReadRune only blocks between
	// keystrokes, so draining the channel there is enough to keep every
	// SetKeymap call on the same goroutine that drives ProcessKey.
	reloads := make(chan *keymap.Node, 1)

	var watcher *keymapfile.Watcher
	if cfg.Keymap.Watch {
		watcher, err = keymapfile.Watch(keymapPath, func(root *keymap.Node, loadErr error) {
			if loadErr != nil {
				tracer().Errorf("keymap reload failed: %v", loadErr)
				return
			}
			select {
			case reloads <- root:
			default:
			}
		})
		if err != nil {
			fmt.Fprintln(os.Stderr, "unicornctl: watching keymap:", err)
		}
	}
	if watcher != nil {
		defer watcher.Close()
	}

	fmt.Println("unicornctl — type trigger sequences, Ctrl-D to quit")
	if err := run(eng, cfg, reloads); err != nil && err != io.EOF {
		fmt.Fprintln(os.Stderr, "unicornctl:", err)
		os.Exit(1)
	}
}

// run drives the raw-terminal shell loop against one engine: read a rune,
// check it against the quick-commit keys, then feed it to the engine and
// apply whatever actions come back.
func run(eng *engine.Engine, cfg config.Shell, reloads <-chan *keymap.Node) error {
	fd := int(os.Stdin.Fd())
	oldState, rawErr := term.MakeRaw(fd)
	if rawErr == nil {
		defer term.Restore(fd, oldState)
	}

	reader := bufio.NewReader(os.Stdin)
	for {
		select {
		case root := <-reloads:
			eng.SetKeymap(root)
			fmt.Println("[keymap reloaded]")
		default:
		}

		r, _, err := reader.ReadRune()
		if err != nil {
			eng.Deactivate()
			return err
		}
		if r == 0x04 { // Ctrl-D: simulate focus loss
			eng.Deactivate()
			return nil
		}

		if quickCommit(eng, cfg, r) {
			continue
		}

		wasActive := eng.Active()
		actions := eng.ProcessKey(r)
		if action.IsReject(actions) {
			handleReject(eng, wasActive, r)
			continue
		}
		for _, a := range actions {
			apply(a)
		}
	}
}

// quickCommit handles digit keys and Space/Enter, which commit a visible
// candidate directly and bypass ProcessKey entirely. The core never sees
// these keys as anything special.
func quickCommit(eng *engine.Engine, cfg config.Shell, r rune) bool {
	cands := eng.GetCandidates()
	// The candidate window is only shown for nodes with at least two
	// candidates (ShowCandidates); with fewer, the key goes to ProcessKey.
	if len(cands) < 2 {
		return false
	}
	s := string(r)
	if !cfg.Candidates.IsCommitKey(s) {
		return false
	}
	idx := eng.SelectedIndex()
	if n, err := strconv.Atoi(s); err == nil && n >= 1 && n <= len(cands) {
		idx = n - 1
	}
	fmt.Printf("[commit] %s\n", cands[idx])
	eng.Deactivate()
	return true
}

// handleReject implements the implicit-commit-then-passthrough protocol:
// a rejected keystroke while a session was active commits whatever was
// in flight before the rejected rune is passed through.
func handleReject(eng *engine.Engine, wasActive bool, r rune) {
	if !wasActive {
		fmt.Printf("[passthrough] %c\n", r)
		return
	}
	cands := eng.GetCandidates()
	var text string
	switch {
	case len(cands) > 0:
		text = cands[0]
	default:
		text = eng.Buffer()
	}
	eng.Deactivate()
	fmt.Printf("[implicit-commit] %s\n[passthrough] %c\n", text, r)
}

func apply(a action.Action) {
	switch a.Kind {
	case action.Commit:
		fmt.Printf("[commit] %s\n", a.Text)
	case action.ShowCandidates:
		fmt.Printf("[compose] %s (candidates visible)\n", a.Text)
	case action.UpdateComposition:
		fmt.Printf("[compose] %s\n", a.Text)
	case action.Reject:
		fmt.Println("[reject]")
	}
}
