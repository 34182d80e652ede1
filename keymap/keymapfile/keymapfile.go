package keymapfile

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/vic0103520/unicorn/keymap"
)

// Load reads and parses the keymap document at path.
func Load(path string) (*keymap.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, keymap.NewIOError(err)
	}
	return keymap.ParseBytes(data)
}

// Watcher watches one keymap file for changes and reports freshly parsed
// roots (or load errors) through a callback, so a development shell can
// hot-reload its keymap without restarting.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	done      chan struct{}
}

// Watch starts watching path and invokes onReload with the newly parsed
// keymap every time the file is written. A malformed edit reports its
// parse error through onReload and leaves the previously loaded keymap in
// the caller's hands untouched — Watch never calls onReload with a nil
// root and a nil error.
func Watch(path string, onReload func(*keymap.Node, error)) (*Watcher, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, keymap.NewIOError(err)
	}
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, keymap.NewIOError(err)
	}
	// Watch the containing directory rather than the file itself: many
	// editors replace a file via rename-on-save, which would otherwise
	// silently stop delivering events for the original inode.
	if err := fsWatcher.Add(filepath.Dir(absPath)); err != nil {
		fsWatcher.Close()
		return nil, keymap.NewIOError(err)
	}
	w := &Watcher{fsWatcher: fsWatcher, path: absPath, done: make(chan struct{})}
	go w.loop(onReload)
	return w, nil
}

func (w *Watcher) loop(onReload func(*keymap.Node, error)) {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			root, err := Load(w.path)
			if err != nil {
				tracer().Errorf("keymap reload failed for %s: %v", w.path, err)
				onReload(nil, err)
				continue
			}
			tracer().Infof("keymap reloaded from %s", w.path)
			onReload(root, nil)
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			tracer().Errorf("keymap watch error for %s: %v", w.path, err)
			onReload(nil, err)
		}
	}
}

// Close stops the watcher and releases its file-system handle.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
		return nil
	default:
		close(w.done)
	}
	return w.fsWatcher.Close()
}
