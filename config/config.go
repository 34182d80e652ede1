package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// KeymapConfig configures where the shell loads its keymap from.
type KeymapConfig struct {
	Path  string `toml:"path"`
	Watch bool   `toml:"watch"`
}

// CandidatesConfig configures how a shell's candidate window behaves.
type CandidatesConfig struct {
	MaxVisible int      `toml:"max_visible"`
	CommitKeys []string `toml:"commit_keys"`
}

// Shell is the full set of shell-facing settings, loaded from an optional
// TOML file. It carries no engine behavior: the Functional Core reads none
// of this.
type Shell struct {
	Keymap     KeymapConfig     `toml:"keymap"`
	Candidates CandidatesConfig `toml:"candidates"`
}

// Default returns the built-in settings a shell uses when no config file
// is present.
func Default() Shell {
	return Shell{
		Keymap: KeymapConfig{
			Path:  "keymaps/default.json",
			Watch: false,
		},
		Candidates: CandidatesConfig{
			MaxVisible: 9,
			CommitKeys: []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", " ", "\r"},
		},
	}
}

// Load reads shell settings from path. A missing file is not an error —
// Load returns Default() unchanged. A present-but-malformed file is.
func Load(path string) (Shell, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			tracer().Infof("no config file at %s, using defaults", path)
			return cfg, nil
		}
		return Shell{}, fmt.Errorf("reading config %s: %w", path, err)
	}
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return Shell{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	tracer().Infof("loaded config from %s", path)
	return cfg, nil
}

// Save writes the settings to path in TOML form, so a shell can persist
// user-edited settings (candidate window size, commit keys) between runs.
func Save(path string, cfg Shell) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating config %s: %w", path, err)
	}
	defer f.Close()
	enc := toml.NewEncoder(f)
	if err := enc.Encode(cfg); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}

// IsCommitKey reports whether s (as typed by the terminal reference shell)
// should trigger quick-commit of the highlighted candidate.
func (c CandidatesConfig) IsCommitKey(s string) bool {
	for _, k := range c.CommitKeys {
		if k == s {
			return true
		}
	}
	return false
}
