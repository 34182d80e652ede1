package keymapfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vic0103520/unicorn/keymap"
)

const validKeymap = `{"children":{"\\":{"children":{"l":{"candidates":["λ"]}}}}}`
const invalidKeymap = `{"children":{"l":{`
const reloadedKeymap = `{"children":{"\\":{"children":{"l":{"candidates":["λ","←"]}}}}}`

func TestLoadValidKeymap(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keymap.json")
	require.NoError(t, os.WriteFile(path, []byte(validKeymap), 0o644))

	root, err := Load(path)
	require.NoError(t, err)
	node, ok := root.Child('\\')
	require.True(t, ok)
	node, ok = node.Child('l')
	require.True(t, ok)
	require.Equal(t, []string{"λ"}, node.Candidates())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keymap.json")
	require.NoError(t, os.WriteFile(path, []byte(validKeymap), 0o644))

	type event struct {
		root *keymap.Node
		err  error
	}
	events := make(chan event, 8)

	w, err := Watch(path, func(root *keymap.Node, loadErr error) {
		events <- event{root: root, err: loadErr}
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte(reloadedKeymap), 0o644))

	select {
	case ev := <-events:
		require.NoError(t, ev.err)
		node, ok := ev.root.Child('\\')
		require.True(t, ok)
		node, ok = node.Child('l')
		require.True(t, ok)
		require.Equal(t, []string{"λ", "←"}, node.Candidates())
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for keymap reload")
	}
}

func TestWatchReportsParseErrorOnMalformedEdit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keymap.json")
	require.NoError(t, os.WriteFile(path, []byte(validKeymap), 0o644))

	type event struct {
		root *keymap.Node
		err  error
	}
	events := make(chan event, 8)

	w, err := Watch(path, func(root *keymap.Node, loadErr error) {
		events <- event{root: root, err: loadErr}
	})
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(path, []byte(invalidKeymap), 0o644))

	select {
	case ev := <-events:
		require.Error(t, ev.err)
		require.Nil(t, ev.root)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload failure report")
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keymap.json")
	require.NoError(t, os.WriteFile(path, []byte(validKeymap), 0o644))

	w, err := Watch(path, func(*keymap.Node, error) {})
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
}
