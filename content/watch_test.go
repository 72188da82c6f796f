package content

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePayload(t *testing.T, path, bio string) {
	t.Helper()
	p := remotePayload()
	p.Biography.Text = bio
	raw, err := json.Marshal(p)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, raw, 0o644))
}

func TestWatcher_ClearsCacheOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	writePayload(t, path, "first")

	p := NewProvider(Options{Source: FileSource{Path: path}, Enabled: true, CacheDuration: time.Hour})
	require.Equal(t, "first", p.AllData(context.Background()).Biography.Text)

	w, err := NewWatcher(p, path, nil)
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	writePayload(t, path, "second")

	assert.Eventually(t, func() bool {
		return p.AllData(context.Background()).Biography.Text == "second"
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatcher_IgnoresSiblingFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.json")
	writePayload(t, path, "first")

	p := NewProvider(Options{Source: FileSource{Path: path}, Enabled: true, CacheDuration: time.Hour})
	p.AllData(context.Background())

	w, err := NewWatcher(p, path, nil)
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = w.Run(ctx) }()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0o644))
	time.Sleep(100 * time.Millisecond)

	_, ok := p.fresh()
	assert.True(t, ok, "cache untouched by unrelated files")
}

func TestNewWatcher_MissingDirectory(t *testing.T) {
	p := NewProvider(Options{})
	_, err := NewWatcher(p, filepath.Join(t.TempDir(), "nope", "data.json"), nil)
	require.Error(t, err)
}
