package ast

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// suffixFilter keeps .ts files and skips node_modules.
type suffixFilter struct{}

func (suffixFilter) Match(rel string) bool {
	return strings.HasSuffix(rel, ".ts")
}

func (suffixFilter) SkipDir(rel string) bool {
	return filepath.Base(rel) == "node_modules"
}

func newTestWatcher(t *testing.T, root string) *Watcher {
	t.Helper()
	parsers := NewParserRegistry()
	parsers.Register("mock", []string{".ts"}, newMockFactory)

	w, err := NewWatcher(WatcherConfig{Root: root, Filter: suffixFilter{}, Parsers: parsers})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })
	return w
}

func nextEvent(t *testing.T, w *Watcher) WatchEvent {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	default:
		t.Fatal("expected a watch event")
	}
	return WatchEvent{}
}

func TestWatcher_FlushPending(t *testing.T) {
	root := t.TempDir()
	w := newTestWatcher(t, root)
	ctx := context.Background()
	file := filepath.Join(root, "a.ts")

	require.NoError(t, os.WriteFile(file, []byte("let a = 1;"), 0o644))
	w.handleFSEvent(fsnotify.Event{Name: file, Op: fsnotify.Create})
	w.flushPending(ctx)

	ev := nextEvent(t, w)
	assert.Equal(t, OpCreate, ev.Operation)
	assert.Equal(t, file, ev.Path)
	require.NotNil(t, ev.Result)
	assert.Equal(t, []byte("let a = 1;"), ev.Result.Source)

	// Same content again: dropped by hash.
	w.handleFSEvent(fsnotify.Event{Name: file, Op: fsnotify.Write})
	w.flushPending(ctx)
	assert.Empty(t, w.Events())

	require.NoError(t, os.WriteFile(file, []byte("let a = 2;"), 0o644))
	w.handleFSEvent(fsnotify.Event{Name: file, Op: fsnotify.Write})
	w.flushPending(ctx)
	assert.Equal(t, OpModify, nextEvent(t, w).Operation)

	require.NoError(t, os.Remove(file))
	w.handleFSEvent(fsnotify.Event{Name: file, Op: fsnotify.Remove})
	w.flushPending(ctx)
	assert.Equal(t, OpDelete, nextEvent(t, w).Operation)
	_, ok := w.GetHash(file)
	assert.False(t, ok)
}

func TestWatcher_Debounce(t *testing.T) {
	root := t.TempDir()
	w := newTestWatcher(t, root)
	file := filepath.Join(root, "a.ts")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	for range 5 {
		w.handleFSEvent(fsnotify.Event{Name: file, Op: fsnotify.Write})
	}
	w.flushPending(context.Background())

	assert.Len(t, w.Events(), 1, "bursts of writes collapse into one event")
}

func TestWatcher_Filter(t *testing.T) {
	root := t.TempDir()
	w := newTestWatcher(t, root)

	for _, name := range []string{"notes.md", "node_modules/lib.js"} {
		path := filepath.Join(root, name)
		w.handleFSEvent(fsnotify.Event{Name: path, Op: fsnotify.Write})
	}
	w.pendingMu.Lock()
	assert.Empty(t, w.pending)
	w.pendingMu.Unlock()
}

func TestWatcher_KnownHash(t *testing.T) {
	root := t.TempDir()
	w := newTestWatcher(t, root)
	file := filepath.Join(root, "a.ts")
	content := []byte("const x = 1;")
	require.NoError(t, os.WriteFile(file, content, 0o644))

	// Files linted before watching started are not reported again.
	w.SetHash(file, ComputeHash(content))
	w.handleFSEvent(fsnotify.Event{Name: file, Op: fsnotify.Write})
	w.flushPending(context.Background())
	assert.Empty(t, w.Events())
}

func TestWatcher_Start(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "src"), 0o755))
	w := newTestWatcher(t, root)
	w.config.DebounceDelay = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, w.Start(ctx))

	file := filepath.Join(root, "src", "b.ts")
	require.NoError(t, os.WriteFile(file, []byte("let b;"), 0o644))

	select {
	case ev := <-w.Events():
		assert.Equal(t, file, ev.Path)
		assert.NoError(t, ev.Error)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watch event")
	}

	cancel()
	for range w.Events() {
		// Drain until processEvents closes the channel.
	}
}

func TestNewWatcher_RequiresFilter(t *testing.T) {
	_, err := NewWatcher(WatcherConfig{Root: t.TempDir()})
	assert.Error(t, err)
}
