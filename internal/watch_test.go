package internal

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/gnolang/tmscope/internal/types"
)

type report struct {
	filename string
	issues   []tt.Issue
}

func TestWatcher(t *testing.T) {
	t.Parallel()
	engine := blockEngine(t, nil)
	dir := t.TempDir()

	w, err := engine.NewWatcher(dir)
	require.NoError(t, err)

	reports := make(chan report, 16)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(filename string, issues []tt.Issue) {
			select {
			case reports <- report{filename, issues}:
			default:
			}
		})
	}()

	writeTestFile(t, dir, "notes.txt", "{")
	filename := writeTestFile(t, dir, "open.blk", "{")

	select {
	case r := <-reports:
		assert.Equal(t, filename, r.filename)
		require.Len(t, r.issues, 1)
		assert.Equal(t, "unterminated-span", r.issues[0].Rule)
	case <-time.After(5 * time.Second):
		t.Fatal("no report for the changed file")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestNewWatcherMissingDir(t *testing.T) {
	t.Parallel()
	engine := blockEngine(t, nil)

	_, err := engine.NewWatcher(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
