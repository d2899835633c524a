package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	tt "github.com/gnolang/tmscope/internal/types"
)

// settle is how long a change is left alone before the file is read, so that
// a burst of writes is handled as one.
const settle = 100 * time.Millisecond

// Watcher re-runs an engine on the files that change below a set of directories.
type Watcher struct {
	engine  *Engine
	watcher *fsnotify.Watcher
}

// NewWatcher watches dirs and every directory below them.
func (e *Engine) NewWatcher(dirs ...string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("error creating watcher: %w", err)
	}
	w := &Watcher{engine: e, watcher: fw}
	for _, dir := range dirs {
		if err := w.addTree(dir); err != nil {
			fw.Close()
			return nil, fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

// Run handles changes until ctx is done, passing the issues of every changed
// file to report. The watcher is closed when Run returns.
func (w *Watcher) Run(ctx context.Context, report func(filename string, issues []tt.Issue)) error {
	defer w.watcher.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleFileEvent(ctx, event, report)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.engine.logger.Error("Watch error", zap.Error(err))
		}
	}
}

func (w *Watcher) handleFileEvent(ctx context.Context, event fsnotify.Event, report func(string, []tt.Issue)) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	info, err := os.Stat(event.Name)
	if err != nil {
		return
	}
	if info.IsDir() {
		if err := w.addTree(event.Name); err != nil {
			w.engine.logger.Error("Failed to watch directory", zap.String("dir", event.Name), zap.Error(err))
		}
		return
	}
	if _, ok := w.engine.GrammarFor(event.Name, nil); !ok {
		return
	}

	time.Sleep(settle)
	issues, err := w.engine.Run(ctx, event.Name)
	if err != nil {
		w.engine.logger.Error("Error processing file", zap.String("file", event.Name), zap.Error(err))
		return
	}
	report(event.Name, issues)
}
