// Package dropfolder watches a directory tree and ingests PDF files dropped
// into it. Paths relative to the watched root become the hierarchical path of
// each document, so folder structure on disk carries over to the workspace
// tree.
package dropfolder

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/lexdesk-labs/lexdesk-cli/internal/core/domain"
	"github.com/lexdesk-labs/lexdesk-cli/internal/core/ports/driving"
	"github.com/lexdesk-labs/lexdesk-cli/internal/logger"
)

// DefaultSettle is how long a file must stay quiet before it is picked up.
// Copies into the folder arrive as a burst of write events.
const DefaultSettle = 500 * time.Millisecond

// Watcher ingests PDF files as they appear under a root directory.
type Watcher struct {
	service driving.WorkspaceService
	root    string
	settle  time.Duration

	fw *fsnotify.Watcher

	mu     sync.Mutex
	timers map[string]*time.Timer
	ready  chan string
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithSettle overrides the quiet period before a file is ingested.
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.settle = d
		}
	}
}

// New creates a watcher for root. The directory must exist.
func New(service driving.WorkspaceService, root string, opts ...Option) (*Watcher, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, err
	}

	w := &Watcher{
		service: service,
		root:    abs,
		settle:  DefaultSettle,
		timers:  make(map[string]*time.Timer),
		ready:   make(chan string, 16),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Run watches until ctx is cancelled. Existing subdirectories are watched
// recursively and new ones are added as they appear.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	w.fw = fw
	defer fw.Close()

	if err := w.watchTree(w.root); err != nil {
		return err
	}
	logger.Info("Watching %s for new PDF files", w.root)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case path := <-w.ready:
			w.ingest(ctx, path)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watch error: %v", err)
		}
	}
}

// handleEvent schedules eligible files and registers new directories.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return
	}

	if info.IsDir() {
		if event.Op&fsnotify.Create != 0 {
			if err := w.watchTree(event.Name); err != nil {
				logger.Warn("Cannot watch %s: %v", event.Name, err)
			}
		}
		return
	}

	if !eligible(filepath.Base(event.Name)) {
		return
	}
	w.schedule(event.Name)
}

// schedule (re)arms the settle timer for a file.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Reset(w.settle)
		return
	}
	w.timers[path] = time.AfterFunc(w.settle, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()
		w.ready <- path
	})
}

// ingest reads a settled file and hands it to the workspace.
func (w *Watcher) ingest(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		logger.Warn("Cannot read %s: %v", path, err)
		return
	}

	raw := domain.RawFile{
		Name:             filepath.Base(path),
		SizeBytes:        int64(len(data)),
		Bytes:            data,
		HierarchicalPath: relativePath(w.root, path),
	}

	result, err := w.service.IngestBatch(ctx, []domain.RawFile{raw})
	if err != nil {
		logger.Warn("Ingestion of %s failed: %v", raw.Name, err)
		return
	}
	if len(result.Failed) > 0 {
		logger.Warn("Ingestion of %s failed", raw.Name)
		return
	}
	logger.Info("Ingested %s", raw.HierarchicalPath)
}

// watchTree adds dir and every subdirectory beneath it to the watch set.
func (w *Watcher) watchTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if d.Name() != filepath.Base(dir) && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return w.fw.Add(path)
	})
}

// eligible reports whether a file name is worth ingesting. Hidden files and
// anything that is not a PDF are skipped.
func eligible(name string) bool {
	if strings.HasPrefix(name, ".") {
		return false
	}
	return strings.EqualFold(filepath.Ext(name), ".pdf")
}

// relativePath expresses path relative to root using forward slashes. Falls
// back to the bare file name when path is outside root.
func relativePath(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.Base(path)
	}
	return filepath.ToSlash(rel)
}
