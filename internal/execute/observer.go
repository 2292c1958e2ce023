package execute

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"assay/internal/api"
	"assay/pkg/logging"

	"github.com/fsnotify/fsnotify"
)

// Observer watches for side effects while an operation runs. Watch
// returns a stop function that ends observation and reports what was
// seen. Observation is passive: it never alters the call outcome.
type Observer interface {
	Watch(ctx context.Context) (stop func() []api.SideEffect, err error)
}

// NoopObserver observes nothing. It serves deployments where no
// observation capability is available.
type NoopObserver struct{}

// Watch returns a stop function that reports no effects.
func (NoopObserver) Watch(ctx context.Context) (func() []api.SideEffect, error) {
	return func() []api.SideEffect { return nil }, nil
}

// FSObserver watches a workspace tree with fsnotify and records file
// creations, modifications and deletions as side effects.
type FSObserver struct {
	root string
}

// NewFSObserver creates an observer for the given workspace directory.
func NewFSObserver(root string) *FSObserver {
	return &FSObserver{root: root}
}

// Watch starts watching the workspace tree. The returned stop function
// closes the watcher and returns the deduplicated effects in path order.
func (o *FSObserver) Watch(ctx context.Context) (func() []api.SideEffect, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch every directory in the tree; fsnotify does not recurse
	err = filepath.WalkDir(o.root, func(path string, entry os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return nil, err
	}

	var (
		mu      sync.Mutex
		effects = make(map[string]api.SideEffect) // keyed by type+path
		done    = make(chan struct{})
		stopped = make(chan struct{})
	)

	record := func(effect api.SideEffect) {
		mu.Lock()
		defer mu.Unlock()
		key := string(effect.Type) + "|" + effect.Resource
		if _, seen := effects[key]; !seen {
			effects[key] = effect
		}
	}

	go func() {
		defer close(stopped)
		for {
			select {
			case <-ctx.Done():
				return
			case <-done:
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				o.handleEvent(event, watcher, record)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logging.Warn("Engine", "Workspace watcher error: %v", err)
			}
		}
	}()

	stop := func() []api.SideEffect {
		close(done)
		watcher.Close()
		<-stopped

		mu.Lock()
		defer mu.Unlock()
		out := make([]api.SideEffect, 0, len(effects))
		for _, effect := range effects {
			out = append(out, effect)
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Resource != out[j].Resource {
				return out[i].Resource < out[j].Resource
			}
			return out[i].Type < out[j].Type
		})
		return out
	}

	return stop, nil
}

func (o *FSObserver) handleEvent(event fsnotify.Event, watcher *fsnotify.Watcher, record func(api.SideEffect)) {
	rel, err := filepath.Rel(o.root, event.Name)
	if err != nil {
		rel = event.Name
	}

	switch {
	case event.Op&fsnotify.Create == fsnotify.Create:
		record(api.SideEffect{
			Type:        api.EffectFileCreated,
			Description: "file created: " + rel,
			Resource:    rel,
			Timestamp:   time.Now(),
		})
		// New directories must be watched too or writes inside them
		// go unseen
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := watcher.Add(event.Name); err != nil {
				logging.Debug("Engine", "Failed to watch new directory %s: %v", event.Name, err)
			}
		}
	case event.Op&fsnotify.Write == fsnotify.Write:
		record(api.SideEffect{
			Type:        api.EffectFileModified,
			Description: "file modified: " + rel,
			Resource:    rel,
			Timestamp:   time.Now(),
		})
	case event.Op&fsnotify.Remove == fsnotify.Remove:
		record(api.SideEffect{
			Type:        api.EffectFileDeleted,
			Description: "file deleted: " + rel,
			Resource:    rel,
			Timestamp:   time.Now(),
		})
	case event.Op&fsnotify.Rename == fsnotify.Rename:
		// The new name arrives as a separate create event
		record(api.SideEffect{
			Type:        api.EffectFileDeleted,
			Description: "file renamed away: " + rel,
			Resource:    rel,
			Timestamp:   time.Now(),
		})
	}
}
