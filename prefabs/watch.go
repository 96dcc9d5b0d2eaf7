package prefabs

import (
	"log"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle is how long a file must stay quiet before Poll reports it.
// Editors often write a file in several steps.
const settle = 150 * time.Millisecond

// Watcher collects yaml files changed under the watched directories.
type Watcher struct {
	fsw  *fsnotify.Watcher
	done chan struct{}
	once sync.Once

	mu      sync.Mutex
	pending map[string]time.Time
}

func NewWatcher(dirs ...string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	for _, dir := range dirs {
		if err := fsw.Add(dir); err != nil {
			fsw.Close()
			return nil, err
		}
	}
	w := &Watcher{
		fsw:     fsw,
		done:    make(chan struct{}),
		pending: make(map[string]time.Time),
	}
	go w.collect()
	return w, nil
}

func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.done)
		err = w.fsw.Close()
	})
	return err
}

// Poll returns the base names of files that have settled since the last
// call, sorted. It never blocks.
func (w *Watcher) Poll() []string {
	return w.settled(time.Now())
}

func (w *Watcher) settled(now time.Time) []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	var names []string
	for path, at := range w.pending {
		if now.Sub(at) < settle {
			continue
		}
		delete(w.pending, path)
		names = append(names, filepath.Base(path))
	}
	slices.Sort(names)
	return slices.Compact(names)
}

func (w *Watcher) touch(path string, at time.Time) {
	w.mu.Lock()
	w.pending[path] = at
	w.mu.Unlock()
}

func (w *Watcher) collect() {
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if isSpecFile(ev.Name) {
				w.touch(ev.Name, time.Now())
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			log.Printf("prefabs: watch: %v", err)
		}
	}
}

func isSpecFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
