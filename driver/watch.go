// By Navid M (c)
// Date: 2025
// License: GPL3
//
// Watch mode: re-translate units as they change on disk.

package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"pytoc/logger"
	"pytoc/translator"
)

// Watcher re-translates source files under a root when they are written or
// created. Rapid successive events for one file are debounced.
type Watcher struct {
	d        *Driver
	root     string
	fs       *fsnotify.Watcher
	debounce time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	pending chan string
	done    chan struct{}

	// OnTranslate, when set, is called after each attempt.
	OnTranslate func(path, output string, err error)
}

// NewWatcher registers every non-excluded directory under root. Events are
// buffered from this point on, before Run is called.
func (d *Driver) NewWatcher(root string) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	w := &Watcher{
		d:        d,
		root:     root,
		fs:       fw,
		debounce: d.opts.Debounce,
		timers:   make(map[string]*time.Timer),
		pending:  make(chan string, 64),
		done:     make(chan struct{}),
	}
	if err := w.addTree(root); err != nil {
		fw.Close()
		return nil, err
	}
	return w, nil
}

func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if isExcluded(path, w.root, w.d.opts.Exclude) {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			return errors.Wrapf(err, "failed to watch %s", path)
		}
		return nil
	})
}

// Run processes events until ctx is done. Translations happen one at a time
// on a single translator.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.stop()

	tr, err := translator.New(w.d.opts.Translator...)
	if err != nil {
		return err
	}
	defer tr.Close()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(event)

		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			w.d.log.Warnw("watcher error", logger.FieldError, err)

		case path := <-w.pending:
			out, err := w.d.translateFile(tr, path)
			if w.OnTranslate != nil {
				w.OnTranslate(path, out, err)
			}
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return
	}
	if isExcluded(event.Name, w.root, w.d.opts.Exclude) {
		return
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		return
	}
	if info.IsDir() {
		if event.Has(fsnotify.Create) {
			if err := w.addTree(event.Name); err != nil {
				w.d.log.Warnw("failed to watch new directory", logger.FieldFile, event.Name, logger.FieldError, err)
			}
		}
		return
	}
	if !info.Mode().IsRegular() || !strings.HasSuffix(event.Name, w.d.opts.SourceExt) {
		return
	}
	w.schedule(event.Name)
}

// schedule restarts the debounce timer for path.
func (w *Watcher) schedule(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if t, ok := w.timers[path]; ok {
		t.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		w.mu.Lock()
		delete(w.timers, path)
		w.mu.Unlock()

		select {
		case w.pending <- path:
		case <-w.done:
		}
	})
}

func (w *Watcher) stop() {
	w.mu.Lock()
	for _, t := range w.timers {
		t.Stop()
	}
	w.timers = map[string]*time.Timer{}
	w.mu.Unlock()

	close(w.done)
	w.fs.Close()
}

// Watch translates every unit under root once, then keeps re-translating
// changed units until ctx is done.
func (d *Driver) Watch(ctx context.Context, root string) error {
	w, err := d.NewWatcher(root)
	if err != nil {
		return err
	}
	if _, err := d.Run(ctx, root); err != nil {
		w.stop()
		return err
	}
	return w.Run(ctx)
}
