// Package watch provides the file watcher behind `bookingctl up --watch`.
// It observes the project tree with fsnotify and emits a debounced restart
// signal whenever a relevant file changes. What counts as relevant is
// decided by gitignore-style rules (see IgnoreRules) plus the project's
// optional .bookingignore file.
package watch

import (
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/FriptuLudmila/booking-service/pkg/logger"
)

// IgnoreFile is the per-project ignore rules file.
const IgnoreFile = ".bookingignore"

// DefaultDebounce batches bursts of events (editors write several times per
// save) into a single restart.
const DefaultDebounce = 400 * time.Millisecond

// Watcher observes a project tree and reports changes that warrant a
// service restart.
type Watcher struct {
	root     string
	rules    *IgnoreRules
	fsw      *fsnotify.Watcher
	events   chan string
	errors   chan error
	debounce time.Duration
	done     chan struct{}
}

// New creates a watcher for the project at root. Rules may be nil, in
// which case the defaults plus the project's .bookingignore apply.
func New(root string, rules *IgnoreRules) (*Watcher, error) {
	if rules == nil {
		rules = NewIgnoreRules()
		if err := rules.LoadFromFile(filepath.Join(root, IgnoreFile)); err != nil {
			return nil, err
		}
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		root:     root,
		rules:    rules,
		fsw:      fsw,
		events:   make(chan string, 1),
		errors:   make(chan error, 1),
		debounce: DefaultDebounce,
		done:     make(chan struct{}),
	}, nil
}

// Start registers the directory tree and begins emitting change events.
func (w *Watcher) Start() error {
	if err := w.addTree(w.root); err != nil {
		return err
	}
	go w.loop()
	return nil
}

// Events delivers the path of the most recent relevant change, debounced.
func (w *Watcher) Events() <-chan string { return w.events }

// Errors delivers watcher failures.
func (w *Watcher) Errors() <-chan error { return w.errors }

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}

// addTree walks the directory tree registering watches, skipping ignored
// directories entirely so node_modules churn never reaches the event loop.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return err
		}
		if rel != "." && w.rules.ShouldIgnore(rel, true) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var pending string
	fire := make(chan struct{}, 1)

	for {
		select {
		case <-w.done:
			return
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
			}
		case <-fire:
			select {
			case w.events <- pending:
			default:
			}
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if !w.relevant(ev) {
				continue
			}
			rel, err := filepath.Rel(w.root, ev.Name)
			if err != nil {
				rel = ev.Name
			}
			logger.Debugf("watch: %s %s", ev.Op, rel)

			// New directories need watches of their own.
			if ev.Op.Has(fsnotify.Create) {
				if info, statErr := os.Stat(ev.Name); statErr == nil && info.IsDir() {
					_ = w.addTree(ev.Name)
				}
			}

			pending = rel
			if timer == nil {
				timer = time.AfterFunc(w.debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			} else {
				timer.Reset(w.debounce)
			}
		}
	}
}

// relevant filters out ignored paths and no-op events.
func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Write) &&
		!ev.Op.Has(fsnotify.Remove) && !ev.Op.Has(fsnotify.Rename) {
		return false
	}
	rel, err := filepath.Rel(w.root, ev.Name)
	if err != nil {
		return false
	}
	info, statErr := os.Stat(ev.Name)
	isDir := statErr == nil && info.IsDir()
	return !w.rules.ShouldIgnore(rel, isDir)
}
