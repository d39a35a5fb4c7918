package config

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces the event bursts editors produce when
// saving a file.
const debounceDelay = 100 * time.Millisecond

// Watcher reloads a config file when it changes on disk and hands
// each successfully loaded config to a callback. Configs that fail to
// load or validate are logged and dropped; the previous config stays
// in effect.
type Watcher struct {
	path     string
	onChange func(Config)
	log      *log.Logger

	fsw  *fsnotify.Watcher
	done chan struct{}
	wg   sync.WaitGroup

	mu      sync.Mutex
	pending *time.Timer
}

// Watch starts watching the config file. The containing directory is
// watched rather than the file itself, so saves that replace the file
// by rename are still observed.
func Watch(path string, onChange func(Config), logger *log.Logger) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	if logger == nil {
		logger = log.Default()
	}
	w := &Watcher{
		path:     abs,
		onChange: onChange,
		log:      logger,
		fsw:      fsw,
		done:     make(chan struct{}),
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	close(w.done)
	err := w.fsw.Close()
	w.wg.Wait()

	w.mu.Lock()
	if w.pending != nil {
		w.pending.Stop()
	}
	w.mu.Unlock()
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.scheduleReload()
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Error("config watch error", "err", err)
		}
	}
}

// scheduleReload arms the debounce timer, resetting it if a reload is
// already pending.
func (w *Watcher) scheduleReload() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.pending != nil {
		w.pending.Reset(debounceDelay)
		return
	}
	w.pending = time.AfterFunc(debounceDelay, w.reload)
}

func (w *Watcher) reload() {
	select {
	case <-w.done:
		return
	default:
	}

	w.mu.Lock()
	w.pending = nil
	w.mu.Unlock()

	cfg, err := Load(w.path)
	if err != nil {
		w.log.Error("config reload failed", "path", w.path, "err", err)
		return
	}
	w.log.Info("config reloaded", "path", w.path)
	w.onChange(cfg)
}
