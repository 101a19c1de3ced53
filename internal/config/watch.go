package config

import (
	"context"
	"fmt"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Change is one reload of the watched file. Err is set when the new
// content could not be read or validated; Config is nil then.
type Change struct {
	Event  fsnotify.Event
	Config *Config
	Err    error
}

// Watcher delivers every change of a parameter file, in order.
type Watcher struct {
	v       *viper.Viper
	initial *Config
	changes chan Change

	done      chan struct{}
	closeOnce sync.Once
}

// NewWatcher loads path and starts watching it. Changes that happen before
// Run is called are buffered.
func NewWatcher(path string) (*Watcher, error) {
	if path == "" {
		return nil, fmt.Errorf("watch: config path required")
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		v:       v,
		initial: cfg,
		changes: make(chan Change, 16),
		done:    make(chan struct{}),
	}

	// viper re-reads the file before invoking the callback; decoding here
	// keeps all viper access on its watcher goroutine.
	v.OnConfigChange(func(e fsnotify.Event) {
		c, err := decode(v)
		w.deliver(Change{Event: e, Config: c, Err: err})
	})
	v.WatchConfig()

	return w, nil
}

// Initial returns the configuration loaded by NewWatcher.
func (w *Watcher) Initial() *Config {
	return w.initial
}

// deliver queues ch for Run. Once the watcher is closed, changes are
// dropped instead of blocking viper's watcher goroutine.
func (w *Watcher) deliver(ch Change) {
	select {
	case w.changes <- ch:
	case <-w.done:
	}
}

// Close stops delivery. It is safe to call more than once.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() { close(w.done) })
}

// Run calls fn for every change until ctx ends or the watcher is closed,
// and closes the watcher on return. fn runs on the caller's goroutine, one
// change at a time.
func (w *Watcher) Run(ctx context.Context, fn func(Change)) error {
	defer w.Close()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.done:
			return nil
		case ch := <-w.changes:
			fn(ch)
		}
	}
}
