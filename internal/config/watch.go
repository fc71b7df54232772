package config

import (
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// Watcher monitors the loaded config file and delivers a freshly parsed
// Config whenever it changes on disk. Used by the TUI to pick up a new
// server URL or timeout without a restart.
type Watcher struct {
	Changes <-chan Config

	changes chan Config
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// NewWatcher creates a watcher for the config file viper resolved at
// startup. Returns nil without error when no config file is in use; a nil
// *Watcher is a valid no-op (its Stop does nothing, its Changes is nil).
func NewWatcher() (*Watcher, error) {
	path := viper.ConfigFileUsed()
	if path == "" {
		return nil, nil
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(path); err != nil {
		fw.Close()
		return nil, err
	}

	ch := make(chan Config, 1)
	w := &Watcher{
		Changes: ch,
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}
	go w.loop()
	return w, nil
}

// Stop closes the watcher and the Changes channel, so range loops over
// Changes terminate. Safe on a nil Watcher.
func (w *Watcher) Stop() {
	if w == nil {
		return
	}
	w.watcher.Close()
	<-w.done
}

func (w *Watcher) loop() {
	defer close(w.done)
	defer close(w.changes)

	// Editors often fire several events per save; debounce before re-reading.
	const debounce = 200 * time.Millisecond
	var pending *time.Timer
	var pendingC <-chan time.Time

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if pending == nil {
				pending = time.NewTimer(debounce)
				pendingC = pending.C
			} else {
				pending.Reset(debounce)
			}
		case <-pendingC:
			pending = nil
			pendingC = nil
			if err := viper.ReadInConfig(); err != nil {
				continue
			}
			cfg, err := Load()
			if err != nil {
				continue
			}
			select {
			case w.changes <- cfg:
			default:
			}
		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}
