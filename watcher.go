package main

import (
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 300 * time.Millisecond

// FileChangeMsg is sent when the store file changes outside the session
type FileChangeMsg struct {
	Path    string
	Deleted bool
}

// DebouncedRefreshMsg signals that a burst of changes has settled
type DebouncedRefreshMsg struct{}

// Watcher wraps fsnotify to watch the store directory. Editors replace files
// by rename, so the directory is watched rather than the file itself.
type Watcher struct {
	watcher *fsnotify.Watcher
	file    string
}

func NewWatcher(store *Store) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if err := w.Add(store.Dir()); err != nil {
		w.Close()
		return nil, err
	}

	return &Watcher{watcher: w, file: filepath.Clean(store.Path())}, nil
}

// WatchCmd returns a BubbleTea command that blocks until the store file changes
func (w *Watcher) WatchCmd() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}

				if filepath.Clean(event.Name) != w.file {
					continue
				}

				if event.Has(fsnotify.Chmod) && !event.Has(fsnotify.Write) {
					continue
				}

				deleted := event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)
				return FileChangeMsg{Path: event.Name, Deleted: deleted}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				logger.Warn().Err(err).Msg("watcher error")
			}
		}
	}
}

func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Debouncer coalesces rapid file change events into a single refresh
type Debouncer struct {
	mu       sync.Mutex
	timer    *time.Timer
	duration time.Duration
	program  *tea.Program
}

func NewDebouncer(d time.Duration) *Debouncer {
	return &Debouncer{duration: d}
}

// SetProgram sets the BubbleTea program to send messages to
func (d *Debouncer) SetProgram(p *tea.Program) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.program = p
}

// Trigger starts or resets the debounce timer
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.duration, func() {
		d.mu.Lock()
		p := d.program
		d.mu.Unlock()

		if p != nil {
			p.Send(DebouncedRefreshMsg{})
		}
	})
}

// Stop cancels a pending refresh
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}
}
