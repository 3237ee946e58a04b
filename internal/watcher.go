package internal

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// EventType represents the type of filesystem event
type EventType int

const (
	EventCreate EventType = iota
	EventDelete
	EventRename
)

// WatchEvent is a filesystem event for a file with an accepted extension.
type WatchEvent struct {
	Type EventType
	Path string
}

// Watcher wraps fsnotify with extension filtering over a directory tree.
type Watcher struct {
	watcher *fsnotify.Watcher
	exts    []string
	events  chan *WatchEvent
	errors  chan error
	done    chan bool
}

// NewWatcher watches root and all its subdirectories. Subdirectories created
// later are added to the watch as they appear.
func NewWatcher(root string, exts []string) (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		watcher: fsWatcher,
		exts:    exts,
		events:  make(chan *WatchEvent, 100),
		errors:  make(chan error, 10),
		done:    make(chan bool, 1),
	}

	if err := w.addRecursive(root); err != nil {
		fsWatcher.Close()
		return nil, err
	}

	// Start processing events in background
	go w.processEvents()

	return w, nil
}

// addRecursive adds a directory and all its subdirectories to the watcher
func (w *Watcher) addRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return w.watcher.Add(path)
		}
		return nil
	})
}

// processEvents filters raw fsnotify events down to accepted files
func (w *Watcher) processEvents() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			if event.Op&fsnotify.Create == fsnotify.Create {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					w.addRecursive(event.Name)
					continue
				}
			}

			if !extAccepted(event.Name, w.exts) {
				continue
			}

			watchEvent := &WatchEvent{Path: event.Name}
			if event.Op&fsnotify.Create == fsnotify.Create {
				watchEvent.Type = EventCreate
			} else if event.Op&fsnotify.Remove == fsnotify.Remove {
				watchEvent.Type = EventDelete
			} else if event.Op&fsnotify.Rename == fsnotify.Rename {
				watchEvent.Type = EventRename
			} else {
				continue
			}

			select {
			case w.events <- watchEvent:
			default:
				// Event channel is full, drop event
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
				// Error channel is full, drop error
			}

		case <-w.done:
			return
		}
	}
}

// Events returns the channel of filtered watch events
func (w *Watcher) Events() <-chan *WatchEvent {
	return w.events
}

// Errors returns the channel of watcher errors
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and cleans up resources
func (w *Watcher) Close() error {
	close(w.done)
	return w.watcher.Close()
}
