package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/mocklingo/admin-dashboard-tui/internal/logger"
)

// FileBackend persists the session record as a JSON key-value file and
// watches it for external changes, so that deleting or editing the file
// (an external logout) is observed by the running dashboard.
type FileBackend struct {
	mu            sync.RWMutex
	values        map[string]string
	filePath      string
	watcher       *fsnotify.Watcher
	changeChan    chan struct{}
	stopChan      chan struct{}
	debounceTimer *time.Timer
}

// NewFileBackend opens (or creates) the session file at filePath and
// starts watching it.
func NewFileBackend(filePath string) (*FileBackend, error) {
	b := &FileBackend{
		values:     make(map[string]string),
		filePath:   filePath,
		changeChan: make(chan struct{}, 8),
		stopChan:   make(chan struct{}),
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	if err := b.load(); err != nil && !os.IsNotExist(err) {
		// A corrupt session file reads as no session.
		logger.Warn("ignoring unreadable session file", "path", filePath, "error", err)
	}

	if err := b.startWatcher(); err != nil {
		return nil, fmt.Errorf("failed to start session file watcher: %w", err)
	}

	return b, nil
}

// Changes returns a channel that receives a signal after the session
// file is modified externally. The consumer should re-run restore.
func (b *FileBackend) Changes() <-chan struct{} {
	return b.changeChan
}

// Get returns the value for key.
func (b *FileBackend) Get(key string) (string, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.values[key]
	return v, ok
}

// Set stores value under key and rewrites the file.
func (b *FileBackend) Set(key, value string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.values[key] = value
	return b.saveLocked()
}

// Delete removes key and rewrites the file.
func (b *FileBackend) Delete(key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.values, key)
	return b.saveLocked()
}

// Close stops the watcher and releases resources.
func (b *FileBackend) Close() error {
	close(b.stopChan)
	if b.watcher != nil {
		return b.watcher.Close()
	}
	return nil
}

func (b *FileBackend) load() error {
	data, err := os.ReadFile(b.filePath)
	if err != nil {
		return err
	}

	values := make(map[string]string)
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("failed to parse session file: %w", err)
	}

	b.mu.Lock()
	b.values = values
	b.mu.Unlock()
	return nil
}

// saveLocked writes the values to disk. Must hold the lock.
func (b *FileBackend) saveLocked() error {
	data, err := json.MarshalIndent(b.values, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	// Write to temp file first, then rename
	tmpFile := b.filePath + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0o600); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpFile, b.filePath); err != nil {
		if removeErr := os.Remove(tmpFile); removeErr != nil {
			logger.Error("failed to remove temp file", "error", removeErr)
		}
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

func (b *FileBackend) startWatcher() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	b.watcher = watcher

	// Watch the directory to catch file creation and deletion.
	if err := watcher.Add(filepath.Dir(b.filePath)); err != nil {
		if closeErr := watcher.Close(); closeErr != nil {
			logger.Error("failed to close watcher", "error", closeErr)
		}
		return err
	}

	go b.watchLoop()
	return nil
}

func (b *FileBackend) watchLoop() {
	const debounceInterval = 100 * time.Millisecond

	for {
		select {
		case event, ok := <-b.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != filepath.Base(b.filePath) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) != 0 {
				b.mu.Lock()
				if b.debounceTimer != nil {
					b.debounceTimer.Stop()
				}
				b.debounceTimer = time.AfterFunc(debounceInterval, func() {
					b.handleFileChange()
				})
				b.mu.Unlock()
			}

		case err, ok := <-b.watcher.Errors:
			if !ok {
				return
			}
			logger.Error("session file watcher error", "error", err)

		case <-b.stopChan:
			return
		}
	}
}

// handleFileChange reloads the file after an external change. A deleted
// file reads as an empty record.
func (b *FileBackend) handleFileChange() {
	if err := b.load(); err != nil {
		if os.IsNotExist(err) {
			b.mu.Lock()
			b.values = make(map[string]string)
			b.mu.Unlock()
		} else {
			logger.Warn("failed to reload session file", "error", err)
			return
		}
	}

	select {
	case b.changeChan <- struct{}{}:
	default:
	}
}
