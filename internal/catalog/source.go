package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDebounce = 150 * time.Millisecond

// Source holds the catalog currently served. Readers always see a complete dataset; a reload
// swaps the pointer in one step.
type Source struct {
	current atomic.Pointer[Catalog]
}

// NewSource returns a source serving c.
func NewSource(c *Catalog) *Source {
	s := &Source{}
	s.current.Store(c)
	return s
}

// Current returns the catalog in use.
func (s *Source) Current() *Catalog {
	return s.current.Load()
}

// Store replaces the catalog in use.
func (s *Source) Store(c *Catalog) {
	if c != nil {
		s.current.Store(c)
	}
}

// Reload reads path and swaps it in. On error the previous catalog stays active.
func (s *Source) Reload(path string) error {
	c, err := LoadFile(path)
	if err != nil {
		return err
	}
	s.Store(c)
	return nil
}

// Watch reloads path whenever it changes until ctx is cancelled. The parent directory is
// watched so editors that replace the file on save are handled.
func (s *Source) Watch(ctx context.Context, path string, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("catalog: create watcher: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("catalog: resolve %s: %w", path, err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("catalog: watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Info("catalog watcher started", zap.String("path", abs))

	var (
		pending bool
		timer   = time.NewTimer(time.Hour)
	)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			pending = true
			timer.Reset(reloadDebounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("catalog watcher error", zap.Error(err))
		case <-timer.C:
			if !pending {
				continue
			}
			pending = false
			if err := s.Reload(abs); err != nil {
				logger.Error("catalog reload failed; keeping previous dataset", zap.Error(err))
				continue
			}
			logger.Info("catalog reloaded", zap.Int("products", s.Current().Len()))
		}
	}
}
