package config

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const debounceDuration = 100 * time.Millisecond

// ParseLogLevel maps a textual level onto zap's levels
func ParseLogLevel(level string) (zapcore.Level, error) {
	l, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid LOG_LEVEL %q: %w", level, err)
	}
	return l, nil
}

// Watcher reloads the config file when it changes and applies the runtime
// changeable settings. Only the log level is applied live; everything else
// needs a restart.
type Watcher struct {
	path     string
	level    zap.AtomicLevel
	logger   *zap.Logger
	mu       sync.RWMutex
	current  *Config
	onChange []func(*Config)
}

// NewWatcher creates a watcher for the file cfg was loaded from
func NewWatcher(cfg *Config, level zap.AtomicLevel, logger *zap.Logger) *Watcher {
	return &Watcher{
		path:    cfg.ConfigFile,
		level:   level,
		logger:  logger,
		current: cfg,
	}
}

// OnChange registers a callback invoked after every successful reload
func (w *Watcher) OnChange(fn func(*Config)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, fn)
}

// Current returns the most recently loaded configuration
func (w *Watcher) Current() *Config {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.current
}

// Run watches until ctx is cancelled. Without a config file it just waits.
func (w *Watcher) Run(ctx context.Context) error {
	if w.path == "" {
		<-ctx.Done()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory so atomic saves (write then rename) are seen
	if err := watcher.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("failed to watch config directory: %w", err)
	}
	w.logger.Info("Configuration watcher started", zap.String("path", w.path))

	var debounce *time.Timer
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("Configuration watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != filepath.Base(w.path) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceDuration, w.Reload)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Error("File watcher error", zap.Error(err))
		}
	}
}

// Reload re-reads the file and applies it. An invalid file keeps the
// current configuration.
func (w *Watcher) Reload() {
	w.logger.Info("Configuration file changed, reloading", zap.String("path", w.path))

	next, err := Load(w.path)
	if err != nil {
		w.logger.Error("Invalid configuration, keeping current", zap.Error(err))
		return
	}

	w.mu.Lock()
	previous := w.current
	w.current = next
	callbacks := append([]func(*Config){}, w.onChange...)
	w.mu.Unlock()

	if previous.LogLevel != next.LogLevel {
		// Validate already accepted the level
		level, _ := ParseLogLevel(next.LogLevel)
		w.level.SetLevel(level)
		w.logger.Info("Log level changed",
			zap.String("from", previous.LogLevel),
			zap.String("to", next.LogLevel),
		)
	}

	for _, fn := range callbacks {
		fn(next)
	}
}
