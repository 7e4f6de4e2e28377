package spiral

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
)

// ConfigWatcher reloads a config file whenever it is written or replaced.
// Only the newest successfully parsed config is kept.
type ConfigWatcher struct {
	path    string
	logger  Logger
	watcher *fsnotify.Watcher
	updates chan *AppConfig
	done    chan struct{}
	once    sync.Once
}

func NewConfigWatcher(path string, logger Logger) (*ConfigWatcher, error) {
	if logger == nil {
		logger = NewNopLogger()
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve config path %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create config watcher: %w", err)
	}
	// Editors often replace the file, so watch the directory.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	cw := &ConfigWatcher{
		path:    abs,
		logger:  logger,
		watcher: watcher,
		updates: make(chan *AppConfig, 1),
		done:    make(chan struct{}),
	}
	go cw.loop()
	return cw, nil
}

func (cw *ConfigWatcher) Path() string {
	return cw.path
}

func (cw *ConfigWatcher) loop() {
	for {
		select {
		case <-cw.done:
			return
		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != cw.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			cfg, err := LoadConfig(cw.path)
			if err != nil {
				cw.logger.Warnf("Config reload failed, keeping previous config: %v", err)
				continue
			}
			cw.logger.Infof("Config reloaded from %s", cw.path)
			cw.publish(cfg)
		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.logger.Warnf("Config watcher error: %v", err)
		}
	}
}

func (cw *ConfigWatcher) publish(cfg *AppConfig) {
	for {
		select {
		case cw.updates <- cfg:
			return
		default:
		}
		select {
		case <-cw.updates:
		default:
		}
	}
}

// Poll returns the latest reloaded config, if any, without blocking.
func (cw *ConfigWatcher) Poll() (*AppConfig, bool) {
	select {
	case cfg := <-cw.updates:
		return cfg, true
	default:
		return nil, false
	}
}

func (cw *ConfigWatcher) Close() error {
	var err error
	cw.once.Do(func() {
		close(cw.done)
		err = cw.watcher.Close()
	})
	return err
}

func (cw *ConfigWatcher) release() {
	if err := cw.Close(); err != nil {
		cw.logger.Warnf("Closing config watcher: %v", err)
	}
}
