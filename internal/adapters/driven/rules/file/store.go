package file

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/graha/internal/core/domain"
	"github.com/custodia-labs/graha/internal/core/ports/driven"
	"github.com/custodia-labs/graha/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.RuleStore = (*Store)(nil)

// debounceInterval batches the burst of events an editor save produces.
const debounceInterval = 200 * time.Millisecond

// Store holds the current reference data snapshot.
// Readers always see a complete snapshot; reloads replace it wholesale.
type Store struct {
	loader  driven.RuleLoader
	dir     string
	log     *logger.Logger
	current atomic.Pointer[domain.ReferenceData]

	// onReload, when set, is called after every watcher-triggered reload.
	onReload func(error)
}

// NewStore loads the initial snapshot from dir (embedded defaults when empty).
func NewStore(loader driven.RuleLoader, dir string, log *logger.Logger) (*Store, error) {
	s := &Store{loader: loader, dir: dir, log: log}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Snapshot returns the current reference data.
func (s *Store) Snapshot() *domain.ReferenceData {
	return s.current.Load()
}

// Dir returns the watched directory, or "" for embedded rules.
func (s *Store) Dir() string {
	return s.dir
}

// Reload loads the directory again. On failure the previous snapshot stays.
func (s *Store) Reload() error {
	ref, err := s.loader.Load(s.dir)
	if err != nil {
		return err
	}
	s.current.Store(ref)
	s.log.Debug("loaded rules from %s: %d yogas", ref.Source, len(ref.Yogas))
	return nil
}

// SetReloadHook registers a callback for watcher-triggered reloads.
// It must be called before Watch.
func (s *Store) SetReloadHook(fn func(error)) {
	s.onReload = fn
}

// Watch reloads the snapshot when YAML files in the rules directory change.
// It blocks until ctx is cancelled.
func (s *Store) Watch(ctx context.Context) error {
	if s.dir == "" {
		return domain.NewError("watch rules", domain.KindConfiguration, "embedded rules cannot be watched")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, dir := range []string{s.dir, filepath.Join(s.dir, "houses"), filepath.Join(s.dir, "planets")} {
		if _, err := os.Stat(dir); err != nil {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return err
		}
		s.log.Debug("watching %s", dir)
	}

	var timer *time.Timer
	var fire <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevant(event) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(debounceInterval)
			fire = timer.C

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.log.Warn("rules watcher: %v", err)

		case <-fire:
			fire = nil
			err := s.Reload()
			if err != nil {
				s.log.Warn("rules reload failed, keeping previous rules: %v", err)
			} else {
				s.log.Info("rules reloaded from %s", s.dir)
			}
			if s.onReload != nil {
				s.onReload(err)
			}
		}
	}
}

func relevant(event fsnotify.Event) bool {
	if !strings.HasSuffix(event.Name, ".yaml") && !strings.HasSuffix(event.Name, ".yml") {
		return false
	}
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}
