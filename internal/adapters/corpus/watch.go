package corpus

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/okian/starkverb/pkg/logger"
	"github.com/okian/starkverb/pkg/metrics"
)

// Watch reloads the corpus whenever one of its backing files is rewritten.
// It blocks until ctx is done, so callers run it in a goroutine. Grading
// never triggers reloads; this is the only automatic mutation path, and a
// failed reload keeps the previous snapshot in place.
func (s *Store) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("corpus watch: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch directories, not files: editors and atomic writers replace the
	// file inode, which would silently drop a per-file watch.
	watched := map[string]bool{}
	for _, path := range []string{s.verbsPath, s.translationsPath, s.examplesPath} {
		if path == "" {
			continue
		}
		watched[filepath.Clean(path)] = true
		if err := watcher.Add(filepath.Dir(path)); err != nil {
			return fmt.Errorf("corpus watch %s: %w", path, err)
		}
	}

	log := s.logger
	if log == nil {
		log = logger.Get()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := s.Reload(); err != nil {
				metrics.RecordCorpusReloadError()
				log.Error(ctx, "corpus reload failed; keeping previous snapshot",
					logger.String("file", event.Name),
					logger.Error(err),
				)
				continue
			}
			metrics.RecordCorpusReload()
			n, _ := s.Len()
			metrics.UpdateCorpusSize(n)
			log.Info(ctx, "corpus reloaded",
				logger.String("file", event.Name),
				logger.Int("verbs", n),
			)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn(ctx, "corpus watcher error", logger.Error(err))
		}
	}
}
