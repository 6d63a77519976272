package demo

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watch purges the result cache whenever a CSV file in the data directory
// changes. It returns when ctx is done.
func (s *Service) Watch(ctx context.Context) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	if err := w.Add(s.cfg.DataDir); err != nil {
		return err
	}
	s.logger.Info("watching datasets", zap.String("dir", s.cfg.DataDir))
	return s.watch(ctx, w)
}

func (s *Service) watch(ctx context.Context, w *fsnotify.Watcher) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !strings.EqualFold(filepath.Ext(event.Name), ".csv") || !changed(event) {
				continue
			}
			s.logger.Info("dataset changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))
			s.Purge()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("watch error", zap.Error(err))
		}
	}
}

func changed(e fsnotify.Event) bool {
	return e.Has(fsnotify.Write) || e.Has(fsnotify.Create) || e.Has(fsnotify.Remove) || e.Has(fsnotify.Rename)
}
