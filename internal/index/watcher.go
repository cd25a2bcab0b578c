package index

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/docindex/internal/locator"
)

// debounce is how long the watcher waits for a burst of events to settle
// before regenerating.
const debounce = 200 * time.Millisecond

// Watch watches the record directory of every document type and reruns
// Update for a type after its .md files change, until ctx is cancelled.
// Failed reruns are logged; report (if non-nil) receives every result.
//
// Directories that do not exist when Watch starts are skipped.
func (u *Updater) Watch(ctx context.Context, types []DocType, report func(Result)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	byDir := make(map[string][]int)
	for i, dt := range types {
		abs, err := u.store.Abs(dt.Directory)
		if err != nil {
			return err
		}
		if _, seen := byDir[abs]; !seen {
			if err := w.Add(abs); err != nil {
				u.logger.Warn("watcher: cannot watch directory",
					slog.String("doc_type", dt.Name),
					slog.String("path", abs),
					slog.String("error", err.Error()))
				continue
			}
			u.logger.Info("watcher: started", slog.String("doc_type", dt.Name), slog.String("path", abs))
		}
		byDir[abs] = append(byDir[abs], i)
	}

	pending := make(map[int]struct{})
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			u.logger.Info("watcher: stopped")
			return nil

		case <-timer.C:
			for i := range types {
				if _, ok := pending[i]; !ok {
					continue
				}
				res, err := u.Update(types[i])
				if err != nil {
					u.logger.Error("watcher: update failed",
						slog.String("doc_type", types[i].Name),
						slog.String("error", err.Error()))
					continue
				}
				if report != nil {
					report(res)
				}
			}
			clear(pending)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !strings.HasSuffix(ev.Name, ".md") || ev.Op == fsnotify.Chmod {
				continue
			}
			idx, ok := byDir[filepath.Dir(ev.Name)]
			if !ok {
				continue
			}
			name := filepath.Base(ev.Name)
			marked := false
			for _, i := range idx {
				// The index file and other non-record names never trigger a
				// rerun, so our own writes do not loop back.
				if !locator.IsRecordName(name, types[i].ignore()) {
					continue
				}
				pending[i] = struct{}{}
				marked = true
			}
			if !marked {
				continue
			}
			u.logger.Debug("watcher: change", slog.String("path", ev.Name), slog.String("op", ev.Op.String()))
			timer.Reset(debounce)

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			u.logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
