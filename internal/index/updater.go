package index

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/starford/docindex/internal/apperr"
	"github.com/starford/docindex/internal/checksum"
	"github.com/starford/docindex/internal/locator"
	"github.com/starford/docindex/internal/markers"
	"github.com/starford/docindex/internal/models"
	"github.com/starford/docindex/internal/parser"
	"github.com/starford/docindex/internal/render"
	"github.com/starford/docindex/internal/storage"
)

// Updater runs the locate, parse, sort, render and splice pipeline for
// document types. It assumes exclusive access to the tree while running;
// two updaters writing the same index file concurrently may lose a write.
type Updater struct {
	store  storage.Provider
	logger *slog.Logger

	// Check disables writes; a pass that would change an index reports
	// ErrStaleIndex instead.
	Check bool
	// Strict turns validation findings into errors.
	Strict bool
}

// NewUpdater creates an Updater over store.
func NewUpdater(store storage.Provider, logger *slog.Logger) *Updater {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Updater{store: store, logger: logger}
}

// Update regenerates the index of one document type. The index file is
// only written when its content changes.
func (u *Updater) Update(dt DocType) (Result, error) {
	res := Result{Name: dt.Name, IndexFile: dt.IndexFile}

	ok, err := u.store.Exists(dt.IndexFile)
	if err != nil {
		return res, fmt.Errorf("%s: %w", dt.Name, err)
	}
	if !ok {
		return res, fmt.Errorf("%s: %w: %s", dt.Name, apperr.ErrMissingIndexFile, dt.IndexFile)
	}

	records, err := u.Load(dt)
	if err != nil {
		return res, err
	}
	res.Records = records

	if problems := Validate(records); len(problems) > 0 {
		if u.Strict {
			return res, fmt.Errorf("%s: %w", dt.Name, errors.Join(problems...))
		}
		for _, p := range problems {
			u.logger.Warn("validate: record problem",
				slog.String("doc_type", dt.Name),
				slog.String("error", p.Error()))
		}
	}

	table := render.Table(dt.TableHeaders, records, dt.Placeholder)

	current, err := u.store.Read(dt.IndexFile)
	if err != nil {
		return res, fmt.Errorf("%s: %w", dt.Name, err)
	}
	updated, err := markers.Replace(string(current), dt.StartMarker, dt.EndMarker, table)
	if err != nil {
		return res, fmt.Errorf("%s: %s: %w", dt.Name, dt.IndexFile, err)
	}

	res.Changed = updated != string(current)
	res.Checksum = checksum.Short([]byte(updated))

	if res.Changed && !u.Check {
		if err := u.store.Write(dt.IndexFile, []byte(updated)); err != nil {
			return res, fmt.Errorf("%s: %w", dt.Name, err)
		}
		res.Written = true
	}

	u.logger.Info("index: processed",
		slog.String("doc_type", dt.Name),
		slog.String("index_file", dt.IndexFile),
		slog.Int("records", len(records)),
		slog.Bool("changed", res.Changed),
		slog.Bool("written", res.Written),
		slog.String("checksum", res.Checksum))

	if res.Changed && u.Check {
		return res, fmt.Errorf("%s: %w: %s", dt.Name, apperr.ErrStaleIndex, dt.IndexFile)
	}
	return res, nil
}

// Load locates and parses every record of dt, sorted by number. Records
// sharing a number keep filename order.
func (u *Updater) Load(dt DocType) ([]models.Record, error) {
	ignore := dt.ignore()

	var records []models.Record
	for c, err := range locator.Scan(u.store, dt.Directory, ignore) {
		if err != nil {
			return nil, fmt.Errorf("%s: %w", dt.Name, err)
		}
		data, err := u.store.Read(c.Path())
		if err != nil {
			return nil, fmt.Errorf("%s: %w", dt.Name, err)
		}
		rec, err := parser.Parse(data, c.Name, dt.TitlePrefix)
		if err != nil {
			return nil, fmt.Errorf("%s: %s: %w", dt.Name, c.Path(), err)
		}
		u.logger.Debug("index: parsed record",
			slog.String("doc_type", dt.Name),
			slog.String("path", c.Path()),
			slog.String("title", rec.Title))
		records = append(records, rec)
	}

	slices.SortStableFunc(records, func(a, b models.Record) int {
		return a.Number - b.Number
	})
	return records, nil
}

// UpdateAll processes every document type in order. A failing type does not
// stop the others; all failures are returned joined. report, when non-nil,
// receives each successful result as it completes.
func (u *Updater) UpdateAll(ctx context.Context, types []DocType, report func(Result)) error {
	var errs []error
	for _, dt := range types {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		res, err := u.Update(dt)
		if err != nil {
			u.logger.Error("index: update failed",
				slog.String("doc_type", dt.Name),
				slog.String("error", err.Error()))
			if errors.Is(err, apperr.ErrStaleIndex) && report != nil {
				report(res)
			}
			errs = append(errs, err)
			continue
		}
		if report != nil {
			report(res)
		}
	}
	return errors.Join(errs...)
}
