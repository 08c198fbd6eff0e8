// Package pipeline drives the extraction run: one article at a time through
// service call, response validation, reconciliation and persistence.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/tmorel/studyextract/constants"
	"github.com/tmorel/studyextract/internal/common"
	"github.com/tmorel/studyextract/internal/llm"
	"github.com/tmorel/studyextract/internal/prompt"
	"github.com/tmorel/studyextract/internal/reconcile"
	"github.com/tmorel/studyextract/internal/store"
	"github.com/tmorel/studyextract/internal/template"
)

// Summary counts the outcome of one run.
type Summary struct {
	Found     int // articles discovered
	Skipped   int // already present in the output table
	Queued    int // attempted this run (after skip + limit)
	Processed int // extracted and persisted
	Failed    int // gave up after retries
}

// Runner processes articles strictly sequentially. Runs are not reentrant:
// two concurrent runs against the same output table can race the
// read-then-rewrite append and drop rows.
type Runner struct {
	logger     *slog.Logger
	cfg        common.ExtractConfig
	extractor  llm.Extractor
	reconciler *reconcile.Reconciler
	table      *store.Table

	fieldNames []string
	promptText string
	schema     *jsonschema.Schema
}

func NewRunner(logger *slog.Logger, cfg common.ExtractConfig, extractor llm.Extractor, fields []template.Field, table *store.Table) (*Runner, error) {
	if logger == nil {
		logger = slog.Default()
	}
	names := template.Names(fields)
	schema, err := llm.CompileSchema(llm.BuildRecordSchema(names))
	if err != nil {
		return nil, fmt.Errorf("compile record schema: %w", err)
	}
	return &Runner{
		logger:     logger,
		cfg:        cfg,
		extractor:  extractor,
		reconciler: reconcile.NewReconciler(table, names, logger),
		table:      table,
		fieldNames: names,
		promptText: prompt.Build(fields),
		schema:     schema,
	}, nil
}

// Prompt returns the instruction text sent with every article.
func (r *Runner) Prompt() string { return r.promptText }

// Run processes up to limit articles from dir (limit <= 0 means all).
// Per-article extraction failures are logged and skipped; a persistence
// failure after retry aborts the run so the operator sees it immediately.
func (r *Runner) Run(ctx context.Context, dir string, limit int) (Summary, error) {
	var sum Summary

	files, err := ScanArticles(dir)
	if err != nil {
		return sum, err
	}
	sum.Found = len(files)

	processed, err := r.table.ProcessedSources()
	if err != nil {
		// Resume state is best-effort: an unreadable table means we
		// reprocess, the append path stays safe either way.
		r.logger.Warn("pipeline.resume_state_unreadable", "error", err)
		processed = map[string]struct{}{}
	}

	var queue []string
	for _, path := range files {
		if _, done := processed[filepath.Base(path)]; done {
			sum.Skipped++
			continue
		}
		queue = append(queue, path)
	}
	if limit > 0 && len(queue) > limit {
		queue = queue[:limit]
	}
	sum.Queued = len(queue)

	r.logger.Info("pipeline.run.start",
		"articles_found", sum.Found,
		"already_processed", sum.Skipped,
		"queued", sum.Queued,
	)

	for i, path := range queue {
		name := filepath.Base(path)

		record, err := r.extractOne(ctx, path)
		if err != nil {
			sum.Failed++
			r.logger.Error("pipeline.extract.failed", "file", name, "error", err)
			if ctx.Err() != nil {
				return sum, ctx.Err()
			}
			continue
		}

		record[constants.SourceColumn] = name
		if err := r.reconciler.Append(record); err != nil {
			return sum, fmt.Errorf("persist %s: %w", name, err)
		}
		sum.Processed++
		r.logger.Info("pipeline.extract.saved", "file", name, "table", r.table.Path())

		if i < len(queue)-1 && r.cfg.Throttle > 0 {
			select {
			case <-ctx.Done():
				return sum, ctx.Err()
			case <-time.After(r.cfg.Throttle):
			}
		}
	}

	r.logger.Info("pipeline.run.done",
		"processed", sum.Processed,
		"skipped", sum.Skipped,
		"failed", sum.Failed,
	)
	return sum, nil
}

// extractOne calls the service with bounded retry. The delay is fixed, not
// exponential; quota errors wait the longer quota interval instead.
func (r *Runner) extractOne(ctx context.Context, path string) (map[string]any, error) {
	var record map[string]any

	err := retry.Do(
		func() error {
			rec, err := r.extractor.Extract(ctx, path, r.promptText)
			if err != nil {
				return err
			}
			if err := llm.ValidateRecord(r.schema, rec); err != nil {
				llm.SanitizeRecord(rec, r.fieldNames, r.logger)
				if err := llm.ValidateRecord(r.schema, rec); err != nil {
					return fmt.Errorf("%w: %v", llm.ErrInvalidResponse, err)
				}
			}
			record = rec
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(uint(r.cfg.MaxRetries)),
		retry.LastErrorOnly(true),
		retry.DelayType(func(_ uint, err error, _ *retry.Config) time.Duration {
			if errors.Is(err, llm.ErrQuotaExceeded) {
				return r.cfg.QuotaWait
			}
			return r.cfg.RetryDelay
		}),
		retry.OnRetry(func(attempt uint, err error) {
			r.logger.Warn("pipeline.extract.retry",
				"file", filepath.Base(path),
				"attempt", attempt+1,
				"error", err,
			)
		}),
	)
	if err != nil {
		return nil, err
	}
	return record, nil
}
