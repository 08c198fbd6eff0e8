// Package reconcile merges raw extraction records into the canonical output
// row shape and appends them to the persisted table.
package reconcile

import (
	"encoding/json"
	"log/slog"

	"github.com/tmorel/studyextract/constants"
	"github.com/tmorel/studyextract/internal/store"
)

// Row shapes a raw record into column order: the source identifier first,
// then every canonical field. Fields absent from the record become nil;
// record keys outside the canonical list are dropped so hallucinated keys
// can never widen the schema. Duplicate field names all read the same record
// key, i.e. last-write-wins by name.
func Row(record map[string]any, fieldNames []string) []any {
	row := make([]any, 0, len(fieldNames)+1)
	row = append(row, record[constants.SourceColumn])
	for _, name := range fieldNames {
		if v, ok := record[name]; ok {
			row = append(row, v)
		} else {
			row = append(row, nil)
		}
	}
	return row
}

// Reconciler appends shaped rows to a table.
type Reconciler struct {
	Table      *store.Table
	FieldNames []string
	Logger     *slog.Logger
}

func NewReconciler(table *store.Table, fieldNames []string, logger *slog.Logger) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{Table: table, FieldNames: fieldNames, Logger: logger}
}

// Append shapes the record and persists it. A failed save is retried once;
// if it still fails, the record is logged in full before the error is
// returned so a successfully extracted result is never silently lost.
func (r *Reconciler) Append(record map[string]any) error {
	if dropped := r.unknownKeys(record); len(dropped) > 0 {
		r.Logger.Warn("reconcile.drop_unknown_keys", "keys", dropped)
	}
	row := Row(record, r.FieldNames)

	err := r.Table.AppendRows(row)
	if err == nil {
		return nil
	}
	r.Logger.Warn("reconcile.append_retry", "error", err)
	if err = r.Table.AppendRows(row); err == nil {
		return nil
	}

	if raw, mErr := json.Marshal(record); mErr == nil {
		r.Logger.Error("reconcile.append_failed", "error", err, "record", string(raw))
	} else {
		r.Logger.Error("reconcile.append_failed", "error", err)
	}
	return err
}

func (r *Reconciler) unknownKeys(record map[string]any) []string {
	known := make(map[string]struct{}, len(r.FieldNames)+1)
	known[constants.SourceColumn] = struct{}{}
	for _, name := range r.FieldNames {
		known[name] = struct{}{}
	}
	var dropped []string
	for k := range record {
		if _, ok := known[k]; !ok {
			dropped = append(dropped, k)
		}
	}
	return dropped
}
