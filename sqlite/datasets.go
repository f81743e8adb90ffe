package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/capdata"
)

// Compile-time interface verification.
var _ capdata.DatasetWriter = (*DatasetWriter)(nil)

// DatasetWriter implements capdata.DatasetWriter using SQLite. Each dataset
// becomes a table named after it, replaced wholesale on every run.
type DatasetWriter struct {
	db *DB
}

// NewDatasetWriter creates a new DatasetWriter.
func NewDatasetWriter(db *DB) *DatasetWriter {
	return &DatasetWriter{db: db}
}

// WriteRun records the run and replaces every dataset table in one transaction.
func (w *DatasetWriter) WriteRun(ctx context.Context, run *capdata.Run) error {
	tx, err := w.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, root_url, teams, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.RootURL, run.Teams,
		run.StartedAt.UTC().Format(time.RFC3339Nano), run.FinishedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, d := range run.Datasets {
		if err := writeDataset(ctx, tx, run.ID, d); err != nil {
			return fmt.Errorf("write %s: %w", d.Name, err)
		}
	}

	return tx.Commit()
}

func writeDataset(ctx context.Context, tx *sql.Tx, runID string, d *capdata.Dataset) error {
	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoteIdent(d.Name)); err != nil {
		return err
	}

	// A dataset with no columns has no table, only its metadata row.
	if len(d.Table.Columns) > 0 {
		if _, err := tx.ExecContext(ctx, createTableSQL(d.Name, d.Table)); err != nil {
			return err
		}

		stmt, err := tx.PrepareContext(ctx, insertSQL(d.Name, d.Table.Columns))
		if err != nil {
			return err
		}
		defer stmt.Close()

		kinds := d.Table.ColumnKinds()
		args := make([]any, len(d.Table.Columns))
		for _, row := range d.Table.Rows {
			for i, v := range row {
				args[i] = v.StoredAs(kinds[i])
			}
			if _, err := stmt.ExecContext(ctx, args...); err != nil {
				return err
			}
		}
	}

	_, err := tx.ExecContext(ctx, `
		INSERT INTO datasets (name, run_id, kind, season, row_count, checksum)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			run_id = excluded.run_id,
			kind = excluded.kind,
			season = excluded.season,
			row_count = excluded.row_count,
			checksum = excluded.checksum
	`, d.Name, runID, string(d.Kind), int(d.Season), d.Table.Len(), d.Checksum)
	return err
}

// FindRuns returns recorded runs, most recent first, without their datasets.
// A limit of zero returns all runs.
func (w *DatasetWriter) FindRuns(ctx context.Context, limit int) ([]*capdata.Run, error) {
	var query strings.Builder
	query.WriteString("SELECT id, root_url, teams, started_at, finished_at FROM runs ORDER BY started_at DESC")
	var args []any
	appendPagination(&query, &args, limit, 0)

	rows, err := w.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := make([]*capdata.Run, 0)
	for rows.Next() {
		var run capdata.Run
		var startedAt, finishedAt string
		if err := rows.Scan(&run.ID, &run.RootURL, &run.Teams, &startedAt, &finishedAt); err != nil {
			return nil, err
		}
		if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
			return nil, err
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// FindDataset returns the stored dataset with the given name, table included.
func (w *DatasetWriter) FindDataset(ctx context.Context, name string) (*capdata.Dataset, error) {
	d := capdata.Dataset{Name: name}
	var kind string
	var season int
	err := w.db.QueryRowContext(ctx, `
		SELECT kind, season, checksum FROM datasets WHERE name = ?
	`, name).Scan(&kind, &season, &d.Checksum)
	if err == sql.ErrNoRows {
		return nil, capdata.Errorf(capdata.EINVALID, "dataset %q not found", name)
	}
	if err != nil {
		return nil, err
	}
	d.Kind = capdata.PageKind(kind)
	d.Season = capdata.Season(season)

	if d.Table, err = w.readTable(ctx, name); err != nil {
		return nil, err
	}
	return &d, nil
}

func (w *DatasetWriter) readTable(ctx context.Context, name string) (*capdata.Table, error) {
	var exists int
	err := w.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?", name).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return capdata.NewTable(), nil
	}

	rows, err := w.db.QueryContext(ctx, "SELECT * FROM "+quoteIdent(name)+" ORDER BY rowid")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}
	t := capdata.NewTable(columns...)
	dest := make([]any, len(columns))
	ptrs := make([]any, len(columns))
	for i := range dest {
		ptrs[i] = &dest[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		row := make([]capdata.Value, len(columns))
		for i, v := range dest {
			row[i] = toValue(v)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, rows.Err()
}

func toValue(v any) capdata.Value {
	switch v := v.(type) {
	case float64:
		return capdata.Number(v)
	case int64:
		return capdata.Number(float64(v))
	case string:
		return capdata.Text(v)
	case []byte:
		return capdata.Text(string(v))
	default:
		return capdata.Null()
	}
}
