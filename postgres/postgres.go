// Package postgres stores scraped datasets in a PostgreSQL database.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/capdata"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB represents a PostgreSQL connection pool.
type DB struct {
	pool *pgxpool.Pool
	dsn  string
}

// NewDB creates a new DB instance for the given connection string.
func NewDB(dsn string) *DB {
	return &DB{dsn: dsn}
}

// Open connects to the database and creates the schema if needed.
func (db *DB) Open(ctx context.Context) error {
	pool, err := pgxpool.New(ctx, db.dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	db.pool = pool

	if err := db.createSchema(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	if db.pool != nil {
		db.pool.Close()
	}
	return nil
}

func (db *DB) createSchema(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id text PRIMARY KEY,
			root_url text NOT NULL,
			teams integer NOT NULL DEFAULT 0,
			started_at timestamptz NOT NULL,
			finished_at timestamptz NOT NULL
		);

		CREATE TABLE IF NOT EXISTS datasets (
			name text PRIMARY KEY,
			run_id text NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			kind text NOT NULL,
			season integer NOT NULL DEFAULT 0,
			row_count integer NOT NULL DEFAULT 0,
			checksum text NOT NULL DEFAULT ''
		);
	`)
	return err
}

// Compile-time interface verification.
var _ capdata.DatasetWriter = (*DatasetWriter)(nil)

// DatasetWriter implements capdata.DatasetWriter using PostgreSQL. Each
// dataset becomes a table named after it, replaced wholesale on every run.
type DatasetWriter struct {
	db *DB
}

// NewDatasetWriter creates a new DatasetWriter.
func NewDatasetWriter(db *DB) *DatasetWriter {
	return &DatasetWriter{db: db}
}

// WriteRun records the run and replaces every dataset table in one transaction.
func (w *DatasetWriter) WriteRun(ctx context.Context, run *capdata.Run) error {
	tx, err := w.db.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO runs (id, root_url, teams, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5)
	`, run.ID, run.RootURL, run.Teams, run.StartedAt, run.FinishedAt)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, d := range run.Datasets {
		if err := writeDataset(ctx, tx, run.ID, d); err != nil {
			return fmt.Errorf("write %s: %w", d.Name, err)
		}
	}

	return tx.Commit(ctx)
}

func writeDataset(ctx context.Context, tx pgx.Tx, runID string, d *capdata.Dataset) error {
	if _, err := tx.Exec(ctx, "DROP TABLE IF EXISTS "+pgx.Identifier{d.Name}.Sanitize()); err != nil {
		return err
	}

	if len(d.Table.Columns) > 0 {
		if _, err := tx.Exec(ctx, CreateTableSQL(d.Name, d.Table)); err != nil {
			return err
		}
		_, err := tx.CopyFrom(ctx, pgx.Identifier{d.Name}, d.Table.Columns, CopySource(d.Table))
		if err != nil {
			return err
		}
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO datasets (name, run_id, kind, season, row_count, checksum)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (name) DO UPDATE SET
			run_id = EXCLUDED.run_id,
			kind = EXCLUDED.kind,
			season = EXCLUDED.season,
			row_count = EXCLUDED.row_count,
			checksum = EXCLUDED.checksum
	`, d.Name, runID, string(d.Kind), int(d.Season), d.Table.Len(), d.Checksum)
	return err
}

// CreateTableSQL returns the DDL for a dataset table. Columns holding only
// numbers are double precision, everything else is text.
func CreateTableSQL(name string, t *capdata.Table) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(pgx.Identifier{name}.Sanitize())
	b.WriteString(" (")
	for i, c := range t.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(pgx.Identifier{c}.Sanitize())
		if t.ColumnKind(c) == capdata.KindNumber {
			b.WriteString(" double precision")
		} else {
			b.WriteString(" text")
		}
	}
	b.WriteString(")")
	return b.String()
}

// CopySource adapts a table's rows for pgx.CopyFrom. Cells are converted to
// the column types chosen by CreateTableSQL.
func CopySource(t *capdata.Table) pgx.CopyFromSource {
	kinds := t.ColumnKinds()
	return pgx.CopyFromSlice(len(t.Rows), func(i int) ([]any, error) {
		row := t.Rows[i]
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = v.StoredAs(kinds[j])
		}
		return values, nil
	})
}
