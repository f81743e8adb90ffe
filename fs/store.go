// Package fs provides file-based storage for scraped datasets.
package fs

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/capdata"
)

// Format is the on-disk encoding of a dataset file.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ManifestFile is the name of the run manifest written next to the datasets.
const ManifestFile = "manifest.json"

// Ensure DatasetStore implements capdata.DatasetWriter at compile time.
var _ capdata.DatasetWriter = (*DatasetStore)(nil)

// DatasetStore writes one file per dataset. Files are saved to a temporary
// directory, then moved into place on Commit. The output directory may hold
// files the store did not write; only files named in its manifest are
// replaced.
type DatasetStore struct {
	baseDir string
	name    string
	format  Format
}

// Option configures a DatasetStore.
type Option func(*DatasetStore)

// WithFormat sets the dataset file format. Defaults to FormatJSON.
func WithFormat(f Format) Option {
	return func(s *DatasetStore) {
		s.format = f
	}
}

// NewDatasetStore creates a new DatasetStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewDatasetStore(baseDir, name string, opts ...Option) *DatasetStore {
	s := &DatasetStore{
		baseDir: baseDir,
		name:    name,
		format:  FormatJSON,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *DatasetStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *DatasetStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Dir returns the directory datasets end up in after Commit.
func (s *DatasetStore) Dir() string {
	return s.finalDir()
}

// WriteRun saves every dataset of run and the manifest, then commits.
// On a failed save the temporary directory is removed and any previous
// output is left untouched.
func (s *DatasetStore) WriteRun(ctx context.Context, run *capdata.Run) error {
	if err := s.write(ctx, run); err != nil {
		_ = s.Abort()
		return err
	}
	if err := s.Commit(); err != nil {
		_ = s.Abort()
		return err
	}
	return nil
}

func (s *DatasetStore) write(ctx context.Context, run *capdata.Run) error {
	if err := os.RemoveAll(s.tempDir()); err != nil {
		return err
	}
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	for _, d := range run.Datasets {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.Save(d); err != nil {
			return fmt.Errorf("save %s: %w", d.Name, err)
		}
	}
	return s.saveManifest(run)
}

// Save writes a single dataset to the temporary directory.
func (s *DatasetStore) Save(d *capdata.Dataset) error {
	switch s.format {
	case FormatJSON:
		return writeJSON(filepath.Join(s.tempDir(), d.Name+".json"), d.Table)
	case FormatCSV:
		return writeCSV(filepath.Join(s.tempDir(), d.Name+".csv"), d.Table)
	default:
		return capdata.Errorf(capdata.EINVALID, "unsupported format %q", s.format)
	}
}

// Manifest describes the files of one committed run.
type Manifest struct {
	RunID      string            `json:"run_id"`
	RootURL    string            `json:"root_url"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at"`
	Teams      int               `json:"teams"`
	Format     Format            `json:"format"`
	Datasets   []ManifestDataset `json:"datasets"`
}

// ManifestDataset describes one dataset file.
type ManifestDataset struct {
	capdata.Dataset
	File    string   `json:"file"`
	Rows    int      `json:"rows"`
	Columns []string `json:"columns"`
}

func (s *DatasetStore) saveManifest(run *capdata.Run) error {
	m := Manifest{
		RunID:      run.ID,
		RootURL:    run.RootURL,
		StartedAt:  run.StartedAt,
		FinishedAt: run.FinishedAt,
		Teams:      run.Teams,
		Format:     s.format,
		Datasets:   make([]ManifestDataset, 0, len(run.Datasets)),
	}
	for _, d := range run.Datasets {
		m.Datasets = append(m.Datasets, ManifestDataset{
			Dataset: *d,
			File:    d.Name + "." + string(s.format),
			Rows:    d.Table.Len(),
			Columns: d.Table.Columns,
		})
	}
	return writeJSON(filepath.Join(s.tempDir(), ManifestFile), m)
}

// ReadManifest reads the manifest of a committed run from dir.
func ReadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	return &m, nil
}

// ReadTable reads a dataset file written in JSON format.
func ReadTable(path string) (*capdata.Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t capdata.Table
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode %s: %w", filepath.Base(path), err)
	}
	return &t, nil
}

// Commit moves the saved files into the output directory. Files listed in
// the manifest of the previous run are removed first; any other file in the
// output directory is left alone. The manifest is moved last.
func (s *DatasetStore) Commit() error {
	if err := os.MkdirAll(s.finalDir(), 0755); err != nil {
		return err
	}
	if err := s.removePrevious(); err != nil {
		return err
	}

	entries, err := os.ReadDir(s.tempDir())
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.Name() == ManifestFile {
			continue
		}
		if err := os.Rename(filepath.Join(s.tempDir(), e.Name()), filepath.Join(s.finalDir(), e.Name())); err != nil {
			return err
		}
	}
	if err := os.Rename(filepath.Join(s.tempDir(), ManifestFile), filepath.Join(s.finalDir(), ManifestFile)); err != nil {
		return err
	}
	return os.RemoveAll(s.tempDir())
}

// removePrevious deletes the dataset files and manifest of the run last
// committed to the output directory.
func (s *DatasetStore) removePrevious() error {
	m, err := ReadManifest(s.finalDir())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return err
	}
	for _, d := range m.Datasets {
		if err := removeFile(filepath.Join(s.finalDir(), filepath.Base(d.File))); err != nil {
			return err
		}
	}
	return removeFile(filepath.Join(s.finalDir(), ManifestFile))
}

// Abort discards the saved files.
func (s *DatasetStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}

func removeFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

func writeCSV(path string, t *capdata.Table) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return err
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, v := range row {
			record[i] = v.String()
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
