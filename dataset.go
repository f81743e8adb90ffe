package capdata

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// DatasetPlayers is the name of the player dataset.
const DatasetPlayers = "player_details"

// TeamDatasetName returns the name of the team summary dataset for a season.
func TeamDatasetName(s Season) string {
	return fmt.Sprintf("team_details_%d", s)
}

// Dataset is one finished output table.
type Dataset struct {
	Name     string   `json:"name"`
	Kind     PageKind `json:"kind"`
	Season   Season   `json:"season,omitempty"`
	Table    *Table   `json:"-"`
	Checksum string   `json:"checksum"`
}

// Run is the result of one end-to-end scrape.
type Run struct {
	ID         string
	RootURL    string
	StartedAt  time.Time
	FinishedAt time.Time
	Teams      int
	Datasets   []*Dataset
}

// Dataset returns the named dataset, or nil.
func (r *Run) Dataset(name string) *Dataset {
	for _, d := range r.Datasets {
		if d.Name == name {
			return d
		}
	}
	return nil
}

// DatasetWriter persists the datasets of a run.
type DatasetWriter interface {
	WriteRun(ctx context.Context, run *Run) error
}

// Aggregator accumulates per-page tables into season-wide datasets.
type Aggregator struct {
	seasons []Season
	columns ColumnNames
	players *Table
	teams   map[Season]*Table
}

// NewAggregator returns an Aggregator for the given seasons.
func NewAggregator(seasons []Season, columns ColumnNames) *Aggregator {
	a := &Aggregator{
		seasons: seasons,
		columns: columns,
		players: NewTable(),
		teams:   make(map[Season]*Table, len(seasons)),
	}
	for _, s := range seasons {
		a.teams[s] = NewTable()
	}
	return a
}

// Add appends a normalized table of the given kind and season.
func (a *Aggregator) Add(kind PageKind, season Season, t *Table) error {
	teams, ok := a.teams[season]
	if !ok {
		return Errorf(EINVALID, "season %d is not configured", season)
	}
	switch kind {
	case PagePlayerRoster:
		a.players.Append(t)
	case PageTeamSummary:
		teams.Append(t)
	default:
		return Errorf(EINVALID, "unknown page kind %q", kind)
	}
	return nil
}

// Finish classifies player positions, drops placeholder roster rows, and
// returns the player dataset followed by one team dataset per season.
// The aggregator must not be used afterwards.
func (a *Aggregator) Finish() ([]*Dataset, error) {
	if a.players.Has(ColumnPosition) || a.players.Has(ColumnPositionLevel3) {
		if err := ClassifyPositions(a.players); err != nil {
			return nil, err
		}
		if err := DropPlaceholders(a.players, a.columns.Placeholder); err != nil {
			return nil, err
		}
	}

	datasets := []*Dataset{{Name: DatasetPlayers, Kind: PagePlayerRoster, Table: a.players}}
	for _, s := range a.seasons {
		datasets = append(datasets, &Dataset{
			Name:   TeamDatasetName(s),
			Kind:   PageTeamSummary,
			Season: s,
			Table:  a.teams[s],
		})
	}
	return datasets, nil
}

// DropPlaceholders removes player rows whose name contains placeholder.
func DropPlaceholders(t *Table, placeholder string) error {
	i := t.Index(ColumnPlayerName)
	if i < 0 {
		return Errorf(ESCHEMA, "no %q column", ColumnPlayerName)
	}
	t.Filter(func(row []Value) bool {
		return !strings.Contains(row[i].String(), placeholder)
	})
	return nil
}
