package capdata

import (
	"strings"
)

// NormalizeRoster brings a roster table from one team page into the player
// dataset schema. The single column whose header contains the active marker
// becomes "Player Name", the duplicate cap hit column is dropped, and the
// season and team are attached to every row.
func NormalizeRoster(t *Table, team string, season Season, cols ColumnNames) error {
	var active []string
	for _, c := range t.Columns {
		if strings.Contains(c, cols.ActiveMarker) {
			active = append(active, c)
		}
	}
	switch len(active) {
	case 0:
		return Errorf(ESCHEMA, "no column contains %q", cols.ActiveMarker)
	case 1:
	default:
		return Errorf(ESCHEMA, "%d columns contain %q: %s", len(active), cols.ActiveMarker, strings.Join(active, ", "))
	}

	if err := t.Rename(active[0], ColumnPlayerName); err != nil {
		return err
	}
	if cols.DuplicateCapHit != "" {
		t.Drop(cols.DuplicateCapHit)
	}

	t.SetConstant(ColumnYear, Number(float64(season)))
	t.SetConstant(ColumnTeam, Text(team))
	return nil
}

// NormalizeSummary attaches the team and season to a summary table.
func NormalizeSummary(t *Table, team string, season Season) {
	t.SetConstant(ColumnTeam, Text(team))
	t.SetConstant(ColumnYear, Number(float64(season)))
}

// ColumnDrift is a header that resembles an expected column name without
// matching it exactly.
type ColumnDrift struct {
	Expected string
	Column   string
	Score    float64
}

// ColumnAuditor reports headers that look like renamed versions of the
// columns the normalizer depends on.
type ColumnAuditor interface {
	Audit(columns []string) []ColumnDrift
}
