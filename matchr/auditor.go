// Package matchr detects roster header drift using fuzzy string similarity.
package matchr

import (
	"regexp"
	"slices"

	"github.com/antzucaro/matchr"
	"github.com/fwojciec/capdata"
)

// DefaultThreshold is the minimum Jaro-Winkler similarity reported as drift.
const DefaultThreshold = 0.9

// Ensure Auditor implements capdata.ColumnAuditor at compile time.
var _ capdata.ColumnAuditor = (*Auditor)(nil)

// Auditor reports headers that closely resemble a watched column name that
// is missing from a roster.
type Auditor struct {
	Watch     []string
	Threshold float64
}

// NewAuditor returns an Auditor watching the columns normalization matches
// exactly.
func NewAuditor(cols capdata.ColumnNames) *Auditor {
	watch := []string{capdata.ColumnPosition}
	if cols.DuplicateCapHit != "" {
		watch = append(watch, cols.DuplicateCapHit)
	}
	return &Auditor{Watch: watch, Threshold: DefaultThreshold}
}

var dupSuffix = regexp.MustCompile(`\.\d+$`)

// Audit returns, for each watched name absent from columns, the most similar
// column scoring at or above the threshold.
func (a *Auditor) Audit(columns []string) []capdata.ColumnDrift {
	var drift []capdata.ColumnDrift
	for _, want := range a.Watch {
		if slices.Contains(columns, want) {
			continue
		}
		base := dupSuffix.ReplaceAllString(want, "")

		best := capdata.ColumnDrift{Expected: want}
		for _, c := range columns {
			// "Cap Hit" is the original of "Cap Hit.1", not a rename of it.
			if base != want && c == base {
				continue
			}
			score := matchr.JaroWinkler(want, c, false)
			if score > best.Score {
				best.Column, best.Score = c, score
			}
		}
		if best.Column != "" && best.Score >= a.threshold() {
			drift = append(drift, best)
		}
	}
	return drift
}

func (a *Auditor) threshold() float64 {
	if a.Threshold <= 0 {
		return DefaultThreshold
	}
	return a.Threshold
}
