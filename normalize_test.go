package capdata_test

import (
	"testing"

	"github.com/fwojciec/capdata"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRoster(t *testing.T) {
	t.Parallel()

	cols := capdata.DefaultConfig().Columns

	t.Run("renames active column drops duplicate cap hit and tags rows", func(t *testing.T) {
		t.Parallel()

		table, err := capdata.ExtractTable(&capdata.Fragment{
			Kind:   capdata.PagePlayerRoster,
			Header: []string{"Active Roster", "Pos.", "Cap Hit", "Cap Hit.1"},
			Rows:   [][]string{{"John Doe", "QB", "$1,000,000", "$1,000,000"}},
		})
		require.NoError(t, err)

		err = capdata.NormalizeRoster(table, "Sample Team", 2022, cols)

		require.NoError(t, err)
		want := &capdata.Table{
			Columns: []string{"Player Name", "Pos.", "Cap Hit", "Year", "Team"},
			Rows: [][]capdata.Value{{
				capdata.Text("John Doe"),
				capdata.Text("QB"),
				capdata.Number(1000000),
				capdata.Number(2022),
				capdata.Text("Sample Team"),
			}},
		}
		if diff := cmp.Diff(want, table); diff != "" {
			t.Errorf("table mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("matches active marker anywhere in header", func(t *testing.T) {
		t.Parallel()

		table := capdata.NewTable("Active Roster (53)", "Pos.")

		err := capdata.NormalizeRoster(table, "Sample Team", 2023, cols)

		require.NoError(t, err)
		assert.Equal(t, []string{"Player Name", "Pos.", "Year", "Team"}, table.Columns)
	})

	t.Run("fails without active column", func(t *testing.T) {
		t.Parallel()

		table := capdata.NewTable("Player", "Pos.")

		err := capdata.NormalizeRoster(table, "Sample Team", 2022, cols)

		assert.Equal(t, capdata.ESCHEMA, capdata.ErrorCode(err))
	})

	t.Run("fails with several active columns", func(t *testing.T) {
		t.Parallel()

		table := capdata.NewTable("Active Roster", "Pos.", "Active Cap")

		err := capdata.NormalizeRoster(table, "Sample Team", 2022, cols)

		assert.Equal(t, capdata.ESCHEMA, capdata.ErrorCode(err))
		assert.Contains(t, capdata.ErrorMessage(err), "Active Cap")
	})

	t.Run("leaves tables without duplicate cap hit alone", func(t *testing.T) {
		t.Parallel()

		table := capdata.NewTable("Active Roster", "Cap Hit", "Cap Hit .1")

		err := capdata.NormalizeRoster(table, "Sample Team", 2022, cols)

		require.NoError(t, err)
		assert.True(t, table.Has("Cap Hit .1"))
	})
}

func TestNormalizeSummary(t *testing.T) {
	t.Parallel()

	table, err := capdata.ExtractTable(&capdata.Fragment{
		Kind:   capdata.PageTeamSummary,
		Labels: []string{"Active Cap:", "Cap Space:"},
		Values: []string{"$5,000,000", "-"},
	})
	require.NoError(t, err)

	capdata.NormalizeSummary(table, "Sample Team", 2023)

	want := &capdata.Table{
		Columns: []string{"Active Cap", "Cap Space", "Team", "Year"},
		Rows: [][]capdata.Value{{
			capdata.Number(5000000), capdata.Number(0), capdata.Text("Sample Team"), capdata.Number(2023),
		}},
	}
	if diff := cmp.Diff(want, table); diff != "" {
		t.Errorf("table mismatch (-want +got):\n%s", diff)
	}
}
