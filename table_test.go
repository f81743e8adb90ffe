package capdata_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/capdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Append(t *testing.T) {
	t.Parallel()

	t.Run("reconciles differing columns with nulls", func(t *testing.T) {
		t.Parallel()

		a := &capdata.Table{
			Columns: []string{"Active Cap", "Team"},
			Rows:    [][]capdata.Value{{capdata.Number(1), capdata.Text("A")}},
		}
		b := &capdata.Table{
			Columns: []string{"Team", "Dead Cap"},
			Rows:    [][]capdata.Value{{capdata.Text("B"), capdata.Number(2)}},
		}

		a.Append(b)

		assert.Equal(t, []string{"Active Cap", "Team", "Dead Cap"}, a.Columns)
		assert.Equal(t, [][]capdata.Value{
			{capdata.Number(1), capdata.Text("A"), capdata.Null()},
			{capdata.Null(), capdata.Text("B"), capdata.Number(2)},
		}, a.Rows)
	})

	t.Run("adopts schema of first batch", func(t *testing.T) {
		t.Parallel()

		acc := capdata.NewTable()
		acc.Append(&capdata.Table{
			Columns: []string{"Player Name", "Pos."},
			Rows:    [][]capdata.Value{{capdata.Text("John Doe"), capdata.Text("QB")}},
		})

		assert.Equal(t, []string{"Player Name", "Pos."}, acc.Columns)
		assert.Equal(t, 1, acc.Len())
	})
}

func TestTable_Drop(t *testing.T) {
	t.Parallel()

	table := &capdata.Table{
		Columns: []string{"a", "b", "c"},
		Rows:    [][]capdata.Value{{capdata.Number(1), capdata.Number(2), capdata.Number(3)}},
	}
	clone := table.Clone()

	assert.True(t, table.Drop("b"))
	assert.False(t, table.Drop("b"))
	assert.Equal(t, []string{"a", "c"}, table.Columns)
	assert.Equal(t, []capdata.Value{capdata.Number(1), capdata.Number(3)}, table.Rows[0])
	assert.Equal(t, []string{"a", "b", "c"}, clone.Columns, "clone is unaffected")
}

func TestTable_Rename(t *testing.T) {
	t.Parallel()

	table := capdata.NewTable("a", "b")

	require.NoError(t, table.Rename("a", "x"))
	assert.Equal(t, []string{"x", "b"}, table.Columns)
	assert.Equal(t, capdata.ESCHEMA, capdata.ErrorCode(table.Rename("missing", "y")))
	assert.Equal(t, capdata.ESCHEMA, capdata.ErrorCode(table.Rename("x", "b")))
}

func TestTable_Filter(t *testing.T) {
	t.Parallel()

	table := &capdata.Table{
		Columns: []string{"n"},
		Rows:    [][]capdata.Value{{capdata.Number(1)}, {capdata.Number(2)}, {capdata.Number(3)}},
	}

	table.Filter(func(row []capdata.Value) bool {
		f, _ := row[0].Float()
		return f != 2
	})

	assert.Equal(t, capdata.Number(1), table.Rows[0][0])
	assert.Equal(t, capdata.Number(3), table.Rows[1][0])
	assert.Equal(t, 2, table.Len())
}

func TestTable_ColumnKind(t *testing.T) {
	t.Parallel()

	table := &capdata.Table{
		Columns: []string{"num", "text", "empty", "mixed"},
		Rows: [][]capdata.Value{
			{capdata.Number(1), capdata.Text("a"), capdata.Null(), capdata.Number(1)},
			{capdata.Null(), capdata.Text("b"), capdata.Null(), capdata.Text("-")},
		},
	}

	assert.Equal(t, capdata.KindNumber, table.ColumnKind("num"))
	assert.Equal(t, capdata.KindText, table.ColumnKind("text"))
	assert.Equal(t, capdata.KindNull, table.ColumnKind("empty"))
	assert.Equal(t, capdata.KindText, table.ColumnKind("mixed"))
	assert.Equal(t, capdata.KindNull, table.ColumnKind("missing"))
	assert.Equal(t, []capdata.Kind{capdata.KindNumber, capdata.KindText, capdata.KindNull, capdata.KindText},
		table.ColumnKinds())
}

func TestTable_JSON(t *testing.T) {
	t.Parallel()

	table := &capdata.Table{
		Columns: []string{"Player Name", "Cap Hit", "Age"},
		Rows:    [][]capdata.Value{{capdata.Text("John Doe"), capdata.Number(1000000), capdata.Null()}},
	}

	data, err := json.Marshal(table)
	require.NoError(t, err)
	assert.JSONEq(t, `{"columns":["Player Name","Cap Hit","Age"],"rows":[["John Doe",1000000,null]]}`, string(data))

	var decoded capdata.Table
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, table, &decoded)
}
