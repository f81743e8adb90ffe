package capdata

// Column names shared by the datasets.
const (
	ColumnPlayerName     = "Player Name"
	ColumnPosition       = "Pos."
	ColumnTeam           = "Team"
	ColumnYear           = "Year"
	ColumnPositionLevel1 = "Position Level 1"
	ColumnPositionLevel2 = "Position Level 2"
	ColumnPositionLevel3 = "Position Level 3"
)

// Table is an ordered set of named columns and rows of values.
// Every row has exactly len(Columns) values.
type Table struct {
	Columns []string  `json:"columns"`
	Rows    [][]Value `json:"rows"`
}

// NewTable returns an empty table with the given columns.
func NewTable(columns ...string) *Table {
	return &Table{Columns: columns, Rows: [][]Value{}}
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Index returns the position of the named column, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Has reports whether the table has the named column.
func (t *Table) Has(name string) bool {
	return t.Index(name) >= 0
}

// Column returns the values of the named column, or nil if absent.
func (t *Table) Column(name string) []Value {
	i := t.Index(name)
	if i < 0 {
		return nil
	}
	values := make([]Value, len(t.Rows))
	for r, row := range t.Rows {
		values[r] = row[i]
	}
	return values
}

// Rename changes a column name in place.
func (t *Table) Rename(from, to string) error {
	i := t.Index(from)
	if i < 0 {
		return Errorf(ESCHEMA, "column %q not found", from)
	}
	if from != to && t.Has(to) {
		return Errorf(ESCHEMA, "column %q already exists", to)
	}
	t.Columns[i] = to
	return nil
}

// Drop removes the named column. It reports whether the column existed.
func (t *Table) Drop(name string) bool {
	i := t.Index(name)
	if i < 0 {
		return false
	}
	t.Columns = append(t.Columns[:i:i], t.Columns[i+1:]...)
	for r, row := range t.Rows {
		t.Rows[r] = append(row[:i:i], row[i+1:]...)
	}
	return true
}

// Set assigns the values of a column, appending the column if absent.
// fn receives each row with its index and returns the new cell value.
func (t *Table) Set(name string, fn func(r int, row []Value) Value) {
	i := t.Index(name)
	if i < 0 {
		t.Columns = append(t.Columns, name)
		for r := range t.Rows {
			t.Rows[r] = append(t.Rows[r], Null())
		}
		i = len(t.Columns) - 1
	}
	for r, row := range t.Rows {
		row[i] = fn(r, row)
	}
}

// SetConstant assigns v to every row of the named column.
func (t *Table) SetConstant(name string, v Value) {
	t.Set(name, func(int, []Value) Value { return v })
}

// Append adds the rows of other to t. Columns of other missing from t are
// added at the end; cells of columns missing on either side are null.
func (t *Table) Append(other *Table) {
	for _, c := range other.Columns {
		if !t.Has(c) {
			t.Columns = append(t.Columns, c)
			for r := range t.Rows {
				t.Rows[r] = append(t.Rows[r], Null())
			}
		}
	}

	positions := make([]int, len(other.Columns))
	for i, c := range other.Columns {
		positions[i] = t.Index(c)
	}
	for _, src := range other.Rows {
		row := make([]Value, len(t.Columns))
		for i, v := range src {
			row[positions[i]] = v
		}
		t.Rows = append(t.Rows, row)
	}
}

// Filter keeps the rows for which keep returns true.
func (t *Table) Filter(keep func(row []Value) bool) {
	rows := t.Rows[:0]
	for _, row := range t.Rows {
		if keep(row) {
			rows = append(rows, row)
		}
	}
	t.Rows = rows
}

// ColumnKind returns KindNumber if every non-null cell of the column is a
// number and at least one is, KindNull if all cells are null, and KindText
// otherwise.
func (t *Table) ColumnKind(name string) Kind {
	i := t.Index(name)
	if i < 0 {
		return KindNull
	}
	kind := KindNull
	for _, row := range t.Rows {
		switch row[i].Kind() {
		case KindText:
			return KindText
		case KindNumber:
			kind = KindNumber
		}
	}
	return kind
}

// ColumnKinds returns the ColumnKind of every column, in column order.
func (t *Table) ColumnKinds() []Kind {
	kinds := make([]Kind, len(t.Columns))
	for i, c := range t.Columns {
		kinds[i] = t.ColumnKind(c)
	}
	return kinds
}

// Clone returns a deep copy of t.
func (t *Table) Clone() *Table {
	c := &Table{
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([][]Value, len(t.Rows)),
	}
	for r, row := range t.Rows {
		c.Rows[r] = append([]Value(nil), row...)
	}
	return c
}
