package capdata

// Position level 1 groups.
const (
	GroupOffense        = "Offense"
	GroupDefenseSpecial = "Defense & ST"
)

// OffenseCodes are the position codes classified as offense.
var OffenseCodes = codeSet("LT", "WR", "RT", "G", "RB", "QB", "C", "TE", "T", "FB", "OL")

// TackleCodes collapse to "T" at level 3.
var TackleCodes = codeSet("RT", "LT", "T")

// PositionRule rewrites any code in Codes to Label.
type PositionRule struct {
	Codes map[string]bool
	Label string
}

// Level2Rules are applied in order; a later match overwrites an earlier one.
var Level2Rules = []PositionRule{
	{Codes: codeSet("LT", "RT", "OL", "C", "G", "T"), Label: "OL"},
	{Codes: codeSet("RB", "FB"), Label: "HB"},
	{Codes: codeSet("CB", "SS", "S", "FS"), Label: "DB"},
	{Codes: codeSet("ILB", "OLB", "LB"), Label: "LB"},
	{Codes: codeSet("DE", "DT"), Label: "DL"},
	{Codes: codeSet("K", "P", "LS"), Label: "ST"},
}

func codeSet(codes ...string) map[string]bool {
	m := make(map[string]bool, len(codes))
	for _, c := range codes {
		m[c] = true
	}
	return m
}

// Positions are the three classification levels of one position code.
type Positions struct {
	Level1 Value
	Level2 Value
	Level3 Value
}

// ClassifyPosition derives the classification levels of a position code.
// A null code is not offense and has null levels 2 and 3.
func ClassifyPosition(code Value) Positions {
	return ClassifyPositionWith(code, Level2Rules)
}

// ClassifyPositionWith is ClassifyPosition with a custom list of level 2
// rules.
func ClassifyPositionWith(code Value, rules []PositionRule) Positions {
	if code.IsNull() {
		return Positions{Level1: Text(GroupDefenseSpecial), Level2: Null(), Level3: Null()}
	}
	raw := code.String()

	p := Positions{Level1: Text(GroupDefenseSpecial), Level2: code, Level3: code}
	if OffenseCodes[raw] {
		p.Level1 = Text(GroupOffense)
	}
	for _, rule := range rules {
		if rule.Codes[raw] {
			p.Level2 = Text(rule.Label)
		}
	}
	if TackleCodes[raw] {
		p.Level3 = Text("T")
	}
	return p
}

// ClassifyPositions adds "Position Level 1" and "Position Level 2" to the
// player table and turns the "Pos." column into "Position Level 3".
// Running it again on its own output recomputes the same levels from
// "Position Level 3".
func ClassifyPositions(t *Table) error {
	source := ColumnPosition
	if !t.Has(source) {
		source = ColumnPositionLevel3
		if !t.Has(source) {
			return Errorf(ESCHEMA, "no %q column to classify", ColumnPosition)
		}
	}
	i := t.Index(source)

	levels := make([]Positions, len(t.Rows))
	for r, row := range t.Rows {
		levels[r] = ClassifyPosition(row[i])
	}

	t.Set(ColumnPositionLevel1, func(r int, _ []Value) Value { return levels[r].Level1 })
	t.Set(ColumnPositionLevel2, func(r int, _ []Value) Value { return levels[r].Level2 })

	if source == ColumnPosition {
		if err := t.Rename(ColumnPosition, ColumnPositionLevel3); err != nil {
			return err
		}
	}
	for r, row := range t.Rows {
		row[i] = levels[r].Level3
	}
	return nil
}
