package capdata

import (
	"regexp"
	"strconv"
	"strings"
)

// SummaryPlaceholder is the value text shown for a zero summary metric.
const SummaryPlaceholder = "-"

var (
	amountCleaner = strings.NewReplacer("$", "", ",", "")
	decimalRe     = regexp.MustCompile(`^[-+]?(\d+\.?\d*|\.\d+)$`)
)

// ParseAmount parses a summary value such as "$5,000,000". The placeholder
// "-" is zero. Anything that is not a decimal number once "$" and "," are
// removed returns ENUMERIC.
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == SummaryPlaceholder {
		return 0, nil
	}
	f, ok := parseDecimal(s)
	if !ok {
		return 0, Errorf(ENUMERIC, "cannot parse %q as a number", s)
	}
	return f, nil
}

// ParseCell converts roster cell text to a value: empty text is null, text
// that is a decimal number once "$" and "," are removed is a number, and
// anything else is kept as text.
func ParseCell(s string) Value {
	s = strings.TrimSpace(s)
	if s == "" {
		return Null()
	}
	if f, ok := parseDecimal(s); ok {
		return Number(f)
	}
	return Text(s)
}

func parseDecimal(s string) (float64, bool) {
	cleaned := amountCleaner.Replace(s)
	if !decimalRe.MatchString(cleaned) {
		return 0, false
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// ExtractTable converts a fragment into a table.
// Roster fragments become one row per body row. Summary fragments become a
// single row with one column per label.
func ExtractTable(f *Fragment) (*Table, error) {
	switch f.Kind {
	case PagePlayerRoster:
		return extractRoster(f)
	case PageTeamSummary:
		return extractSummary(f)
	default:
		return nil, Errorf(EINVALID, "unknown page kind %q", f.Kind)
	}
}

func extractRoster(f *Fragment) (*Table, error) {
	if len(f.Header) == 0 {
		return nil, Errorf(ESTRUCTURE, "roster table has no header")
	}

	t := NewTable(dedupeHeader(f.Header)...)
	for i, cells := range f.Rows {
		if len(cells) > len(t.Columns) {
			return nil, Errorf(ESCHEMA, "roster row %d has %d cells, header has %d", i, len(cells), len(t.Columns))
		}
		row := make([]Value, len(t.Columns))
		for j, cell := range cells {
			row[j] = ParseCell(cell)
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// dedupeHeader trims header names and suffixes repeats with ".1", ".2", ...
// so that every column has a distinct name.
func dedupeHeader(header []string) []string {
	names := make([]string, len(header))
	taken := make(map[string]bool, len(header))
	counts := make(map[string]int, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		name := h
		for taken[name] {
			counts[h]++
			name = h + "." + strconv.Itoa(counts[h])
		}
		taken[name] = true
		names[i] = name
	}
	return names
}

func extractSummary(f *Fragment) (*Table, error) {
	if len(f.Labels) != len(f.Values) {
		return nil, Errorf(ESCHEMA, "summary has %d labels and %d values", len(f.Labels), len(f.Values))
	}

	t := NewTable()
	row := []Value{}
	for i, label := range f.Labels {
		amount, err := ParseAmount(f.Values[i])
		if err != nil {
			return nil, Errorf(ENUMERIC, "summary metric %q: %s", SummaryLabel(label), ErrorMessage(err))
		}
		name := SummaryLabel(label)
		if j := t.Index(name); j >= 0 {
			row[j] = Number(amount)
			continue
		}
		t.Columns = append(t.Columns, name)
		row = append(row, Number(amount))
	}
	t.Rows = append(t.Rows, row)
	return t, nil
}

// SummaryLabel trims a summary label and its trailing ":".
func SummaryLabel(s string) string {
	return strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), ":"))
}
