package capdata

// PageKind identifies which fragment of a team page is wanted.
type PageKind string

const (
	PageTeamSummary  PageKind = "team summary"
	PagePlayerRoster PageKind = "player roster"
)

// Fragment is the raw content of one located page region. Roster fragments
// fill Header and Rows; summary fragments fill Labels and Values.
type Fragment struct {
	Kind PageKind

	Header []string
	Rows   [][]string

	Labels []string
	Values []string
}

// Cells returns the number of text cells in the fragment.
func (f *Fragment) Cells() int {
	n := len(f.Header) + len(f.Labels) + len(f.Values)
	for _, row := range f.Rows {
		n += len(row)
	}
	return n
}

// TableLocator finds the fragment of a given kind on a team page.
type TableLocator interface {
	// Locate returns the fragment of the given kind in html.
	// Returns ESTRUCTURE if the page has no such fragment and ESCHEMA if
	// a summary's labels and values cannot be paired.
	Locate(html string, kind PageKind) (*Fragment, error)
}
