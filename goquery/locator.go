package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/capdata"
)

// Ensure Locator implements capdata.TableLocator at compile time.
var _ capdata.TableLocator = (*Locator)(nil)

// Locator finds the roster table and the cap summary on a team page.
type Locator struct {
	selectors capdata.Selectors
}

// NewLocator creates a Locator using the given selectors.
func NewLocator(selectors capdata.Selectors) *Locator {
	return &Locator{selectors: selectors}
}

// Locate returns the fragment of the given kind in html.
func (l *Locator) Locate(html string, kind capdata.PageKind) (*capdata.Fragment, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, capdata.Errorf(capdata.EINVALID, "failed to parse HTML: %v", err)
	}

	switch kind {
	case capdata.PagePlayerRoster:
		return l.locateRoster(doc)
	case capdata.PageTeamSummary:
		return l.locateSummary(doc)
	default:
		return nil, capdata.Errorf(capdata.EINVALID, "unknown page kind %q", kind)
	}
}

// locateRoster reads the first table in document order. The header is the
// first row of thead, or the first row of the table when there is no thead.
func (l *Locator) locateRoster(doc *goquery.Document) (*capdata.Fragment, error) {
	table := doc.Find(l.selectors.RosterTable).First()
	if table.Length() == 0 {
		return nil, capdata.Errorf(capdata.ESTRUCTURE, "no %q element on page", l.selectors.RosterTable)
	}

	frag := &capdata.Fragment{Kind: capdata.PagePlayerRoster}

	head := table.ChildrenFiltered("thead").ChildrenFiltered("tr").First()
	body := table.ChildrenFiltered("tbody, tfoot").ChildrenFiltered("tr")
	if head.Length() == 0 {
		rows := table.ChildrenFiltered("tbody").ChildrenFiltered("tr")
		if rows.Length() == 0 {
			return nil, capdata.Errorf(capdata.ESTRUCTURE, "roster table has no rows")
		}
		head = rows.First()
		body = rows.Slice(1, goquery.ToEnd).AddSelection(table.ChildrenFiltered("tfoot").ChildrenFiltered("tr"))
	}

	frag.Header = rowCells(head)
	body.Each(func(_ int, tr *goquery.Selection) {
		if cells := rowCells(tr); len(cells) > 0 {
			frag.Rows = append(frag.Rows, cells)
		}
	})
	return frag, nil
}

// locateSummary pairs metric labels with metric values in the first
// summary section.
func (l *Locator) locateSummary(doc *goquery.Document) (*capdata.Fragment, error) {
	section := doc.Find(l.selectors.SummarySection).First()
	if section.Length() == 0 {
		return nil, capdata.Errorf(capdata.ESTRUCTURE, "no %q element on page", l.selectors.SummarySection)
	}

	frag := &capdata.Fragment{
		Kind:   capdata.PageTeamSummary,
		Labels: texts(section.Find(l.selectors.SummaryLabel)),
		Values: texts(section.Find(l.selectors.SummaryValue)),
	}
	if len(frag.Labels) != len(frag.Values) {
		return nil, capdata.Errorf(capdata.ESCHEMA, "summary has %d labels and %d values", len(frag.Labels), len(frag.Values))
	}
	return frag, nil
}

func rowCells(tr *goquery.Selection) []string {
	return texts(tr.ChildrenFiltered("th, td"))
}

func texts(sel *goquery.Selection) []string {
	out := make([]string, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, cleanText(s.Text()))
	})
	return out
}

// cleanText collapses runs of whitespace, including non-breaking spaces,
// into single spaces.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
