package mock

import "github.com/fwojciec/capdata"

var _ capdata.TableLocator = (*TableLocator)(nil)

// TableLocator is a mock implementation of capdata.TableLocator.
type TableLocator struct {
	LocateFn func(html string, kind capdata.PageKind) (*capdata.Fragment, error)
}

func (l *TableLocator) Locate(html string, kind capdata.PageKind) (*capdata.Fragment, error) {
	return l.LocateFn(html, kind)
}
