package mock

import "github.com/fwojciec/capdata"

var _ capdata.LinkDiscoverer = (*LinkDiscoverer)(nil)

// LinkDiscoverer is a mock implementation of capdata.LinkDiscoverer.
type LinkDiscoverer struct {
	DiscoverFn func(html string) ([]capdata.TeamLocator, error)
}

func (d *LinkDiscoverer) Discover(html string) ([]capdata.TeamLocator, error) {
	return d.DiscoverFn(html)
}
