package goquery_test

import (
	"testing"

	"github.com/fwojciec/capdata"
	"github.com/fwojciec/capdata/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const directoryHTML = `<!DOCTYPE html>
<html>
<body>
<nav>
	<a href="https://www.spotrac.com/nfl/cap/">League Cap</a>
	<a href="https://www.spotrac.com/nfl/arizona-cardinals/cap/">Cardinals</a>
	<a href="https://www.spotrac.com/nfl/atlanta-falcons/cap/">Falcons</a>
	<a href="https://www.spotrac.com/nfl/arizona-cardinals/cap/">Cardinals again</a>
	<a href="/nfl/baltimore-ravens/cap/#top">Ravens</a>
	<a href="https://www.spotrac.com/nba/boston-celtics/cap/">Celtics</a>
	<a href="https://www.spotrac.com/nfl/arizona-cardinals/contracts/">Contracts</a>
	<a href="mailto:info@spotrac.com">Mail</a>
	<a>No href</a>
</nav>
</body>
</html>`

func newDiscoverer(t *testing.T) *goquery.LinkDiscoverer {
	t.Helper()
	d, err := goquery.NewLinkDiscoverer(capdata.DefaultRootURL, capdata.DefaultConfig().Links)
	require.NoError(t, err)
	return d
}

func TestLinkDiscoverer_Discover(t *testing.T) {
	t.Parallel()

	t.Run("returns distinct team cap pages", func(t *testing.T) {
		t.Parallel()

		teams, err := newDiscoverer(t).Discover(directoryHTML)

		require.NoError(t, err)
		assert.Equal(t, []capdata.TeamLocator{
			"https://www.spotrac.com/nfl/arizona-cardinals/cap/",
			"https://www.spotrac.com/nfl/atlanta-falcons/cap/",
			"https://www.spotrac.com/nfl/baltimore-ravens/cap/",
		}, teams)
	})

	t.Run("never returns the league aggregate page", func(t *testing.T) {
		t.Parallel()

		teams, err := newDiscoverer(t).Discover(directoryHTML)

		require.NoError(t, err)
		assert.NotContains(t, teams, capdata.TeamLocator("https://www.spotrac.com/nfl/cap/"))
		seen := make(map[capdata.TeamLocator]bool)
		for _, team := range teams {
			assert.False(t, seen[team], "duplicate %s", team)
			seen[team] = true
		}
	})

	t.Run("fails when no team links are present", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><a href="https://www.spotrac.com/nfl/cap/">League</a></body></html>`

		teams, err := newDiscoverer(t).Discover(html)

		assert.Equal(t, capdata.ENOLINKS, capdata.ErrorCode(err))
		assert.Nil(t, teams)
	})
}

func TestNewLinkDiscoverer_InvalidRoot(t *testing.T) {
	t.Parallel()

	_, err := goquery.NewLinkDiscoverer("://bad", capdata.DefaultConfig().Links)

	assert.Equal(t, capdata.EINVALID, capdata.ErrorCode(err))
}
