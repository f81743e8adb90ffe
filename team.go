package capdata

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Season is a league year, e.g. 2022.
type Season int

// SeasonConfig describes how to reach one season's version of a team page.
type SeasonConfig struct {
	Year Season `yaml:"year"`

	// PathSuffix is appended to a team locator to reach this season's page.
	// Empty for the season a locator points at by default.
	PathSuffix string `yaml:"path_suffix"`
}

// TeamLocator is the URL of one team's cap page.
type TeamLocator string

// Name derives a human-readable team name from the locator: the path between
// the league segment and the team page suffix, with dashes turned into spaces
// and title-cased. "https://www.spotrac.com/nfl/new-york-jets/cap/" becomes
// "New York Jets".
func (l TeamLocator) Name(rules LinkRules) (string, error) {
	u := string(l)
	if u == "" || u == rules.AggregateURL {
		return "", Errorf(EINVALID, "not a team page: %q", u)
	}

	segment := rules.LeagueSegment + "/"
	i := strings.Index(u, segment)
	j := strings.LastIndex(u, rules.TeamSuffix)
	if i < 0 || j < 0 || i+len(segment) >= j {
		return "", Errorf(EINVALID, "cannot derive team name from %q", u)
	}

	slug := strings.TrimSpace(strings.ReplaceAll(u[i+len(segment):j], "-", " "))
	if slug == "" {
		return "", Errorf(EINVALID, "cannot derive team name from %q", u)
	}
	return cases.Title(language.English).String(slug), nil
}

// SeasonURL returns the URL of the team's page for the given season.
func (l TeamLocator) SeasonURL(s SeasonConfig) string {
	return string(l) + s.PathSuffix
}

// LinkDiscoverer finds team page locators on the directory page.
type LinkDiscoverer interface {
	// Discover returns the distinct team locators linked from html.
	// Returns ENOLINKS if there are none.
	Discover(html string) ([]TeamLocator, error)
}

// Fetcher retrieves page HTML by URL.
type Fetcher interface {
	// Fetch returns the HTML at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases resources held by the fetcher.
	Close() error
}
