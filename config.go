package capdata

import (
	"net/url"
)

// DefaultRootURL is the directory page listing every team.
const DefaultRootURL = "https://www.spotrac.com/nfl/"

// Config describes the site being scraped and the shape of its pages.
type Config struct {
	RootURL   string         `yaml:"root_url"`
	Seasons   []SeasonConfig `yaml:"seasons"`
	Links     LinkRules      `yaml:"links"`
	Selectors Selectors      `yaml:"selectors"`
	Columns   ColumnNames    `yaml:"columns"`
}

// LinkRules identify team pages among the links of the directory page.
type LinkRules struct {
	// TeamSuffix ends every team cap page URL.
	TeamSuffix string `yaml:"team_suffix"`

	// LeagueSegment must appear in a team page URL.
	LeagueSegment string `yaml:"league_segment"`

	// AggregateURL is the league-wide cap page, which matches the other
	// rules but is not a team page.
	AggregateURL string `yaml:"aggregate_url"`
}

// Selectors are the CSS selectors used to locate fragments on a team page.
type Selectors struct {
	RosterTable    string `yaml:"roster_table"`
	SummarySection string `yaml:"summary_section"`
	SummaryLabel   string `yaml:"summary_label"`
	SummaryValue   string `yaml:"summary_value"`
}

// ColumnNames are the header names the normalizer relies on.
type ColumnNames struct {
	// ActiveMarker is a substring of the roster's player name header,
	// e.g. "Active Roster (53)".
	ActiveMarker string `yaml:"active_marker"`

	// DuplicateCapHit is the name of the repeated cap hit column.
	DuplicateCapHit string `yaml:"duplicate_cap_hit"`

	// Placeholder marks name cells of unfilled roster slots.
	Placeholder string `yaml:"placeholder"`
}

// DefaultConfig returns the configuration for Spotrac's NFL cap pages.
func DefaultConfig() *Config {
	return &Config{
		RootURL: DefaultRootURL,
		Seasons: []SeasonConfig{
			{Year: 2022},
			{Year: 2023, PathSuffix: "2023/"},
		},
		Links: LinkRules{
			TeamSuffix:    "/cap/",
			LeagueSegment: "nfl",
			AggregateURL:  "https://www.spotrac.com/nfl/cap/",
		},
		Selectors: Selectors{
			RosterTable:    "table",
			SummarySection: "section.module-singles.xs-hide",
			SummaryLabel:   "span.info",
			SummaryValue:   "a",
		},
		Columns: ColumnNames{
			ActiveMarker:    "Active",
			DuplicateCapHit: "Cap Hit.1",
			Placeholder:     "Active Roster",
		},
	}
}

// Validate returns an error if the configuration cannot drive a run.
func (c *Config) Validate() error {
	u, err := url.Parse(c.RootURL)
	if err != nil || !u.IsAbs() {
		return Errorf(EINVALID, "root URL must be absolute: %q", c.RootURL)
	}
	if len(c.Seasons) == 0 {
		return Errorf(EINVALID, "at least one season required")
	}
	seen := make(map[Season]bool, len(c.Seasons))
	for _, s := range c.Seasons {
		if s.Year <= 0 {
			return Errorf(EINVALID, "invalid season year %d", s.Year)
		}
		if seen[s.Year] {
			return Errorf(EINVALID, "duplicate season %d", s.Year)
		}
		seen[s.Year] = true
	}
	if c.Links.TeamSuffix == "" || c.Links.LeagueSegment == "" {
		return Errorf(EINVALID, "link rules require a team suffix and a league segment")
	}
	if c.Selectors.RosterTable == "" || c.Selectors.SummarySection == "" ||
		c.Selectors.SummaryLabel == "" || c.Selectors.SummaryValue == "" {
		return Errorf(EINVALID, "all selectors are required")
	}
	if c.Columns.ActiveMarker == "" || c.Columns.Placeholder == "" {
		return Errorf(EINVALID, "active marker and placeholder are required")
	}
	return nil
}

// SeasonYears returns the configured seasons in order.
func (c *Config) SeasonYears() []Season {
	years := make([]Season, len(c.Seasons))
	for i, s := range c.Seasons {
		years[i] = s.Year
	}
	return years
}
