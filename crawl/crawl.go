// Package crawl drives a scrape: it discovers team pages, fetches each
// team's page for every season, and turns the located fragments into
// season-wide datasets.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/capdata"
	"github.com/google/uuid"
)

// Crawler orchestrates one scrape of all team cap pages. Pages are fetched
// and processed one at a time.
type Crawler struct {
	Config  *capdata.Config
	Fetcher capdata.Fetcher
	Links   capdata.LinkDiscoverer
	Locator capdata.TableLocator

	// Auditor, if set, reports roster headers that look like renamed
	// versions of the columns normalization depends on.
	Auditor capdata.ColumnAuditor

	// Logger receives info events per team and season. Defaults to discarding.
	Logger *slog.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Team is a discovered team page with its derived name.
type Team struct {
	Locator capdata.TeamLocator
	Name    string
}

// ProgressEvent reports that a team page for one season has been processed.
type ProgressEvent struct {
	Completed int
	Total     int
	Team      string
	Season    capdata.Season
	URL       string
}

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Teams fetches the directory page and returns the team pages it links to.
func (c *Crawler) Teams(ctx context.Context) ([]Team, error) {
	html, err := c.Fetcher.Fetch(ctx, c.Config.RootURL)
	if err != nil {
		return nil, fmt.Errorf("fetch directory page %s: %w", c.Config.RootURL, err)
	}

	locators, err := c.Links.Discover(html)
	if err != nil {
		return nil, err
	}

	teams := make([]Team, 0, len(locators))
	for _, l := range locators {
		name, err := l.Name(c.Config.Links)
		if err != nil {
			return nil, err
		}
		teams = append(teams, Team{Locator: l, Name: name})
	}
	return teams, nil
}

// Run scrapes every team page for every configured season and returns the
// finished datasets. Any failure aborts the run; no partial datasets are
// returned.
func (c *Crawler) Run(ctx context.Context, progress ProgressFunc) (*capdata.Run, error) {
	logger := c.logger()
	run := &capdata.Run{
		ID:        uuid.NewString(),
		RootURL:   c.Config.RootURL,
		StartedAt: c.now(),
	}
	logger = logger.With("run", run.ID)

	logger.Info("discovering teams", "url", c.Config.RootURL)
	teams, err := c.Teams(ctx)
	if err != nil {
		return nil, err
	}
	run.Teams = len(teams)

	agg := capdata.NewAggregator(c.Config.SeasonYears(), c.Config.Columns)
	total := len(teams) * len(c.Config.Seasons)
	completed := 0

	for _, team := range teams {
		for _, season := range c.Config.Seasons {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			url := team.Locator.SeasonURL(season)
			logger.Info("scraping team", "team", team.Name, "season", int(season.Year))
			if err := c.scrapePage(ctx, logger, agg, team, season.Year, url); err != nil {
				return nil, err
			}

			completed++
			if progress != nil {
				progress(ProgressEvent{
					Completed: completed,
					Total:     total,
					Team:      team.Name,
					Season:    season.Year,
					URL:       url,
				})
			}
		}
	}

	datasets, err := agg.Finish()
	if err != nil {
		return nil, err
	}
	for _, d := range datasets {
		if d.Checksum, err = Checksum(d.Table); err != nil {
			return nil, err
		}
		logger.Info("dataset",
			"name", d.Name,
			"rows", d.Table.Len(),
			"columns", len(d.Table.Columns),
			"checksum", d.Checksum,
		)
	}
	run.Datasets = datasets
	run.FinishedAt = c.now()
	return run, nil
}

// scrapePage fetches one team page and adds its summary and roster to agg.
func (c *Crawler) scrapePage(ctx context.Context, logger *slog.Logger, agg *capdata.Aggregator, team Team, season capdata.Season, url string) error {
	pageErr := func(kind capdata.PageKind, err error) error {
		return &capdata.PageError{Team: team.Name, Season: season, Kind: kind, URL: url, Err: err}
	}

	html, err := c.Fetcher.Fetch(ctx, url)
	if err != nil {
		return pageErr("", err)
	}

	for _, kind := range []capdata.PageKind{capdata.PageTeamSummary, capdata.PagePlayerRoster} {
		frag, err := c.Locator.Locate(html, kind)
		if err != nil {
			return pageErr(kind, err)
		}

		table, err := capdata.ExtractTable(frag)
		if err != nil {
			return pageErr(kind, err)
		}

		switch kind {
		case capdata.PageTeamSummary:
			capdata.NormalizeSummary(table, team.Name, season)
		case capdata.PagePlayerRoster:
			c.audit(logger, team, season, table.Columns)
			if err := capdata.NormalizeRoster(table, team.Name, season, c.Config.Columns); err != nil {
				return pageErr(kind, err)
			}
		}

		if err := agg.Add(kind, season, table); err != nil {
			return pageErr(kind, err)
		}
	}
	return nil
}

func (c *Crawler) audit(logger *slog.Logger, team Team, season capdata.Season, columns []string) {
	if c.Auditor == nil {
		return
	}
	for _, d := range c.Auditor.Audit(columns) {
		logger.Warn("column drift",
			"team", team.Name,
			"season", int(season),
			"expected", d.Expected,
			"column", d.Column,
			"score", d.Score,
		)
	}
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}

func (c *Crawler) now() time.Time {
	if c.Now == nil {
		return time.Now().UTC()
	}
	return c.Now()
}
