package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/capdata"
	"github.com/fwojciec/capdata/crawl"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	progress := func(e crawl.ProgressEvent) {
		fmt.Fprintf(deps.Stderr, "[%d/%d] %s %d %s\n",
			e.Completed, e.Total, e.Team, e.Season, crawl.TruncateURL(e.URL, 40))
	}

	run, err := deps.Crawler.Run(deps.Ctx, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", capdata.ErrorMessage(err))
		return err
	}

	if err := deps.Writer.WriteRun(deps.Ctx, run); err != nil {
		fmt.Fprintf(deps.Stderr, "error writing datasets: %v\n", err)
		return err
	}

	t := newTable(deps)
	t.AppendHeader(table.Row{"Dataset", "Rows", "Columns", "Checksum"})
	for _, d := range run.Datasets {
		t.AppendRow(table.Row{d.Name, d.Table.Len(), len(d.Table.Columns), d.Checksum})
	}
	t.Render()

	fmt.Fprintf(deps.Stdout, "Scraped %d teams in %s, wrote to %s\n",
		run.Teams, run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond), c.Out)
	return nil
}

// newTable returns a table writer that renders to stdout.
func newTable(deps *Dependencies) table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(deps.Stdout)
	return t
}
