package main

import (
	"fmt"

	"github.com/fwojciec/capdata"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Run executes the teams command.
func (c *TeamsCmd) Run(deps *Dependencies) error {
	teams, err := deps.Crawler.Teams(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", capdata.ErrorMessage(err))
		return err
	}

	t := newTable(deps)
	t.AppendHeader(table.Row{"Team", "URL"})
	for _, team := range teams {
		t.AppendRow(table.Row{team.Name, string(team.Locator)})
	}
	t.AppendFooter(table.Row{"Total", len(teams)})
	t.Render()
	return nil
}
