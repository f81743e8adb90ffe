package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/capdata"
	"github.com/fwojciec/capdata/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Config  *capdata.Config
	Crawler *crawl.Crawler
	Writer  capdata.DatasetWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config   string `short:"c" type:"path" env:"CAPSCRAPE_CONFIG" help:"YAML config file (defaults apply to unset fields)"`
	LogLevel string `enum:"debug,info,warn,error" default:"info" help:"Log level (debug, info, warn, error)"`
	LogFile  string `type:"path" env:"CAPSCRAPE_LOG_FILE" help:"Also write logs to this file, rotated by size"`

	Scrape ScrapeCmd `cmd:"" help:"Scrape all team pages and write the datasets"`
	Teams  TeamsCmd  `cmd:"" help:"List the team pages linked from the directory page"`
}

// FetchFlags select and configure the page fetcher.
type FetchFlags struct {
	Browser   bool          `help:"Render pages in a headless browser"`
	Timeout   time.Duration `short:"t" default:"30s" help:"Fetch timeout per page"`
	UserAgent string        `help:"User-Agent header for plain HTTP fetches"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	FetchFlags `embed:""`

	Out      string `short:"o" default:"data" help:"Output directory for dataset files"`
	Format   string `short:"f" enum:"json,csv" default:"json" help:"Dataset file format (json, csv)"`
	DB       string `name:"db" env:"CAPSCRAPE_DB" help:"Also write datasets to this SQLite database"`
	Postgres string `env:"CAPSCRAPE_POSTGRES_DSN" help:"Also write datasets to this PostgreSQL database"`
}

// TeamsCmd is the "teams" subcommand.
type TeamsCmd struct {
	FetchFlags `embed:""`
}
