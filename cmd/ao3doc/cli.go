package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/ao3doc"
	"github.com/fwojciec/ao3doc/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	BaseURL string
	Works   ao3doc.WorkService
	Scraper *scrape.Scraper
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool   `short:"v" help:"Log fetches, parses and storage operations to stderr"`
	BaseURL string `name:"base-url" env:"AO3DOC_BASE_URL" default:"https://archiveofourown.org" help:"Archive base URL"`

	Fetch  FetchCmd  `cmd:"" help:"Fetch and parse works by ID"`
	Show   ShowCmd   `cmd:"" help:"Show a saved work"`
	List   ListCmd   `cmd:"" help:"List saved works"`
	Delete DeleteCmd `cmd:"" help:"Delete a saved work"`
}

// FetchCmd is the "fetch" subcommand.
type FetchCmd struct {
	IDs         []string      `arg:"" name:"id" help:"Work IDs to fetch"`
	Format      string        `short:"f" enum:"markdown,json,xml" default:"markdown" help:"Output format (markdown, json, xml)"`
	Out         string        `short:"o" type:"path" help:"Write one file per work into this directory instead of stdout"`
	Save        bool          `short:"s" help:"Save works to the local database"`
	Browser     bool          `help:"Fetch with a headless browser"`
	Selectors   string        `type:"existingfile" help:"YAML file overriding field selectors"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent fetch limit"`
	Timeout     time.Duration `short:"t" default:"30s" help:"Fetch timeout per work"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID     string `arg:"" help:"Work ID"`
	Format string `short:"f" enum:"markdown,json,xml" default:"markdown" help:"Output format (markdown, json, xml)"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Author string `short:"a" help:"Only list works by this author"`
	Limit  int    `short:"n" help:"Maximum number of works to list"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Work ID"`
	Force bool   `help:"Confirm deletion"`
}
