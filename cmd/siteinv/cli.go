package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/siteinv"
	"github.com/fwojciec/siteinv/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Crawler *crawl.Crawler
	Reports siteinv.ReportStore
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB      string `name:"db" env:"SITEINV_DB" help:"Report database path (default: ~/.siteinv/siteinv.db)"`
	Verbose bool   `short:"v" help:"Log every fetch to stderr"`

	Crawl   CrawlCmd   `cmd:"" help:"Crawl a website and report the files found"`
	Reports ReportsCmd `cmd:"" help:"List saved reports"`
	Show    ShowCmd    `cmd:"" help:"Render a saved report"`
	Delete  DeleteCmd  `cmd:"" help:"Delete a saved report"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	URL         string        `arg:"" help:"Seed URL"`
	MaxPages    int           `short:"n" name:"max-pages" default:"100" help:"Maximum number of pages to visit"`
	Timeout     time.Duration `short:"t" help:"Per-fetch timeout (default: 10s, or 60s with --render)"`
	Concurrency int           `short:"c" default:"1" help:"Concurrent fetch limit"`
	Scope       string        `default:"exact" enum:"exact,substring,site" help:"Host match policy: exact, substring, or site"`
	AllowHost   []string      `name:"allow-host" help:"Extra in-scope host (repeatable)"`
	Retries     int           `default:"0" help:"Retries per failed fetch, with doubling backoff from 1s"`
	Render      bool          `short:"r" help:"Render pages in headless Chrome before extracting links"`
	Format      string        `short:"f" default:"text" enum:"text,markdown,yaml" help:"Report format: text, markdown, or yaml"`
	Output      string        `short:"o" help:"Write the report to a file instead of stdout"`
	Save        bool          `short:"s" help:"Save the report to the database"`
}

// ReportsCmd is the "reports" subcommand.
type ReportsCmd struct {
	Seed  string `help:"Only list reports for this seed URL"`
	Limit int    `short:"l" default:"20" help:"Maximum number of reports to list"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID     string `arg:"" help:"Report ID"`
	Format string `short:"f" default:"text" enum:"text,markdown,yaml" help:"Report format: text, markdown, or yaml"`
	Output string `short:"o" help:"Write the report to a file instead of stdout"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Report ID"`
	Force bool   `help:"Confirm deletion"`
}
