package main

import (
	"context"
	"io"
	"time"

	"github.com/jmbacasno/mangago"
	"github.com/jmbacasno/mangago/scrape"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Scraper *scrape.Scraper
	Writer  mangago.ListWriter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Export ExportCmd `cmd:"" help:"Scrape a reading list and write it to a JSON or CSV file"`
	Info   InfoCmd   `cmd:"" help:"Show a reading list's metadata without exporting"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Code        string        `arg:"" help:"Reading list code (from the list URL)"`
	Format      string        `short:"f" default:"json" enum:"json,csv" help:"Export format (json or csv)"`
	Out         string        `short:"o" default:"saves" env:"MANGAGO_OUT" help:"Output directory"`
	SkipDetails bool          `help:"Export entry stubs without fetching detail pages"`
	Concurrency int           `short:"c" default:"4" help:"Concurrent detail fetch limit"`
	Timeout     time.Duration `default:"10s" help:"Per-page fetch timeout"`
	Verbose     bool          `short:"v" help:"Log each fetch to stderr"`
}

// InfoCmd is the "info" subcommand.
type InfoCmd struct {
	Code    string        `arg:"" help:"Reading list code (from the list URL)"`
	Timeout time.Duration `default:"10s" help:"Per-page fetch timeout"`
	Verbose bool          `short:"v" help:"Log each fetch to stderr"`
}
