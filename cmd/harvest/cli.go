package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/harvest"
	"github.com/fwojciec/harvest/crawl"
	"github.com/fwojciec/harvest/yaml"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Config   *yaml.Config
	Logger   *slog.Logger
	Records  harvest.RecordService
	Pipeline *crawl.Pipeline
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config      string `short:"c" type:"path" help:"YAML config file"`
	DB          string `name:"db" type:"path" help:"Knowledge base SQLite path"`
	Out         string `short:"o" type:"path" help:"JSON archive path"`
	Concurrency int    `short:"j" help:"Concurrent article workers (1-8)"`
	LogLevel    string `name:"log-level" help:"Log level (debug, info, warn, error)"`
	NoTranslate bool   `name:"no-translate" help:"Skip translation"`

	Run     RunCmd     `cmd:"" default:"withargs" help:"Harvest the listing page once"`
	Records RecordsCmd `cmd:"" help:"List records stored in the knowledge base"`
}

// apply overrides configuration values with the flags that were set.
func (c *CLI) apply(cfg *yaml.Config) {
	if c.DB != "" {
		cfg.Output.Database = c.DB
	}
	if c.Out != "" {
		cfg.Output.Archive = c.Out
	}
	if c.Concurrency > 0 {
		cfg.Concurrency = c.Concurrency
	}
	if c.LogLevel != "" {
		cfg.LogLevel = c.LogLevel
	}
	if c.NoTranslate {
		cfg.Translation.Enabled = false
	}
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Quiet bool `short:"q" help:"Hide per-article progress"`
}

// RecordsCmd is the "records" subcommand.
type RecordsCmd struct {
	Category string `help:"Only show records in this category"`
	Limit    int    `short:"n" default:"20" help:"Maximum number of records"`
	Offset   int    `help:"Number of records to skip"`
}
