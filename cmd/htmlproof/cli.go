package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/htmlproof"
	"github.com/fwojciec/htmlproof/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	DB         *sqlite.DB
	References htmlproof.ReferenceService
	Logger     *slog.Logger // nil disables logging decorators
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log scanning activity to stderr"`

	Scan ScanCmd `cmd:"" help:"Extract references from the HTML documents of a site"`
	List ListCmd `cmd:"" help:"List stored references"`
}

// ScanCmd is the "scan" subcommand.
type ScanCmd struct {
	Root            string   `arg:"" optional:"" default:"." help:"Site root directory"`
	Include         []string `short:"i" name:"include" help:"Path or glob under the root to scan (repeatable)"`
	Config          string   `short:"C" name:"config" help:"YAML configuration file"`
	BaseURL         string   `name:"base-url" help:"URL the site root is served at"`
	SwapAttribute   []string `name:"swap-attribute" help:"Rename an attribute before extraction, as tag:old=new (repeatable)"`
	IgnoreURL       []string `name:"ignore-url" help:"Ignore references equal to a value or matching /regex/ (repeatable)"`
	DisableExternal bool     `name:"disable-external" help:"Mark remote references as ignored"`
	Extension       []string `name:"extension" help:"File extension to scan (repeatable)"`
	Concurrency     int      `short:"c" default:"10" help:"Concurrent document limit"`
	Format          string   `short:"f" enum:"table,json" default:"table" help:"Output format (table, json)"`
	Output          string   `short:"o" help:"Write the report to a file instead of stdout"`
	Save            bool     `help:"Store references, replacing earlier results per document"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Document string `short:"d" help:"Only references from this document"`
	Target   string `short:"t" help:"Only references resolving to this URL"`
	Limit    int    `short:"n" help:"Maximum number of references"`
	Format   string `short:"f" enum:"table,json" default:"table" help:"Output format (table, json)"`
}
