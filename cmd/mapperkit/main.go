// Command mapperkit generates mapper documents and Go mapper sources from
// table descriptors, and previews the SQL of generated statements.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/fatih/color"
)

// Context is shared by all commands.
type Context struct {
	Config   string
	Verbose  bool
	Quiet    bool
	Out      io.Writer
	Logger   *slog.Logger
	required bool
}

// LoadConfig loads the configuration file of the context.
func (c *Context) LoadConfig() (*Config, error) {
	return LoadConfig(c.Config, c.required)
}

func (c *Context) status(attr color.Attribute, format string, args ...any) {
	if c.Quiet {
		return
	}
	color.New(attr).Fprintf(c.Out, format+"\n", args...)
}

// DefaultConfig is the configuration file read when --config is not given.
// It may be absent.
const DefaultConfig = "mapperkit.yaml"

// CLI is the command-line interface.
var CLI struct {
	Config   string      `help:"Configuration file path" default:"mapperkit.yaml"`
	Verbose  bool        `help:"Enable verbose output" short:"v"`
	Quiet    bool        `help:"Suppress output" short:"q"`
	Generate GenerateCmd `cmd:"" help:"Generate mapper documents and Go sources"`
	Preview  PreviewCmd  `cmd:"" help:"Print the SQL of a generated statement"`
	Watch    WatchCmd    `cmd:"" help:"Regenerate when table descriptors change"`
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("mapperkit"),
		kong.Description("MyBatis-style mapper generator."),
	)
	app := &Context{
		Config:  CLI.Config,
		Verbose: CLI.Verbose,
		Quiet:   CLI.Quiet,
		Out:     os.Stdout,
		Logger:  newLogger(os.Stderr, CLI.Verbose),

		required: CLI.Config != DefaultConfig,
	}
	if err := ctx.Run(app); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
