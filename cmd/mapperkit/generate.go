package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"

	"github.com/syssam/mapperkit/compiler/gen"
	"github.com/syssam/mapperkit/compiler/gen/emit"
	"github.com/syssam/mapperkit/compiler/gen/sqlmap"
)

// ErrNoTables is returned when neither the command line nor the
// configuration names a table descriptor.
var ErrNoTables = errors.New("no table descriptor files given")

// GenerateCmd writes the mapper documents and Go sources of the tables.
type GenerateCmd struct {
	Tables []string `help:"Table descriptor files, YAML or tbls JSON. Defaults to the tables of the config." type:"existingfile"`
	Target string   `help:"Output directory. Overrides the config."`
}

// Run executes the generate command.
func (g *GenerateCmd) Run(ctx *Context) error {
	cfg, err := ctx.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if g.Target != "" {
		cfg.Target = g.Target
	}
	if len(g.Tables) > 0 {
		cfg.Tables = g.Tables
	}
	_, err = generate(context.Background(), ctx, cfg)
	return err
}

// generate runs one generation over the tables of the configuration.
func generate(ctx context.Context, app *Context, cfg *Config) (gen.WriteStats, error) {
	if len(cfg.Tables) == 0 {
		return gen.WriteStats{}, ErrNoTables
	}
	tables, err := cfg.Loader(app.Logger).Load(ctx, cfg.Tables...)
	if err != nil {
		return gen.WriteStats{}, err
	}
	c, err := gen.NewConfig(cfg.Options(app.Logger)...)
	if err != nil {
		return gen.WriteStats{}, err
	}
	g, err := gen.NewGenerator(c, sqlmap.All()...)
	if err != nil {
		return gen.WriteStats{}, err
	}
	for _, w := range g.Warnings() {
		app.status(color.FgYellow, "warning: %s", w)
	}
	if app.Verbose {
		app.status(color.FgBlue, "Generating %d table(s) with %v", len(tables), g.Synthesizers())
	}

	units, err := g.Generate(ctx, tables)
	if err != nil {
		return gen.WriteStats{}, err
	}
	w, err := gen.NewWriter(c, emit.XML(), emit.Go(c))
	if err != nil {
		return gen.WriteStats{}, err
	}
	stats, err := w.Write(ctx, g.RunID(), units)
	if err != nil {
		return stats, err
	}
	app.status(color.FgGreen, "Generated %d file(s), %d unchanged, in %s", stats.Written, stats.Skipped, c.Target)
	return stats, nil
}
