package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/syssam/mapperkit"
	"github.com/syssam/mapperkit/compiler/gen"
	"github.com/syssam/mapperkit/compiler/gen/sqlmap"
	"github.com/syssam/mapperkit/runtime/render"
)

// PreviewCmd prints the SQL a generated statement expands to for a set of
// parameters.
type PreviewCmd struct {
	Tables    []string `help:"Table descriptor files. Defaults to the tables of the config." type:"existingfile"`
	Table     string   `help:"Table name or domain name" required:""`
	Statement string   `help:"Statement id, e.g. insertBatchSelective" required:""`
	Params    string   `help:"YAML file holding the statement parameters" type:"existingfile"`
	Format    string   `help:"Output format" enum:"text,yaml" default:"text"`
}

// Preview is the expansion of one statement.
type Preview struct {
	Statement string `yaml:"statement"`
	SQL       string `yaml:"sql"`
	Args      []any  `yaml:"args"`
}

// Run executes the preview command.
func (p *PreviewCmd) Run(ctx *Context) error {
	cfg, err := ctx.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if len(p.Tables) > 0 {
		cfg.Tables = p.Tables
	}
	params := map[string]any{}
	if p.Params != "" {
		b, err := os.ReadFile(filepath.Clean(p.Params))
		if err != nil {
			return fmt.Errorf("read params: %w", err)
		}
		if err := yaml.Unmarshal(b, &params); err != nil {
			return fmt.Errorf("parse params %s: %w", p.Params, err)
		}
	}
	out, err := preview(context.Background(), ctx, cfg, p.Table, p.Statement, params)
	if err != nil {
		return err
	}
	return writePreview(ctx.Out, out, p.Format)
}

// preview synthesizes the unit of the named table and expands one of its
// statements.
func preview(ctx context.Context, app *Context, cfg *Config, table, id string, params map[string]any) (*Preview, error) {
	if len(cfg.Tables) == 0 {
		return nil, ErrNoTables
	}
	tables, err := cfg.Loader(app.Logger).Load(ctx, cfg.Tables...)
	if err != nil {
		return nil, err
	}
	t, err := findTable(tables, table)
	if err != nil {
		return nil, err
	}
	c, err := gen.NewConfig(cfg.Options(app.Logger)...)
	if err != nil {
		return nil, err
	}
	g, err := gen.NewGenerator(c, sqlmap.All()...)
	if err != nil {
		return nil, err
	}
	u, err := g.Unit(t)
	if err != nil {
		return nil, err
	}
	if names, ok := showField(params); ok {
		if _, err := sqlmap.ExpandSelectiveRow(t, names, c.StrictShowField); err != nil {
			return nil, err
		}
	}
	sql, args, err := render.Statement(u.Document, id, params)
	if err != nil {
		return nil, err
	}
	return &Preview{Statement: u.Document.Namespace + "." + id, SQL: sql, Args: args}, nil
}

func findTable(tables []*gen.Table, name string) (*gen.Table, error) {
	for _, t := range tables {
		if t.Name == name || strings.EqualFold(t.Domain, name) {
			return t, nil
		}
	}
	return nil, mapperkit.NewNotFoundErrorWithName("table", name)
}

// showField returns the selected column names of a parameter map.
func showField(params map[string]any) ([]string, bool) {
	raw, ok := params[sqlmap.ShowFieldParam].([]any)
	if !ok {
		return nil, false
	}
	names := make([]string, 0, len(raw))
	for _, v := range raw {
		names = append(names, fmt.Sprint(v))
	}
	return names, true
}

func writePreview(w io.Writer, p *Preview, format string) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return err
		}
		return enc.Close()
	}
	args := make([]string, len(p.Args))
	for i, a := range p.Args {
		args[i] = fmt.Sprintf("%v", a)
	}
	_, err := fmt.Fprintf(w, "-- %s\n%s\n-- args: [%s]\n", p.Statement, p.SQL, strings.Join(args, ", "))
	return err
}
