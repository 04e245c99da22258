// Package load reads table descriptors into the tables the generator
// consumes. Two sources are supported: hand-written YAML descriptors and the
// JSON schema documents produced by tbls.
package load

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/syssam/mapperkit/compiler/gen"
	"github.com/syssam/mapperkit/dialect"
)

// Loader loads table descriptors.
type Loader struct {
	dialect   string
	pkg       string
	delimited bool
	logger    *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithDialect sets the dialect column types are parsed with. Descriptors
// may override it.
func WithDialect(name string) Option {
	return func(l *Loader) { l.dialect = dialect.Normalize(name) }
}

// WithPackage sets the model package of tables that do not declare one.
func WithPackage(pkg string) Option {
	return func(l *Loader) { l.pkg = pkg }
}

// WithDelimited quotes the identifiers of every loaded table with the
// delimiters of its dialect.
func WithDelimited() Option {
	return func(l *Loader) { l.delimited = true }
}

// WithLogger sets the logger of the loader.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) { l.logger = logger }
}

// New returns a loader. The default dialect is MySQL.
func New(opts ...Option) *Loader {
	l := &Loader{dialect: dialect.MySQL, logger: slog.Default()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the given files and returns their tables in file order. Files
// ending in .json are read as tbls schemas, the rest as YAML descriptors.
// A table name may be declared only once across all files.
func (l *Loader) Load(ctx context.Context, paths ...string) ([]*gen.Table, error) {
	var (
		tables []*gen.Table
		seen   = make(map[string]string)
	)
	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		b, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("load: read %q: %w", path, err)
		}
		var ts []*gen.Table
		switch strings.ToLower(filepath.Ext(path)) {
		case ".json":
			ts, err = l.TBLS(b)
		default:
			ts, err = l.YAML(b)
		}
		if err != nil {
			return nil, fmt.Errorf("load: %s: %w", path, err)
		}
		for _, t := range ts {
			if prev, ok := seen[t.Name]; ok {
				return nil, gen.NewSchemaError(t.Name, "", fmt.Sprintf("declared in %s and %s", prev, path), nil)
			}
			seen[t.Name] = path
		}
		l.logger.Debug("tables loaded", "path", path, "tables", len(ts))
		tables = append(tables, ts...)
	}
	return tables, nil
}

// domain derives the domain name of a table from its runtime name, dropping
// any schema qualifier.
func domain(name string) string {
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		name = name[i+1:]
	}
	return gen.Camelize(name)
}

// delimit sets the identifier delimiters of the dialect on t.
func delimit(t *gen.Table, name string) {
	t.BeginDelimiter, t.EndDelimiter = dialect.Delimiters(name)
}
