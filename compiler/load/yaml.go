package load

import (
	"fmt"
	"strings"

	"github.com/goccy/go-yaml"

	"github.com/syssam/mapperkit/compiler/gen"
	"github.com/syssam/mapperkit/dialect"
	"github.com/syssam/mapperkit/schema/field"
)

// File is a YAML table descriptor file:
//
//	dialect: mysql
//	package: com.example.user
//	delimited: true
//	tables:
//	  - name: user
//	    columns:
//	      - name: id
//	        type: bigint
//	        primaryKey: true
//	        identity: true
//	      - name: user_name
//	        type: varchar(64)
type File struct {
	Dialect   string   `yaml:"dialect,omitempty"`
	Package   string   `yaml:"package,omitempty"`
	Delimited bool     `yaml:"delimited,omitempty"`
	Tables    []*Table `yaml:"tables"`
}

// Table describes one table of a descriptor file.
type Table struct {
	Name            string    `yaml:"name"`
	Domain          string    `yaml:"domain,omitempty"`
	Alias           string    `yaml:"alias,omitempty"`
	Package         string    `yaml:"package,omitempty"`
	BeginDelimiter  string    `yaml:"beginDelimiter,omitempty"`
	EndDelimiter    string    `yaml:"endDelimiter,omitempty"`
	QueryID         string    `yaml:"queryId,omitempty"`
	PrimaryKeyClass bool      `yaml:"primaryKeyClass,omitempty"`
	Columns         []*Column `yaml:"columns"`
}

// Column describes one column of a table.
type Column struct {
	Name            string `yaml:"name"`
	Property        string `yaml:"property,omitempty"`
	Type            string `yaml:"type"`
	PrimaryKey      bool   `yaml:"primaryKey,omitempty"`
	Identity        bool   `yaml:"identity,omitempty"`
	GeneratedAlways bool   `yaml:"generatedAlways,omitempty"`
	Nullable        bool   `yaml:"nullable,omitempty"`
	JDBCType        string `yaml:"jdbcType,omitempty"`
	TypeHandler     string `yaml:"typeHandler,omitempty"`
	Comment         string `yaml:"comment,omitempty"`
}

// YAML reads the tables of a descriptor file. Unknown keys are rejected.
func (l *Loader) YAML(b []byte) ([]*gen.Table, error) {
	var f File
	if err := yaml.UnmarshalWithOptions(b, &f, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%w: %s", gen.ErrInvalidSchema, yaml.FormatError(err, false, true))
	}
	d := l.dialect
	if f.Dialect != "" {
		if !dialect.Supported(f.Dialect) {
			return nil, gen.NewConfigError("dialect", f.Dialect, "unsupported dialect")
		}
		d = dialect.Normalize(f.Dialect)
	}
	pkg := f.Package
	if pkg == "" {
		pkg = l.pkg
	}
	tables := make([]*gen.Table, 0, len(f.Tables))
	for _, td := range f.Tables {
		t, err := td.build(d, pkg, f.Delimited || l.delimited)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func (td *Table) build(d, pkg string, delimited bool) (*gen.Table, error) {
	name := strings.TrimSpace(td.Name)
	if name == "" {
		return nil, gen.NewSchemaError("", "", "table name cannot be empty", nil)
	}
	if len(td.Columns) == 0 {
		return nil, gen.NewSchemaError(name, "", "table has no columns", nil)
	}
	cols := make([]*gen.Column, 0, len(td.Columns))
	seen := make(map[string]bool, len(td.Columns))
	for _, cd := range td.Columns {
		c, err := cd.build(name, d)
		if err != nil {
			return nil, err
		}
		if seen[c.Name] {
			return nil, gen.NewSchemaError(name, c.Name, "duplicate column", nil)
		}
		seen[c.Name] = true
		cols = append(cols, c)
	}

	t := gen.NewTable(name, td.Domain, cols...)
	if t.Domain == "" {
		t.Domain = domain(name)
	}
	t.Alias = td.Alias
	t.Package = pkg
	if td.Package != "" {
		t.Package = td.Package
	}
	t.QueryID = td.QueryID
	t.PrimaryKeyClass = td.PrimaryKeyClass
	if delimited {
		delimit(t, d)
	}
	if td.BeginDelimiter != "" || td.EndDelimiter != "" {
		t.BeginDelimiter, t.EndDelimiter = td.BeginDelimiter, td.EndDelimiter
	}
	return t, nil
}

func (cd *Column) build(table, d string) (*gen.Column, error) {
	name := strings.TrimSpace(cd.Name)
	if name == "" {
		return nil, gen.NewSchemaError(table, "", "column name cannot be empty", nil)
	}
	info, err := field.ParseType(d, cd.Type)
	if err != nil {
		return nil, gen.NewSchemaError(table, name, "invalid column type", err)
	}
	if cd.JDBCType != "" {
		info.JDBC = strings.ToUpper(cd.JDBCType)
	}
	prop := cd.Property
	if prop == "" {
		prop = gen.Camel(name)
	}
	c := gen.NewColumn(name, prop, info)
	c.PrimaryKey = cd.PrimaryKey
	c.Identity = cd.Identity
	c.GeneratedAlways = cd.GeneratedAlways
	c.Nullable = cd.Nullable
	c.TypeHandler = cd.TypeHandler
	c.Comment = cd.Comment
	return c, nil
}
