package gen

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/syssam/mapperkit"
	"github.com/syssam/mapperkit/compiler/gen/fragment"
)

// Result map ids of the base mapper document.
const (
	BaseResultMap      = "BaseResultMap"
	ResultMapWithBLOBs = "ResultMapWithBLOBs"
)

// Table is the descriptor of one introspected table. It is read-only to the
// synthesizers; Rename is the only sanctioned way to change derived names.
type Table struct {
	// Name is the fully qualified runtime name of the table.
	Name string
	// Alias is the optional alias used in select and update statements.
	Alias string
	// Domain is the domain object name, e.g. "User".
	Domain string
	// Package is the import path of the generated model package.
	Package string
	// Columns in declaration order.
	Columns []*Column
	// BeginDelimiter and EndDelimiter quote identifiers, e.g. "`".
	BeginDelimiter string
	EndDelimiter   string
	// QueryID is prepended to select lists as "'<id>' as QUERYID".
	QueryID string
	// PrimaryKeyClass reports that key columns bind through a key record
	// rather than as individual parameters.
	PrimaryKeyClass bool
}

// NewTable returns a table with the given runtime name and domain name.
func NewTable(name, domain string, cols ...*Column) *Table {
	return &Table{Name: name, Domain: domain, Columns: cols}
}

// Rename changes the domain name of the table. All derived type names follow.
func (t *Table) Rename(domain string) error {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		return NewSchemaError(t.Name, "", "domain name cannot be empty", nil)
	}
	t.Domain = domain
	return nil
}

// Clone returns a deep copy of the table. Generators hand every worker its
// own snapshot.
func (t *Table) Clone() *Table {
	c := *t
	c.Columns = make([]*Column, len(t.Columns))
	for i, col := range t.Columns {
		c.Columns[i] = col.clone()
	}
	return &c
}

// AliasedName returns the runtime name followed by the alias, if any.
func (t *Table) AliasedName() string {
	if t.Alias == "" {
		return t.Name
	}
	return t.Name + " " + t.Alias
}

// AllColumns returns the columns in declaration order.
func (t *Table) AllColumns() []*Column {
	return t.Columns
}

// PrimaryKeys returns the primary key columns.
func (t *Table) PrimaryKeys() []*Column {
	return t.filter(func(c *Column) bool { return c.PrimaryKey })
}

// BLOBColumns returns the large object columns.
func (t *Table) BLOBColumns() []*Column {
	return t.filter(func(c *Column) bool { return c.BLOB })
}

// BaseColumns returns the columns that are not large objects.
func (t *Table) BaseColumns() []*Column {
	return t.filter(func(c *Column) bool { return !c.BLOB })
}

// HasBLOBs reports if the table has large object columns.
func (t *Table) HasBLOBs() bool {
	return len(t.BLOBColumns()) > 0
}

// HasPrimaryKey reports if the table declares a primary key.
func (t *Table) HasPrimaryKey() bool {
	return len(t.PrimaryKeys()) > 0
}

// IdentityColumn returns the first identity column, or nil.
func (t *Table) IdentityColumn() *Column {
	for _, c := range t.Columns {
		if c.Identity {
			return c
		}
	}
	return nil
}

func (t *Table) filter(keep func(*Column) bool) []*Column {
	var out []*Column
	for _, c := range t.Columns {
		if keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// Column returns the column with the exact physical name.
func (t *Table) Column(name string) (*Column, error) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, nil
		}
	}
	return nil, mapperkit.NewNotFoundErrorWithName("column", fmt.Sprintf("%s.%s", t.Name, name))
}

// SafeColumn looks up a column by a possibly delimited name. Surrounding
// whitespace, a leading begin delimiter and a trailing end delimiter are
// removed before the lookup.
func (t *Table) SafeColumn(name string) (*Column, error) {
	name = strings.TrimSpace(name)
	if t.BeginDelimiter != "" {
		name = regexp.MustCompile("^"+regexp.QuoteMeta(t.BeginDelimiter)).ReplaceAllString(name, "")
	}
	if t.EndDelimiter != "" {
		name = regexp.MustCompile(regexp.QuoteMeta(t.EndDelimiter)+"$").ReplaceAllString(name, "")
	}
	return t.Column(name)
}

// Record returns the base record type name.
func (t *Table) Record() string { return t.Domain }

// RecordWithBLOBs returns the record type carrying the large object columns.
func (t *Table) RecordWithBLOBs() string {
	if t.HasBLOBs() {
		return t.Domain + "WithBLOBs"
	}
	return t.Domain
}

// AllFields returns the record type that holds every column.
func (t *Table) AllFields() string { return t.RecordWithBLOBs() }

// Example returns the example (criteria container) type name.
func (t *Table) Example() string { return t.Domain + "Example" }

// Key returns the primary key record type name.
func (t *Table) Key() string {
	if t.PrimaryKeyClass {
		return t.Domain + "Key"
	}
	return t.Domain
}

// Mapper returns the mapper interface name.
func (t *Table) Mapper() string { return t.Domain + "Mapper" }

// Namespace returns the mapper document namespace.
func (t *Table) Namespace() string {
	if t.Package == "" {
		return t.Mapper()
	}
	return t.Package + "." + t.Mapper()
}

// KeyPrefix returns the binding prefix of key columns in by-key statements.
func (t *Table) KeyPrefix() string {
	if t.PrimaryKeyClass {
		return fragment.RecordPrefix
	}
	return fragment.NoPrefix
}
