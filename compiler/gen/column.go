package gen

import (
	"github.com/syssam/mapperkit/compiler/gen/fragment"
	"github.com/syssam/mapperkit/schema/field"
)

// Column is an introspected table column. Columns are immutable once loaded;
// the classifier derives facts from them without mutating source fields.
type Column struct {
	// Name is the physical column name.
	Name string
	// Property is the name the column binds to on the record type.
	Property string
	// Type holds the host type and the JDBC tag of the column.
	Type *field.TypeInfo
	// PrimaryKey reports if the column is part of the primary key.
	PrimaryKey bool
	// Identity reports if the column is auto-incremented by the database.
	Identity bool
	// BLOB reports if the column holds a large object.
	BLOB bool
	// GeneratedAlways reports if the database always computes the value.
	GeneratedAlways bool
	// Nullable reports if the column accepts NULL.
	Nullable bool
	// TypeHandler optionally names the binder type handler of the column.
	TypeHandler string
	// Comment is the column comment, if any.
	Comment string
}

// NewColumn returns a column with the given type. The BLOB flag follows the
// JDBC tag of the type.
func NewColumn(name, property string, info *field.TypeInfo) *Column {
	c := &Column{Name: name, Property: property, Type: info}
	if info != nil {
		c.BLOB = info.BLOB()
	}
	return c
}

// JDBCType returns the JDBC tag of the column.
func (c *Column) JDBCType() string {
	if c.Type == nil {
		return field.JDBCOther
	}
	return c.Type.JDBCType()
}

// NumericAccumulable reports if the column type is an integer or exact decimal
// kind and the column is not an identity column.
func (c *Column) NumericAccumulable() bool {
	return c.Type != nil && c.Type.Type.Accumulable() && !c.Identity
}

// Textual reports if the column binds as a string.
func (c *Column) Textual() bool {
	return c.Type != nil && c.Type.Type.Textual()
}

func (c *Column) clone() *Column {
	cc := *c
	if c.Type != nil {
		info := *c.Type
		cc.Type = &info
	}
	return &cc
}

// ColumnFacts are the facts the classifier derives for one column of a table.
type ColumnFacts = fragment.Column

// Classify derives the column facts of c within the table. It is pure.
func (t *Table) Classify(c *Column) ColumnFacts {
	return ColumnFacts{
		Name:               c.Name,
		Property:           c.Property,
		EscapedName:        t.EscapedName(c),
		AliasedEscapedName: t.AliasedEscapedName(c),
		JDBCType:           c.JDBCType(),
		TypeHandler:        c.TypeHandler,
		NumericAccumulable: c.NumericAccumulable(),
	}
}

// Facts classifies every column of the slice.
func (t *Table) Facts(cols []*Column) []ColumnFacts {
	facts := make([]ColumnFacts, len(cols))
	for i, c := range cols {
		facts[i] = t.Classify(c)
	}
	return facts
}

// EscapedName returns the column name wrapped in the table delimiters when the
// table declares them.
func (t *Table) EscapedName(c *Column) string {
	if t.BeginDelimiter == "" && t.EndDelimiter == "" {
		return c.Name
	}
	return t.BeginDelimiter + c.Name + t.EndDelimiter
}

// AliasedEscapedName returns the escaped column name qualified with the table
// alias, if the table has one.
func (t *Table) AliasedEscapedName(c *Column) string {
	if t.Alias == "" {
		return t.EscapedName(c)
	}
	return t.Alias + "." + t.EscapedName(c)
}

// ParameterClause returns the bind marker of c under the prefix.
func (t *Table) ParameterClause(c *Column, prefix string) string {
	return t.Classify(c).ParameterClause(prefix)
}

// WithoutGeneratedAlways returns the columns that are not generated always.
func WithoutGeneratedAlways(cols []*Column) []*Column {
	out := make([]*Column, 0, len(cols))
	for _, c := range cols {
		if !c.GeneratedAlways {
			out = append(out, c)
		}
	}
	return out
}

// WithoutIdentityAndGeneratedAlways returns the columns that the database
// does not fill in on insert.
func WithoutIdentityAndGeneratedAlways(cols []*Column) []*Column {
	out := make([]*Column, 0, len(cols))
	for _, c := range cols {
		if !c.Identity && !c.GeneratedAlways {
			out = append(out, c)
		}
	}
	return out
}
