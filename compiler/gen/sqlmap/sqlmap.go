// Package sqlmap implements the built-in statement synthesizers: batch
// insert, upsert, incremental update, projected select, single-row select,
// the criteria methods and the column name constants.
//
// Every synthesizer is a pure function of the unit's table and flags. Most
// of them emit a method and a statement with the same id through
// gen.Unit.AddStatement, which keeps both sides consistent.
package sqlmap

import (
	"github.com/syssam/mapperkit/compiler/gen"
	"github.com/syssam/mapperkit/compiler/gen/fragment"
)

// All returns the built-in synthesizers in registration order. The standard
// criteria come before the null-tolerant variants derived from them.
func All() []gen.Synthesizer {
	return []gen.Synthesizer{
		&InsertBatch{},
		&Upsert{},
		&UpdateIncrements{},
		&ShowField{},
		&SelectOne{},
		&Criteria{},
		&CriterionIgnoreNull{},
		&FieldConstants{},
	}
}

// Parameter names shared by the statements.
const (
	paramRecord    = "record"
	paramExample   = "example"
	paramList      = "list"
	paramShowField = "showField"
)

// ShowFieldParam is the parameter holding the column names selected by the
// ShowField and selective batch statements.
const ShowFieldParam = paramShowField

// base carries the no-op parts of the Synthesizer interface.
type base struct{}

func (base) Validate(*gen.Config, gen.Flags) ([]string, error) { return nil, nil }

func (base) Synthesize(*gen.Unit) error { return nil }

func recordParam(typ string) gen.Param {
	return gen.Param{Name: paramRecord, Type: gen.RecordRef(typ), Binding: paramRecord}
}

func exampleParam(t *gen.Table) gen.Param {
	return gen.Param{Name: paramExample, Type: gen.RecordRef(t.Example()), Binding: paramExample}
}

func showFieldParam() gen.Param {
	return gen.Param{Name: paramShowField, Type: gen.StringsRef, Binding: paramShowField}
}

// keyParams returns the parameters of by-key methods: the key record when the
// table has a key class, one parameter per key column otherwise.
func keyParams(t *gen.Table, binding bool) []gen.Param {
	if t.PrimaryKeyClass {
		return []gen.Param{{Name: paramRecord, Type: gen.RecordRef(t.Key()), Binding: paramRecord}}
	}
	var params []gen.Param
	for _, c := range t.PrimaryKeys() {
		p := gen.Param{Name: c.Property, Type: gen.ColumnRef(c)}
		if binding {
			p.Binding = c.Property
		}
		params = append(params, p)
	}
	return params
}

// queryID returns the select list prefix that tags the query, if any.
func queryID(t *gen.Table) []fragment.Node {
	if t.QueryID == "" {
		return nil
	}
	return []fragment.Node{fragment.T("'" + t.QueryID + "' as QUERYID,")}
}

// orderBy renders the order by clause when the bound path is present.
func orderBy(path string) *fragment.If {
	return fragment.When(path+" != null", fragment.T("order by ${"+path+"}"))
}

// generatedKey returns the generated key of insert statements, or nil when
// generated keys are off or the table has no identity column.
func generatedKey(u *gen.Unit, prefix string) *gen.GeneratedKey {
	id := u.Table.IdentityColumn()
	if !u.Flags.UseGeneratedKeys || id == nil {
		return nil
	}
	return &gen.GeneratedKey{Property: prefix + id.Property, Column: id.Name}
}

// resultMap returns the result map of full-row selects.
func resultMap(t *gen.Table) string {
	if t.HasBLOBs() {
		return gen.ResultMapWithBLOBs
	}
	return gen.BaseResultMap
}
