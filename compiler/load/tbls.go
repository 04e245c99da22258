package load

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	tblsschema "github.com/k1LoW/tbls/schema"

	"github.com/syssam/mapperkit/compiler/gen"
	"github.com/syssam/mapperkit/dialect"
	"github.com/syssam/mapperkit/schema/field"
)

// TBLS reads the tables of a tbls JSON schema document. The dialect comes
// from the driver of the document; views are skipped.
func (l *Loader) TBLS(b []byte) ([]*gen.Table, error) {
	var s tblsschema.Schema
	if err := json.NewDecoder(bytes.NewReader(b)).Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: decode tbls schema: %w", gen.ErrInvalidSchema, err)
	}
	if s.Driver == nil || strings.TrimSpace(s.Driver.Name) == "" {
		return nil, fmt.Errorf("%w: tbls schema has no driver", gen.ErrInvalidSchema)
	}
	d := dialect.Normalize(s.Driver.Name)
	if !dialect.Supported(d) {
		return nil, gen.NewConfigError("driver", s.Driver.Name, "unsupported dialect")
	}
	if len(s.Tables) == 0 {
		return nil, fmt.Errorf("%w: tbls schema has no tables", gen.ErrInvalidSchema)
	}

	tables := make([]*gen.Table, 0, len(s.Tables))
	for _, st := range s.Tables {
		if st == nil || strings.EqualFold(st.Type, "VIEW") {
			continue
		}
		t, err := l.fromTBLS(st, d)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}

func (l *Loader) fromTBLS(st *tblsschema.Table, d string) (*gen.Table, error) {
	keys := primaryKeys(st)
	cols := make([]*gen.Column, 0, len(st.Columns))
	for _, sc := range st.Columns {
		if sc == nil {
			continue
		}
		info, err := field.ParseType(d, sc.Type)
		if err != nil {
			return nil, gen.NewSchemaError(st.Name, sc.Name, "invalid column type", err)
		}
		c := gen.NewColumn(sc.Name, gen.Camel(sc.Name), info)
		c.PrimaryKey = sc.PK || keys[strings.ToLower(sc.Name)]
		c.Nullable = sc.Nullable
		c.Comment = sc.Comment
		extra := strings.ToLower(sc.ExtraDef)
		c.Identity = strings.Contains(extra, "auto_increment") ||
			(sc.Default.Valid && strings.HasPrefix(strings.ToLower(sc.Default.String), "nextval("))
		c.GeneratedAlways = strings.Contains(extra, "generated")
		cols = append(cols, c)
	}
	if len(cols) == 0 {
		return nil, gen.NewSchemaError(st.Name, "", "table has no columns", nil)
	}
	t := gen.NewTable(st.Name, domain(st.Name), cols...)
	t.Package = l.pkg
	if l.delimited {
		delimit(t, d)
	}
	return t, nil
}

// primaryKeys returns the lower-cased column names of the PRIMARY KEY
// constraints of the table.
func primaryKeys(st *tblsschema.Table) map[string]bool {
	keys := make(map[string]bool)
	for _, c := range st.Constraints {
		if c == nil || !strings.EqualFold(c.Type, "PRIMARY KEY") {
			continue
		}
		for _, name := range c.Columns {
			keys[strings.ToLower(name)] = true
		}
	}
	return keys
}
