package sqlmap

import (
	"fmt"

	"github.com/syssam/mapperkit/compiler/gen"
	"github.com/syssam/mapperkit/compiler/gen/fragment"
	"github.com/syssam/mapperkit/dialect"
)

// Statement ids of the upsert synthesizer.
const (
	UpsertID                   = "upsert"
	UpsertWithBLOBsID          = "upsertWithBLOBs"
	UpsertSelectiveID          = "upsertSelective"
	UpsertByExampleID          = "upsertByExample"
	UpsertByExampleWithBLOBsID = "upsertByExampleWithBLOBs"
	UpsertByExampleSelectiveID = "upsertByExampleSelective"
)

// Upsert synthesizes insert-or-update statements. The single-row variants
// rely on ON DUPLICATE KEY UPDATE. The example-scoped variants insert when no
// row matches the example and update the matching rows otherwise; they are
// two statements joined by ";" and require allowMultiQueries.
type Upsert struct{}

// Name implements gen.Synthesizer.
func (*Upsert) Name() string { return gen.FeatureUpsert.Name }

// Validate implements gen.Synthesizer.
func (u *Upsert) Validate(c *gen.Config, flags gen.Flags) ([]string, error) {
	if !dialect.SupportsUpsert(c.Dialect) {
		return nil, gen.NewValidationError(u.Name(), "Dialect", c.Dialect, "no on duplicate key update")
	}
	if !flags.AllowMultiQueries {
		return []string{fmt.Sprintf("upsert: %s is off, skipping the by-example variants", gen.PropAllowMultiQueries)}, nil
	}
	return nil, nil
}

type upsertVariant struct {
	id, byExampleID string
	record          string
	cols            []*gen.Column
	selective       bool
}

func upsertVariants(t *gen.Table) []upsertVariant {
	vs := []upsertVariant{{
		id:          UpsertID,
		byExampleID: UpsertByExampleID,
		record:      t.Record(),
		cols:        gen.WithoutGeneratedAlways(t.BaseColumns()),
	}}
	if t.HasBLOBs() {
		vs = append(vs, upsertVariant{
			id:          UpsertWithBLOBsID,
			byExampleID: UpsertByExampleWithBLOBsID,
			record:      t.RecordWithBLOBs(),
			cols:        gen.WithoutGeneratedAlways(t.AllColumns()),
		})
	}
	return append(vs, upsertVariant{
		id:          UpsertSelectiveID,
		byExampleID: UpsertByExampleSelectiveID,
		record:      t.AllFields(),
		cols:        gen.WithoutGeneratedAlways(t.AllColumns()),
		selective:   true,
	})
}

// Synthesize implements gen.Synthesizer.
func (*Upsert) Synthesize(u *gen.Unit) error {
	t := u.Table
	for _, v := range upsertVariants(t) {
		if err := u.AddStatement(&gen.Method{
			Name:    v.id,
			Doc:     "inserts the record, or updates the row holding the same unique key.",
			Params:  []gen.Param{{Name: paramRecord, Type: gen.RecordRef(v.record)}},
			Returns: gen.IntRef,
		}, singleRowUpsert(u, v)); err != nil {
			return err
		}
	}
	if !u.Flags.AllowMultiQueries {
		return nil
	}
	for _, v := range upsertVariants(t) {
		if err := u.AddStatement(&gen.Method{
			Name:    v.byExampleID,
			Doc:     "inserts the record when no row matches the example, and updates the matching rows otherwise.",
			Params:  []gen.Param{recordParam(v.record), exampleParam(t)},
			Returns: gen.IntRef,
		}, byExampleUpsert(u, v)); err != nil {
			return err
		}
	}
	return nil
}

// singleRowUpsert builds insert ... values ... on duplicate key update.
func singleRowUpsert(u *gen.Unit, v upsertVariant) *gen.Statement {
	t := u.Table
	cols := t.Facts(v.cols)
	s := &gen.Statement{
		ID:            v.id,
		Kind:          gen.KindInsert,
		ParameterType: v.record,
		GeneratedKey:  generatedKey(u, fragment.NoPrefix),
	}
	s.Append(fragment.T("insert into " + t.Name))
	if v.selective {
		s.Append(
			fragment.KeysSelective(cols, fragment.NoPrefix),
			fragment.T("values"),
			fragment.ValuesSelective(cols, fragment.NoPrefix, true),
			fragment.T("on duplicate key update"),
			fragment.Assignments(cols, fragment.NoPrefix, true),
		)
		return s
	}
	return s.Append(
		fragment.Keys(cols),
		fragment.T("values"),
		fragment.Values(cols, fragment.NoPrefix, true),
		fragment.T("on duplicate key update"),
		fragment.Assignments(cols, fragment.NoPrefix, false),
	)
}

// byExampleUpsert builds the insert-select guarded by not exists, followed by
// the update of the rows matching the example.
func byExampleUpsert(u *gen.Unit, v upsertVariant) *gen.Statement {
	t := u.Table
	cols := t.Facts(v.cols)
	s := &gen.Statement{
		ID:            v.byExampleID,
		Kind:          gen.KindInsert,
		ParameterType: gen.ParameterMap,
		GeneratedKey:  generatedKey(u, fragment.RecordPrefix),
	}
	s.Append(fragment.T("insert into " + t.Name))
	if v.selective {
		s.Append(
			fragment.KeysSelective(cols, fragment.RecordPrefix),
			fragment.T("select"),
			fragment.ValuesSelective(cols, fragment.RecordPrefix, false),
		)
	} else {
		s.Append(
			fragment.Keys(cols),
			fragment.T("select"),
			fragment.Values(cols, fragment.RecordPrefix, false),
		)
	}
	return s.Append(
		fragment.T("from dual where not exists ( select 1 from "+t.AliasedName()),
		fragment.ExampleWhere(fragment.UpdateByExampleWhereClause),
		fragment.T(")"),
		fragment.T(";"),
		fragment.T("update "+t.AliasedName()),
		fragment.SetClause(cols, fragment.RecordPrefix, true),
		fragment.ExampleWhere(fragment.UpdateByExampleWhereClause),
	)
}
