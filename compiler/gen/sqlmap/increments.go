package sqlmap

import (
	"github.com/syssam/mapperkit/compiler/gen"
	"github.com/syssam/mapperkit/compiler/gen/fragment"
)

// Statement ids of the incremental update synthesizer.
const (
	UpdateByExampleSelectiveSyncID    = "updateByExampleSelectiveSync"
	UpdateByPrimaryKeySelectiveSyncID = "updateByPrimaryKeySelectiveSync"
)

// UpdateIncrements synthesizes selective updates that add the bound value to
// accumulable columns instead of overwriting them.
type UpdateIncrements struct{ base }

// Name implements gen.Synthesizer.
func (*UpdateIncrements) Name() string { return gen.FeatureUpdateIncrements.Name }

// Synthesize implements gen.Synthesizer.
func (*UpdateIncrements) Synthesize(u *gen.Unit) error {
	t := u.Table
	byExample := &gen.Statement{
		ID:            UpdateByExampleSelectiveSyncID,
		Kind:          gen.KindUpdate,
		ParameterType: gen.ParameterMap,
	}
	byExample.Append(
		fragment.T("update "+t.AliasedName()),
		fragment.SetClause(t.Facts(gen.WithoutGeneratedAlways(t.AllColumns())), fragment.RecordPrefix, true),
		fragment.ExampleWhere(fragment.UpdateByExampleWhereClause),
	)
	err := u.AddStatement(&gen.Method{
		Name:    UpdateByExampleSelectiveSyncID,
		Doc:     "updates the present fields of the record on the rows matching the example, accumulating numeric columns.",
		Params:  []gen.Param{recordParam(t.AllFields()), exampleParam(t)},
		Returns: gen.IntRef,
	}, byExample)
	if err != nil {
		return err
	}

	if !t.HasPrimaryKey() {
		u.Warn(UpdateByPrimaryKeySelectiveSyncID + ": table has no primary key, skipped")
		return nil
	}
	var cols []*gen.Column
	for _, c := range gen.WithoutGeneratedAlways(t.AllColumns()) {
		if !c.PrimaryKey {
			cols = append(cols, c)
		}
	}
	byKey := &gen.Statement{
		ID:            UpdateByPrimaryKeySelectiveSyncID,
		Kind:          gen.KindUpdate,
		ParameterType: t.AllFields(),
	}
	byKey.Append(
		fragment.T("update "+t.AliasedName()),
		fragment.SetClause(t.Facts(cols), fragment.NoPrefix, true),
		fragment.PrimaryKeyWhere(t.Facts(t.PrimaryKeys()), fragment.NoPrefix),
	)
	return u.AddStatement(&gen.Method{
		Name:    UpdateByPrimaryKeySelectiveSyncID,
		Doc:     "updates the present fields of the record on the row with its key, accumulating numeric columns.",
		Params:  []gen.Param{{Name: paramRecord, Type: gen.RecordRef(t.AllFields())}},
		Returns: gen.IntRef,
	}, byKey)
}
