package sqlmap

import (
	"github.com/syssam/mapperkit/compiler/gen"
	"github.com/syssam/mapperkit/compiler/gen/fragment"
)

// Statement ids of the projected select synthesizer.
const (
	SelectByPrimaryKeyShowFieldID = "selectByPrimaryKeyShowField"
	SelectByExampleShowFieldID    = "selectByExampleShowField"
	SelectOneByExampleShowFieldID = "selectOneByExampleShowField"
)

// ShowField synthesizes selects whose column list is chosen by the caller.
// The names are substituted verbatim and never checked against the table.
type ShowField struct{ base }

// Name implements gen.Synthesizer.
func (*ShowField) Name() string { return gen.FeatureSelectShowField.Name }

// Synthesize implements gen.Synthesizer.
func (*ShowField) Synthesize(u *gen.Unit) error {
	t := u.Table
	if t.HasPrimaryKey() {
		s := &gen.Statement{
			ID:            SelectByPrimaryKeyShowFieldID,
			Kind:          gen.KindSelect,
			ParameterType: gen.ParameterMap,
			ResultType:    t.AllFields(),
		}
		s.Append(selectList(t)...)
		s.Append(
			fragment.T("from "+t.AliasedName()),
			fragment.PrimaryKeyWhere(t.Facts(t.PrimaryKeys()), t.KeyPrefix()),
			fragment.T("limit 1"),
		)
		err := u.AddStatement(&gen.Method{
			Name:    SelectByPrimaryKeyShowFieldID,
			Doc:     "returns the listed columns of the row with the given key.",
			Params:  append([]gen.Param{showFieldParam()}, keyParams(t, true)...),
			Returns: gen.RecordRef(t.AllFields()),
		}, s)
		if err != nil {
			return err
		}
	} else {
		u.Warn(SelectByPrimaryKeyShowFieldID + ": table has no primary key, skipped")
	}

	for _, v := range []struct {
		id      string
		doc     string
		single  bool
		returns gen.TypeRef
	}{
		{SelectByExampleShowFieldID, "returns the listed columns of the rows matching the example.", false, gen.RecordsRef(t.AllFields())},
		{SelectOneByExampleShowFieldID, "returns the listed columns of the first row matching the example.", true, gen.RecordRef(t.AllFields())},
	} {
		s := &gen.Statement{
			ID:            v.id,
			Kind:          gen.KindSelect,
			ParameterType: gen.ParameterMap,
			ResultMap:     resultMap(t),
		}
		s.Append(fragment.T("select"))
		if !v.single {
			s.Append(fragment.When("example != null and example.distinct", fragment.T("distinct")))
		}
		s.Append(selectList(t)[1:]...)
		s.Append(
			fragment.T("from "+t.AliasedName()),
			fragment.ExampleWhere(fragment.UpdateByExampleWhereClause),
			orderBy("example.orderByClause"),
		)
		if v.single {
			s.Append(fragment.T("limit 1"))
		}
		if err := u.AddStatement(&gen.Method{
			Name:    v.id,
			Doc:     v.doc,
			Params:  []gen.Param{showFieldParam(), exampleParam(t)},
			Returns: v.returns,
		}, s); err != nil {
			return err
		}
	}
	return nil
}

// selectList returns "select", the optional query id and the caller's
// column list.
func selectList(t *gen.Table) []fragment.Node {
	nodes := []fragment.Node{fragment.T("select")}
	nodes = append(nodes, queryID(t)...)
	return append(nodes, &fragment.ForEach{
		Collection: paramShowField,
		Item:       "column",
		Separator:  ",",
		Body:       []fragment.Node{fragment.T("${column}")},
	})
}
