package sqlmap

import (
	"github.com/syssam/mapperkit/compiler/gen"
	"github.com/syssam/mapperkit/compiler/gen/fragment"
)

// Statement ids of the batch insert synthesizer.
const (
	InsertBatchID          = "insertBatch"
	InsertBatchSelectiveID = "insertBatchSelective"
)

// InsertBatch synthesizes the multi-row inserts insertBatch and
// insertBatchSelective.
type InsertBatch struct{ base }

// Name implements gen.Synthesizer.
func (*InsertBatch) Name() string { return gen.FeatureInsertBatch.Name }

// Synthesize implements gen.Synthesizer.
func (*InsertBatch) Synthesize(u *gen.Unit) error {
	t := u.Table
	cols := t.Facts(gen.WithoutIdentityAndGeneratedAlways(t.AllColumns()))

	batch := &gen.Statement{
		ID:            InsertBatchID,
		Kind:          gen.KindInsert,
		ParameterType: paramList,
		GeneratedKey:  generatedKey(u, fragment.NoPrefix),
	}
	batch.Append(
		fragment.T("insert into "+t.Name),
		fragment.Keys(cols),
		fragment.T("values"),
		fragment.Repeat(paramList, "item", fragment.Values(cols, fragment.ItemPrefix, true)),
	)
	err := u.AddStatement(&gen.Method{
		Name:    InsertBatchID,
		Doc:     "inserts all records of the list with one statement.",
		Params:  []gen.Param{{Name: paramList, Type: gen.RecordsRef(t.AllFields()), Binding: paramList}},
		Returns: gen.IntRef,
	}, batch)
	if err != nil {
		return err
	}

	selective := &gen.Statement{
		ID:            InsertBatchSelectiveID,
		Kind:          gen.KindInsert,
		ParameterType: gen.ParameterMap,
		GeneratedKey:  generatedKey(u, fragment.NoPrefix),
	}
	selective.Append(
		fragment.T("insert into "+t.Name),
		&fragment.ForEach{Collection: paramShowField, Item: "one", Open: "(", Close: ")", Separator: ",", Body: []fragment.Node{fragment.T("${one}")}},
		fragment.T("values"),
		fragment.Repeat(paramList, "item", selectiveRow(t)),
	)
	return u.AddStatement(&gen.Method{
		Name:    InsertBatchSelectiveID,
		Doc:     "inserts the listed columns of all records of the list.",
		Params:  []gen.Param{showFieldParam(), {Name: paramList, Type: gen.RecordsRef(t.AllFields()), Binding: paramList}},
		Returns: gen.IntRef,
	}, selective)
}

// selectiveRow returns the value tuple of one row: for every requested name,
// the bind marker of the column with that physical name. Names matching no
// column render nothing.
func selectiveRow(t *gen.Table) *fragment.ForEach {
	row := &fragment.ForEach{Collection: paramShowField, Item: "column", Open: "(", Close: ")", Separator: ","}
	for _, c := range t.Facts(t.AllColumns()) {
		row.Body = append(row.Body, fragment.When("'"+c.Name+"' == column", fragment.T(c.ParameterClause(fragment.ItemPrefix))))
	}
	return row
}

// ExpandSelectiveRow returns the bind markers one insertBatchSelective row
// carries for the given column names, in the order of the names. Unknown
// names are dropped, unless strict is set, in which case the lookup error is
// returned.
func ExpandSelectiveRow(t *gen.Table, showField []string, strict bool) ([]string, error) {
	var out []string
	for _, name := range showField {
		c, err := t.Column(name)
		if err != nil {
			if strict {
				return nil, err
			}
			continue
		}
		out = append(out, t.ParameterClause(c, fragment.ItemPrefix))
	}
	return out, nil
}
