package sqlmap

import (
	"github.com/syssam/mapperkit/compiler/gen"
	"github.com/syssam/mapperkit/compiler/gen/fragment"
)

// Statement ids of the single-row select synthesizer.
const (
	SelectOneByExampleID          = "selectOneByExample"
	SelectOneByExampleWithBLOBsID = "selectOneByExampleWithBLOBs"
)

// SelectOne synthesizes selectOneByExample, and its BLOB variant when the
// table has large object columns.
type SelectOne struct{ base }

// Name implements gen.Synthesizer.
func (*SelectOne) Name() string { return gen.FeatureSelectOne.Name }

// Synthesize implements gen.Synthesizer.
func (*SelectOne) Synthesize(u *gen.Unit) error {
	t := u.Table
	if err := u.AddStatement(&gen.Method{
		Name:    SelectOneByExampleID,
		Doc:     "returns the first row matching the example.",
		Params:  []gen.Param{{Name: paramExample, Type: gen.RecordRef(t.Example())}},
		Returns: gen.RecordRef(t.Record()),
	}, selectOne(t, SelectOneByExampleID, false)); err != nil {
		return err
	}
	if !t.HasBLOBs() {
		return nil
	}
	return u.AddStatement(&gen.Method{
		Name:    SelectOneByExampleWithBLOBsID,
		Doc:     "returns the first row matching the example, large objects included.",
		Params:  []gen.Param{{Name: paramExample, Type: gen.RecordRef(t.Example())}},
		Returns: gen.RecordRef(t.RecordWithBLOBs()),
	}, selectOne(t, SelectOneByExampleWithBLOBsID, true))
}

func selectOne(t *gen.Table, id string, blobs bool) *gen.Statement {
	s := &gen.Statement{
		ID:            id,
		Kind:          gen.KindSelect,
		ParameterType: t.Example(),
		ResultMap:     gen.BaseResultMap,
	}
	s.Append(fragment.T("select"))
	s.Append(queryID(t)...)
	s.Append(fragment.Ref(fragment.BaseColumnList))
	if blobs {
		s.ResultMap = gen.ResultMapWithBLOBs
		s.Append(fragment.T(","), fragment.Ref(fragment.BlobColumnList))
	}
	return s.Append(
		fragment.T("from "+t.AliasedName()),
		fragment.ExampleWhere(fragment.ExampleWhereClause),
		orderBy("orderByClause"),
		fragment.T("limit 1"),
	)
}
