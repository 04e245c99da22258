package gen

import (
	"github.com/syssam/mapperkit/schema/field"
)

// userTable returns a MySQL-style table with an identity key, an
// accumulable column, a decimal column and one BLOB column.
func userTable() *Table {
	id := NewColumn("id", "id", field.NewTypeInfo(field.TypeInt64))
	id.PrimaryKey, id.Identity = true, true

	bio := NewColumn("bio", "bio", &field.TypeInfo{Type: field.TypeString, JDBC: field.JDBCLongVarchar})
	bio.Nullable = true

	t := NewTable("user", "User",
		id,
		NewColumn("user_name", "userName", field.NewTypeInfo(field.TypeString)),
		NewColumn("score", "score", field.NewTypeInfo(field.TypeInt32)),
		NewColumn("balance", "balance", field.NewTypeInfo(field.TypeDecimal)),
		bio,
	)
	t.BeginDelimiter, t.EndDelimiter = "`", "`"
	return t
}

// plainTable returns a table without BLOB columns and without delimiters.
func plainTable() *Table {
	id := NewColumn("id", "id", field.NewTypeInfo(field.TypeInt32))
	id.PrimaryKey = true
	return NewTable("tag", "Tag",
		id,
		NewColumn("label", "label", field.NewTypeInfo(field.TypeString)),
	)
}

// stubSynth is a configurable synthesizer for generator tests.
type stubSynth struct {
	name     string
	warnings []string
	invalid  error
	id       string
	fail     error
}

func (s *stubSynth) Name() string { return s.name }

func (s *stubSynth) Validate(*Config, Flags) ([]string, error) {
	return s.warnings, s.invalid
}

func (s *stubSynth) Synthesize(u *Unit) error {
	if s.fail != nil {
		return s.fail
	}
	id := s.id
	if id == "" {
		id = s.name
	}
	return u.AddStatement(&Method{Name: id, Returns: IntRef}, &Statement{ID: id, Kind: KindSelect})
}

// criteriaStub additionally implements CriteriaSynthesizer and ModelSynthesizer.
type criteriaStub struct {
	stubSynth
}

func (s *criteriaStub) SynthesizeCriteria(u *Unit) error {
	u.Criteria.AddMethod(&Method{Name: "andStub"})
	return nil
}

func (s *criteriaStub) SynthesizeModel(u *Unit) error {
	u.Model.AddConstant(&Constant{Name: "FieldStub", Value: "stub"})
	return nil
}
