package sqlmap

import (
	"strings"

	"github.com/syssam/mapperkit/compiler/gen"
)

// Criteria synthesizes the standard criteria methods of every column:
// and<Property><Op> for the comparison, list, range and null operators, and
// the like operators for textual columns.
//
// It is not guarded by a feature; the example types are always generated.
type Criteria struct{ base }

// Name implements gen.Synthesizer.
func (*Criteria) Name() string { return "criteria" }

type operator struct {
	suffix string
	op     string
	kind   gen.CriterionKind
	text   bool
}

var operators = []operator{
	{suffix: "IsNull", op: "is null", kind: gen.CriterionNoValue},
	{suffix: "IsNotNull", op: "is not null", kind: gen.CriterionNoValue},
	{suffix: "EqualTo", op: "=", kind: gen.CriterionSingle},
	{suffix: "NotEqualTo", op: "<>", kind: gen.CriterionSingle},
	{suffix: "GreaterThan", op: ">", kind: gen.CriterionSingle},
	{suffix: "GreaterThanOrEqualTo", op: ">=", kind: gen.CriterionSingle},
	{suffix: "LessThan", op: "<", kind: gen.CriterionSingle},
	{suffix: "LessThanOrEqualTo", op: "<=", kind: gen.CriterionSingle},
	{suffix: "Like", op: "like", kind: gen.CriterionSingle, text: true},
	{suffix: "NotLike", op: "not like", kind: gen.CriterionSingle, text: true},
	{suffix: "In", op: "in", kind: gen.CriterionList},
	{suffix: "NotIn", op: "not in", kind: gen.CriterionList},
	{suffix: "Between", op: "between", kind: gen.CriterionBetween},
	{suffix: "NotBetween", op: "not between", kind: gen.CriterionBetween},
}

// SynthesizeCriteria implements gen.CriteriaSynthesizer.
func (*Criteria) SynthesizeCriteria(u *gen.Unit) error {
	t := u.Table
	self := gen.RecordRef(u.Criteria.Name)
	for _, c := range t.AllColumns() {
		name := t.AliasedEscapedName(c)
		for _, o := range operators {
			if o.text && !c.Textual() {
				continue
			}
			m := &gen.Method{
				Name:    "and" + gen.Pascal(c.Property) + o.suffix,
				Returns: self,
				Criterion: &gen.Criterion{
					Kind:      o.kind,
					Condition: name + " " + o.op,
					Property:  c.Property,
				},
			}
			typ := gen.ColumnRef(c)
			switch o.kind {
			case gen.CriterionSingle:
				m.Params = []gen.Param{{Name: "value", Type: typ}}
			case gen.CriterionList:
				typ.Slice = true
				m.Params = []gen.Param{{Name: "values", Type: typ}}
			case gen.CriterionBetween:
				m.Params = []gen.Param{{Name: "value1", Type: typ}, {Name: "value2", Type: typ}}
			}
			u.Criteria.AddMethod(m)
		}
	}
	return nil
}

// CriterionIgnoreNull synthesizes the null-tolerant criteria methods, the
// case-insensitive like methods and the order by sanitizer of the example.
type CriterionIgnoreNull struct{ base }

// Name implements gen.Synthesizer.
func (*CriterionIgnoreNull) Name() string { return gen.FeatureCriterionIgnoreNull.Name }

// IgnoreNullCandidate reports whether a criteria method gets a null-tolerant
// variant: its name starts with "and" and does not end with IsNull, IsNotNull
// or Between.
func IgnoreNullCandidate(name string) bool {
	return strings.HasPrefix(name, "and") &&
		!strings.HasSuffix(name, "IsNull") &&
		!strings.HasSuffix(name, "IsNotNull") &&
		!strings.HasSuffix(name, "Between")
}

// SynthesizeCriteria implements gen.CriteriaSynthesizer.
func (*CriterionIgnoreNull) SynthesizeCriteria(u *gen.Unit) error {
	t := u.Table
	self := gen.RecordRef(u.Criteria.Name)

	var variants []*gen.Method
	for _, m := range u.Criteria.Methods {
		if !IgnoreNullCandidate(m.Name) || m.Criterion == nil || len(m.Params) != 1 {
			continue
		}
		cr := *m.Criterion
		cr.IgnoreNull = true
		variants = append(variants, &gen.Method{
			Name:      m.Name + "IgnoreNull",
			Doc:       "is like " + gen.Exported(m.Name) + ", but skips an empty value.",
			Params:    []gen.Param{{Name: "value", Type: m.Params[0].Type}},
			Returns:   self,
			Criterion: &cr,
		})
	}
	for _, m := range variants {
		u.Criteria.AddMethod(m)
	}

	for _, c := range t.AllColumns() {
		u.Criteria.AddMethod(&gen.Method{
			Name:    "and" + gen.Pascal(c.Property) + "LikeInsensitive",
			Doc:     "adds a case-insensitive like on " + c.Name + ".",
			Params:  []gen.Param{{Name: "value", Type: gen.StringRef}},
			Returns: self,
			Criterion: &gen.Criterion{
				Kind:      gen.CriterionSingle,
				Condition: "upper(" + t.EscapedName(c) + ") like",
				Property:  c.Property,
				UpperCase: true,
			},
		})
	}

	u.Example.AddMethod(&gen.Method{
		Name:     "setOrderByClauseIgnoreNull",
		Doc:      "sets the order by clause unless it is blank or only holds null, asc and desc.",
		Params:   []gen.Param{{Name: "orderByClause", Type: gen.StringRef}},
		Delegate: "SetOrderByClauseIgnoreNull",
	})
	return nil
}
