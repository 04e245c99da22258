package fragment

import (
	"fmt"
	"strings"
)

// Ids of the shared fragments every mapper document carries.
const (
	BaseColumnList             = "Base_Column_List"
	BlobColumnList             = "Blob_Column_List"
	ExampleWhereClause         = "Example_Where_Clause"
	UpdateByExampleWhereClause = "Update_By_Example_Where_Clause"
)

// Binding prefixes of bound properties.
const (
	NoPrefix     = ""
	RecordPrefix = "record."
	ItemPrefix   = "item."
)

// Column holds what the builders need to know about a column: its names and
// the facts derived by the column classifier.
type Column struct {
	Name               string // physical name
	Property           string
	EscapedName        string
	AliasedEscapedName string
	JDBCType           string
	TypeHandler        string
	NumericAccumulable bool
}

// ParameterClause returns the bind marker of the column under the prefix,
// e.g. #{record.userName,jdbcType=VARCHAR}.
func (c Column) ParameterClause(prefix string) string {
	var b strings.Builder
	b.WriteString("#{")
	b.WriteString(prefix)
	b.WriteString(c.Property)
	b.WriteString(",jdbcType=")
	b.WriteString(c.JDBCType)
	if c.TypeHandler != "" {
		b.WriteString(",typeHandler=")
		b.WriteString(c.TypeHandler)
	}
	b.WriteString("}")
	return b.String()
}

// Guard returns the "if present" test of a bound property.
func Guard(prefix, property string) string {
	return prefix + property + " != null"
}

// Assignment returns the SET assignment of the column. Accumulable columns
// add the bound value to the stored one, treating a NULL column as zero.
func Assignment(c Column, prefix string) string {
	p := c.ParameterClause(prefix)
	if c.NumericAccumulable {
		return fmt.Sprintf("%s = (case when %s is null then %s else %s + %s end)", c.EscapedName, c.EscapedName, p, c.EscapedName, p)
	}
	return c.EscapedName + " = " + p
}

// Assignments returns the comma separated assignments of the columns.
// When guarded, every assignment only applies if its bound property is
// present.
func Assignments(cols []Column, prefix string, guarded bool) *List {
	l := &List{Separator: ", "}
	for _, c := range cols {
		var item Node = T(Assignment(c, prefix))
		if guarded {
			item = When(Guard(prefix, c.Property), item)
		}
		l.Items = append(l.Items, item)
	}
	return l
}

// SetClause is Assignments introduced by the SET keyword.
func SetClause(cols []Column, prefix string, guarded bool) *List {
	l := Assignments(cols, prefix, guarded)
	l.Prefix = "set "
	return l
}

// Keys returns the parenthesized column name list of an insert.
func Keys(cols []Column) *List {
	l := &List{Prefix: "(", Suffix: ")", Separator: ", "}
	for _, c := range cols {
		l.Items = append(l.Items, T(c.EscapedName))
	}
	return l
}

// KeysSelective is like Keys, but every name is guarded by its property.
func KeysSelective(cols []Column, prefix string) *List {
	l := &List{Prefix: "(", Suffix: ")", Separator: ", "}
	for _, c := range cols {
		l.Items = append(l.Items, When(Guard(prefix, c.Property), T(c.EscapedName)))
	}
	return l
}

// Values returns the bind markers of the columns in column order,
// parenthesized if bracket is set.
func Values(cols []Column, prefix string, bracket bool) *List {
	l := &List{Separator: ", "}
	if bracket {
		l.Prefix, l.Suffix = "(", ")"
	}
	for _, c := range cols {
		l.Items = append(l.Items, T(c.ParameterClause(prefix)))
	}
	return l
}

// ValuesSelective is like Values, but every marker is guarded by its property.
func ValuesSelective(cols []Column, prefix string, bracket bool) *List {
	l := Values(cols, prefix, bracket)
	for i, c := range cols {
		l.Items[i] = When(Guard(prefix, c.Property), l.Items[i])
	}
	return l
}

// Repeat returns a comma separated ForEach over the collection.
func Repeat(collection, item string, body ...Node) *ForEach {
	return &ForEach{Collection: collection, Item: item, Separator: ",", Body: body}
}

// PrimaryKeyWhere returns the positional equality chain over the key columns.
func PrimaryKeyWhere(keys []Column, prefix string) *List {
	l := &List{Prefix: "where ", Separator: " and "}
	for _, c := range keys {
		l.Items = append(l.Items, T(c.AliasedEscapedName+" = "+c.ParameterClause(prefix)))
	}
	return l
}

// ExampleWhere includes the shared where clause when a parameter is present.
func ExampleWhere(refID string) *If {
	return When("_parameter != null", Ref(refID))
}

// ColumnList returns the select list of the columns.
func ColumnList(cols []Column) *List {
	l := &List{Separator: ", "}
	for _, c := range cols {
		l.Items = append(l.Items, T(c.AliasedEscapedName))
	}
	return l
}

// CriteriaWhere returns the where clause that expands the ored criteria of
// an example. collection names the criteria list, "oredCriteria" for an
// example parameter or "example.oredCriteria" for a map parameter.
func CriteriaWhere(collection string) *List {
	criterion := func(flag string, body ...Node) Node {
		return When("criterion."+flag, body...)
	}
	return &List{Prefix: "where ", Items: []Node{
		&ForEach{Collection: collection, Item: "criteria", Separator: " or ", Body: []Node{
			When("criteria.valid", &List{Prefix: "(", Suffix: ")", Items: []Node{
				&ForEach{Collection: "criteria.criteria", Item: "criterion", Separator: " and ", Body: []Node{
					criterion("noValue", T("${criterion.condition}")),
					criterion("singleValue", T("${criterion.condition} #{criterion.value}")),
					criterion("betweenValue", T("${criterion.condition} #{criterion.value} and #{criterion.secondValue}")),
					criterion("listValue",
						T("${criterion.condition}"),
						&ForEach{Collection: "criterion.value", Item: "listItem", Open: "(", Close: ")", Separator: ",", Body: []Node{T("#{listItem}")}},
					),
				}},
			}}),
		}},
	}}
}
