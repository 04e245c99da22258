package gen

import "strings"

// TypeRef references a host type in a generated signature.
type TypeRef struct {
	Name    string // e.g. "int", "User", "Decimal"
	PkgPath string // import path; empty for builtins and model-local types
	Slice   bool
	Pointer bool
}

// String returns the Go spelling of the reference, qualified with the last
// element of its import path.
func (r TypeRef) String() string {
	var b strings.Builder
	if r.Slice {
		b.WriteString("[]")
	}
	if r.Pointer {
		b.WriteString("*")
	}
	if r.PkgPath != "" {
		b.WriteString(r.PkgPath[strings.LastIndex(r.PkgPath, "/")+1:])
		b.WriteString(".")
	}
	b.WriteString(r.Name)
	return b.String()
}

// Common type references.
var (
	IntRef     = TypeRef{Name: "int"}
	StringRef  = TypeRef{Name: "string"}
	StringsRef = TypeRef{Name: "string", Slice: true}
)

// RecordRef returns a pointer reference to a model type of the table.
func RecordRef(name string) TypeRef {
	return TypeRef{Name: name, Pointer: true}
}

// RecordsRef returns a slice reference to a model type of the table.
func RecordsRef(name string) TypeRef {
	return TypeRef{Name: name, Pointer: true, Slice: true}
}

// ColumnRef returns the type reference of a column's host type.
func ColumnRef(c *Column) TypeRef {
	if c.Type == nil {
		return TypeRef{Name: "any"}
	}
	name, pkg := c.Type.String(), c.Type.PkgPath
	if i := strings.LastIndex(name, "."); i >= 0 && pkg != "" {
		name = name[i+1:]
	}
	return TypeRef{Name: name, PkgPath: pkg}
}

// Param is a method parameter. Binding is the name the parameter is bound
// under in the statement; empty means the parameter is the statement's sole
// argument.
type Param struct {
	Name    string
	Type    TypeRef
	Binding string
}

// CriterionKind is the value shape of a criteria method.
type CriterionKind uint8

// Criterion value shapes.
const (
	CriterionNoValue CriterionKind = iota
	CriterionSingle
	CriterionBetween
	CriterionList
)

// String returns the name of the value shape.
func (k CriterionKind) String() string {
	switch k {
	case CriterionNoValue:
		return "noValue"
	case CriterionSingle:
		return "singleValue"
	case CriterionBetween:
		return "betweenValue"
	case CriterionList:
		return "listValue"
	default:
		return "invalid"
	}
}

// Criterion describes the body of a criteria method: which accumulator it
// calls and with what condition.
type Criterion struct {
	Kind      CriterionKind
	Condition string // e.g. "`name` like"
	Property  string
	// IgnoreNull routes the value through the null-tolerant accumulator.
	IgnoreNull bool
	// UpperCase upper-cases the value before it is added.
	UpperCase bool
}

// Method is a generated method signature, optionally tied to the statement
// that implements it or to the criterion it adds.
type Method struct {
	Name      string
	Doc       string
	Params    []Param
	Returns   TypeRef
	Statement string
	Criterion *Criterion
	// Delegate names a runtime method the generated method forwards to.
	Delegate string
}

// TypeDecl collects the members synthesizers add to one generated type.
// Method identity is the name; collisions are not guarded.
type TypeDecl struct {
	Name      string
	Methods   []*Method
	Constants []*Constant
}

// Constant is a generated constant.
type Constant struct {
	Name  string
	Value string
	Doc   string
}

// AddMethod appends a method.
func (d *TypeDecl) AddMethod(m *Method) {
	d.Methods = append(d.Methods, m)
}

// AddConstant appends a constant.
func (d *TypeDecl) AddConstant(c *Constant) {
	d.Constants = append(d.Constants, c)
}

// Method returns the first method with the given name, or nil.
func (d *TypeDecl) Method(name string) *Method {
	for _, m := range d.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// MethodNames returns the method names in declaration order.
func (d *TypeDecl) MethodNames() []string {
	names := make([]string, len(d.Methods))
	for i, m := range d.Methods {
		names[i] = m.Name
	}
	return names
}
