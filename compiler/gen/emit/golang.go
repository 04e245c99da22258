package emit

import (
	"bytes"
	"go/token"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/mapperkit/compiler/gen"
)

// CriteriaPkg is the import path of the runtime the generated example types
// build on.
const CriteriaPkg = "github.com/syssam/mapperkit/criteria"

// Header is the first line of every generated Go file.
const Header = "Code generated by mapperkit. DO NOT EDIT."

// ident returns a parameter name that is safe in the generated source: Go
// keywords and the context parameter get a trailing underscore.
func ident(name string) string {
	if token.IsKeyword(name) || name == "ctx" {
		return name + "_"
	}
	return name
}

// GoPath returns the path of the Go source of the table.
func GoPath(t *gen.Table) string {
	return gen.Snake(t.Domain) + "_mapper.go"
}

// Go returns an emitter of the Go sources of the units, in the package of
// the config.
func Go(c *gen.Config) gen.Emitter {
	return gen.EmitterFunc(func(u *gen.Unit) ([]gen.File, error) {
		b, err := GoMapper(c, u)
		if err != nil {
			return nil, err
		}
		return []gen.File{{Path: GoPath(u.Table), Content: b}}, nil
	})
}

// GoMapper renders the Go source of the unit: the records, the column
// constants, the statement ids, the mapper interface, and the example and
// criteria types.
func GoMapper(c *gen.Config, u *gen.Unit) ([]byte, error) {
	f := jen.NewFile(c.Package)
	f.HeaderComment(Header)
	if c.Header != "" {
		f.HeaderComment(c.Header)
	}
	g := &goWriter{f: f, u: u}
	g.records()
	g.constants()
	g.mapper()
	g.example()
	g.criteria()

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, gen.NewGenerationError("emit", u.Table.Name, "go source", err)
	}
	return buf.Bytes(), nil
}

type goWriter struct {
	f *jen.File
	u *gen.Unit
}

// typeCode returns the Go spelling of a type reference.
func typeCode(r gen.TypeRef) *jen.Statement {
	var s *jen.Statement
	if r.PkgPath != "" {
		s = jen.Qual(r.PkgPath, r.Name)
	} else {
		s = jen.Id(r.Name)
	}
	if r.Pointer {
		s = jen.Op("*").Add(s)
	}
	if r.Slice {
		s = jen.Index().Add(s)
	}
	return s
}

// fieldCode returns the struct field of a column. Nullable scalar columns
// are pointers.
func fieldCode(c *gen.Column) jen.Code {
	ref := gen.ColumnRef(c)
	if c.Nullable && c.Type != nil && c.Type.Type.String()[0] != '[' {
		ref.Pointer = true
	}
	return jen.Id(gen.Pascal(c.Property)).Add(typeCode(ref)).Tag(map[string]string{"db": c.Name})
}

func (g *goWriter) records() {
	t := g.u.Table
	var rest []*gen.Column
	if t.PrimaryKeyClass {
		g.f.Commentf("%s holds the primary key of the %s table.", t.Key(), t.Name)
		g.f.Type().Id(t.Key()).StructFunc(func(s *jen.Group) {
			for _, c := range t.PrimaryKeys() {
				s.Add(fieldCode(c))
			}
		})
		for _, c := range t.BaseColumns() {
			if !c.PrimaryKey {
				rest = append(rest, c)
			}
		}
	} else {
		rest = t.BaseColumns()
	}

	g.f.Commentf("%s is a row of the %s table.", t.Record(), t.Name)
	g.f.Type().Id(t.Record()).StructFunc(func(s *jen.Group) {
		if t.PrimaryKeyClass {
			s.Id(t.Key())
		}
		for _, c := range rest {
			s.Add(fieldCode(c))
		}
	})

	if t.HasBLOBs() {
		g.f.Commentf("%s is a row of the %s table, large objects included.", t.RecordWithBLOBs(), t.Name)
		g.f.Type().Id(t.RecordWithBLOBs()).StructFunc(func(s *jen.Group) {
			s.Id(t.Record())
			for _, c := range t.BLOBColumns() {
				s.Add(fieldCode(c))
			}
		})
	}
}

// constants renders the model constants, prefixed with the record name so
// the constants of several tables share a package.
func (g *goWriter) constants() {
	m := g.u.Model
	if len(m.Constants) == 0 {
		return
	}
	g.f.Const().DefsFunc(func(d *jen.Group) {
		for _, c := range m.Constants {
			name := m.Name + c.Name
			if c.Doc != "" {
				d.Comment(name + " " + c.Doc)
			}
			d.Id(name).Op("=").Lit(c.Value)
		}
	})
}

func (g *goWriter) mapper() {
	u := g.u
	if len(u.Mapper.Methods) == 0 {
		return
	}
	g.f.Commentf("Statement ids of %s.", u.Mapper.Name)
	g.f.Const().DefsFunc(func(d *jen.Group) {
		for _, m := range u.Mapper.Methods {
			d.Id(u.Mapper.Name+gen.Exported(m.Name)).Op("=").Lit(u.Document.Namespace + "." + m.Statement)
		}
	})

	g.f.Commentf("%s runs the mapped statements of the %s table.", u.Mapper.Name, u.Table.Name)
	g.f.Type().Id(u.Mapper.Name).InterfaceFunc(func(i *jen.Group) {
		for _, m := range u.Mapper.Methods {
			name := gen.Exported(m.Name)
			if m.Doc != "" {
				i.Comment(name + " " + m.Doc)
			}
			i.Id(name).ParamsFunc(func(p *jen.Group) {
				p.Id("ctx").Qual("context", "Context")
				for _, param := range m.Params {
					p.Id(ident(param.Name)).Add(typeCode(param.Type))
				}
			}).Params(typeCode(m.Returns), jen.Error())
		}
	})
}

func (g *goWriter) example() {
	u := g.u
	ex, cr := u.Example.Name, u.Criteria.Name
	recv := jen.Id("e").Op("*").Id(ex)

	g.f.Commentf("%s is a query by example of the %s table.", ex, u.Table.Name)
	g.f.Type().Id(ex).Struct(jen.Qual(CriteriaPkg, "Example"))

	g.f.Comment("Or appends a new criteria group and returns it.")
	g.f.Func().Params(recv.Clone()).Id("Or").Params().Op("*").Id(cr).Block(
		jen.Return(jen.Op("&").Id(cr).Values(jen.Dict{
			jen.Id("Criteria"): jen.Id("e").Dot("Example").Dot("Or").Call(),
			jen.Id("example"):  jen.Id("e"),
		})),
	)

	g.f.Comment("CreateCriteria returns a new criteria group. Only the first group created")
	g.f.Comment("is added to the example.")
	g.f.Func().Params(recv.Clone()).Id("CreateCriteria").Params().Op("*").Id(cr).Block(
		jen.Return(jen.Op("&").Id(cr).Values(jen.Dict{
			jen.Id("Criteria"): jen.Id("e").Dot("Example").Dot("CreateCriteria").Call(),
			jen.Id("example"):  jen.Id("e"),
		})),
	)

	g.f.Comment("AddOr appends a criteria group created by CreateCriteria.")
	g.f.Func().Params(recv.Clone()).Id("AddOr").Params(jen.Id("c").Op("*").Id(cr)).Block(
		jen.Id("e").Dot("Example").Dot("AddOr").Call(jen.Id("c").Dot("Criteria")),
	)

	for _, m := range u.Example.Methods {
		if m.Delegate == "" {
			continue
		}
		name := gen.Exported(m.Name)
		if m.Doc != "" {
			g.f.Comment(name + " " + m.Doc)
		}
		var args []jen.Code
		g.f.Func().Params(recv.Clone()).Id(name).ParamsFunc(func(p *jen.Group) {
			for _, param := range m.Params {
				p.Id(ident(param.Name)).Add(typeCode(param.Type))
				args = append(args, jen.Id(ident(param.Name)))
			}
		}).Block(
			jen.Id("e").Dot("Example").Dot(m.Delegate).Call(args...),
		)
	}
}

func (g *goWriter) criteria() {
	u := g.u
	ex, cr := u.Example.Name, u.Criteria.Name
	recv := jen.Id("c").Op("*").Id(cr)

	g.f.Commentf("%s is a criteria group of %s.", cr, ex)
	g.f.Type().Id(cr).Struct(
		jen.Op("*").Qual(CriteriaPkg, "Criteria"),
		jen.Id("example").Op("*").Id(ex),
	)

	g.f.Comment("Example returns the example the group belongs to.")
	g.f.Func().Params(recv.Clone()).Id("Example").Params().Op("*").Id(ex).Block(
		jen.Return(jen.Id("c").Dot("example")),
	)

	for _, m := range u.Criteria.Methods {
		if m.Criterion == nil {
			continue
		}
		name := gen.Exported(m.Name)
		if m.Doc != "" {
			g.f.Comment(name + " " + m.Doc)
		}
		g.f.Func().Params(recv.Clone()).Id(name).ParamsFunc(func(p *jen.Group) {
			for _, param := range m.Params {
				p.Id(ident(param.Name)).Add(typeCode(param.Type))
			}
		}).Op("*").Id(cr).Block(
			criterionCall(m),
			jen.Return(jen.Id("c")),
		)
	}
}

// criterionCall returns the accumulator call of a criteria method.
func criterionCall(m *gen.Method) jen.Code {
	cr := m.Criterion
	cond, prop := jen.Lit(cr.Condition), jen.Lit(cr.Property)
	call := func(name string, args ...jen.Code) jen.Code {
		return jen.Id("c").Dot(name).Call(args...)
	}
	arg := func(i int) jen.Code { return jen.Id(ident(m.Params[i].Name)) }
	switch {
	case cr.Kind == gen.CriterionNoValue:
		return call("AddCriterionNoValue", cond)
	case cr.Kind == gen.CriterionBetween:
		return call("AddCriterionBetween", cond, arg(0), arg(1), prop)
	case cr.UpperCase:
		return call("LikeInsensitive", cond, arg(0), prop)
	case cr.IgnoreNull:
		return call("AddCriterionIgnoreNull", cond, arg(0), prop)
	default:
		return call("AddCriterion", cond, arg(0), prop)
	}
}
