// Package emit renders synthesized units into files: the XML mapper document
// read by the binder, and the Go source of the mapper interface, the example
// and criteria types, the records and their column constants.
package emit

import (
	"bytes"
	"strings"

	"github.com/beevik/etree"

	"github.com/syssam/mapperkit/compiler/gen"
	"github.com/syssam/mapperkit/compiler/gen/fragment"
)

const mapperDocType = `DOCTYPE mapper PUBLIC "-//mybatis.org//DTD Mapper 3.0//EN" "http://mybatis.org/dtd/mybatis-3-mapper.dtd"`

// XMLPath returns the path of the mapper document of the table.
func XMLPath(t *gen.Table) string {
	return t.Mapper() + ".xml"
}

// XML returns an emitter of mapper documents.
func XML() gen.Emitter {
	return gen.EmitterFunc(func(u *gen.Unit) ([]gen.File, error) {
		b, err := MapperXML(u)
		if err != nil {
			return nil, err
		}
		return []gen.File{{Path: XMLPath(u.Table), Content: b}}, nil
	})
}

// MapperXML renders the mapper document of the unit: the result maps of the
// table, the shared fragments and the statements.
func MapperXML(u *gen.Unit) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateDirective(mapperDocType)
	root := doc.CreateElement("mapper")
	root.CreateAttr("namespace", u.Document.Namespace)

	w := &xmlWriter{}
	w.resultMaps(root, u.Table)
	for _, f := range u.Document.Fragments {
		el := w.child(root, 1, "sql")
		el.CreateAttr("id", f.ID)
		w.nodes(el, 2, f.Body)
		w.close(el, 1)
	}
	for _, s := range u.Document.Statements {
		w.statement(root, s)
	}
	w.close(root, 0)

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, gen.NewGenerationError("emit", u.Table.Name, "mapper xml", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// xmlWriter lays elements out with explicit whitespace tokens, so literal
// SQL keeps its position among the dynamic elements.
type xmlWriter struct{}

func (xmlWriter) pad(el *etree.Element, depth int) {
	el.CreateText("\n" + strings.Repeat("  ", depth))
}

func (w xmlWriter) child(parent *etree.Element, depth int, tag string) *etree.Element {
	w.pad(parent, depth)
	return parent.CreateElement(tag)
}

func (w xmlWriter) close(el *etree.Element, depth int) {
	if len(el.Child) > 0 {
		w.pad(el, depth)
	}
}

func (w xmlWriter) resultMaps(root *etree.Element, t *gen.Table) {
	base := w.child(root, 1, "resultMap")
	base.CreateAttr("id", gen.BaseResultMap)
	base.CreateAttr("type", t.Record())
	for _, c := range t.BaseColumns() {
		w.result(base, c)
	}
	w.close(base, 1)
	if !t.HasBLOBs() {
		return
	}
	blobs := w.child(root, 1, "resultMap")
	blobs.CreateAttr("id", gen.ResultMapWithBLOBs)
	blobs.CreateAttr("type", t.RecordWithBLOBs())
	blobs.CreateAttr("extends", gen.BaseResultMap)
	for _, c := range t.BLOBColumns() {
		w.result(blobs, c)
	}
	w.close(blobs, 1)
}

func (w xmlWriter) result(parent *etree.Element, c *gen.Column) {
	tag := "result"
	if c.PrimaryKey {
		tag = "id"
	}
	el := w.child(parent, 2, tag)
	el.CreateAttr("column", c.Name)
	el.CreateAttr("property", c.Property)
	el.CreateAttr("jdbcType", c.JDBCType())
	if c.TypeHandler != "" {
		el.CreateAttr("typeHandler", c.TypeHandler)
	}
}

func (w xmlWriter) statement(root *etree.Element, s *gen.Statement) {
	el := w.child(root, 1, s.Kind.String())
	el.CreateAttr("id", s.ID)
	if s.ParameterType != "" {
		el.CreateAttr("parameterType", s.ParameterType)
	}
	switch {
	case s.ResultMap != "":
		el.CreateAttr("resultMap", s.ResultMap)
	case s.ResultType != "":
		el.CreateAttr("resultType", s.ResultType)
	}
	if k := s.GeneratedKey; k != nil {
		el.CreateAttr("useGeneratedKeys", "true")
		el.CreateAttr("keyProperty", k.Property)
		el.CreateAttr("keyColumn", k.Column)
	}
	w.nodes(el, 2, s.Body)
	w.close(el, 1)
}

func (w xmlWriter) nodes(parent *etree.Element, depth int, nodes []fragment.Node) {
	for _, n := range nodes {
		w.node(parent, depth, n, "", "")
	}
}

// node renders n into parent. before and after are the separator pieces the
// enclosing trim element strips.
func (w xmlWriter) node(parent *etree.Element, depth int, n fragment.Node, before, after string) {
	switch n := n.(type) {
	case *fragment.Text:
		w.pad(parent, depth)
		parent.CreateText(before + n.SQL + after)
	case *fragment.If:
		el := w.child(parent, depth, "if")
		el.CreateAttr("test", n.Test)
		for i, c := range n.Body {
			b, a := "", ""
			if i == 0 {
				b = before
			}
			if i == len(n.Body)-1 {
				a = after
			}
			w.node(el, depth+1, c, b, a)
		}
		w.close(el, depth)
	case *fragment.ForEach:
		if before != "" {
			w.pad(parent, depth)
			parent.CreateText(before)
		}
		el := w.child(parent, depth, "foreach")
		el.CreateAttr("collection", n.Collection)
		el.CreateAttr("item", n.Item)
		if n.Open != "" {
			el.CreateAttr("open", n.Open)
		}
		if n.Close != "" {
			el.CreateAttr("close", n.Close)
		}
		if n.Separator != "" {
			el.CreateAttr("separator", n.Separator)
		}
		w.nodes(el, depth+1, n.Body)
		w.close(el, depth)
		if after != "" {
			w.pad(parent, depth)
			parent.CreateText(after)
		}
	case *fragment.Include:
		w.pad(parent, depth)
		if before != "" {
			parent.CreateText(before)
		}
		el := parent.CreateElement("include")
		el.CreateAttr("refid", n.RefID)
		if after != "" {
			parent.CreateText(after)
		}
	case *fragment.List:
		w.list(parent, depth, n, before, after)
	}
}

// list renders a List. A list whose items are all unconditional is plain
// text; otherwise the binder's trimming elements drop the separators left
// over by absent items: set for SET clauses, where for WHERE clauses and
// trim for the rest.
func (w xmlWriter) list(parent *etree.Element, depth int, l *fragment.List, before, after string) {
	if !fragment.Guarded(l.Items...) {
		w.pad(parent, depth)
		parent.CreateText(before + plain(l) + after)
		return
	}

	if before != "" {
		w.pad(parent, depth)
		parent.CreateText(before)
	}
	sep := strings.TrimSpace(l.Separator)
	trailing := sep == ","
	var el *etree.Element
	switch {
	case l.Prefix == "set " && l.Suffix == "":
		el = w.child(parent, depth, "set")
	case l.Prefix == "where " && l.Suffix == "" && !trailing:
		el = w.child(parent, depth, "where")
	default:
		el = w.child(parent, depth, "trim")
		if l.Prefix != "" {
			el.CreateAttr("prefix", strings.TrimSpace(l.Prefix))
		}
		if l.Suffix != "" {
			el.CreateAttr("suffix", strings.TrimSpace(l.Suffix))
		}
		switch {
		case sep == "":
		case trailing:
			el.CreateAttr("suffixOverrides", sep)
		default:
			el.CreateAttr("prefixOverrides", sep+" ")
		}
	}
	for _, it := range l.Items {
		switch {
		case sep == "":
			w.node(el, depth+1, it, "", "")
		case trailing:
			w.node(el, depth+1, it, "", sep)
		default:
			w.node(el, depth+1, it, sep+" ", "")
		}
	}
	w.close(el, depth)
	if after != "" {
		w.pad(parent, depth)
		parent.CreateText(after)
	}
}

// plain returns the SQL of an unconditional node.
func plain(n fragment.Node) string {
	switch n := n.(type) {
	case *fragment.Text:
		return n.SQL
	case *fragment.List:
		parts := make([]string, 0, len(n.Items))
		for _, it := range n.Items {
			parts = append(parts, plain(it))
		}
		return n.Prefix + strings.Join(parts, n.Separator) + n.Suffix
	}
	return ""
}
