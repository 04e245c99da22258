package gen

import (
	"fmt"

	"github.com/syssam/mapperkit/compiler/gen/fragment"
)

// StatementKind is the SQL verb of a statement.
type StatementKind uint8

// Statement kinds.
const (
	KindSelect StatementKind = iota
	KindInsert
	KindUpdate
	KindDelete
)

// String returns the element name of the kind.
func (k StatementKind) String() string {
	switch k {
	case KindSelect:
		return "select"
	case KindInsert:
		return "insert"
	case KindUpdate:
		return "update"
	case KindDelete:
		return "delete"
	default:
		return "invalid"
	}
}

// ParameterMap is the parameter type of statements that receive named
// parameters.
const ParameterMap = "map"

// GeneratedKey describes the key the database generates on insert.
type GeneratedKey struct {
	Property string
	Column   string
}

// Statement is one mapped SQL statement.
type Statement struct {
	ID            string
	Kind          StatementKind
	ParameterType string
	ResultMap     string
	ResultType    string
	GeneratedKey  *GeneratedKey
	Body          []fragment.Node
}

// Append adds nodes to the statement body.
func (s *Statement) Append(nodes ...fragment.Node) *Statement {
	s.Body = append(s.Body, nodes...)
	return s
}

// SQLFragment is a shared SQL block referenced by Include nodes.
type SQLFragment struct {
	ID   string
	Body []fragment.Node
}

// Document is the mapper document of one table: its shared fragments and
// statements. Statement ids are unique within a document.
type Document struct {
	Namespace  string
	Fragments  []*SQLFragment
	Statements []*Statement

	ids       map[string]*Statement
	fragments map[string]*SQLFragment
}

// NewDocument returns an empty document.
func NewDocument(namespace string) *Document {
	return &Document{
		Namespace: namespace,
		ids:       make(map[string]*Statement),
		fragments: make(map[string]*SQLFragment),
	}
}

// AddStatement appends a statement. A statement whose id is already taken is
// rejected with an error wrapping ErrDuplicateStatement.
func (d *Document) AddStatement(s *Statement) error {
	if d.ids == nil {
		d.ids = make(map[string]*Statement)
	}
	if _, ok := d.ids[s.ID]; ok {
		return NewGenerationError("document", d.Namespace, fmt.Sprintf("statement %q", s.ID), ErrDuplicateStatement)
	}
	d.ids[s.ID] = s
	d.Statements = append(d.Statements, s)
	return nil
}

// AddFragment appends a shared fragment. Adding an id twice keeps the first.
func (d *Document) AddFragment(f *SQLFragment) {
	if d.fragments == nil {
		d.fragments = make(map[string]*SQLFragment)
	}
	if _, ok := d.fragments[f.ID]; ok {
		return
	}
	d.fragments[f.ID] = f
	d.Fragments = append(d.Fragments, f)
}

// Statement returns the statement with the given id.
func (d *Document) Statement(id string) (*Statement, bool) {
	s, ok := d.ids[id]
	return s, ok
}

// Fragment returns the shared fragment with the given id.
func (d *Document) Fragment(id string) (*SQLFragment, bool) {
	f, ok := d.fragments[id]
	return f, ok
}

// StatementIDs returns the statement ids in document order.
func (d *Document) StatementIDs() []string {
	ids := make([]string, len(d.Statements))
	for i, s := range d.Statements {
		ids[i] = s.ID
	}
	return ids
}

// BaseDocument returns the document of t seeded with the shared fragments
// that statements include: the example where clauses and the column lists.
func BaseDocument(t *Table) *Document {
	d := NewDocument(t.Namespace())
	d.AddFragment(&SQLFragment{
		ID:   fragment.ExampleWhereClause,
		Body: []fragment.Node{fragment.CriteriaWhere("oredCriteria")},
	})
	d.AddFragment(&SQLFragment{
		ID:   fragment.UpdateByExampleWhereClause,
		Body: []fragment.Node{fragment.CriteriaWhere("example.oredCriteria")},
	})
	d.AddFragment(&SQLFragment{
		ID:   fragment.BaseColumnList,
		Body: []fragment.Node{fragment.ColumnList(t.Facts(t.BaseColumns()))},
	})
	if t.HasBLOBs() {
		d.AddFragment(&SQLFragment{
			ID:   fragment.BlobColumnList,
			Body: []fragment.Node{fragment.ColumnList(t.Facts(t.BLOBColumns()))},
		})
	}
	return d
}
