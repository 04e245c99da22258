// Package fragment models dynamic SQL as a typed tree.
//
// A statement body is a list of nodes. Text holds literal SQL with bind
// markers (#{path,jdbcType=X}) and textual substitutions (${path}); If, ForEach
// and List hold nested nodes; Include references a shared fragment of the
// same document by id.
//
// Separators are structural. A List renders its prefix, the non-empty items
// joined by its separator, and its suffix, and renders nothing when every item
// is empty. A ForEach joins only non-empty iterations. Builders therefore never
// emit trailing commas and never have to know which guards will hold.
package fragment

import "strings"

// Node is a node of a dynamic SQL tree.
type Node interface {
	node()
}

// Text is a literal piece of SQL.
type Text struct {
	SQL string
}

// If renders Body only when Test holds at bind time.
type If struct {
	Test string
	Body []Node
}

// ForEach repeats Body for every element of the collection parameter.
type ForEach struct {
	Collection string
	Item       string
	Open       string
	Close      string
	Separator  string
	Body       []Node
}

// List joins its non-empty items with Separator between Prefix and Suffix.
type List struct {
	Prefix    string
	Suffix    string
	Separator string
	Items     []Node
}

// Include references a shared fragment by id.
type Include struct {
	RefID string
}

func (*Text) node()    {}
func (*If) node()      {}
func (*ForEach) node() {}
func (*List) node()    {}
func (*Include) node() {}

// T returns a Text node.
func T(sql string) *Text { return &Text{SQL: sql} }

// When returns an If node.
func When(test string, body ...Node) *If { return &If{Test: test, Body: body} }

// Ref returns an Include node.
func Ref(id string) *Include { return &Include{RefID: id} }

// Guarded reports whether any node in the tree is conditional or repeated,
// that is, whether its rendered shape depends on bind-time values.
func Guarded(nodes ...Node) bool {
	found := false
	Walk(func(n Node) bool {
		switch n.(type) {
		case *If, *ForEach, *Include:
			found = true
		}
		return !found
	}, nodes...)
	return found
}

// Walk calls fn for every node of the tree in depth-first order.
// Returning false from fn skips the children of that node.
func Walk(fn func(Node) bool, nodes ...Node) {
	for _, n := range nodes {
		if n == nil || !fn(n) {
			continue
		}
		switch n := n.(type) {
		case *If:
			Walk(fn, n.Body...)
		case *ForEach:
			Walk(fn, n.Body...)
		case *List:
			Walk(fn, n.Items...)
		}
	}
}

// Refs returns the fragment ids referenced by Include nodes, in order of
// first appearance.
func Refs(nodes ...Node) []string {
	var (
		ids  []string
		seen = make(map[string]struct{})
	)
	Walk(func(n Node) bool {
		if inc, ok := n.(*Include); ok {
			if _, dup := seen[inc.RefID]; !dup {
				seen[inc.RefID] = struct{}{}
				ids = append(ids, inc.RefID)
			}
		}
		return true
	}, nodes...)
	return ids
}

// Texts concatenates the literal SQL of the tree, ignoring guards. It is
// meant for assertions and debugging, not for execution.
func Texts(nodes ...Node) string {
	var parts []string
	Walk(func(n Node) bool {
		switch n := n.(type) {
		case *Text:
			parts = append(parts, n.SQL)
		case *Include:
			parts = append(parts, "<"+n.RefID+">")
		}
		return true
	}, nodes...)
	return strings.Join(parts, " ")
}
