// Package render expands mapper statements into executable SQL.
//
// It walks a statement's fragment tree against a parameter map the way the
// downstream binder does: If guards are evaluated, ForEach iterates its
// collection with the item in scope, Lists apply their separators and
// Includes pull in the shared fragments of the document. Bind markers
// (#{path,...}) become "?" placeholders with the resolved value appended to
// the arguments; substitutions (${path}) are written verbatim.
//
// Guards use the binder's word operators (and, or, not) and null. They are
// compiled with cel-go after every property path is replaced by a dynamic
// variable. A guard that does not evaluate to true, including one that fails
// to evaluate, is false.
package render

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/shopspring/decimal"

	"github.com/syssam/mapperkit"
	"github.com/syssam/mapperkit/compiler/gen"
	"github.com/syssam/mapperkit/compiler/gen/fragment"
)

// ParameterRoot is the path that names the whole parameter object.
const ParameterRoot = "_parameter"

// Renderer expands statements. It caches compiled guards and is safe for
// concurrent use.
type Renderer struct {
	mu       sync.Mutex
	programs map[string]cel.Program
}

// New returns a Renderer.
func New() *Renderer {
	return &Renderer{programs: make(map[string]cel.Program)}
}

var std = New()

// Statement expands the statement id of doc with the default renderer.
func Statement(doc *gen.Document, id string, params map[string]any) (string, []any, error) {
	return std.Statement(doc, id, params)
}

// Statement expands the statement id of doc against params and returns the
// SQL and its positional arguments.
func (r *Renderer) Statement(doc *gen.Document, id string, params map[string]any) (string, []any, error) {
	s, ok := doc.Statement(id)
	if !ok {
		return "", nil, mapperkit.NewNotFoundErrorWithName("statement", id)
	}
	st := &state{r: r, doc: doc, root: params}
	sql, err := st.nodes(s.Body, " ")
	if err != nil {
		return "", nil, fmt.Errorf("render %s.%s: %w", doc.Namespace, id, err)
	}
	return tidy(sql), st.args, nil
}

// state is the expansion of one statement.
type state struct {
	r      *Renderer
	doc    *gen.Document
	root   map[string]any
	scopes []map[string]any
	args   []any
	depth  int
}

// nodes renders the nodes and joins the non-empty results with sep.
func (s *state) nodes(nodes []fragment.Node, sep string) (string, error) {
	parts := make([]string, 0, len(nodes))
	for _, n := range nodes {
		out, err := s.node(n)
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(out) != "" {
			parts = append(parts, out)
		}
	}
	return strings.Join(parts, sep), nil
}

func (s *state) node(n fragment.Node) (string, error) {
	switch n := n.(type) {
	case *fragment.Text:
		return s.text(n.SQL)
	case *fragment.If:
		if !s.test(n.Test) {
			return "", nil
		}
		return s.nodes(n.Body, " ")
	case *fragment.List:
		body, err := s.nodes(n.Items, n.Separator)
		if err != nil || body == "" {
			return "", err
		}
		return n.Prefix + body + n.Suffix, nil
	case *fragment.ForEach:
		return s.forEach(n)
	case *fragment.Include:
		f, ok := s.doc.Fragment(n.RefID)
		if !ok {
			return "", mapperkit.NewNotFoundErrorWithName("fragment", n.RefID)
		}
		if s.depth++; s.depth > 8 {
			return "", fmt.Errorf("fragment %q: includes nested too deep", n.RefID)
		}
		defer func() { s.depth-- }()
		return s.nodes(f.Body, " ")
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("unexpected node %T", n)
	}
}

func (s *state) forEach(n *fragment.ForEach) (string, error) {
	v, _ := s.resolve(n.Collection)
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array || rv.Len() == 0 {
		return "", nil
	}
	parts := make([]string, 0, rv.Len())
	for i := range rv.Len() {
		s.scopes = append(s.scopes, map[string]any{n.Item: rv.Index(i).Interface()})
		out, err := s.nodes(n.Body, " ")
		s.scopes = s.scopes[:len(s.scopes)-1]
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(out) != "" {
			parts = append(parts, out)
		}
	}
	return n.Open + strings.Join(parts, n.Separator) + n.Close, nil
}

var marker = regexp.MustCompile(`([#$])\{([^}]*)\}`)

// text replaces the bind markers and substitutions of a literal.
func (s *state) text(sql string) (string, error) {
	var err error
	out := marker.ReplaceAllStringFunc(sql, func(m string) string {
		sub := marker.FindStringSubmatch(m)
		path, opts, _ := strings.Cut(sub[2], ",")
		path = strings.TrimSpace(path)
		v, _ := s.resolve(path)
		if sub[1] == "$" {
			if v == nil {
				return ""
			}
			return fmt.Sprint(v)
		}
		arg, cerr := bindValue(v, jdbcType(opts))
		if cerr != nil && err == nil {
			err = fmt.Errorf("bind %s: %w", path, cerr)
		}
		s.args = append(s.args, arg)
		return "?"
	})
	return out, err
}

func jdbcType(opts string) string {
	for _, o := range strings.Split(opts, ",") {
		if k, v, ok := strings.Cut(o, "="); ok && strings.TrimSpace(k) == "jdbcType" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// bindValue returns the argument bound for v. DECIMAL values are passed as
// decimal.Decimal whatever their Go representation.
func bindValue(v any, jdbc string) (any, error) {
	v = deref(v)
	if v == nil || (jdbc != "DECIMAL" && jdbc != "NUMERIC") {
		return v, nil
	}
	switch v := v.(type) {
	case decimal.Decimal:
		return v, nil
	case string:
		return decimal.NewFromString(v)
	case float64:
		return decimal.NewFromFloat(v), nil
	case float32:
		return decimal.NewFromFloat32(v), nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int32:
		return decimal.NewFromInt32(v), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case uint64:
		return decimal.NewFromUint64(v), nil
	default:
		return v, nil
	}
}

// resolve looks a dotted path up in the innermost scope that defines its
// head, then in the parameters.
func (s *state) resolve(path string) (any, bool) {
	head, rest, _ := strings.Cut(path, ".")
	var (
		cur   any
		found bool
	)
	for i := len(s.scopes) - 1; i >= 0 && !found; i-- {
		cur, found = s.scopes[i][head]
	}
	if !found {
		if head == ParameterRoot {
			cur, found = s.root, s.root != nil
		} else {
			cur, found = s.root[head]
		}
	}
	if !found {
		return nil, false
	}
	for rest != "" {
		head, rest, _ = strings.Cut(rest, ".")
		if cur, found = field(cur, head); !found {
			return nil, false
		}
	}
	return cur, true
}

// field returns a map entry or a struct field. Struct fields match the
// property case-insensitively, so "id" finds ID.
func field(v any, name string) (any, bool) {
	rv := reflect.ValueOf(deref(v))
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		e := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !e.IsValid() {
			return nil, false
		}
		return e.Interface(), true
	case reflect.Struct:
		f := rv.FieldByNameFunc(func(n string) bool { return strings.EqualFold(n, name) })
		if !f.IsValid() || !f.CanInterface() {
			return nil, false
		}
		return f.Interface(), true
	}
	return nil, false
}

// deref follows pointers and returns nil for a nil pointer.
func deref(v any) any {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return nil
	}
	return rv.Interface()
}

var blanks = regexp.MustCompile(`\s+`)

// tidy collapses whitespace and removes the blank before commas.
func tidy(sql string) string {
	sql = blanks.ReplaceAllString(strings.TrimSpace(sql), " ")
	return strings.ReplaceAll(sql, " ,", ",")
}
