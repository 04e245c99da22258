package render

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/cel-go/cel"
	"github.com/shopspring/decimal"
)

// guard is a test rewritten for cel: every property path replaced by a
// variable _v<i>, in order of appearance.
type guard struct {
	expr  string
	paths []string
}

// rewrite tokenizes a binder test. Word operators become their cel
// counterparts; quoted literals are kept, re-quoted for cel.
func rewrite(test string) (guard, error) {
	var (
		g   guard
		b   strings.Builder
		rs  = []rune(test)
		pos = 0
	)
	for pos < len(rs) {
		r := rs[pos]
		switch {
		case r == '\'' || r == '"':
			end := pos + 1
			for end < len(rs) && rs[end] != r {
				end++
			}
			if end == len(rs) {
				return g, fmt.Errorf("unterminated literal in %q", test)
			}
			b.WriteString(strconv.Quote(string(rs[pos+1 : end])))
			pos = end + 1
		case r == '_' || unicode.IsLetter(r):
			end := pos
			for end < len(rs) && (rs[end] == '_' || rs[end] == '.' || unicode.IsLetter(rs[end]) || unicode.IsDigit(rs[end])) {
				end++
			}
			word := string(rs[pos:end])
			switch word {
			case "and":
				b.WriteString("&&")
			case "or":
				b.WriteString("||")
			case "not":
				b.WriteString("!")
			case "null", "true", "false":
				b.WriteString(word)
			default:
				fmt.Fprintf(&b, "_v%d", len(g.paths))
				g.paths = append(g.paths, word)
			}
			pos = end
		default:
			b.WriteRune(r)
			pos++
		}
	}
	g.expr = b.String()
	return g, nil
}

// test evaluates a guard in the current scope.
func (s *state) test(test string) bool {
	g, err := rewrite(test)
	if err != nil {
		return false
	}
	prg, err := s.r.program(g)
	if err != nil {
		return false
	}
	vars := make(map[string]any, len(g.paths))
	for i, p := range g.paths {
		v, _ := s.resolve(p)
		vars["_v"+strconv.Itoa(i)] = celValue(v)
	}
	out, _, err := prg.Eval(vars)
	if err != nil {
		return false
	}
	ok, isBool := out.Value().(bool)
	return isBool && ok
}

func (r *Renderer) program(g guard) (cel.Program, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if prg, ok := r.programs[g.expr]; ok {
		return prg, nil
	}
	opts := make([]cel.EnvOption, len(g.paths))
	for i := range g.paths {
		opts[i] = cel.Variable("_v"+strconv.Itoa(i), cel.DynType)
	}
	env, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, err
	}
	ast, iss := env.Compile(g.expr)
	if iss.Err() != nil {
		return nil, iss.Err()
	}
	prg, err := env.Program(ast)
	if err != nil {
		return nil, err
	}
	r.programs[g.expr] = prg
	return prg, nil
}

// celValue converts a parameter value to one the cel type adapter accepts.
// Guards only compare values with null, literals and booleans, so values of
// other types are passed as their string form.
func celValue(v any) any {
	v = deref(v)
	switch v := v.(type) {
	case nil, bool, string, int, int32, int64, uint, uint32, uint64, float32, float64,
		[]any, map[string]any, []string, []byte:
		return v
	case decimal.Decimal:
		return v.String()
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return v
	}
	return fmt.Sprint(v)
}
