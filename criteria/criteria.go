// Package criteria is the runtime of the generated example types. A generated
// <Domain>Example embeds Example, and every generated <Domain>Criteria wraps a
// *Criteria whose accumulators record the conditions the where clause
// expands.
package criteria

import (
	"errors"
	"reflect"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/mapperkit"
)

// Criterion is one condition of a criteria group.
type Criterion struct {
	Condition   string
	Value       any
	SecondValue any

	NoValue      bool
	SingleValue  bool
	BetweenValue bool
	ListValue    bool
}

// Criteria is a group of conditions joined by "and".
type Criteria struct {
	criteria []*Criterion
	errs     []error
}

// Valid reports whether the group holds at least one condition.
func (c *Criteria) Valid() bool {
	return len(c.criteria) > 0
}

// All returns the conditions of the group.
func (c *Criteria) All() []*Criterion {
	return c.criteria
}

// Err returns the errors recorded by the accumulators, if any.
func (c *Criteria) Err() error {
	return errors.Join(c.errs...)
}

// AddCriterionNoValue adds a condition without value, e.g. "name is null".
func (c *Criteria) AddCriterionNoValue(condition string) {
	if condition == "" {
		c.errs = append(c.errs, mapperkit.NewInvalidValueError("", "condition cannot be empty"))
		return
	}
	c.criteria = append(c.criteria, &Criterion{Condition: condition, NoValue: true})
}

// AddCriterion adds a condition with a single or a list value. A nil value
// is recorded as an error.
func (c *Criteria) AddCriterion(condition string, value any, property string) {
	kind, ok := classify(value)
	if !ok {
		c.errs = append(c.errs, mapperkit.NewInvalidValueError(property, "cannot be null"))
		return
	}
	c.add(condition, value, kind)
}

// AddCriterionBetween adds a range condition. Both bounds are required.
func (c *Criteria) AddCriterionBetween(condition string, value1, value2 any, property string) {
	_, ok1 := classify(value1)
	_, ok2 := classify(value2)
	if !ok1 || !ok2 {
		c.errs = append(c.errs, mapperkit.NewInvalidValueError(property, "between values cannot be null"))
		return
	}
	c.criteria = append(c.criteria, &Criterion{Condition: condition, Value: value1, SecondValue: value2, BetweenValue: true})
}

// AddCriterionIgnoreNull adds the condition only when the value carries
// something to filter on:
//
//   - nil is skipped;
//   - text is skipped when empty, or, for like conditions, when nothing but
//     "%" wildcards remains;
//   - a list is skipped when empty;
//   - any other value is accepted.
func (c *Criteria) AddCriterionIgnoreNull(condition string, value any, property string) {
	kind, ok := classify(value)
	if !ok {
		return
	}
	switch kind {
	case kindText:
		s := text(value)
		if strings.HasSuffix(strings.ToLower(condition), "like") {
			if strings.ReplaceAll(s, "%", "") == "" {
				return
			}
		} else if s == "" {
			return
		}
	case kindSequence:
		if reflect.Indirect(reflect.ValueOf(value)).Len() == 0 {
			return
		}
	}
	c.add(condition, value, kind)
}

var upper = cases.Upper(language.Und)

// LikeInsensitive adds a like condition with the value upper-cased. The
// condition is expected to upper-case the column, e.g. "upper(name) like".
func (c *Criteria) LikeInsensitive(condition, value, property string) {
	c.AddCriterion(condition, upper.String(value), property)
}

func (c *Criteria) add(condition string, value any, kind valueKind) {
	cr := &Criterion{Condition: condition, Value: value}
	if kind == kindSequence {
		cr.ListValue = true
	} else {
		cr.SingleValue = true
	}
	c.criteria = append(c.criteria, cr)
}

// valueKind is the shape of a criterion value.
type valueKind uint8

const (
	kindText valueKind = iota
	kindSequence
	kindOther
)

// classify returns the shape of the value, and false when the value is nil
// or a nil pointer. Pointers are classified by their element. Byte slices
// are values, not lists.
func classify(v any) (valueKind, bool) {
	switch v := v.(type) {
	case nil:
		return 0, false
	case string:
		return kindText, true
	case []byte:
		return kindOther, v != nil
	case decimal.Decimal:
		return kindOther, true
	case *decimal.Decimal:
		return kindOther, v != nil
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return 0, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String:
		return kindText, true
	case reflect.Slice:
		if rv.IsNil() {
			return 0, false
		}
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return kindOther, true
		}
		return kindSequence, true
	case reflect.Array:
		return kindSequence, true
	default:
		return kindOther, true
	}
}

func text(v any) string {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	return rv.String()
}
