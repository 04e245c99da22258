package criteria

import (
	"errors"
	"strings"
)

// Example is a query by example: criteria groups joined by "or", an
// optional order by clause and the distinct flag.
type Example struct {
	ored          []*Criteria
	orderByClause *string
	distinct      bool
}

// Or appends a new criteria group and returns it.
func (e *Example) Or() *Criteria {
	c := &Criteria{}
	e.ored = append(e.ored, c)
	return c
}

// CreateCriteria returns a new criteria group. The first group created is
// also appended to the example; later ones are detached until passed to
// AddOr.
func (e *Example) CreateCriteria() *Criteria {
	c := &Criteria{}
	if len(e.ored) == 0 {
		e.ored = append(e.ored, c)
	}
	return c
}

// AddOr appends a criteria group created by CreateCriteria.
func (e *Example) AddOr(c *Criteria) {
	e.ored = append(e.ored, c)
}

// OredCriteria returns the criteria groups.
func (e *Example) OredCriteria() []*Criteria {
	return e.ored
}

// SetOrderByClause sets the order by clause verbatim.
func (e *Example) SetOrderByClause(clause string) {
	e.orderByClause = &clause
}

// SetOrderByClauseIgnoreNull sets the order by clause unless, once lower
// cased and stripped of every "null", "asc" and "desc" in that order, nothing
// but blanks remains. Tokens are removed as substrings, so "nullasc" is
// ignored too.
func (e *Example) SetOrderByClauseIgnoreNull(clause string) {
	rest := strings.ToLower(clause)
	for _, noise := range []string{"null", "asc", "desc"} {
		rest = strings.ReplaceAll(rest, noise, "")
	}
	if strings.TrimSpace(rest) == "" {
		return
	}
	e.SetOrderByClause(clause)
}

// OrderByClause returns the order by clause and whether it is set.
func (e *Example) OrderByClause() (string, bool) {
	if e.orderByClause == nil {
		return "", false
	}
	return *e.orderByClause, true
}

// SetDistinct sets the distinct flag.
func (e *Example) SetDistinct(distinct bool) {
	e.distinct = distinct
}

// Distinct returns the distinct flag.
func (e *Example) Distinct() bool {
	return e.distinct
}

// Clear resets the example.
func (e *Example) Clear() {
	e.ored = nil
	e.orderByClause = nil
	e.distinct = false
}

// Err returns the errors recorded by the criteria groups.
func (e *Example) Err() error {
	errs := make([]error, 0, len(e.ored))
	for _, c := range e.ored {
		errs = append(errs, c.Err())
	}
	return errors.Join(errs...)
}

// Params returns the example as the named parameters the mapper statements
// bind: oredCriteria, orderByClause and distinct. An unset order by clause
// is nil.
func (e *Example) Params() map[string]any {
	ored := make([]any, len(e.ored))
	for i, c := range e.ored {
		items := make([]any, len(c.criteria))
		for j, cr := range c.criteria {
			items[j] = cr.params()
		}
		ored[i] = map[string]any{
			"valid":    c.Valid(),
			"criteria": items,
		}
	}
	var orderBy any
	if e.orderByClause != nil {
		orderBy = *e.orderByClause
	}
	return map[string]any{
		"oredCriteria":  ored,
		"orderByClause": orderBy,
		"distinct":      e.distinct,
	}
}

func (c *Criterion) params() map[string]any {
	return map[string]any{
		"condition":    c.Condition,
		"value":        c.Value,
		"secondValue":  c.SecondValue,
		"noValue":      c.NoValue,
		"singleValue":  c.SingleValue,
		"betweenValue": c.BetweenValue,
		"listValue":    c.ListValue,
	}
}
