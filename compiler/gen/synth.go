package gen

// =============================================================================
// Interface Segregation: a synthesizer implements Synthesizer and any of the
// optional member interfaces it needs.
// =============================================================================

// Synthesizer contributes mapper methods and statements for one table.
// Synthesizers are stateless across tables: the output is a pure function of
// the unit's table and flags.
type Synthesizer interface {
	// Name returns the name of the feature guarding the synthesizer.
	Name() string
	// Validate inspects the configuration once per run. Warnings are logged;
	// a non-nil error disables the synthesizer for the run.
	Validate(c *Config, flags Flags) ([]string, error)
	// Synthesize adds mapper methods and their statements to the unit.
	Synthesize(u *Unit) error
}

// CriteriaSynthesizer adds methods to the criteria and example types.
type CriteriaSynthesizer interface {
	SynthesizeCriteria(u *Unit) error
}

// ModelSynthesizer adds members to the record type.
type ModelSynthesizer interface {
	SynthesizeModel(u *Unit) error
}

// Unit is the output of one table in one generation pass: the member sets of
// the generated types and the mapper document. It is owned by the worker
// that builds it and never shared across passes.
type Unit struct {
	Table    *Table
	Flags    Flags
	Mapper   *TypeDecl
	Example  *TypeDecl
	Criteria *TypeDecl
	Model    *TypeDecl
	Document *Document
	Warnings []string
}

// NewUnit returns the unit of t seeded with the base document.
func NewUnit(t *Table, flags Flags) *Unit {
	return &Unit{
		Table:    t,
		Flags:    flags,
		Mapper:   &TypeDecl{Name: t.Mapper()},
		Example:  &TypeDecl{Name: t.Example()},
		Criteria: &TypeDecl{Name: t.Domain + "Criteria"},
		Model:    &TypeDecl{Name: t.Record()},
		Document: BaseDocument(t),
	}
}

// AddStatement adds the statement to the document and the method that calls
// it to the mapper interface. The method is bound to the statement id, so
// both always agree. A duplicate id adds neither.
func (u *Unit) AddStatement(m *Method, s *Statement) error {
	m.Statement = s.ID
	if err := u.Document.AddStatement(s); err != nil {
		return err
	}
	u.Mapper.AddMethod(m)
	return nil
}

// Warn records a generation warning.
func (u *Unit) Warn(msg string) {
	u.Warnings = append(u.Warnings, msg)
}
