package gen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Generator runs the enabled synthesizers over a set of tables.
//
// Architecture:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                        Generator                            │
//	│  (validation once per run, bounded per-table fan-out)       │
//	└─────────────────────────┬───────────────────────────────────┘
//	                          │ one Table.Clone() per worker
//	                          ▼
//	┌─────────────────────────────────────────────────────────────┐
//	│                       Synthesizer                           │
//	│  (+ CriteriaSynthesizer, ModelSynthesizer when implemented) │
//	└─────────────────────────┬───────────────────────────────────┘
//	                          │ fills
//	                          ▼
//	               Unit{Mapper, Example, Criteria, Model, Document}
type Generator struct {
	config   *Config
	flags    Flags
	runID    string
	warnings []string
	log      *slog.Logger

	synths []Synthesizer
}

// NewGenerator validates the configuration and the given synthesizers.
// Synthesizers whose feature is disabled, or whose validation fails, are
// left out of the run; their problems are reported as warnings.
func NewGenerator(c *Config, synths ...Synthesizer) (*Generator, error) {
	if c == nil {
		return nil, NewConfigError("Config", nil, "missing configuration")
	}
	g := &Generator{
		config: c,
		runID:  uuid.NewString(),
	}
	g.log = c.logger().With("run", g.runID)
	g.flags, g.warnings = ValidateFlags(c)
	for _, s := range synths {
		enabled, err := c.FeatureEnabled(s.Name())
		// Synthesizers outside the built-in feature set always run.
		if err != nil {
			enabled = true
		}
		if !enabled {
			g.log.Debug("synthesizer disabled", "name", s.Name())
			continue
		}
		warnings, err := s.Validate(c, g.flags)
		g.warnings = append(g.warnings, warnings...)
		if err != nil {
			g.warnings = append(g.warnings, fmt.Sprintf("%s: disabled: %v", s.Name(), err))
			continue
		}
		g.synths = append(g.synths, s)
	}
	for _, w := range g.warnings {
		g.log.Warn(w)
	}
	return g, nil
}

// Flags returns the validated run-wide flags.
func (g *Generator) Flags() Flags { return g.flags }

// RunID returns the id of the generation run.
func (g *Generator) RunID() string { return g.runID }

// Warnings returns the validation warnings of the run.
func (g *Generator) Warnings() []string { return g.warnings }

// Synthesizers returns the names of the synthesizers that take part in the run.
func (g *Generator) Synthesizers() []string {
	names := make([]string, len(g.synths))
	for i, s := range g.synths {
		names[i] = s.Name()
	}
	return names
}

// Unit synthesizes the unit of a single table on the calling goroutine.
func (g *Generator) Unit(t *Table) (*Unit, error) {
	if t == nil || t.Name == "" {
		return nil, NewSchemaError("", "", "table name cannot be empty", nil)
	}
	if t.Domain == "" {
		return nil, NewSchemaError(t.Name, "", "domain name cannot be empty", nil)
	}
	u := NewUnit(t, g.flags)
	for _, s := range g.synths {
		if err := s.Synthesize(u); err != nil {
			return nil, g.wrap(s, t, err)
		}
		if cs, ok := s.(CriteriaSynthesizer); ok {
			if err := cs.SynthesizeCriteria(u); err != nil {
				return nil, g.wrap(s, t, err)
			}
		}
		if ms, ok := s.(ModelSynthesizer); ok {
			if err := ms.SynthesizeModel(u); err != nil {
				return nil, g.wrap(s, t, err)
			}
		}
	}
	for _, w := range u.Warnings {
		g.log.Warn(w, "table", t.Name)
	}
	return u, nil
}

// Generate synthesizes the units of all tables. Tables are processed in
// parallel, bounded by the configured number of workers, and every worker
// operates on its own clone of the table. Units are returned in table order.
func (g *Generator) Generate(ctx context.Context, tables []*Table) ([]*Unit, error) {
	units := make([]*Unit, len(tables))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.config.workers())
	for i, t := range tables {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			if t == nil {
				return NewSchemaError("", "", fmt.Sprintf("table #%d is nil", i), nil)
			}
			u, err := g.Unit(t.Clone())
			if err != nil {
				return err
			}
			g.log.Debug("table synthesized",
				"table", t.Name,
				"statements", len(u.Document.Statements),
				"methods", len(u.Mapper.Methods),
			)
			units[i] = u
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return units, nil
}

func (g *Generator) wrap(s Synthesizer, t *Table, err error) error {
	var gerr *GenerationError
	if errors.As(err, &gerr) && gerr.Table != "" {
		return err
	}
	return NewGenerationError("synthesize", t.Name, s.Name(), err)
}
