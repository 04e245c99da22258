// Package gen synthesizes data-access methods and mapper SQL from table
// metadata.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	Table descriptors (compiler/load)
//	        ↓
//	   Column classifier (Table.Classify)
//	        ↓
//	   Fragment builders (compiler/gen/fragment)
//	        ↓
//	   Synthesizers (compiler/gen/sqlmap)
//	        ↓
//	   Unit{Mapper, Example, Criteria, Model, Document}
//	        ↓
//	   Emitters (compiler/gen/emit) and Writer
//
// # Key Types
//
//   - Table, Column: the introspected table, read-only to synthesizers
//   - Document, Statement: the mapper document of a table
//   - TypeDecl, Method: the member sets of the generated Go types
//   - Unit: everything produced for one table in one pass
//   - Config, Flags: the run configuration and the validated run-wide flags
//
// # Interface Hierarchy
//
//	Synthesizer
//	├── Name() string
//	├── Validate(*Config, Flags) ([]string, error)
//	└── Synthesize(*Unit) error
//
//	CriteriaSynthesizer (optional)
//	└── SynthesizeCriteria(*Unit) error
//
//	ModelSynthesizer (optional)
//	└── SynthesizeModel(*Unit) error
//
// # Error Handling
//
//   - SchemaError: table descriptor errors
//   - ConfigError: configuration errors
//   - GenerationError: synthesis and emission errors, per table
//   - ValidationError: a synthesizer that cannot run under the configuration
//
// Example error handling:
//
//	units, err := g.Generate(ctx, tables)
//	if gen.IsDuplicateStatement(err) {
//	    // two synthesizers produced the same statement id
//	}
package gen
