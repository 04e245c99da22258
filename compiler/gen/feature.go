package gen

var (
	// FeatureInsertBatch provides a feature-flag for the batch insert statements.
	FeatureInsertBatch = Feature{
		Name:        "insertBatch",
		Stage:       Stable,
		Default:     true,
		Description: "Generates insertBatch and insertBatchSelective for multi-row inserts",
	}

	// FeatureUpsert provides a feature-flag for the insert-or-update statements.
	// The example-scoped variants additionally need allowMultiQueries.
	FeatureUpsert = Feature{
		Name:        "upsert",
		Stage:       Stable,
		Default:     true,
		Description: "Generates upsert statements using ON DUPLICATE KEY UPDATE (MySQL only)",
	}

	// FeatureUpdateIncrements provides a feature-flag for the incremental update statements.
	FeatureUpdateIncrements = Feature{
		Name:        "updateIncrements",
		Stage:       Stable,
		Default:     true,
		Description: "Generates selective updates that add to numeric columns instead of overwriting them",
	}

	// FeatureSelectShowField provides a feature-flag for projected selects.
	FeatureSelectShowField = Feature{
		Name:        "selectShowField",
		Stage:       Stable,
		Default:     true,
		Description: "Generates selects whose column list is chosen by the caller",
	}

	// FeatureSelectOne provides a feature-flag for single-row example selects.
	FeatureSelectOne = Feature{
		Name:        "selectOne",
		Stage:       Stable,
		Default:     true,
		Description: "Generates selectOneByExample with limit 1",
	}

	// FeatureCriterionIgnoreNull provides a feature-flag for the null-tolerant criteria methods.
	FeatureCriterionIgnoreNull = Feature{
		Name:        "criterionIgnoreNull",
		Stage:       Stable,
		Default:     true,
		Description: "Generates IgnoreNull and LikeInsensitive criteria methods and the order-by sanitizer",
	}

	// FeatureFieldConstants provides a feature-flag for column name constants on the model.
	FeatureFieldConstants = Feature{
		Name:        "fieldConstants",
		Stage:       Beta,
		Default:     false,
		Description: "Generates one constant per column holding its escaped name",
	}

	// AllFeatures holds a list of all feature-flags.
	AllFeatures = []Feature{
		FeatureInsertBatch,
		FeatureUpsert,
		FeatureUpdateIncrements,
		FeatureSelectShowField,
		FeatureSelectOne,
		FeatureCriterionIgnoreNull,
		FeatureFieldConstants,
	}
)

// FeatureStage describes the stage of the codegen feature.
type FeatureStage int

const (
	_ FeatureStage = iota

	// Experimental features are in development, and actively being tested.
	Experimental

	// Alpha features are features whose initial development was finished, but
	// we expect breaking-changes to their output.
	Alpha

	// Beta features are Alpha features whose output is not expected to change.
	Beta

	// Stable features are Beta features that were running for a while.
	Stable
)

// A Feature of the codegen. Every synthesizer is guarded by the feature of
// the same name.
type Feature struct {
	// Name of the feature.
	Name string

	// Stage of the feature.
	Stage FeatureStage

	// Default values indicates if this feature is enabled by default.
	Default bool

	// A Description of this feature.
	Description string
}

// FeatureByName returns the feature with the given name.
func FeatureByName(name string) (Feature, bool) {
	for _, f := range AllFeatures {
		if f.Name == name {
			return f, true
		}
	}
	return Feature{}, false
}
