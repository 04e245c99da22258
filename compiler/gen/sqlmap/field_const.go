package sqlmap

import (
	"github.com/syssam/mapperkit/compiler/gen"
)

// FieldConstants synthesizes one constant per column on the record type,
// holding the escaped column name.
type FieldConstants struct{ base }

// Name implements gen.Synthesizer.
func (*FieldConstants) Name() string { return gen.FeatureFieldConstants.Name }

// SynthesizeModel implements gen.ModelSynthesizer.
func (*FieldConstants) SynthesizeModel(u *gen.Unit) error {
	t := u.Table
	for _, c := range t.AllColumns() {
		u.Model.AddConstant(&gen.Constant{
			Name:  "Field" + gen.Pascal(c.Property),
			Value: t.EscapedName(c),
			Doc:   "holds the name of the " + c.Name + " column.",
		})
	}
	return nil
}
