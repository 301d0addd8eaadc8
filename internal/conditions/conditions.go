package conditions

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dcruz/phasegen/internal/ir"
)

// File is the on-disk shape of a condition map.
type File struct {
	// Steps lists the steps that carry custom conditions. Steps absent from
	// the file keep the default activity-flag gate for all activations.
	Steps []StepConditions `yaml:"steps"`
}

// StepConditions holds the custom conditions for one step.
type StepConditions struct {
	// Step is the step index the conditions apply to.
	Step int `yaml:"step"`

	// Activations maps fully suffixed tags to their condition. The tag must
	// match the resolved tag exactly, suffix included.
	Activations []TagCondition `yaml:"activations"`
}

// TagCondition is one custom gate: the resolved tag it guards, the
// expression over labels X1, X2, ..., and the literal each label stands for.
type TagCondition struct {
	// Tag is the fully suffixed output tag, e.g. "V2001.activate".
	Tag string `yaml:"tag"`

	// Expression is the gate formula, e.g. "(X1 AND X2) OR X3".
	// Empty defaults to "X1".
	Expression string `yaml:"expression"`

	// Literals define the labels used by Expression.
	Literals []ir.Literal `yaml:"literals"`
}

// Load reads and validates a condition file.
func Load(path string) (ir.ConditionMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read conditions %s: %w", path, err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse conditions %s: %w", path, err)
	}

	return file.ConditionMap()
}

// ConditionMap converts the file shape into the lookup form the emitters use.
func (f File) ConditionMap() (ir.ConditionMap, error) {
	conds := make(ir.ConditionMap, len(f.Steps))
	for _, step := range f.Steps {
		byTag, ok := conds[step.Step]
		if !ok {
			byTag = make(map[string]ir.ConditionSpec, len(step.Activations))
			conds[step.Step] = byTag
		}
		for _, tc := range step.Activations {
			if tc.Tag == "" {
				return nil, fmt.Errorf("step %d: condition with empty tag", step.Step)
			}
			expr := tc.Expression
			if expr == "" {
				expr = "X1"
			}
			for _, lit := range tc.Literals {
				if lit.Label == "" {
					return nil, fmt.Errorf("step %d, tag %s: literal with empty label", step.Step, tc.Tag)
				}
			}
			byTag[tc.Tag] = ir.ConditionSpec{Expression: expr, Literals: tc.Literals}
		}
	}
	return conds, nil
}
