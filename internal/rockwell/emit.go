package rockwell

import (
	"github.com/dcruz/phasegen/internal/compiler"
	"github.com/dcruz/phasegen/internal/config"
	"github.com/dcruz/phasegen/internal/ir"
	"github.com/dcruz/phasegen/internal/rules"
)

// bannerWidth is the width of the separator rules in banners and step
// heading comments.
const bannerWidth = 80

// resolveTag applies the activation rules and returns the fully suffixed
// output tag. ok is false when the activation is skipped.
func resolveTag(tables config.Tables, act ir.Activation) (string, bool) {
	rule := rules.Resolve(tables, act.DeviceClass, act.Qualifier)
	if rule.Skip {
		return "", false
	}
	return act.Tag + rule.Suffix, true
}

// conditionClause compiles the gate for one resolved activation: the custom
// condition when one exists for the tag, otherwise the step activity flag.
func conditionClause(conds ir.ConditionMap, stepIndex int, tag string) ir.Clause {
	clause, _ := compiler.Compile(conds.Lookup(stepIndex, tag), ir.StepFlagTag(stepIndex))
	return clause
}

// CountRungs returns the number of rungs a generation over these groups will
// emit: one heading rung per step plus one rung per surviving activation.
//
// This is the same resolution walk the renderers perform, run dry, so the
// L5X TargetCount header always matches the rendered body.
func CountRungs(groups []ir.StepGroup, tables config.Tables) int {
	count := 0
	for _, group := range groups {
		count++ // step heading rung
		for _, act := range group.Activations {
			if _, ok := resolveTag(tables, act); ok {
				count++
			}
		}
	}
	return count
}
