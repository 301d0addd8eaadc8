package codegen

import (
	"github.com/dcruz/phasegen/internal/config"
	"github.com/dcruz/phasegen/internal/ir"
	"github.com/dcruz/phasegen/internal/rules"
)

// ActivationPreview is one resolved activation as shown before generation.
type ActivationPreview struct {
	Tag         string `json:"tag"`
	ResolvedTag string `json:"resolved_tag"`
	DeviceClass int    `json:"device_class"`
	DeviceType  string `json:"device_type,omitempty"`
	Qualifier   int    `json:"qualifier"`
}

// StepPreview is one step and its surviving activations.
type StepPreview struct {
	Index       int                 `json:"step_index"`
	Name        string              `json:"step_name"`
	Activations []ActivationPreview `json:"activations"`
}

// Summary is the result of a dry resolution pass: what a generation over
// this input would emit, without rendering anything.
type Summary struct {
	Steps            []StepPreview `json:"steps"`
	TotalSteps       int           `json:"total_steps"`
	TotalActivations int           `json:"total_activations"`
}

// Preview resolves the activation sequence without rendering. Steps whose
// activations are all skipped or tag-less are omitted, matching what the
// selection UI needs to show.
func Preview(activations []ir.Activation, tables config.Tables) Summary {
	summary := Summary{Steps: []StepPreview{}}
	for _, group := range ir.GroupSteps(activations) {
		step := StepPreview{
			Index:       group.Index,
			Name:        group.Name,
			Activations: []ActivationPreview{},
		}
		for _, act := range group.Activations {
			rule := rules.Resolve(tables, act.DeviceClass, act.Qualifier)
			if rule.Skip {
				continue
			}
			step.Activations = append(step.Activations, ActivationPreview{
				Tag:         act.Tag,
				ResolvedTag: act.Tag + rule.Suffix,
				DeviceClass: act.DeviceClass,
				DeviceType:  tables.DeviceTypeNames[act.DeviceClass],
				Qualifier:   act.Qualifier,
			})
		}
		if len(step.Activations) == 0 {
			continue
		}
		summary.Steps = append(summary.Steps, step)
		summary.TotalActivations += len(step.Activations)
	}
	summary.TotalSteps = len(summary.Steps)
	return summary
}
