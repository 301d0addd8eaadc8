package testutil

import "github.com/dcruz/phasegen/internal/ir"

// PhaseFixture is the activation sequence shared by emitter tests: a step
// with two surviving activations (one custom-gated), a placeholder step with
// no activation, and a step carrying one totalizer reset plus one activation
// the resolver skips.
func PhaseFixture() []ir.Activation {
	return []ir.Activation{
		{StepIndex: 2, StepName: "Fill Tank", DeviceClass: 0, Qualifier: 0, Tag: "V2001"},
		{StepIndex: 2, StepName: "Fill Tank", DeviceClass: 8, Qualifier: 4, Tag: "PIC2001"},
		{StepIndex: 3, StepName: "Drain"},
		{StepIndex: 5, StepName: "Agitate", DeviceClass: 14, Qualifier: 2, Tag: "FQ2001"},
		{StepIndex: 5, StepName: "Agitate", DeviceClass: 7, Qualifier: 3, Tag: "DO5001"},
	}
}

// PhaseConditions gates the fixture's first valve on a branch condition that
// mixes a step flag, a negated literal, and a plain literal.
func PhaseConditions() ir.ConditionMap {
	return ir.ConditionMap{
		2: {
			"V2001.activate": {
				Expression: "(X1 AND X2) OR X3",
				Literals: []ir.Literal{
					{Label: "X1", Tag: "StepFlag[2].Flag"},
					{Label: "X2", Tag: "LT2001.High", Negated: true},
					{Label: "X3", Tag: "HS2001.Manual"},
				},
			},
		},
	}
}
