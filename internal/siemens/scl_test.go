package siemens

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"

	"github.com/dcruz/phasegen/internal/config"
	"github.com/dcruz/phasegen/internal/ir"
	"github.com/dcruz/phasegen/internal/testutil"
)

func TestGenerateSCL_Golden(t *testing.T) {
	groups := ir.GroupSteps(testutil.PhaseFixture())
	out := GenerateSCL(groups, testutil.PhaseConditions(), config.Default(), testutil.GenerationTime)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "scl", []byte(out))
}

func TestGenerateSCL_DefaultAssignmentIsTrue(t *testing.T) {
	groups := ir.GroupSteps([]ir.Activation{
		{StepIndex: 4, StepName: "Heat", DeviceClass: 0, Qualifier: 0, Tag: "V4001"},
	})
	out := GenerateSCL(groups, nil, config.Default(), testutil.GenerationTime)

	assert.Contains(t, out, "IF #MyStepFlag.Step004 THEN")
	assert.Contains(t, out, `"V4001".activate := TRUE;`)
}

func TestBuildCondition_LabelSubstitution(t *testing.T) {
	tests := []struct {
		name string
		spec ir.ConditionSpec
		want string
	}{
		{
			name: "longest numeric suffix substituted first",
			spec: ir.ConditionSpec{
				Expression: "X1 AND X10",
				Literals: []ir.Literal{
					{Label: "X1", Tag: "A.On"},
					{Label: "X10", Tag: "B.On"},
				},
			},
			want: "A.On AND B.On",
		},
		{
			name: "negated literal renders NOT",
			spec: ir.ConditionSpec{
				Expression: "X1 OR X2",
				Literals: []ir.Literal{
					{Label: "X1", Tag: "A.On"},
					{Label: "X2", Tag: "B.High", Negated: true},
				},
			},
			want: "A.On OR NOT B.High",
		},
		{
			name: "step flag tags rewritten",
			spec: ir.ConditionSpec{
				Expression: "X1",
				Literals:   []ir.Literal{{Label: "X1", Tag: "StepFlag[12].Flag"}},
			},
			want: "#MyStepFlag.Step012",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, buildCondition(&tt.spec, 1))
		})
	}
}
