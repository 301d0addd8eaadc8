package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStepFlagTag(t *testing.T) {
	assert.Equal(t, "StepFlag[0].Flag", StepFlagTag(0))
	assert.Equal(t, "StepFlag[12].Flag", StepFlagTag(12))
}

func TestParseStepFlagTag(t *testing.T) {
	tests := []struct {
		tag  string
		step int
		ok   bool
	}{
		{"StepFlag[2].Flag", 2, true},
		{"StepFlag[128].Flag", 128, true},
		{"stepflag[3].flag", 3, true}, // legacy rows are not consistent about casing
		{"StepFlag[2].FlagLE", 0, false},
		{"V2001.activate", 0, false},
		{"StepFlag[].Flag", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		step, ok := ParseStepFlagTag(tt.tag)
		assert.Equal(t, tt.ok, ok, "tag %q", tt.tag)
		if tt.ok {
			assert.Equal(t, tt.step, step, "tag %q", tt.tag)
		}
	}
}

func TestSiemensStepFlag(t *testing.T) {
	assert.Equal(t, "#MyStepFlag.Step002", SiemensStepFlag(2))
	assert.Equal(t, "#MyStepFlag.Step012", SiemensStepFlag(12))
	assert.Equal(t, "#MyStepFlag.Step120", SiemensStepFlag(120))
}
