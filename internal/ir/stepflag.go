package ir

import (
	"fmt"
	"regexp"
	"strconv"
)

// stepFlagPattern matches the Rockwell form of a step activity flag,
// e.g. "StepFlag[12].Flag". Matching is case-insensitive because legacy
// condition rows are not consistent about casing.
var stepFlagPattern = regexp.MustCompile(`(?i)^StepFlag\[(\d+)\]\.Flag$`)

// StepFlagTag returns the Rockwell reference to a step's activity flag.
func StepFlagTag(stepIndex int) string {
	return fmt.Sprintf("StepFlag[%d].Flag", stepIndex)
}

// ParseStepFlagTag reports whether tag is structurally a step activity flag
// reference and, if so, which step it refers to.
func ParseStepFlagTag(tag string) (int, bool) {
	m := stepFlagPattern.FindStringSubmatch(tag)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// SiemensStepFlag returns the Siemens symbolic reference to a step's
// activity flag, e.g. "#MyStepFlag.Step012".
func SiemensStepFlag(stepIndex int) string {
	return fmt.Sprintf("#MyStepFlag.Step%03d", stepIndex)
}
