// Package siemens renders step activations as SCL regions for TIA Portal.
//
// Each step becomes one REGION gated by its symbolic activity flag
// (#MyStepFlag.StepNNN). Activations are boolean assignments whose right-hand
// side is TRUE unless a custom condition exists for the resolved tag, in
// which case the original expression text is kept and its labels substituted
// with the literal tags. The platform accepts AND/OR keywords directly, so
// no structural transform of the expression is needed.
package siemens
