// Package rockwell renders step activations as Allen-Bradley ladder logic,
// in two forms that share one condition-rendering core:
//
//   - a plaintext listing of ladder mnemonics (XIC/XIO examine instructions,
//     BST/NXB/BND branch markers, OTL output latches), and
//   - a complete L5X partial-import document: the step-flag data type, the
//     128-element StepFlag program tag with per-step comments, and a routine
//     whose rungs carry the same logic in the bracketed L5X text form.
//
// Rung numbering and the document's TargetCount header are derived from one
// shared counting pass that applies the same resolution rules as rendering,
// so the declared and actual rung counts cannot diverge.
package rockwell
