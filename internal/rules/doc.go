// Package rules resolves which activations are emitted and what tag suffix
// they receive, given a device-class code and a qualifier code.
//
// Resolution is a pure function over the read-only config tables. It never
// fails: codes absent from the tables degrade to an empty suffix so a single
// unmapped device can never halt a generation run.
package rules
