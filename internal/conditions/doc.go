// Package conditions loads per-activation precondition maps from YAML files.
//
// A condition file assigns custom gate expressions to individual resolved
// activation tags, keyed by step index. Anything not listed keeps the default
// gate (the owning step's activity flag).
package conditions
