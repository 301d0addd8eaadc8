// Package store is the data-access collaborator: phase instances, their
// steps, and the device activations bound to each step, kept in SQLite.
//
// The read side yields the ordered activation sequence the generator
// consumes. Steps without any bound device are included as rows with an
// empty tag so the emitters can still render their headings.
package store
