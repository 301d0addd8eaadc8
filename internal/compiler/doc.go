// Package compiler turns textual precondition expressions into clause IR.
//
// The expression grammar is deliberately tiny: labels X1, X2, ... combined
// with " AND " inside optional parentheses, and at most one level of " OR "
// between those conjunctions. The compiler is a two-pass splitter over that
// fixed vocabulary, not a general boolean parser; deeper nesting is not part
// of the grammar and is not supported.
//
// Compilation never fails. A label that does not resolve to a supplied
// literal is dropped from the clause and reported as a Warning so callers
// can log it.
package compiler
