// Package cli implements the phasegen command tree.
//
// Commands follow one convention: machine output goes to stdout (optionally
// as JSON via --format), diagnostics go to stderr, and errors map to exit
// codes through ExitError.
package cli
