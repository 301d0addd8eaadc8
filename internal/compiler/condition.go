package compiler

import (
	"fmt"
	"strings"

	"github.com/dcruz/phasegen/internal/ir"
)

// Expression keywords. Split happens on the spaced forms so tag characters
// can never be mistaken for operators.
const (
	orSeparator  = " OR "
	andSeparator = " AND "
)

// defaultLabel is the expression a spec carries when no custom logic was
// entered: a bare reference to its first literal.
const defaultLabel = "X1"

// Warning reports a label referenced by an expression that has no matching
// literal definition. The literal is omitted from the compiled clause, which
// weakens that AND chain; surfacing the warning lets callers log it instead
// of silently shipping a vacuous term.
type Warning struct {
	Label      string `json:"label"`
	Expression string `json:"expression"`
}

func (w Warning) String() string {
	return fmt.Sprintf("label %s has no literal definition in %q", w.Label, w.Expression)
}

// Compile translates a condition spec into clause IR.
//
// A nil spec, or one without literals, compiles to the fallback gate: a
// single literal over fallbackTag (normally the owning step's activity flag).
// The bare default expression with exactly one literal short-circuits to a
// single-literal clause. Everything else splits once on OR and once on AND,
// mirroring the one-level grammar.
func Compile(spec *ir.ConditionSpec, fallbackTag string) (ir.Clause, []Warning) {
	if spec == nil || len(spec.Literals) == 0 {
		return ir.DefaultClause(fallbackTag), nil
	}

	byLabel := make(map[string]ir.LiteralRef, len(spec.Literals))
	for _, lit := range spec.Literals {
		byLabel[lit.Label] = ir.LiteralRef{Tag: lit.Tag, Negated: lit.Negated}
	}

	expr := strings.TrimSpace(spec.Expression)
	if expr == defaultLabel && len(spec.Literals) == 1 {
		if ref, ok := byLabel[defaultLabel]; ok {
			return ir.Clause{Disjuncts: [][]ir.LiteralRef{{ref}}}, nil
		}
		return ir.DefaultClause(fallbackTag), []Warning{{Label: defaultLabel, Expression: expr}}
	}

	var warnings []Warning
	var disjuncts [][]ir.LiteralRef
	for _, part := range strings.Split(expr, orSeparator) {
		var literals []ir.LiteralRef
		for _, label := range splitConjunction(part) {
			ref, ok := byLabel[label]
			if !ok {
				warnings = append(warnings, Warning{Label: label, Expression: expr})
				continue
			}
			literals = append(literals, ref)
		}
		disjuncts = append(disjuncts, literals)
	}

	return ir.Clause{Disjuncts: disjuncts}, warnings
}

// splitConjunction breaks one disjunct into its labels, stripping the
// enclosing parentheses from each term.
func splitConjunction(part string) []string {
	stripped := strings.NewReplacer("(", "", ")", "").Replace(part)
	terms := strings.Split(stripped, andSeparator)
	labels := make([]string, 0, len(terms))
	for _, term := range terms {
		labels = append(labels, strings.TrimSpace(term))
	}
	return labels
}
