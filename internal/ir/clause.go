package ir

// LiteralRef is one compiled literal: a tag examined either directly or
// negated. Labels are resolved away during compilation; only tags remain.
type LiteralRef struct {
	Tag     string `json:"tag"`
	Negated bool   `json:"negated,omitempty"`
}

// Clause is the compiled form of a condition: an ordered sequence of
// disjuncts, each an ordered sequence of literal references. Literals within
// a disjunct are ANDed; disjuncts are ORed. The nesting is exactly one level.
type Clause struct {
	Disjuncts [][]LiteralRef `json:"disjuncts"`
}

// DefaultClause gates an activation by a single non-negated tag, normally
// the owning step's activity flag.
func DefaultClause(tag string) Clause {
	return Clause{Disjuncts: [][]LiteralRef{{{Tag: tag}}}}
}

// SingleLiteral returns the sole literal when the clause is exactly one
// disjunct containing exactly one literal.
func (c Clause) SingleLiteral() (LiteralRef, bool) {
	if len(c.Disjuncts) == 1 && len(c.Disjuncts[0]) == 1 {
		return c.Disjuncts[0][0], true
	}
	return LiteralRef{}, false
}
