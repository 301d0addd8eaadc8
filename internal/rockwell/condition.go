package rockwell

import (
	"strings"

	"github.com/dcruz/phasegen/internal/ir"
)

// Ladder mnemonics.
const (
	mnemonicExamineOn  = "XIC" // examine if closed: true when the bit is set
	mnemonicExamineOff = "XIO" // examine if open: true when the bit is clear
	mnemonicLatch      = "OTL"
	mnemonicBranchOpen = "BST"
	mnemonicBranchNext = "NXB"
	mnemonicBranchEnd  = "BND"
)

// RenderCondition renders a compiled clause as a flat mnemonic string.
//
// A single disjunct becomes a plain AND chain: one examine instruction per
// literal, space-joined, no branch markers. Multiple disjuncts become a
// branch stack: BST, the first chain, then NXB before each further chain,
// closed by BND.
func RenderCondition(clause ir.Clause) string {
	if len(clause.Disjuncts) == 0 {
		return ""
	}
	if len(clause.Disjuncts) == 1 {
		return renderChain(clause.Disjuncts[0])
	}

	parts := []string{mnemonicBranchOpen}
	for i, disjunct := range clause.Disjuncts {
		if i > 0 {
			parts = append(parts, mnemonicBranchNext)
		}
		for _, ref := range disjunct {
			parts = append(parts, renderLiteral(ref))
		}
	}
	parts = append(parts, mnemonicBranchEnd)
	return strings.Join(parts, " ")
}

func renderChain(disjunct []ir.LiteralRef) string {
	parts := make([]string, 0, len(disjunct))
	for _, ref := range disjunct {
		parts = append(parts, renderLiteral(ref))
	}
	return strings.Join(parts, " ")
}

func renderLiteral(ref ir.LiteralRef) string {
	if ref.Negated {
		return mnemonicExamineOff + " " + ref.Tag
	}
	return mnemonicExamineOn + " " + ref.Tag
}
