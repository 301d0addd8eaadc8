package rockwell

import (
	"fmt"
	"strings"
	"time"

	"github.com/dcruz/phasegen/internal/config"
	"github.com/dcruz/phasegen/internal/ir"
)

// GenerateText renders the plaintext ladder listing: a banner header, then
// one section per step with a `<condition> OTL <tag>` line per surviving
// activation. Steps appear in ascending index order; activations keep their
// grouped order. A step with no surviving activations still gets its heading.
func GenerateText(groups []ir.StepGroup, conds ir.ConditionMap, tables config.Tables, generatedAt time.Time) string {
	lines := []string{
		strings.Repeat("=", bannerWidth),
		"Generated ladder logic",
		"Date: " + generatedAt.Format("2006-01-02 15:04:05"),
		strings.Repeat("=", bannerWidth),
		"",
	}

	rule := strings.Repeat("-", bannerWidth)
	for _, group := range groups {
		lines = append(lines,
			rule,
			fmt.Sprintf("Step %02d -- %s", group.Index, group.Name),
			rule,
		)
		for _, act := range group.Activations {
			tag, ok := resolveTag(tables, act)
			if !ok {
				continue
			}
			clause := conditionClause(conds, group.Index, tag)
			lines = append(lines, RenderCondition(clause)+" "+mnemonicLatch+" "+tag)
		}
		lines = append(lines, "")
	}

	return strings.Join(lines, "\n")
}
