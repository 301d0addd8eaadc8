package siemens

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dcruz/phasegen/internal/config"
	"github.com/dcruz/phasegen/internal/ir"
	"github.com/dcruz/phasegen/internal/rules"
)

// defaultExpression is the bare-label expression a condition spec carries
// when no custom logic was entered; it renders as a plain TRUE assignment.
const defaultExpression = "X1"

// GenerateSCL renders the SCL listing: a comment banner, then one region per
// step. A step without surviving activations still emits its region as an
// empty IF/RETURN guard.
func GenerateSCL(groups []ir.StepGroup, conds ir.ConditionMap, tables config.Tables, generatedAt time.Time) string {
	border := "(* " + strings.Repeat("=", 80) + " *)"
	lines := []string{
		border,
		"(* Generated SCL code *)",
		"(* Date: " + generatedAt.Format("2006-01-02 15:04:05") + " *)",
		border,
		"",
	}

	for _, group := range groups {
		lines = append(lines, fmt.Sprintf("REGION Step %02d - %s", group.Index, group.Name))
		stepFlag := ir.SiemensStepFlag(group.Index)
		lines = append(lines, fmt.Sprintf("    IF %s THEN", stepFlag))

		for _, act := range group.Activations {
			rule := rules.Resolve(tables, act.DeviceClass, act.Qualifier)
			if rule.Skip {
				continue
			}
			// The condition map keys on the unquoted resolved tag; the
			// emitted assignment target quotes the base tag only.
			key := act.Tag + rule.Suffix
			target := `"` + act.Tag + `"` + rule.Suffix

			expr := "TRUE"
			if spec := conds.Lookup(group.Index, key); spec != nil && strings.TrimSpace(spec.Expression) != defaultExpression {
				expr = buildCondition(spec, group.Index)
			}
			lines = append(lines, fmt.Sprintf("        %s := %s;", target, expr))
		}

		lines = append(lines, "        RETURN;", "    END_IF;", "END_REGION ;", "")
	}

	return strings.Join(lines, "\n")
}

// buildCondition substitutes literal tags into the expression text. Negated
// literals render as NOT <tag>; literal tags that are structurally step
// activity flags are rewritten into the symbolic #MyStepFlag form first.
// Labels are substituted longest numeric suffix first so X10 can never be
// clobbered by a substitution of X1.
func buildCondition(spec *ir.ConditionSpec, stepIndex int) string {
	if len(spec.Literals) == 0 {
		return ir.SiemensStepFlag(stepIndex)
	}

	rendered := make(map[string]string, len(spec.Literals))
	for _, lit := range spec.Literals {
		tag := lit.Tag
		if n, ok := ir.ParseStepFlagTag(tag); ok {
			tag = ir.SiemensStepFlag(n)
		}
		if lit.Negated {
			tag = "NOT " + tag
		}
		rendered[lit.Label] = tag
	}

	labels := make([]string, 0, len(rendered))
	for label := range rendered {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		ni, nj := labelNumber(labels[i]), labelNumber(labels[j])
		if ni != nj {
			return ni > nj
		}
		return labels[i] > labels[j]
	})

	result := spec.Expression
	for _, label := range labels {
		result = strings.ReplaceAll(result, label, rendered[label])
	}
	return result
}

// labelNumber extracts the numeric part of a label such as X12. Labels
// without a parsable number sort last.
func labelNumber(label string) int {
	if len(label) < 2 {
		return -1
	}
	n, err := strconv.Atoi(label[1:])
	if err != nil {
		return -1
	}
	return n
}
