package ir

import (
	"sort"

	"golang.org/x/text/unicode/norm"
)

// GroupSteps partitions a flat activation sequence into step groups.
//
// Grouping keys on StepIndex. The step name is taken from the first row seen
// for that index and NFC-normalized. Placeholder rows (no tag) establish the
// group but contribute no members, so a step whose rows are all placeholders
// yields a group with an empty Activations slice.
//
// The result is ordered by ascending step index regardless of input order;
// activations within a group preserve input order.
func GroupSteps(activations []Activation) []StepGroup {
	byIndex := make(map[int]*StepGroup)
	for _, act := range activations {
		group, ok := byIndex[act.StepIndex]
		if !ok {
			group = &StepGroup{
				Index: act.StepIndex,
				Name:  norm.NFC.String(act.StepName),
			}
			byIndex[act.StepIndex] = group
		}
		if act.HasTag() {
			group.Activations = append(group.Activations, act)
		}
	}

	groups := make([]StepGroup, 0, len(byIndex))
	for _, group := range byIndex {
		groups = append(groups, *group)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Index < groups[j].Index
	})
	return groups
}
