package rules

import (
	"github.com/dcruz/phasegen/internal/config"
	"github.com/dcruz/phasegen/internal/ir"
)

// qualifier4SkipClasses are the device classes dropped when the qualifier
// code is 4.
var qualifier4SkipClasses = map[int]bool{
	0:  true,
	1:  true,
	2:  true,
	7:  true,
	10: true,
	14: true,
}

// Resolve decides whether an activation is emitted and, if so, which suffix
// its tag receives.
//
// Skip rules are evaluated in order and the first match wins:
//  1. qualifier 3 always skips.
//  2. qualifier 4 skips device classes 0, 1, 2, 7, 10 and 14.
//  3. qualifier 2 skips everything except totalizers (class 14).
//
// A surviving activation gets the suffix configured for its device class.
// Unmapped classes resolve to an empty suffix. Qualifier-dependent entries
// select their special variant only for the qualifier they name (4 on PID
// loops, 2 on totalizers); a qualifier-dependent entry on any other class
// resolves to its other-variant.
func Resolve(tables config.Tables, deviceClass, qualifier int) ir.SuffixRule {
	if qualifier == 3 {
		return ir.SkipActivation()
	}
	if qualifier == 4 && qualifier4SkipClasses[deviceClass] {
		return ir.SkipActivation()
	}
	if qualifier == 2 && deviceClass != config.DeviceClassTotalizer {
		return ir.SkipActivation()
	}

	entry, ok := tables.SuffixRules[deviceClass]
	if !ok {
		return ir.WithSuffix("")
	}
	if entry.ByQualifier == nil {
		return ir.WithSuffix(entry.Plain)
	}

	switch deviceClass {
	case config.DeviceClassPID:
		if qualifier == 4 {
			return ir.WithSuffix(entry.ByQualifier.Special)
		}
		return ir.WithSuffix(entry.ByQualifier.Other)
	case config.DeviceClassTotalizer:
		if qualifier == 2 {
			return ir.WithSuffix(entry.ByQualifier.Special)
		}
		return ir.WithSuffix(entry.ByQualifier.Other)
	default:
		// A variant entry on a class that has no qualifier semantics.
		return ir.WithSuffix(entry.ByQualifier.Other)
	}
}
