package rename

import (
	"github.com/statforge/drawset/match"
)

// PriorOps mirrors a rename onto the prior-tracking twins of a class.
//
// Prior columns mirror flat names under a "prior_" prefix and are
// disambiguated by a numeric suffix when the same class name is reused
// across model components.
//
// In vector form, one twin exists per label and its digit suffix is replaced
// positionally: prior_<class>_<d> becomes prior_<newClass>_<labels[d-1]>.
// In scalar form, the numeric disambiguator is extracted from whatever twin
// is present, looked up in the label list, and substituted into the class
// name itself. Twins whose digit already resolves to the current spelling
// are skipped to avoid no-op churn.
//
// At most one operation is emitted per matched group; nil when nothing
// matched.
func PriorOps(names []string, class string, labels []string, newClass string, vector bool) []Op {
	if newClass == "" {
		newClass = class
	}

	mask := make(match.Mask, len(names))
	var replacements []string

	if vector {
		// Replacements must line up with ascending matched positions, not
		// with label order.
		targets := make(map[int]string)
		for d, label := range labels {
			flat := "prior_" + indexed(class, d+1)
			target := "prior_" + newClass + "_" + label
			for i, name := range names {
				if name == flat && name != target {
					mask[i] = true
					targets[i] = target

					break
				}
			}
		}
		for _, i := range mask.Positions() {
			replacements = append(replacements, targets[i])
		}
	} else {
		prefix := "prior_" + class
		for i, name := range names {
			k, ok := match.Index(name, prefix)
			if !ok || k < 1 || k > len(labels) || labels[k-1] == "" {
				continue
			}
			target := "prior_" + newClass + "_" + labels[k-1]
			if name == target {
				continue
			}
			mask[i] = true
			replacements = append(replacements, target)
		}
	}

	if len(replacements) == 0 {
		return nil
	}

	return []Op{{Mask: mask, Names: replacements}}
}

// priorExact emits an exact-name prior rename, used for classes whose twin
// is a single scalar column (thresholds, baselines).
func priorExact(names []string, old, target string) []Op {
	if old == target {
		return nil
	}

	mask := make(match.Mask, len(names))
	found := false
	for i, name := range names {
		if name == old {
			mask[i] = true
			found = true

			break
		}
	}
	if !found {
		return nil
	}

	return []Op{{Mask: mask, Names: []string{target}}}
}
