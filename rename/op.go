// Package rename reconstructs human-meaningful parameter names on the flat
// names generated by the sampling backend.
//
// BuildPlan walks the model description bottom-up and emits an ordered
// sequence of rename operations; Apply executes a plan against a sample
// store. Building never touches the store, so a plan can be inspected or
// discarded without side effects.
package rename

import (
	"strconv"
	"strings"

	"github.com/statforge/drawset/match"
)

// Op is a single match-and-replace instruction over store columns.
type Op struct {
	// Mask selects the target positions in the name table.
	Mask match.Mask

	// Names holds the replacement names for the matched positions in order.
	// The contract is len(Names) == Mask.Count(); on violation only the
	// first len(Names) matched positions are renamed (see Apply).
	Names []string

	// Sort optionally permutes the values of the matched subset relative to
	// each other before renaming: target slot i receives the values of
	// matched slot Sort[i]. Positions in the whole table do not move.
	Sort []int
}

// Plan is an ordered list of rename operations. Operations whose mask
// selects nothing are no-ops for models lacking the corresponding feature.
type Plan []Op

// indexed returns the flat prefix of a class instance, e.g. "b_1".
func indexed(class string, k int) string {
	return class + "_" + strconv.Itoa(k)
}

// sanitize maps whitespace in user-supplied labels to a filler character so
// the resulting names stay single tokens.
func sanitize(label string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n':
			return '.'
		default:
			return r
		}
	}, label)
}

// dparPrefix converts a component suffix like "_sigma" into the coefficient
// prefix used inside group-level names, e.g. "sigma_".
func dparPrefix(sfx string) string {
	if sfx == "" {
		return ""
	}

	return strings.TrimPrefix(sfx, "_") + "_"
}
