// Package order restores the canonical presentation order of a sample
// store's columns.
//
// The backend emits parameters in code-generation order; consumers expect a
// fixed class order (coefficients first, bookkeeping quantities like the
// log-density last). Reordering permutes the name table and every chain's
// columns identically, carrying per-column metadata along.
package order

import (
	"fmt"
	"sort"
	"strings"

	"github.com/statforge/drawset/store"
)

// classPriority is the canonical class order. Classes not listed sort after
// all listed ones, keeping their original relative order.
var classPriority = []string{
	// Population-level coefficients.
	"b", "bs", "bsp", "bcs",
	// Autocorrelation.
	"ar", "ma", "cosy", "car", "sderr",
	// Group-level scales, correlations and degrees of freedom.
	"sd", "cor", "df",
	// Smooth and Gaussian-process hyperparameters.
	"sds", "sdgp", "lscale", "simo",
	// Hierarchical-shrinkage and global-scale classes.
	"hs", "zb", "R2D2",
	// Distributional parameters.
	"sigma", "shape", "nu", "phi", "kappa", "beta", "zi", "hu",
	"zoi", "coi", "bias", "disc", "quantile", "xi", "alpha",
	"delta", "theta", "rescor", "lncor",
	// Intercepts, thresholds and baselines.
	"Intercept", "sbhaz",
	// Latent measurement-error classes.
	"meanme", "sdme", "corrme", "Xme", "Ymi", "tmp",
	// Per-level, per-basis and per-weight draws.
	"r", "s", "zgp",
	// Prior tracking and log densities.
	"prior", "lprior", "lp",
}

var classRank = func() map[string]int {
	m := make(map[string]int, len(classPriority))
	for i, class := range classPriority {
		m[class] = i
	}

	return m
}()

// Class extracts the class prefix of a parameter name: the longest leading
// run before a separator marking a named sub-component ('_' or '[').
func Class(name string) string {
	if i := strings.IndexAny(name, "_["); i >= 0 {
		return name[:i]
	}

	return name
}

// interceptSub reports whether a name carries an intercept-type sub-name:
// an "_Intercept" component after the class prefix. Within a class these
// sort before all other sub-names. The bare threshold class "Intercept" has
// no such component and is not affected.
//
// The check is purely lexical: a user coefficient label that happens to
// contain an "_Intercept" component (e.g. "b_x_Intercept_z") is promoted
// too, indistinguishable from a real intercept at this stage.
func interceptSub(name string) bool {
	if i := strings.IndexByte(name, '['); i >= 0 {
		name = name[:i]
	}

	return strings.HasSuffix(name, "_Intercept") || strings.Contains(name, "_Intercept_")
}

// Reorder returns a copy of the store with columns permuted into the
// canonical class order. Within a class, columns keep their original
// relative order except that intercept-type sub-names move to the front of
// the class. Unknown classes sort last in their original relative order.
func Reorder(st *store.Store) *store.Store {
	names := st.Names()
	perm := Permutation(names)

	out := st.Clone()
	// The permutation is valid by construction.
	if err := out.Permute(perm); err != nil {
		panic(fmt.Sprintf("order: internal permutation error: %v", err))
	}

	return out
}

// Permutation computes the canonical column permutation for a name table:
// position i of the reordered table is position perm[i] of the input.
func Permutation(names []string) []int {
	// Classes in first-appearance order.
	classSeen := make(map[string]int)
	classes := make([]string, 0)
	for _, name := range names {
		class := Class(name)
		if _, ok := classSeen[class]; !ok {
			classSeen[class] = len(classes)
			classes = append(classes, class)
		}
	}

	unknown := len(classPriority)
	rank := func(class string) int {
		if r, ok := classRank[class]; ok {
			return r
		}

		return unknown
	}

	// Stable composite string keys: zero-padded class rank, class
	// appearance, intercept flag and intra-class sequence number. Padding
	// avoids numeric-string comparison artifacts like "10" < "2".
	type keyed struct {
		key string
		pos int
	}
	keys := make([]keyed, len(names))
	classSeq := make(map[string]int)
	for i, name := range names {
		class := Class(name)
		icpt := 1
		if interceptSub(name) {
			icpt = 0
		}
		seq := classSeq[class]
		classSeq[class]++
		keys[i] = keyed{
			key: fmt.Sprintf("%04d_%05d_%d_%06d", rank(class), classSeen[class], icpt, seq),
			pos: i,
		}
	}

	sort.SliceStable(keys, func(a, b int) bool {
		return keys[a].key < keys[b].key
	})

	perm := make([]int, len(names))
	for i, k := range keys {
		perm[i] = k.pos
	}

	return perm
}
