// Package match implements positional pattern matching over the flat
// parameter names produced by the sampling backend.
//
// Flat names follow the grammar <class>, <class>_<k>, or <class>_<k>[<j>],
// where <k> is a positional disambiguator assigned by the code generator and
// <j> is a 1-based element index. Prior-tracking twins carry a "prior_"
// prefix. Matching is anchored at the start of the name and requires a hard
// boundary after the class, so class "b" never matches "bs_1".
package match

import "strings"

// Mask is a boolean positional mask over a name table. Position i is true
// when name i matched.
type Mask []bool

// Count returns the number of matched positions.
func (m Mask) Count() int {
	n := 0
	for _, ok := range m {
		if ok {
			n++
		}
	}

	return n
}

// Positions returns the matched positions in ascending order.
func (m Mask) Positions() []int {
	pos := make([]int, 0, m.Count())
	for i, ok := range m {
		if ok {
			pos = append(pos, i)
		}
	}

	return pos
}

// Any reports whether at least one position matched.
func (m Mask) Any() bool {
	for _, ok := range m {
		if ok {
			return true
		}
	}

	return false
}

// Match returns the mask of names belonging to the given class prefix.
//
// A name matches when, after the prefix, it either ends, opens an indexing
// bracket, or continues with an underscore followed by digits (the backend's
// positional disambiguator) and then ends or opens a bracket. Substring
// matches and longer class names sharing the prefix do not match.
func Match(names []string, class string) Mask {
	mask := make(Mask, len(names))
	for i, name := range names {
		mask[i] = matches(name, class)
	}

	return mask
}

func matches(name, class string) bool {
	rest, ok := strings.CutPrefix(name, class)
	if !ok {
		return false
	}
	if rest == "" || rest[0] == '[' {
		return true
	}
	if rest[0] != '_' {
		return false
	}

	rest = rest[1:]
	n := digitRun(rest)
	if n == 0 {
		return false
	}
	rest = rest[n:]

	return rest == "" || rest[0] == '['
}

// Index extracts the positional disambiguator from a flat name of the form
// <class>_<k> or <class>_<k>[...]. The second return is false when the name
// does not belong to the class or carries no disambiguator.
func Index(name, class string) (int, bool) {
	rest, ok := strings.CutPrefix(name, class)
	if !ok || len(rest) < 2 || rest[0] != '_' {
		return 0, false
	}

	rest = rest[1:]
	n := digitRun(rest)
	if n == 0 {
		return 0, false
	}
	if tail := rest[n:]; tail != "" && tail[0] != '[' {
		return 0, false
	}

	k := 0
	for i := 0; i < n; i++ {
		k = k*10 + int(rest[i]-'0')
	}

	return k, true
}

func digitRun(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}

	return i
}
