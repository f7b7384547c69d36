// Package store implements the Sample Store: the shared table of parameter
// names together with every chain's draw columns.
//
// The name table is shared by all chains; position i of the table refers to
// the same semantic column in every chain. All chains carry the same number
// of columns and the same per-column draw count (warmup plus kept draws).
// Pipeline stages treat the store as immutable and work on a Clone, so the
// raw backend output survives a failed transform untouched.
package store

import (
	"fmt"
	"slices"

	"github.com/statforge/drawset/errs"
)

// Meta is the per-column metadata carried through renames and permutations.
type Meta struct {
	// Constrained marks columns already on their constrained scale. Columns
	// synthesized by the derive step set this; backend temporaries do not.
	Constrained bool
}

// Chain holds one sampling chain's draw columns. Column i corresponds to
// position i of the store's name table.
type Chain struct {
	// Warmup is the number of leading draws that belong to the discarded
	// warmup phase.
	Warmup  int
	columns [][]float64
}

// Columns returns the number of columns in the chain.
func (c *Chain) Columns() int {
	return len(c.columns)
}

// Draws returns the per-column draw count (warmup + kept), or 0 for an empty
// chain.
func (c *Chain) Draws() int {
	if len(c.columns) == 0 {
		return 0
	}

	return len(c.columns[0])
}

// Store is the in-memory table of named draw columns, replicated per chain.
type Store struct {
	names  []string
	meta   []Meta
	chains []Chain

	// dims records the registered dimension of multi-column parameters,
	// keyed by parameter name.
	dims map[string][]int

	index map[string]int // lazy name → position lookup
}

// FromDraws builds a store from a name table and per-chain column sets.
// Every chain must provide len(names) columns of identical length, and every
// column must be at least warmup draws long.
func FromDraws(names []string, warmup int, chains ...[][]float64) (*Store, error) {
	if len(names) == 0 || len(chains) == 0 {
		return nil, errs.ErrEmptyStore
	}

	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if name == "" {
			return nil, errs.ErrInvalidName
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("%w: %q", errs.ErrDuplicateName, name)
		}
		seen[name] = struct{}{}
	}

	draws := -1
	st := &Store{
		names:  slices.Clone(names),
		meta:   make([]Meta, len(names)),
		chains: make([]Chain, 0, len(chains)),
		dims:   make(map[string][]int),
	}
	for ci, cols := range chains {
		if len(cols) != len(names) {
			return nil, fmt.Errorf("%w: chain %d has %d columns, name table has %d",
				errs.ErrColumnCountMismatch, ci, len(cols), len(names))
		}
		copied := make([][]float64, len(cols))
		for i, col := range cols {
			if draws < 0 {
				draws = len(col)
			}
			if len(col) != draws {
				return nil, fmt.Errorf("%w: chain %d column %d has %d draws, expected %d",
					errs.ErrColumnLengthMismatch, ci, i, len(col), draws)
			}
			copied[i] = slices.Clone(col)
		}
		st.chains = append(st.chains, Chain{Warmup: warmup, columns: copied})
	}
	if draws < warmup {
		return nil, fmt.Errorf("%w: %d draws but %d warmup", errs.ErrColumnLengthMismatch, draws, warmup)
	}

	return st, nil
}

// Clone returns a deep copy of the store.
func (s *Store) Clone() *Store {
	out := &Store{
		names:  slices.Clone(s.names),
		meta:   slices.Clone(s.meta),
		chains: make([]Chain, len(s.chains)),
		dims:   make(map[string][]int, len(s.dims)),
	}
	for ci := range s.chains {
		cols := make([][]float64, len(s.chains[ci].columns))
		for i, col := range s.chains[ci].columns {
			cols[i] = slices.Clone(col)
		}
		out.chains[ci] = Chain{Warmup: s.chains[ci].Warmup, columns: cols}
	}
	for name, dim := range s.dims {
		out.dims[name] = slices.Clone(dim)
	}

	return out
}

// Names returns the name table. The returned slice is owned by the store and
// must not be modified.
func (s *Store) Names() []string {
	return s.names
}

// Len returns the number of columns.
func (s *Store) Len() int {
	return len(s.names)
}

// NumChains returns the number of chains.
func (s *Store) NumChains() int {
	return len(s.chains)
}

// Draws returns the per-column draw count shared by all chains.
func (s *Store) Draws() int {
	if len(s.chains) == 0 {
		return 0
	}

	return s.chains[0].Draws()
}

// Warmup returns chain ci's warmup draw count.
func (s *Store) Warmup(ci int) int {
	return s.chains[ci].Warmup
}

// Column returns column i of chain ci. The slice is owned by the store.
func (s *Store) Column(ci, i int) []float64 {
	return s.chains[ci].columns[i]
}

// Meta returns the metadata of column i.
func (s *Store) Meta(i int) Meta {
	return s.meta[i]
}

// SetMeta replaces the metadata of column i.
func (s *Store) SetMeta(i int, m Meta) {
	s.meta[i] = m
}

// Index returns the position of name in the name table.
func (s *Store) Index(name string) (int, bool) {
	if s.index == nil {
		s.index = make(map[string]int, len(s.names))
		for i, n := range s.names {
			s.index[n] = i
		}
	}
	i, ok := s.index[name]

	return i, ok
}

// Rename replaces the name at position i. The name table stays unique.
func (s *Store) Rename(i int, name string) error {
	if name == "" {
		return errs.ErrInvalidName
	}
	if j, ok := s.Index(name); ok && j != i {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateName, name)
	}

	delete(s.index, s.names[i])
	s.names[i] = name
	s.index[name] = i

	return nil
}

// RegisterDim records the dimension of a (possibly multi-column) parameter
// for downstream bookkeeping.
func (s *Store) RegisterDim(name string, dim []int) {
	s.dims[name] = slices.Clone(dim)
}

// Dim returns the registered dimension of a parameter, or nil.
func (s *Store) Dim(name string) []int {
	return s.dims[name]
}

// Permute reorders the name table, metadata and every chain's columns by the
// given permutation: position i of the result is position perm[i] of the
// input.
func (s *Store) Permute(perm []int) error {
	if !validPermutation(perm, len(s.names)) {
		return errs.ErrInvalidPermutation
	}

	s.names = applyPermutation(s.names, perm)
	s.meta = applyPermutation(s.meta, perm)
	for ci := range s.chains {
		s.chains[ci].columns = applyPermutation(s.chains[ci].columns, perm)
	}
	s.index = nil

	return nil
}

// PermuteValues reorders the values of the given columns relative to each
// other, identically in every chain: the column at positions[i] receives the
// values previously held at positions[perm[i]]. Names and metadata stay put.
func (s *Store) PermuteValues(positions, perm []int) error {
	if !validPermutation(perm, len(positions)) {
		return errs.ErrInvalidPermutation
	}

	for ci := range s.chains {
		cols := s.chains[ci].columns
		selected := make([][]float64, len(positions))
		for i, p := range positions {
			selected[i] = cols[p]
		}
		for i, p := range positions {
			cols[p] = selected[perm[i]]
		}
	}

	return nil
}

// AppendColumn appends a brand-new column to the name table and to every
// chain. Each chain's values must already include the warmup-aligned prefix,
// so their length equals the chain's existing draw count.
func (s *Store) AppendColumn(name string, meta Meta, perChain [][]float64) error {
	if name == "" {
		return errs.ErrInvalidName
	}
	if _, ok := s.Index(name); ok {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateName, name)
	}
	if len(perChain) != len(s.chains) {
		return fmt.Errorf("%w: %d chains of values for %d chains",
			errs.ErrChainLengthMismatch, len(perChain), len(s.chains))
	}
	for ci, col := range perChain {
		if len(col) != s.chains[ci].Draws() {
			return fmt.Errorf("%w: chain %d column has %d draws, expected %d",
				errs.ErrColumnLengthMismatch, ci, len(col), s.chains[ci].Draws())
		}
	}

	s.names = append(s.names, name)
	s.meta = append(s.meta, meta)
	for ci, col := range perChain {
		s.chains[ci].columns = append(s.chains[ci].columns, slices.Clone(col))
	}
	if s.index != nil {
		s.index[name] = len(s.names) - 1
	}

	return nil
}

// CheckConsistent verifies the store invariants: unique names, matching
// column counts and identical per-column draw counts across chains.
func (s *Store) CheckConsistent() error {
	seen := make(map[string]struct{}, len(s.names))
	for _, name := range s.names {
		if _, dup := seen[name]; dup {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateName, name)
		}
		seen[name] = struct{}{}
	}
	if len(s.meta) != len(s.names) {
		return errs.ErrColumnCountMismatch
	}

	draws := s.Draws()
	for ci := range s.chains {
		if s.chains[ci].Columns() != len(s.names) {
			return fmt.Errorf("%w: chain %d", errs.ErrColumnCountMismatch, ci)
		}
		for i, col := range s.chains[ci].columns {
			if len(col) != draws {
				return fmt.Errorf("%w: chain %d column %d", errs.ErrColumnLengthMismatch, ci, i)
			}
		}
	}

	return nil
}

func validPermutation(perm []int, n int) bool {
	if len(perm) != n {
		return false
	}
	seen := make([]bool, n)
	for _, p := range perm {
		if p < 0 || p >= n || seen[p] {
			return false
		}
		seen[p] = true
	}

	return true
}

func applyPermutation[T any](in []T, perm []int) []T {
	out := make([]T, len(in))
	for i, p := range perm {
		out[i] = in[p]
	}

	return out
}
