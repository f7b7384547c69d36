package rename

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/statforge/drawset/match"
	"github.com/statforge/drawset/store"
)

func applyStore(t *testing.T) *store.Store {
	t.Helper()

	st, err := store.FromDraws(
		[]string{"b_1[1]", "b_1[2]", "b_1[3]", "lp__"},
		0,
		[][]float64{{1}, {2}, {3}, {4}},
		[][]float64{{10}, {20}, {30}, {40}},
	)
	require.NoError(t, err)

	return st
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	st := applyStore(t)
	plan := Plan{{
		Mask:  match.Match(st.Names(), "b_1"),
		Names: []string{"b_Intercept", "b_x1", "b_x2"},
	}}

	out := Apply(st, plan)

	require.Equal(t, []string{"b_1[1]", "b_1[2]", "b_1[3]", "lp__"}, st.Names())
	require.Equal(t, []string{"b_Intercept", "b_x1", "b_x2", "lp__"}, out.Names())
}

func TestApply_MatchedValuesUnchanged(t *testing.T) {
	st := applyStore(t)
	plan := Plan{{
		Mask:  match.Match(st.Names(), "b_1"),
		Names: []string{"b_Intercept", "b_x1", "b_x2"},
	}}

	out := Apply(st, plan)

	for i, want := range []float64{1, 2, 3, 4} {
		require.Equal(t, []float64{want}, out.Column(0, i))
	}
	for i, want := range []float64{10, 20, 30, 40} {
		require.Equal(t, []float64{want}, out.Column(1, i))
	}
}

func TestApply_SortReordersOnlyMatchedValues(t *testing.T) {
	st := applyStore(t)
	plan := Plan{{
		Mask:  match.Match(st.Names(), "b_1"),
		Names: []string{"b_c", "b_a", "b_b"},
		Sort:  []int{2, 0, 1},
	}}

	out := Apply(st, plan)

	require.Equal(t, []string{"b_c", "b_a", "b_b", "lp__"}, out.Names())
	// Matched slot i received the values of matched slot Sort[i],
	// identically in both chains.
	require.Equal(t, []float64{3}, out.Column(0, 0))
	require.Equal(t, []float64{1}, out.Column(0, 1))
	require.Equal(t, []float64{2}, out.Column(0, 2))
	require.Equal(t, []float64{30}, out.Column(1, 0))
	require.Equal(t, []float64{10}, out.Column(1, 1))
	require.Equal(t, []float64{20}, out.Column(1, 2))
	// The unmatched column is untouched.
	require.Equal(t, []float64{4}, out.Column(0, 3))
}

func TestApply_EmptyMask_NoOp(t *testing.T) {
	st := applyStore(t)
	plan := Plan{{
		Mask:  match.Match(st.Names(), "sds_1"),
		Names: []string{"sds_sx1"},
	}}

	out := Apply(st, plan)

	require.Equal(t, st.Names(), out.Names())
	require.NoError(t, out.CheckConsistent())
}

// Legacy edge case: a replacement list shorter than the match renames only
// the first len(Names) matched positions and leaves the rest untouched. The
// executor must not fail, but it must say something.
func TestApply_CountMismatch_TruncatesAndWarns(t *testing.T) {
	st := applyStore(t)
	plan := Plan{{
		Mask:  match.Match(st.Names(), "b_1"),
		Names: []string{"b_Intercept", "b_x1"},
	}}

	core, logs := observer.New(zap.WarnLevel)
	out := Apply(st, plan, WithLogger(zap.New(core)))

	require.Equal(t, []string{"b_Intercept", "b_x1", "b_1[3]", "lp__"}, out.Names())
	require.NoError(t, out.CheckConsistent())

	require.Equal(t, 1, logs.FilterMessage("rename count mismatch, truncating").Len())
}

func TestApply_CountMismatch_ExtraReplacements(t *testing.T) {
	st := applyStore(t)
	plan := Plan{{
		Mask:  match.Match(st.Names(), "lp__"),
		Names: []string{"lp__", "phantom"},
	}}

	core, logs := observer.New(zap.WarnLevel)
	out := Apply(st, plan, WithLogger(zap.New(core)))

	require.Equal(t, []string{"b_1[1]", "b_1[2]", "b_1[3]", "lp__"}, out.Names())
	require.Equal(t, 1, logs.FilterMessage("rename count mismatch, truncating").Len())
}

func TestApply_DuplicateTarget_SkippedAndWarned(t *testing.T) {
	st := applyStore(t)
	plan := Plan{{
		Mask:  match.Match(st.Names(), "b_1"),
		Names: []string{"lp__", "b_x1", "b_x2"},
	}}

	core, logs := observer.New(zap.WarnLevel)
	out := Apply(st, plan, WithLogger(zap.New(core)))

	// The colliding rename is skipped; the rest of the operation proceeds.
	require.Equal(t, []string{"b_1[1]", "b_x1", "b_x2", "lp__"}, out.Names())
	require.Equal(t, 1, logs.FilterMessage("rename rejected").Len())
	require.NoError(t, out.CheckConsistent())
}
