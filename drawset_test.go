package drawset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/statforge/drawset/derive"
	"github.com/statforge/drawset/model"
	"github.com/statforge/drawset/store"
)

func pipelineDesc() *model.Description {
	return &model.Description{Components: []model.Component{{
		Fixed: []model.FixedTerm{{Index: 1, Coefs: []string{"Intercept", "x1"}}},
		Groups: []model.GroupTerm{{
			ID:     1,
			Group:  "site",
			Coefs:  []string{"Intercept"},
			Levels: []string{"A", "B"},
		}},
	}}}
}

func pipelineStore(t *testing.T) *store.Store {
	t.Helper()

	// Raw backend layout: group draws before fixed coefficients, diagnostics
	// in front.
	names := []string{"lp__", "r_1_1[1]", "r_1_1[2]", "sd_1[1]", "b_1[1]", "b_1[2]", "sigma"}
	cols := make([][]float64, len(names))
	for i := range cols {
		cols[i] = []float64{float64(i), float64(i) + 0.5}
	}
	st, err := store.FromDraws(names, 0, cols)
	require.NoError(t, err)

	return st
}

func TestProcess_RenamesAndReorders(t *testing.T) {
	out, err := Process(pipelineDesc(), pipelineStore(t))
	require.NoError(t, err)

	require.Equal(t, []string{
		"b_Intercept", "b_x1",
		"sd_site__Intercept",
		"sigma",
		"r_site[A,Intercept]", "r_site[B,Intercept]",
		"lp__",
	}, out.Names())
}

func TestProcess_DoesNotMutateInput(t *testing.T) {
	st := pipelineStore(t)
	before := append([]string(nil), st.Names()...)

	_, err := Process(pipelineDesc(), st)
	require.NoError(t, err)
	require.Equal(t, before, st.Names())
}

func TestProcess_ValuesFollowTheirNames(t *testing.T) {
	st := pipelineStore(t)

	out, err := Process(pipelineDesc(), st)
	require.NoError(t, err)

	// Each renamed column keeps the values of its raw counterpart.
	raw := map[string]string{
		"b_Intercept":         "b_1[1]",
		"b_x1":                "b_1[2]",
		"sd_site__Intercept":  "sd_1[1]",
		"r_site[A,Intercept]": "r_1_1[1]",
		"r_site[B,Intercept]": "r_1_1[2]",
		"sigma":               "sigma",
		"lp__":                "lp__",
	}
	for name, rawName := range raw {
		i, ok := out.Index(name)
		require.True(t, ok, name)
		j, ok := st.Index(rawName)
		require.True(t, ok, rawName)
		require.Equal(t, st.Column(0, j), out.Column(0, i), name)
	}
}

func TestProcess_Idempotent(t *testing.T) {
	once, err := Process(pipelineDesc(), pipelineStore(t))
	require.NoError(t, err)

	twice, err := Process(pipelineDesc(), once)
	require.NoError(t, err)

	require.Equal(t, once.Names(), twice.Names())
	for i := 0; i < once.Len(); i++ {
		require.Equal(t, once.Column(0, i), twice.Column(0, i))
	}
}

func TestProcess_PreservesColumnCount(t *testing.T) {
	st := pipelineStore(t)

	out, err := Process(pipelineDesc(), st)
	require.NoError(t, err)
	require.Equal(t, st.Len(), out.Len())
	require.Equal(t, st.NumChains(), out.NumChains())
	require.Equal(t, st.Draws(), out.Draws())
}

func TestProcess_SynthesizesDerivedParameter(t *testing.T) {
	names := []string{"b_1[1]", "tmp_xi", "lp__"}
	st, err := store.FromDraws(names, 1,
		[][]float64{{0, 1, 2}, {0, -1, 1}, {0, -5, -6}},
	)
	require.NoError(t, err)

	desc := &model.Description{Components: []model.Component{{
		Fixed: []model.FixedTerm{{Index: 1, Coefs: []string{"x1"}}},
	}}}

	out, err := Process(desc, st,
		WithObservations(map[string][]float64{"": {1, -1}}),
		WithPredictorFactory(func(string) (derive.Predictor, error) {
			return constantPredictor{draws: 2, obs: 2}, nil
		}),
	)
	require.NoError(t, err)

	// The synthesized column joins the table and lands in canonical order:
	// after the fixed coefficient, before the temporary and diagnostic tail.
	require.Equal(t, []string{"b_x1", "xi", "tmp_xi", "lp__"}, out.Names())

	i, ok := out.Index("xi")
	require.True(t, ok)
	require.True(t, out.Meta(i).Constrained)
	col := out.Column(0, i)
	require.Len(t, col, 3)
	require.Zero(t, col[0])
}

func TestProcess_NoDerivablePresent_NoSecondPass(t *testing.T) {
	st := pipelineStore(t)

	out, err := Process(pipelineDesc(), st, WithObservations(map[string][]float64{"": {1}}))
	require.NoError(t, err)
	require.Equal(t, st.Len(), out.Len())
}

type constantPredictor struct {
	draws int
	obs   int
}

func (p constantPredictor) Mean(int) [][]float64  { return p.fill(0) }
func (p constantPredictor) Scale(int) [][]float64 { return p.fill(1) }

func (p constantPredictor) fill(v float64) [][]float64 {
	out := make([][]float64, p.draws)
	for i := range out {
		row := make([]float64, p.obs)
		for j := range row {
			row[j] = v
		}
		out[i] = row
	}

	return out
}
