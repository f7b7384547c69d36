package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestComponent_Suffix(t *testing.T) {
	require.Equal(t, "", (&Component{}).Suffix())
	require.Equal(t, "_sigma", (&Component{Param: "sigma"}).Suffix())
	require.Equal(t, "_y2", (&Component{Response: "y2"}).Suffix())
	require.Equal(t, "_y2_sigma", (&Component{Response: "y2", Param: "sigma"}).Suffix())
}

func TestComponent_Terms_TraversalOrder(t *testing.T) {
	c := &Component{
		Fixed:      []FixedTerm{{Index: 1, Coefs: []string{"x1"}}},
		Special:    []SpecialTerm{{Index: 1, Coefs: []string{"mox"}}},
		Category:   []CategoryTerm{{Index: 1, Coefs: []string{"c"}, Thresholds: 2}},
		Smooths:    []SmoothTerm{{Index: 1, Label: "sx1", Bases: 8}},
		GPs:        []GPTerm{{Index: 1, Label: "gpx", Bases: 4}},
		AutoCor:    []AutoCorTerm{{Class: "ar", Index: 1, Labels: []string{"1"}}},
		Groups:     []GroupTerm{{ID: 1, Group: "g", Coefs: []string{"Intercept"}, Levels: []string{"A"}}},
		Thresholds: []ThresholdTerm{{Index: 1, Counts: []int{3}}},
		Baselines:  []BaselineTerm{{Index: 1, Bases: 5}},
		Latent:     []LatentTerm{{Index: 1, Coefs: []string{"z"}}},
		Missing:    []MissingTerm{{Index: 1, Rows: []int{4}}},
	}

	var kinds []TermKind
	for _, term := range c.Terms() {
		kinds = append(kinds, term.Kind())
	}

	require.Equal(t, []TermKind{
		KindFixed, KindSpecial, KindCategory, KindSmooth, KindGP, KindAutoCor,
		KindGroup, KindThreshold, KindBaseline, KindLatent, KindMissing,
	}, kinds)
}

func TestDecode_YAML(t *testing.T) {
	data := []byte(`
components:
  - fixed:
      - index: 1
        coefs: [Intercept, x1]
  - param: sigma
    groups:
      - id: 1
        group: site
        coefs: [Intercept]
        levels: [A, B, C]
corr:
  - class: rescor
    pairs:
      - [y1, y2]
`)

	desc, err := Decode(data)
	require.NoError(t, err)
	require.Len(t, desc.Components, 2)
	require.Equal(t, []string{"Intercept", "x1"}, desc.Components[0].Fixed[0].Coefs)
	require.Equal(t, "sigma", desc.Components[1].Param)
	require.Equal(t, "site", desc.Components[1].Groups[0].Group)
	require.Len(t, desc.Corr, 1)
	require.Equal(t, [2]string{"y1", "y2"}, desc.Corr[0].Pairs[0])
}

func TestDecode_InvalidYAML(t *testing.T) {
	_, err := Decode([]byte("components: [whoops"))
	require.Error(t, err)
}

func TestValidate_SimplexCountMismatch(t *testing.T) {
	desc := &Description{Components: []Component{{
		Special: []SpecialTerm{{Index: 1, Coefs: []string{"a", "b"}, Simplex: []int{3}}},
	}}}

	require.Error(t, desc.Validate())
}

func TestValidate_GroupWithoutLevels(t *testing.T) {
	desc := &Description{Components: []Component{{
		Groups: []GroupTerm{{ID: 1, Group: "site", Coefs: []string{"Intercept"}}},
	}}}

	require.Error(t, desc.Validate())
}

func TestValidate_ThresholdCountMismatch(t *testing.T) {
	desc := &Description{Components: []Component{{
		Thresholds: []ThresholdTerm{{Index: 1, Groups: []string{"g1", "g2"}, Counts: []int{3}}},
	}}}

	require.Error(t, desc.Validate())
}

func TestValidate_EmptyCorrClass(t *testing.T) {
	desc := &Description{Corr: []CorrTerm{{Pairs: [][2]string{{"a", "b"}}}}}
	require.Error(t, desc.Validate())
}
