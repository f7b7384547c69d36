package rename

import (
	"fmt"
	"strconv"

	"github.com/statforge/drawset/match"
	"github.com/statforge/drawset/model"
)

// BuildPlan walks the model description and emits the full ordered rename
// plan for the given flat name table. The plan is transient: build it fresh
// from the raw backend output, apply it once, discard it.
//
// Term groups absent from the fitted model produce empty-mask operations or
// none at all; both are harmless no-ops at apply time.
func BuildPlan(desc *model.Description, names []string) Plan {
	b := &builder{names: names}

	for ci := range desc.Components {
		b.component(&desc.Components[ci])
	}
	for i := range desc.Corr {
		b.responseCorr(&desc.Corr[i])
	}

	return b.ops
}

type builder struct {
	names []string
	ops   Plan
}

func (b *builder) add(mask match.Mask, names []string, sort []int) {
	b.ops = append(b.ops, Op{Mask: mask, Names: names, Sort: sort})
}

func (b *builder) addAll(ops []Op) {
	b.ops = append(b.ops, ops...)
}

func (b *builder) component(c *model.Component) {
	sfx := c.Suffix()

	for _, term := range c.Terms() {
		switch term.Kind() {
		case model.KindFixed:
			b.fixed(term.(*model.FixedTerm), sfx)
		case model.KindSpecial:
			b.special(term.(*model.SpecialTerm), sfx)
		case model.KindCategory:
			b.category(term.(*model.CategoryTerm), sfx)
		case model.KindSmooth:
			b.smooth(term.(*model.SmoothTerm), sfx)
		case model.KindGP:
			b.gp(term.(*model.GPTerm), sfx)
		case model.KindAutoCor:
			b.autocor(term.(*model.AutoCorTerm), sfx)
		case model.KindGroup:
			b.group(term.(*model.GroupTerm), sfx)
		case model.KindThreshold:
			b.threshold(term.(*model.ThresholdTerm), sfx)
		case model.KindBaseline:
			b.baseline(term.(*model.BaselineTerm), sfx)
		case model.KindLatent:
			b.latent(term.(*model.LatentTerm))
		case model.KindMissing:
			b.missing(term.(*model.MissingTerm))
		}
	}
}

// coefClass renames one coefficient-vector class instance: flat
// <class>_<k>[j] columns become <class><sfx>_<coef>, mirrored onto the
// class's prior twins.
func (b *builder) coefClass(class string, k int, sfx string, coefs []string) {
	mask := match.Match(b.names, indexed(class, k))
	names := make([]string, len(coefs))
	for i, coef := range coefs {
		names[i] = class + sfx + "_" + coef
	}
	b.add(mask, names, nil)
	b.addAll(PriorOps(b.names, indexed(class, k), coefs, class+sfx, true))
}

func (b *builder) fixed(t *model.FixedTerm, sfx string) {
	b.coefClass("b", t.Index, sfx, t.Coefs)
	if t.Shadow != "" {
		b.coefClass(t.Shadow, t.Index, sfx, t.Coefs)
	}
}

func (b *builder) special(t *model.SpecialTerm, sfx string) {
	b.coefClass("bsp", t.Index, sfx, t.Coefs)
	if t.Shadow != "" {
		b.coefClass(t.Shadow, t.Index, sfx, t.Coefs)
	}

	// Simplex parameters of monotonic coefficients.
	for i, coef := range t.Coefs {
		if i >= len(t.Simplex) || t.Simplex[i] == 0 {
			continue
		}
		mask := match.Match(b.names, fmt.Sprintf("simo_%d_%d", t.Index, i+1))
		names := make([]string, t.Simplex[i])
		for j := range names {
			names[j] = "simo" + sfx + "_" + coef + "[" + strconv.Itoa(j+1) + "]"
		}
		b.add(mask, names, nil)
		b.addAll(labelPrior(b.names, "simo_"+strconv.Itoa(t.Index), i+1, coef, "simo"+sfx))
	}
}

func (b *builder) category(t *model.CategoryTerm, sfx string) {
	mask := match.Match(b.names, indexed("bcs", t.Index))
	names := make([]string, 0, len(t.Coefs)*t.Thresholds)
	for _, coef := range t.Coefs {
		for th := 1; th <= t.Thresholds; th++ {
			names = append(names, "bcs"+sfx+"_"+coef+"["+strconv.Itoa(th)+"]")
		}
	}
	b.add(mask, names, nil)
	b.addAll(PriorOps(b.names, indexed("bcs", t.Index), t.Coefs, "bcs"+sfx, true))
}

func (b *builder) smooth(t *model.SmoothTerm, sfx string) {
	mask := match.Match(b.names, indexed("sds", t.Index))
	b.add(mask, []string{"sds" + sfx + "_" + t.Label}, nil)
	b.addAll(labelPrior(b.names, "sds", t.Index, t.Label, "sds"+sfx))

	mask = match.Match(b.names, indexed("s", t.Index))
	names := make([]string, t.Bases)
	for j := range names {
		names[j] = "s" + sfx + "_" + t.Label + "[" + strconv.Itoa(j+1) + "]"
	}
	b.add(mask, names, nil)
}

func (b *builder) gp(t *model.GPTerm, sfx string) {
	// Scale and length-scale carry one sub-label per "by" level, or a single
	// plain label.
	hyper := make([]string, 0, max(len(t.Levels), 1))
	if len(t.Levels) == 0 {
		hyper = append(hyper, t.Label)
	} else {
		for _, lvl := range t.Levels {
			hyper = append(hyper, t.Label+sanitize(lvl))
		}
	}

	for _, class := range []string{"sdgp", "lscale"} {
		mask := match.Match(b.names, indexed(class, t.Index))
		names := make([]string, len(hyper))
		for i, h := range hyper {
			names[i] = class + sfx + "_" + h
		}
		b.add(mask, names, nil)
		b.addAll(labelPrior(b.names, class, t.Index, t.Label, class+sfx))
	}

	// Standardized latent weights: a nested sub-index per level when several
	// sub-labels exist, a flat index otherwise.
	if len(t.Levels) > 1 {
		for li, h := range hyper {
			mask := match.Match(b.names, fmt.Sprintf("zgp_%d_%d", t.Index, li+1))
			names := make([]string, t.Bases)
			for j := range names {
				names[j] = "zgp" + sfx + "_" + h + "[" + strconv.Itoa(j+1) + "]"
			}
			b.add(mask, names, nil)
		}
	} else {
		mask := match.Match(b.names, indexed("zgp", t.Index))
		names := make([]string, t.Bases)
		for j := range names {
			names[j] = "zgp" + sfx + "_" + hyper[0] + "[" + strconv.Itoa(j+1) + "]"
		}
		b.add(mask, names, nil)
	}
}

func (b *builder) autocor(t *model.AutoCorTerm, sfx string) {
	mask := match.Match(b.names, indexed(t.Class, t.Index))
	names := make([]string, len(t.Labels))
	for i, lab := range t.Labels {
		names[i] = t.Class + sfx + "[" + lab + "]"
	}
	b.add(mask, names, nil)
	b.addAll(PriorOps(b.names, indexed(t.Class, t.Index), t.Labels, t.Class+sfx, true))
}

func (b *builder) group(t *model.GroupTerm, sfx string) {
	dp := dparPrefix(sfx)

	// One sd rename per group id.
	mask := match.Match(b.names, indexed("sd", t.ID))
	sdNames := make([]string, len(t.Coefs))
	for i, coef := range t.Coefs {
		sdNames[i] = "sd_" + t.Group + "__" + dp + coef
	}
	b.add(mask, sdNames, nil)
	b.addAll(labelPrior(b.names, "sd", t.ID, t.Group, "sd"))

	// Correlations only with more than one coefficient, split per nested
	// sub-level set when a "by" variable is present.
	if len(t.Coefs) > 1 && t.Corr {
		if len(t.ByLevels) == 0 {
			mask = match.Match(b.names, indexed("cor", t.ID))
			b.add(mask, corNames("cor_"+t.Group+"__", dp, t.Coefs), nil)
		} else {
			for bi, by := range t.ByLevels {
				mask = match.Match(b.names, fmt.Sprintf("cor_%d_%d", t.ID, bi+1))
				b.add(mask, corNames("cor_"+t.Group+"__"+sanitize(by)+"__", dp, t.Coefs), nil)
			}
		}
		b.addAll(labelPrior(b.names, "cor", t.ID, t.Group, "cor"))
	}

	// Per-level coefficient draws: Cartesian cross of sanitized level labels
	// and coefficient labels, one operation per coefficient vector.
	rBase := "r_" + t.Group
	if sfx != "" {
		rBase += "__" + dp[:len(dp)-1]
	}
	for i, coef := range t.Coefs {
		mask = match.Match(b.names, fmt.Sprintf("r_%d_%d", t.ID, i+1))
		names := make([]string, len(t.Levels))
		for j, lvl := range t.Levels {
			names[j] = rBase + "[" + sanitize(lvl) + "," + coef + "]"
		}
		b.add(mask, names, nil)
	}

	// Heavy-tailed group residuals carry a degrees-of-freedom parameter.
	if t.Student {
		mask = match.Match(b.names, indexed("df", t.ID))
		b.add(mask, []string{"df_" + t.Group}, nil)
		b.addAll(labelPrior(b.names, "df", t.ID, t.Group, "df"))
	}
}

func (b *builder) threshold(t *model.ThresholdTerm, sfx string) {
	if len(t.Groups) <= 1 {
		count := 0
		if len(t.Counts) > 0 {
			count = t.Counts[0]
		}
		mask := match.Match(b.names, indexed("Intercept", t.Index))
		names := make([]string, count)
		for j := range names {
			names[j] = "Intercept" + sfx + "[" + strconv.Itoa(j+1) + "]"
		}
		b.add(mask, names, nil)
	} else {
		mask := match.Match(b.names, indexed("Intercept", t.Index))
		names, sort := regroup(t.Groups, t.Counts, func(group string, level int) string {
			return "Intercept" + sfx + "[" + sanitize(group) + "," + strconv.Itoa(level) + "]"
		})
		b.add(mask, names, sort)
	}
	b.addAll(priorExact(b.names, "prior_"+indexed("Intercept", t.Index), "prior_Intercept"+sfx))
}

func (b *builder) baseline(t *model.BaselineTerm, sfx string) {
	if len(t.Groups) <= 1 {
		mask := match.Match(b.names, indexed("sbhaz", t.Index))
		names := make([]string, t.Bases)
		for j := range names {
			names[j] = "sbhaz" + sfx + "[" + strconv.Itoa(j+1) + "]"
		}
		b.add(mask, names, nil)
	} else {
		counts := make([]int, len(t.Groups))
		for i := range counts {
			counts[i] = t.Bases
		}
		mask := match.Match(b.names, indexed("sbhaz", t.Index))
		names, sort := regroup(t.Groups, counts, func(group string, level int) string {
			return "sbhaz" + sfx + "[" + sanitize(group) + "," + strconv.Itoa(level) + "]"
		})
		b.add(mask, names, sort)
	}
	b.addAll(priorExact(b.names, "prior_"+indexed("sbhaz", t.Index), "prior_sbhaz"+sfx))
}

func (b *builder) latent(t *model.LatentTerm) {
	// Mean and sd hyperparameters, relabeled per coefficient.
	for _, class := range []string{"meanme", "sdme"} {
		mask := match.Match(b.names, indexed(class, t.Index))
		names := make([]string, len(t.Coefs))
		for i, coef := range t.Coefs {
			names[i] = class + "_" + coef
		}
		b.add(mask, names, nil)
		b.addAll(PriorOps(b.names, indexed(class, t.Index), t.Coefs, class, true))
	}

	// Latent draws: group-level labels when grouped, sequential indices
	// otherwise.
	for i, coef := range t.Coefs {
		mask := match.Match(b.names, fmt.Sprintf("Xme_%d_%d", t.Index, i+1))
		var names []string
		if t.Group != "" && len(t.Levels) > 0 {
			names = make([]string, len(t.Levels))
			for j, lvl := range t.Levels {
				names[j] = "Xme_" + coef + "[" + sanitize(lvl) + "]"
			}
		} else {
			names = make([]string, t.Obs)
			for j := range names {
				names[j] = "Xme_" + coef + "[" + strconv.Itoa(j+1) + "]"
			}
		}
		b.add(mask, names, nil)
	}

	// Correlation block only when the group has several coefficients and
	// correlation was enabled.
	if len(t.Coefs) > 1 && t.Corr {
		mask := match.Match(b.names, indexed("corrme", t.Index))
		b.add(mask, corNames("corrme_", "", t.Coefs), nil)
	}
}

func (b *builder) missing(t *model.MissingTerm) {
	base := "Ymi"
	if t.Response != "" {
		base += "_" + t.Response
	}
	mask := match.Match(b.names, indexed("Ymi", t.Index))
	names := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		names[i] = base + "[" + strconv.Itoa(row) + "]"
	}
	b.add(mask, names, nil)
}

func (b *builder) responseCorr(t *model.CorrTerm) {
	mask := match.Match(b.names, t.Class)
	names := make([]string, len(t.Pairs))
	labels := make([]string, len(t.Pairs))
	for i, pair := range t.Pairs {
		suffix := "__" + pair[0] + "__" + pair[1]
		names[i] = t.Class + suffix
		labels[i] = pair[0] + "__" + pair[1]
	}
	b.add(mask, names, nil)
	b.addAll(PriorOps(b.names, t.Class, labels, t.Class+"_", true))
}

// corNames lists lower-triangle correlation names in the backend's
// column-major order: (1,2), (1,3), (2,3), ...
func corNames(base, dp string, coefs []string) []string {
	names := make([]string, 0, len(coefs)*(len(coefs)-1)/2)
	for j := 1; j < len(coefs); j++ {
		for i := 0; i < j; i++ {
			names = append(names, base+dp+coefs[i]+"__"+dp+coefs[j])
		}
	}

	return names
}

// labelPrior is the scalar-form prior mirror for a class whose twin's digit
// suffix is the instance id: prior_<class>_<id> → prior_<newClass>_<label>.
func labelPrior(names []string, class string, id int, label, newClass string) []Op {
	labels := make([]string, id)
	labels[id-1] = label

	return PriorOps(names, class, labels, newClass, false)
}

// regroup converts a level-major flat run into group-major composite names.
// The returned sort permutation maps each group-major target slot to its
// level-major source slot. Groups with unequal counts cannot be interleaved;
// the run is then assumed group-major already and no permutation is emitted.
func regroup(groups []string, counts []int, name func(group string, level int) string) ([]string, []int) {
	total := 0
	equal := true
	for _, c := range counts {
		total += c
		if c != counts[0] {
			equal = false
		}
	}

	names := make([]string, 0, total)
	for g, group := range groups {
		for lvl := 1; lvl <= counts[g]; lvl++ {
			names = append(names, name(group, lvl))
		}
	}

	if !equal {
		return names, nil
	}

	G, T := len(groups), counts[0]
	sort := make([]int, total)
	for g := 0; g < G; g++ {
		for t := 0; t < T; t++ {
			sort[g*T+t] = t*G + g
		}
	}

	return names, sort
}
