package model

// TermKind discriminates the term-group variants of a Component.
type TermKind int

const (
	KindFixed TermKind = iota
	KindSpecial
	KindCategory
	KindSmooth
	KindGP
	KindAutoCor
	KindGroup
	KindThreshold
	KindBaseline
	KindLatent
	KindMissing
)

func (k TermKind) String() string {
	switch k {
	case KindFixed:
		return "fixed"
	case KindSpecial:
		return "special"
	case KindCategory:
		return "category"
	case KindSmooth:
		return "smooth"
	case KindGP:
		return "gp"
	case KindAutoCor:
		return "autocor"
	case KindGroup:
		return "group"
	case KindThreshold:
		return "threshold"
	case KindBaseline:
		return "baseline"
	case KindLatent:
		return "latent"
	case KindMissing:
		return "missing"
	default:
		return "unknown"
	}
}

// Term is the tagged-union interface over term-group variants. The rename
// plan builder switches on Kind rather than on dynamic types.
type Term interface {
	Kind() TermKind
}

// FixedTerm lists the population-level coefficients of a component.
type FixedTerm struct {
	// Index is the positional disambiguator the code generator assigned to
	// this term group's flat names (b_<Index>[j]).
	Index int `yaml:"index"`

	Coefs []string `yaml:"coefs"`

	// Shadow names the structurally identical class emitted for special
	// prior variants (e.g. unscaled coefficients under shrinkage priors).
	// Empty when the prior needs no shadow class.
	Shadow string `yaml:"shadow,omitempty"`
}

func (*FixedTerm) Kind() TermKind { return KindFixed }

// SpecialTerm lists monotonic and other special-effect coefficients.
type SpecialTerm struct {
	Index int      `yaml:"index"`
	Coefs []string `yaml:"coefs"`

	// Simplex holds the per-coefficient ordinal-factor component count; zero
	// means the coefficient has no simplex parameter. Either empty or the
	// same length as Coefs.
	Simplex []int `yaml:"simplex,omitempty"`

	Shadow string `yaml:"shadow,omitempty"`
}

func (*SpecialTerm) Kind() TermKind { return KindSpecial }

// CategoryTerm lists category-specific coefficients of an ordinal component
// together with the number of thresholds each coefficient varies over.
type CategoryTerm struct {
	Index      int      `yaml:"index"`
	Coefs      []string `yaml:"coefs"`
	Thresholds int      `yaml:"thresholds"`
}

func (*CategoryTerm) Kind() TermKind { return KindCategory }

// SmoothTerm describes one smooth (spline) term.
type SmoothTerm struct {
	Index int    `yaml:"index"`
	Label string `yaml:"label"`
	Bases int    `yaml:"bases"`
}

func (*SmoothTerm) Kind() TermKind { return KindSmooth }

// GPTerm describes one Gaussian-process term. Levels lists the levels of a
// categorical "by" moderator; an empty Levels means a single unmoderated
// process.
type GPTerm struct {
	Index  int      `yaml:"index"`
	Label  string   `yaml:"label"`
	Levels []string `yaml:"levels,omitempty"`
	Bases  int      `yaml:"bases"`
}

func (*GPTerm) Kind() TermKind { return KindGP }

// AutoCorTerm describes one autocorrelation term group, e.g. class "ar" with
// one label per lag.
type AutoCorTerm struct {
	Class  string   `yaml:"class"`
	Index  int      `yaml:"index"`
	Labels []string `yaml:"labels"`
}

func (*AutoCorTerm) Kind() TermKind { return KindAutoCor }

// GroupTerm describes one group-level ("random") effect term.
type GroupTerm struct {
	// ID is the group id assigned by the code generator; flat names use it
	// as sd_<ID>[...], r_<ID>_<i>[...] and cor_<ID>[...].
	ID int `yaml:"id"`

	Group  string   `yaml:"group"`
	Coefs  []string `yaml:"coefs"`
	Levels []string `yaml:"levels"`

	// Corr is set when correlations between the group's coefficients are
	// estimated. Only meaningful with more than one coefficient.
	Corr bool `yaml:"corr,omitempty"`

	// ByLevels holds the nested "by" sub-levels splitting the correlation
	// blocks, empty when no nesting variable is present.
	ByLevels []string `yaml:"by_levels,omitempty"`

	// Student marks groups whose residual distribution is heavy-tailed and
	// therefore carries an auxiliary degrees-of-freedom parameter.
	Student bool `yaml:"student,omitempty"`
}

func (*GroupTerm) Kind() TermKind { return KindGroup }

// ThresholdTerm describes the ordinal thresholds of a component. With more
// than one group, the backend emits a single level-major run of flat indices
// that must be regrouped per group.
type ThresholdTerm struct {
	Index  int      `yaml:"index"`
	Groups []string `yaml:"groups,omitempty"`
	Counts []int    `yaml:"counts"`
}

func (*ThresholdTerm) Kind() TermKind { return KindThreshold }

// BaselineTerm describes the baseline-hazard coefficients of a time-to-event
// component.
type BaselineTerm struct {
	Index  int      `yaml:"index"`
	Groups []string `yaml:"groups,omitempty"`
	Bases  int      `yaml:"bases"`
}

func (*BaselineTerm) Kind() TermKind { return KindBaseline }

// LatentTerm describes one group of latent measurement-error variables
// sharing a grouping variable. An empty Group means ungrouped latent draws
// indexed by observation.
type LatentTerm struct {
	Index  int      `yaml:"index"`
	Group  string   `yaml:"group,omitempty"`
	Coefs  []string `yaml:"coefs"`
	Levels []string `yaml:"levels,omitempty"`
	Corr   bool     `yaml:"corr,omitempty"`

	// Obs is the latent draw count for ungrouped terms (one per observation).
	Obs int `yaml:"obs,omitempty"`
}

func (*LatentTerm) Kind() TermKind { return KindLatent }

// MissingTerm describes missing-value placeholders of a response, one latent
// draw per missing observation.
type MissingTerm struct {
	Index    int    `yaml:"index"`
	Response string `yaml:"response,omitempty"`

	// Rows holds the 1-based observation indices of the missing values.
	Rows []int `yaml:"rows"`
}

func (*MissingTerm) Kind() TermKind { return KindMissing }

// CorrTerm is a response-level correlation descriptor for multivariate or
// categorical-correlation families, with precomputed label pairs in the order
// the backend lays out the flat correlation vector.
type CorrTerm struct {
	Class string      `yaml:"class"`
	Pairs [][2]string `yaml:"pairs"`
}
