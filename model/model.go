// Package model describes the structure of a fitted model as produced by the
// upstream formula compiler.
//
// A Description is a tree keyed by response and distributional (or
// non-linear) parameter. Each node carries the term groups estimated for that
// node: fixed effects, special/monotonic effects, category-specific effects,
// smooths, Gaussian processes, autocorrelation terms, group-level effects,
// ordinal thresholds, hazard baselines, latent measurement-error variables
// and missing-value placeholders. Response-level correlation descriptors for
// multivariate families live on the Description itself.
//
// The description is read-only input: the rename plan builder walks it to
// reverse-engineer which backend draws correspond to which coefficient.
package model

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Description is the full structural description of a fitted model.
type Description struct {
	Components []Component `yaml:"components"`
	Corr       []CorrTerm  `yaml:"corr,omitempty"`
}

// Component is one response × distributional-parameter node of the model
// tree. Response and Param are empty for the primary parameter of a
// univariate model.
type Component struct {
	Response string `yaml:"response,omitempty"`
	Param    string `yaml:"param,omitempty"`

	Fixed      []FixedTerm     `yaml:"fixed,omitempty"`
	Special    []SpecialTerm   `yaml:"special,omitempty"`
	Category   []CategoryTerm  `yaml:"category,omitempty"`
	Smooths    []SmoothTerm    `yaml:"smooths,omitempty"`
	GPs        []GPTerm        `yaml:"gps,omitempty"`
	AutoCor    []AutoCorTerm   `yaml:"autocor,omitempty"`
	Groups     []GroupTerm     `yaml:"groups,omitempty"`
	Thresholds []ThresholdTerm `yaml:"thresholds,omitempty"`
	Baselines  []BaselineTerm  `yaml:"baselines,omitempty"`
	Latent     []LatentTerm    `yaml:"latent,omitempty"`
	Missing    []MissingTerm   `yaml:"missing,omitempty"`
}

// Suffix returns the name-table suffix contributed by this component, e.g.
// "_y2_sigma" for response "y2" and parameter "sigma". Empty for the primary
// parameter of a univariate model.
func (c *Component) Suffix() string {
	s := ""
	if c.Response != "" {
		s += "_" + c.Response
	}
	if c.Param != "" {
		s += "_" + c.Param
	}

	return s
}

// Terms returns the component's term groups in the fixed traversal order the
// rename plan builder relies on: fixed effects, special effects,
// category-specific effects, smooths, Gaussian processes, autocorrelation
// terms, group-level effects, thresholds, hazard baselines, latent
// measurement-error variables, missing-value placeholders.
func (c *Component) Terms() []Term {
	terms := make([]Term, 0,
		len(c.Fixed)+len(c.Special)+len(c.Category)+len(c.Smooths)+
			len(c.GPs)+len(c.AutoCor)+len(c.Groups)+len(c.Thresholds)+
			len(c.Baselines)+len(c.Latent)+len(c.Missing))

	for i := range c.Fixed {
		terms = append(terms, &c.Fixed[i])
	}
	for i := range c.Special {
		terms = append(terms, &c.Special[i])
	}
	for i := range c.Category {
		terms = append(terms, &c.Category[i])
	}
	for i := range c.Smooths {
		terms = append(terms, &c.Smooths[i])
	}
	for i := range c.GPs {
		terms = append(terms, &c.GPs[i])
	}
	for i := range c.AutoCor {
		terms = append(terms, &c.AutoCor[i])
	}
	for i := range c.Groups {
		terms = append(terms, &c.Groups[i])
	}
	for i := range c.Thresholds {
		terms = append(terms, &c.Thresholds[i])
	}
	for i := range c.Baselines {
		terms = append(terms, &c.Baselines[i])
	}
	for i := range c.Latent {
		terms = append(terms, &c.Latent[i])
	}
	for i := range c.Missing {
		terms = append(terms, &c.Missing[i])
	}

	return terms
}

// Decode parses a YAML-encoded model description and validates it.
func Decode(data []byte) (*Description, error) {
	var desc Description
	if err := yaml.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("failed to decode model description: %w", err)
	}
	if err := desc.Validate(); err != nil {
		return nil, err
	}

	return &desc, nil
}

// Validate checks structural consistency of the description.
func (d *Description) Validate() error {
	for ci := range d.Components {
		c := &d.Components[ci]
		for _, t := range c.Special {
			if len(t.Simplex) != 0 && len(t.Simplex) != len(t.Coefs) {
				return fmt.Errorf("special term %d: %d simplex counts for %d coefficients",
					t.Index, len(t.Simplex), len(t.Coefs))
			}
		}
		for _, t := range c.Groups {
			if len(t.Coefs) == 0 {
				return fmt.Errorf("group term %q: no coefficients", t.Group)
			}
			if len(t.Levels) == 0 {
				return fmt.Errorf("group term %q: no levels", t.Group)
			}
		}
		for _, t := range c.Thresholds {
			if len(t.Groups) > 1 && len(t.Counts) != len(t.Groups) {
				return fmt.Errorf("threshold term %d: %d counts for %d groups",
					t.Index, len(t.Counts), len(t.Groups))
			}
		}
		for _, t := range c.Latent {
			if len(t.Coefs) == 0 {
				return fmt.Errorf("latent term %q: no coefficients", t.Group)
			}
		}
	}
	for _, t := range d.Corr {
		if t.Class == "" {
			return fmt.Errorf("correlation descriptor with empty class")
		}
	}

	return nil
}
