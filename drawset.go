// Package drawset turns the flat, index-addressed output of a sampling
// backend into the structured, label-addressed parameter set a model
// description implies.
//
// A backend emits columns named by numeric position ("b_1[2]", "sd_3[1]",
// "r_2_1[4]"); the model description knows what those positions mean. The
// pipeline renames every column to its interpretable form ("b_x1",
// "sd_site__Intercept", "r_site[D,x]"), reorders matched blocks where the
// backend's layout differs from the canonical one, sorts the column table
// into the canonical class order, and synthesizes parameters the backend
// never emits directly.
//
// # Basic Usage
//
//	import "github.com/statforge/drawset"
//
//	desc, _ := model.Decode(yamlBytes)
//	st, _ := store.FromDraws(names, warmup, chains...)
//
//	out, err := drawset.Process(desc, st)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(out.Names()) // canonical labeled names
//
// Processing is pure: the input store is never modified, and processing an
// already-processed store is a no-op.
//
// # Package Structure
//
// This package wires the stages together; each stage is usable on its
// own. The model package decodes descriptions, rename builds and executes
// rename plans, order sorts the column table, derive synthesizes bounded
// parameters, and archive persists stores in a compact binary format.
package drawset

import (
	"go.uber.org/zap"

	"github.com/statforge/drawset/derive"
	"github.com/statforge/drawset/internal/options"
	"github.com/statforge/drawset/model"
	"github.com/statforge/drawset/order"
	"github.com/statforge/drawset/rename"
	"github.com/statforge/drawset/store"
)

type processConfig struct {
	logger       *zap.Logger
	observations map[string][]float64
	factory      derive.PredictorFactory
	targets      []derive.Target
}

// ProcessOption configures the processing pipeline.
type ProcessOption = options.Option[*processConfig]

// WithLogger routes pipeline diagnostics to logger. The default discards
// them.
func WithLogger(logger *zap.Logger) ProcessOption {
	return options.NoError(func(cfg *processConfig) {
		cfg.logger = logger
	})
}

// WithObservations supplies observed response vectors for derived-parameter
// synthesis, keyed by response name. A univariate model uses the empty key.
func WithObservations(obs map[string][]float64) ProcessOption {
	return options.NoError(func(cfg *processConfig) {
		cfg.observations = obs
	})
}

// WithPredictorFactory supplies the per-response predictor constructor used
// by derived-parameter synthesis. Without it, derivable parameters are
// skipped with a warning.
func WithPredictorFactory(factory derive.PredictorFactory) ProcessOption {
	return options.NoError(func(cfg *processConfig) {
		cfg.factory = factory
	})
}

// WithDerivedTargets overrides the set of synthesized quantities. The
// default is derive.DefaultTargets.
func WithDerivedTargets(targets []derive.Target) ProcessOption {
	return options.NoError(func(cfg *processConfig) {
		cfg.targets = targets
	})
}

// Process runs the full post-sampling pipeline on st: build the rename plan
// from desc, execute it, sort the column table into canonical order, and
// synthesize derivable parameters.
//
// The input store is not modified. The result has the same columns as the
// input plus any synthesized ones, with identical per-column values up to
// block reordering.
func Process(desc *model.Description, st *store.Store, opts ...ProcessOption) (*store.Store, error) {
	cfg := &processConfig{logger: zap.NewNop()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	plan := rename.BuildPlan(desc, st.Names())
	out := rename.Apply(st, plan, rename.WithLogger(cfg.logger))
	out = order.Reorder(out)
	out, added := derive.Synthesize(out, derive.Config{
		Observations: cfg.observations,
		Factory:      cfg.factory,
		Targets:      cfg.targets,
		Logger:       cfg.logger,
	})
	if added > 0 {
		out = order.Reorder(out)
	}

	if err := out.CheckConsistent(); err != nil {
		return nil, err
	}

	return out, nil
}
