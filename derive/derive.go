// Package derive synthesizes parameters that are mathematically defined but
// never emitted by the sampling backend.
//
// The paradigm case is a bounded-support shape parameter: the backend samples
// an unconstrained temporary column, and the admissible bounds of the real
// parameter depend on the response data and on each draw's fitted mean and
// scale. The synthesizer recomputes the constrained quantity per draw and
// splices it into the store as a first-class column.
package derive

import (
	"go.uber.org/zap"

	"github.com/statforge/drawset/store"
)

// Predictor supplies per-draw fitted values for one response component.
// Mean and Scale return one slice per kept draw, each of observation length.
// Implementations come from the out-of-scope prediction collaborator.
type Predictor interface {
	Mean(chain int) [][]float64
	Scale(chain int) [][]float64
}

// PredictorFactory constructs the Predictor for a response component.
// Construction may fail for incompatible model states; the synthesizer then
// skips that component with a warning instead of failing the transform.
type PredictorFactory func(response string) (Predictor, error)

// Target declares one derivable quantity: the unconstrained temporary class
// the backend emits and the constrained class to synthesize from it.
type Target struct {
	TmpClass string
	Class    string
	Response string
}

// DefaultTargets lists the quantities currently synthesized: the
// bounded-support shape parameter of extreme-value components.
func DefaultTargets() []Target {
	return []Target{{TmpClass: "tmp_xi", Class: "xi"}}
}

// Config carries the synthesizer inputs.
type Config struct {
	// Observations maps response names to the observed response vector.
	// The empty key holds the response of a univariate model.
	Observations map[string][]float64

	Factory PredictorFactory
	Targets []Target
	Logger  *zap.Logger
}

// Synthesize detects derivable parameters absent from the raw output,
// recomputes them and returns a store with the new columns appended. The
// input store is not modified. The returned count is the number of columns
// added.
//
// Each appended column carries a leading zero-filled segment of the chain's
// warmup length, so its total length matches every existing column. On any
// per-target failure the target is skipped whole; no partial column is ever
// written.
func Synthesize(st *store.Store, cfg Config) (*store.Store, int) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	targets := cfg.Targets
	if targets == nil {
		targets = DefaultTargets()
	}

	out := st.Clone()
	added := 0
	for _, target := range targets {
		name := target.Class + suffix(target.Response)
		tmpName := target.TmpClass + suffix(target.Response)

		tmpIdx, ok := out.Index(tmpName)
		if !ok {
			continue
		}
		if _, exists := out.Index(name); exists {
			continue
		}

		y, ok := cfg.Observations[target.Response]
		if !ok || len(y) == 0 {
			logger.Warn("skipping derived parameter, no response data",
				zap.String("parameter", name))

			continue
		}
		if cfg.Factory == nil {
			logger.Warn("skipping derived parameter, no predictor factory",
				zap.String("parameter", name))

			continue
		}

		pred, err := cfg.Factory(target.Response)
		if err != nil {
			logger.Warn("skipping derived parameter, predictor unavailable",
				zap.String("parameter", name),
				zap.Error(err))

			continue
		}

		perChain, err := computeColumns(out, tmpIdx, y, pred)
		if err != nil {
			logger.Warn("skipping derived parameter",
				zap.String("parameter", name),
				zap.Error(err))

			continue
		}

		if err := out.AppendColumn(name, store.Meta{Constrained: true}, perChain); err != nil {
			logger.Warn("skipping derived parameter",
				zap.String("parameter", name),
				zap.Error(err))

			continue
		}
		out.RegisterDim(name, []int{1})
		added++
	}

	return out, added
}

func suffix(response string) string {
	if response == "" {
		return ""
	}

	return "_" + response
}

// computeColumns builds the derived column for every chain: a zero-filled
// warmup prefix followed by the bounded transform of each kept draw.
func computeColumns(st *store.Store, tmpIdx int, y []float64, pred Predictor) ([][]float64, error) {
	perChain := make([][]float64, st.NumChains())
	for ci := 0; ci < st.NumChains(); ci++ {
		warmup := st.Warmup(ci)
		tmp := st.Column(ci, tmpIdx)
		kept := tmp[warmup:]

		mean := pred.Mean(ci)
		scale := pred.Scale(ci)
		col, err := BoundedColumn(kept, warmup, y, mean, scale)
		if err != nil {
			return nil, err
		}
		perChain[ci] = col
	}

	return perChain, nil
}
