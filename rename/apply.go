package rename

import (
	"go.uber.org/zap"

	"github.com/statforge/drawset/internal/options"
	"github.com/statforge/drawset/store"
)

type applyConfig struct {
	logger *zap.Logger
}

// ApplyOption configures Apply.
type ApplyOption = options.Option[*applyConfig]

// WithLogger routes apply-time warnings to the given logger. By default
// warnings are discarded.
func WithLogger(logger *zap.Logger) ApplyOption {
	return options.NoError(func(cfg *applyConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	})
}

// Apply executes a rename plan against a store and returns the transformed
// copy. The input store is not modified.
//
// For each operation the matched columns are renamed in mask order and,
// when a sort permutation is present, the matched columns' values are
// reordered identically in every chain first. The shared name table is
// updated once, not per chain.
//
// An operation whose replacement count differs from its match count renames
// only the first len(Names) matched positions and leaves the rest untouched.
// This inherited behavior is kept for compatibility with existing output
// consumers; it is surfaced as a warning rather than an error.
func Apply(st *store.Store, plan Plan, opts ...ApplyOption) *store.Store {
	cfg := &applyConfig{logger: zap.NewNop()}
	_ = options.Apply(cfg, opts...)

	out := st.Clone()
	for oi, op := range plan {
		positions := op.Mask.Positions()
		if len(positions) == 0 {
			// Feature absent from the fitted model.
			continue
		}

		if op.Sort != nil {
			if err := out.PermuteValues(positions, op.Sort); err != nil {
				cfg.logger.Warn("skipping invalid sort permutation",
					zap.Int("op", oi),
					zap.Int("matched", len(positions)),
					zap.Int("permutation", len(op.Sort)),
				)
			}
		}

		if len(positions) != len(op.Names) {
			cfg.logger.Warn("rename count mismatch, truncating",
				zap.Int("op", oi),
				zap.String("first_match", out.Names()[positions[0]]),
				zap.Int("matched", len(positions)),
				zap.Int("replacements", len(op.Names)),
			)
		}

		n := min(len(positions), len(op.Names))
		for i := 0; i < n; i++ {
			if err := out.Rename(positions[i], op.Names[i]); err != nil {
				cfg.logger.Warn("rename rejected",
					zap.Int("op", oi),
					zap.String("from", out.Names()[positions[i]]),
					zap.String("to", op.Names[i]),
					zap.Error(err),
				)
			}
		}
	}

	return out
}
