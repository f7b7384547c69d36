package derive

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/statforge/drawset/errs"
)

// BoundedColumn transforms an unconstrained kept-draw column into the
// constrained shape parameter, prefixed with warmup zeros so the result
// lines up with the store's full draw length.
//
// For each kept draw i the admissible interval follows from requiring
// 1 + xi*(y_j-mu_ij)/sigma_ij > 0 for every observation j: with
// z = (y-mu)/sigma, the lower bound is -1/max(z) and the upper bound is
// -1/min(z). The draw's unconstrained value is mapped into (lb, ub) through
// a scaled inverse logit.
func BoundedColumn(unconstrained []float64, warmup int, y []float64, mean, scale [][]float64) ([]float64, error) {
	n := len(unconstrained)
	if len(mean) != n || len(scale) != n {
		return nil, fmt.Errorf("%w: %d draws, %d fitted means, %d fitted scales",
			errs.ErrColumnLengthMismatch, n, len(mean), len(scale))
	}

	out := make([]float64, warmup+n)
	z := make([]float64, len(y))
	for i, u := range unconstrained {
		mu, sigma := mean[i], scale[i]
		if len(mu) != len(y) || len(sigma) != len(y) {
			return nil, fmt.Errorf("%w: draw %d has %d fitted values for %d observations",
				errs.ErrColumnLengthMismatch, i, len(mu), len(y))
		}

		for j := range y {
			z[j] = (y[j] - mu[j]) / sigma[j]
		}
		lb, ub := shapeBounds(z)
		out[warmup+i] = lb + (ub-lb)*invLogit(u)
	}

	return out, nil
}

// shapeBounds derives the admissible (lb, ub) interval from the
// standardized residuals of one draw. Residuals of only one sign leave the
// corresponding side unbounded; a wide default keeps the transform finite.
func shapeBounds(z []float64) (float64, float64) {
	const wide = 15.0

	lb, ub := -wide, wide
	if zMax := floats.Max(z); zMax > 0 {
		lb = -1 / zMax
	}
	if zMin := floats.Min(z); zMin < 0 {
		ub = -1 / zMin
	}

	return lb, ub
}

func invLogit(x float64) float64 {
	// Evaluate on the negative branch to avoid overflow for large |x|.
	if x >= 0 {
		return 1 / (1 + math.Exp(-x))
	}
	e := math.Exp(x)

	return e / (1 + e)
}
