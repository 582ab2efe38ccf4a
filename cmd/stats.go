package cmd

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// CorrelationResult holds the correlation of one aligned baseline/perturbed
// pair of value series.
type CorrelationResult struct {
	Pearson  float64
	Spearman float64
	NPairs   int
}

// correlate computes the Pearson and tie-aware Spearman coefficients
// between aligned baseline and perturbed values.
func correlate(base, pert []float64) (CorrelationResult, error) {
	if len(base) != len(pert) {
		return CorrelationResult{}, fmt.Errorf("%w: %d baseline values against %d perturbed",
			ErrShapeMismatch, len(base), len(pert))
	}
	if len(base) < 2 {
		return CorrelationResult{}, fmt.Errorf("%w: %d pairs", ErrInsufficientData, len(base))
	}
	if stat.Variance(base, nil) == 0 {
		return CorrelationResult{}, fmt.Errorf("%w: baseline", ErrDegenerateVariance)
	}
	if stat.Variance(pert, nil) == 0 {
		return CorrelationResult{}, fmt.Errorf("%w: perturbed", ErrDegenerateVariance)
	}

	return CorrelationResult{
		Pearson:  stat.Correlation(base, pert, nil),
		Spearman: stat.Correlation(averageRanks(base), averageRanks(pert), nil),
		NPairs:   len(base),
	}, nil
}

// averageRanks assigns 1-based ranks with ties resolved by averaging, the
// convention required for a reproducible Spearman coefficient.
func averageRanks(xs []float64) []float64 {
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return xs[idx[a]] < xs[idx[b]] })

	ranks := make([]float64, len(xs))
	for i := 0; i < len(idx); {
		j := i
		for j+1 < len(idx) && xs[idx[j+1]] == xs[idx[i]] {
			j++
		}
		// Tied values share the mean of the ranks they span
		r := float64(i+j)/2 + 1
		for k := i; k <= j; k++ {
			ranks[idx[k]] = r
		}
		i = j + 1
	}
	return ranks
}

// meanAbsError averages |base-pert| over aligned pairs.
func meanAbsError(base, pert []float64) (float64, error) {
	if len(base) != len(pert) {
		return math.NaN(), fmt.Errorf("%w: %d baseline values against %d perturbed",
			ErrShapeMismatch, len(base), len(pert))
	}
	if len(base) == 0 {
		return math.NaN(), fmt.Errorf("%w: no pairs", ErrInsufficientData)
	}
	var sum float64
	for i := range base {
		sum += math.Abs(base[i] - pert[i])
	}
	return sum / float64(len(base)), nil
}
