package cmd

import "errors"

// Sentinel errors for the summary statistics pipeline. Callers match them
// with errors.Is; wrapping with fmt.Errorf("...: %w", err) keeps the match.
var (
	// ErrInvalidLabel signals duplicate or malformed row/column labels
	// within a single matrix or vector.
	ErrInvalidLabel = errors.New("sparsity: invalid label")

	// ErrInsufficientData signals fewer than two aligned, non-missing pairs,
	// below which correlation is undefined.
	ErrInsufficientData = errors.New("sparsity: insufficient aligned data")

	// ErrDegenerateVariance signals a zero-variance input to Pearson
	// correlation, surfaced instead of a silent NaN.
	ErrDegenerateVariance = errors.New("sparsity: zero variance input")

	// ErrShapeMismatch signals structurally incompatible baseline and
	// perturbed data beyond label subsetting, e.g. ragged rows or a matrix
	// compared against a vector.
	ErrShapeMismatch = errors.New("sparsity: shape mismatch")
)

// errorKind names the sentinel for report output.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidLabel):
		return "invalid_label"
	case errors.Is(err, ErrInsufficientData):
		return "insufficient_data"
	case errors.Is(err, ErrDegenerateVariance):
		return "degenerate_variance"
	case errors.Is(err, ErrShapeMismatch):
		return "shape_mismatch"
	default:
		return "error"
	}
}
