package cmd

import (
	"fmt"
	"math"
	"sort"
)

// Missing values are carried as NaN throughout; alignment drops them.

// Vector is a label-indexed series of values, e.g. indegrees per gene or
// edge weights per (tf, gene) pair.
type Vector struct {
	Labels []string
	Values []float64
}

// Matrix is a numeric table with labelled rows and columns, e.g. genes by
// samples for expression or genes by genes for co-expression.
type Matrix struct {
	RowLabels []string
	ColLabels []string
	Data      [][]float64
}

// NewVector validates labels and returns the vector.
func NewVector(labels []string, values []float64) (*Vector, error) {
	if len(labels) != len(values) {
		return nil, fmt.Errorf("%w: %d labels for %d values", ErrShapeMismatch, len(labels), len(values))
	}
	if dup := firstDuplicate(labels); dup != "" {
		return nil, fmt.Errorf("%w: duplicate label %q", ErrInvalidLabel, dup)
	}
	return &Vector{Labels: labels, Values: values}, nil
}

// NewMatrix validates labels and rectangularity and returns the matrix.
func NewMatrix(rowLabels, colLabels []string, data [][]float64) (*Matrix, error) {
	if len(data) != len(rowLabels) {
		return nil, fmt.Errorf("%w: %d row labels for %d rows", ErrShapeMismatch, len(rowLabels), len(data))
	}
	for i, row := range data {
		if len(row) != len(colLabels) {
			return nil, fmt.Errorf("%w: row %q has %d values, expected %d",
				ErrShapeMismatch, rowLabels[i], len(row), len(colLabels))
		}
	}
	if dup := firstDuplicate(rowLabels); dup != "" {
		return nil, fmt.Errorf("%w: duplicate row label %q", ErrInvalidLabel, dup)
	}
	if dup := firstDuplicate(colLabels); dup != "" {
		return nil, fmt.Errorf("%w: duplicate column label %q", ErrInvalidLabel, dup)
	}
	return &Matrix{RowLabels: rowLabels, ColLabels: colLabels, Data: data}, nil
}

// Flatten converts the matrix to a vector with composite "row:col" labels,
// sorted by label so that downstream comparisons are deterministic.
func (m *Matrix) Flatten() *Vector {
	n := len(m.RowLabels) * len(m.ColLabels)
	labels := make([]string, 0, n)
	values := make([]float64, 0, n)
	for i, rl := range m.RowLabels {
		for j, cl := range m.ColLabels {
			labels = append(labels, rl+labelSep+cl)
			values = append(values, m.Data[i][j])
		}
	}
	v := &Vector{Labels: labels, Values: values}
	v.sortByLabel()
	return v
}

// labelSep joins row and column labels in flattened matrices and the two
// gene names of an edge list entry.
const labelSep = ":"

func (v *Vector) sortByLabel() {
	idx := make([]int, len(v.Labels))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return v.Labels[idx[a]] < v.Labels[idx[b]] })
	labels := make([]string, len(idx))
	values := make([]float64, len(idx))
	for i, k := range idx {
		labels[i] = v.Labels[k]
		values[i] = v.Values[k]
	}
	v.Labels = labels
	v.Values = values
}

// alignByLabel joins two vectors on their labels, sorted by label, keeping
// only pairs where both sides are present and non-missing. Labels found on
// one side only are excluded from the comparison.
func alignByLabel(base, pert *Vector) (b, p []float64) {
	pmap := make(map[string]float64, len(pert.Labels))
	for i, l := range pert.Labels {
		pmap[l] = pert.Values[i]
	}
	order := make([]int, len(base.Labels))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(a, c int) bool { return base.Labels[order[a]] < base.Labels[order[c]] })

	for _, i := range order {
		pv, ok := pmap[base.Labels[i]]
		if !ok {
			continue
		}
		bv := base.Values[i]
		if math.IsNaN(bv) || math.IsNaN(pv) {
			continue
		}
		b = append(b, bv)
		p = append(p, pv)
	}
	return
}

// Return the first label occurring more than once, or "" if all are unique.
func firstDuplicate(labels []string) string {
	seen := make(map[string]bool, len(labels))
	for _, l := range labels {
		if seen[l] {
			return l
		}
		seen[l] = true
	}
	return ""
}
