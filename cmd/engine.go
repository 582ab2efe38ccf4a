package cmd

import (
	"math"
	"sort"
	"sync"
)

// Metric names of the four comparable network quantities.
const (
	MetricEdgeWeight   = "edge_weight"
	MetricIndegree     = "indegree"
	MetricExpression   = "expression"
	MetricCoexpression = "coexpression"
)

// allMetrics fixes the metric order within each sparsity level of the report.
var allMetrics = []string{MetricEdgeWeight, MetricIndegree, MetricExpression, MetricCoexpression}

// Dataset groups the comparable quantities derived from one expression
// input. Absent quantities are nil and their report rows are omitted.
type Dataset struct {
	Expression   *Matrix
	Coexpression *Matrix
	Indegree     *Vector
	EdgeWeights  *Vector
}

// PerturbedDataset is a Dataset produced at a given sparsity level.
type PerturbedDataset struct {
	Level float64
	Dataset
}

// quantity returns the metric's values flattened to a labelled vector, or
// nil when the dataset lacks that quantity.
func (d *Dataset) quantity(metric string) *Vector {
	switch metric {
	case MetricExpression:
		if d.Expression != nil {
			return d.Expression.Flatten()
		}
	case MetricCoexpression:
		if d.Coexpression != nil {
			return d.Coexpression.Flatten()
		}
	case MetricIndegree:
		return d.Indegree
	case MetricEdgeWeight:
		return d.EdgeWeights
	}
	return nil
}

// ReportRow is the outcome of one (sparsity level, metric) comparison.
// Err is set when the unit failed; other units proceed regardless.
type ReportRow struct {
	Level        float64
	Metric       string
	Corr         CorrelationResult
	MeanAbsError float64 // coexpression only, NaN otherwise
	Err          error
}

// ComputeSummary compares every perturbed dataset against the baseline for
// each metric both sides expose. Units are independent pure functions of
// the inputs, so they run fork-join in parallel and are joined by index
// before the report is ordered by (level, metric). An empty perturbed
// sequence yields an empty report.
func ComputeSummary(baseline *Dataset, perturbed []PerturbedDataset) []ReportRow {
	baseVectors := make(map[string]*Vector, len(allMetrics))
	for _, metric := range allMetrics {
		if v := baseline.quantity(metric); v != nil {
			baseVectors[metric] = v
		}
	}

	type unit struct {
		level  float64
		metric string
		base   *Vector
		pert   *Vector
	}
	var units []unit
	for _, pd := range perturbed {
		for _, metric := range allMetrics {
			base, ok := baseVectors[metric]
			if !ok {
				continue
			}
			pert := pd.quantity(metric)
			if pert == nil {
				continue
			}
			units = append(units, unit{pd.Level, metric, base, pert})
		}
	}

	rows := make([]ReportRow, len(units))
	var wg sync.WaitGroup
	for i, u := range units {
		wg.Add(1)
		go func(i int, u unit) {
			defer wg.Done()
			rows[i] = computeUnit(u.level, u.metric, u.base, u.pert)
		}(i, u)
	}
	wg.Wait()

	sort.Slice(rows, func(a, b int) bool {
		if rows[a].Level != rows[b].Level {
			return rows[a].Level < rows[b].Level
		}
		return metricRank(rows[a].Metric) < metricRank(rows[b].Metric)
	})
	return rows
}

func computeUnit(level float64, metric string, base, pert *Vector) ReportRow {
	row := ReportRow{Level: level, Metric: metric, MeanAbsError: math.NaN()}

	b, p := alignByLabel(base, pert)
	res, err := correlate(b, p)
	if err != nil {
		row.Err = err
		return row
	}
	row.Corr = res

	if metric == MetricCoexpression {
		mae, err := meanAbsError(b, p)
		if err != nil {
			row.Err = err
			return row
		}
		row.MeanAbsError = mae
	}
	return row
}

func metricRank(metric string) int {
	for i, m := range allMetrics {
		if m == metric {
			return i
		}
	}
	return len(allMetrics)
}

// AggregateCoexpressionError averages the per-level mean absolute
// co-expression errors of the successful rows. The second return is the
// number of levels contributing; zero means no aggregate is available.
func AggregateCoexpressionError(rows []ReportRow) (float64, int) {
	var sum float64
	var n int
	for _, row := range rows {
		if row.Metric != MetricCoexpression || row.Err != nil {
			continue
		}
		sum += row.MeanAbsError
		n++
	}
	if n == 0 {
		return math.NaN(), 0
	}
	return sum / float64(n), n
}
