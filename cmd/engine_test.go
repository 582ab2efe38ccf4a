package cmd

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustMatrix(t *testing.T, rows, cols []string, data [][]float64) *Matrix {
	t.Helper()
	m, err := NewMatrix(rows, cols, data)
	require.NoError(t, err)
	return m
}

func mustVector(t *testing.T, labels []string, values []float64) *Vector {
	t.Helper()
	v, err := NewVector(labels, values)
	require.NoError(t, err)
	return v
}

func baselineForTest(t *testing.T) *Dataset {
	t.Helper()
	return &Dataset{
		Expression: mustMatrix(t,
			[]string{"g1", "g2"}, []string{"s1", "s2", "s3"},
			[][]float64{{1, 2, 3}, {4, 5, 6}}),
		Coexpression: mustMatrix(t,
			[]string{"g1", "g2"}, []string{"g1", "g2"},
			[][]float64{{1.0, 0.5}, {0.5, 0.9}}),
		Indegree:    mustVector(t, []string{"g1", "g2", "g3"}, []float64{1, 2, 3}),
		EdgeWeights: mustVector(t, []string{"tf1:g1", "tf1:g2", "tf2:g1"}, []float64{0.2, 0.4, 0.6}),
	}
}

// shiftMatrix returns a copy with a constant added to every entry, which
// preserves correlation while producing a known mean absolute error.
func shiftMatrix(m *Matrix, c float64) *Matrix {
	data := make([][]float64, len(m.Data))
	for i, row := range m.Data {
		data[i] = make([]float64, len(row))
		for j, v := range row {
			data[i][j] = v + c
		}
	}
	return &Matrix{RowLabels: m.RowLabels, ColLabels: m.ColLabels, Data: data}
}

func TestComputeSummaryIdenticalDatasets(t *testing.T) {
	baseline := baselineForTest(t)
	perturbed := []PerturbedDataset{{Level: 0.1, Dataset: *baseline}}

	rows := ComputeSummary(baseline, perturbed)
	require.Len(t, rows, 4)
	for _, row := range rows {
		require.NoError(t, row.Err)
		require.InDelta(t, 1.0, row.Corr.Pearson, statEps, row.Metric)
		require.InDelta(t, 1.0, row.Corr.Spearman, statEps, row.Metric)
		if row.Metric == MetricCoexpression {
			require.InDelta(t, 0.0, row.MeanAbsError, statEps)
		} else {
			require.True(t, math.IsNaN(row.MeanAbsError), row.Metric)
		}
	}
}

func TestComputeSummaryRowOrder(t *testing.T) {
	baseline := baselineForTest(t)
	perturbed := []PerturbedDataset{
		{Level: 0.2, Dataset: *baseline},
		{Level: 0.1, Dataset: *baseline},
	}

	rows := ComputeSummary(baseline, perturbed)
	require.Len(t, rows, 8)
	wantMetrics := []string{MetricEdgeWeight, MetricIndegree, MetricExpression, MetricCoexpression}
	for i, row := range rows {
		wantLevel := 0.1
		if i >= 4 {
			wantLevel = 0.2
		}
		require.Equal(t, wantLevel, row.Level)
		require.Equal(t, wantMetrics[i%4], row.Metric)
	}
}

func TestComputeSummaryAggregateError(t *testing.T) {
	baseline := baselineForTest(t)
	perturbed := []PerturbedDataset{
		{Level: 0.1, Dataset: Dataset{Coexpression: shiftMatrix(baseline.Coexpression, 0.1)}},
		{Level: 0.2, Dataset: Dataset{Coexpression: shiftMatrix(baseline.Coexpression, 0.3)}},
	}

	rows := ComputeSummary(baseline, perturbed)
	require.Len(t, rows, 2)
	require.InDelta(t, 0.1, rows[0].MeanAbsError, statEps)
	require.InDelta(t, 0.3, rows[1].MeanAbsError, statEps)

	// The aggregate must reconstruct as the arithmetic mean of the per-level errors
	agg, n := AggregateCoexpressionError(rows)
	require.Equal(t, 2, n)
	require.InDelta(t, 0.2, agg, statEps)

	var sum float64
	for _, row := range rows {
		sum += row.MeanAbsError
	}
	require.InDelta(t, sum/float64(len(rows)), agg, statEps)
}

func TestComputeSummaryPartialFailure(t *testing.T) {
	baseline := baselineForTest(t)
	pd := PerturbedDataset{Level: 0.5, Dataset: *baseline}
	// Constant indegrees make Pearson undefined for that unit only
	pd.Indegree = mustVector(t, []string{"g1", "g2", "g3"}, []float64{5, 5, 5})

	rows := ComputeSummary(baseline, []PerturbedDataset{pd})
	require.Len(t, rows, 4)

	var failed, succeeded int
	for _, row := range rows {
		if row.Err != nil {
			failed++
			require.Equal(t, MetricIndegree, row.Metric)
			require.ErrorIs(t, row.Err, ErrDegenerateVariance)
		} else {
			succeeded++
		}
	}
	require.Equal(t, 1, failed)
	require.Equal(t, 3, succeeded)
}

func TestComputeSummaryOmitsAbsentMetrics(t *testing.T) {
	baseline := baselineForTest(t)
	// No coexpression at this level: the row is omitted, not defaulted
	pd := PerturbedDataset{Level: 0.3, Dataset: *baseline}
	pd.Coexpression = nil

	rows := ComputeSummary(baseline, []PerturbedDataset{pd})
	require.Len(t, rows, 3)
	for _, row := range rows {
		require.NotEqual(t, MetricCoexpression, row.Metric)
	}

	_, n := AggregateCoexpressionError(rows)
	require.Equal(t, 0, n)
}

func TestComputeSummaryEmptyPerturbed(t *testing.T) {
	rows := ComputeSummary(baselineForTest(t), nil)
	require.Empty(t, rows)
}

func TestComputeSummaryInsufficientOverlap(t *testing.T) {
	baseline := &Dataset{Indegree: mustVector(t, []string{"g1", "g2", "g3"}, []float64{1, 2, 3})}
	pd := PerturbedDataset{
		Level:   0.9,
		Dataset: Dataset{Indegree: mustVector(t, []string{"g3", "g4"}, []float64{3, 4})},
	}

	rows := ComputeSummary(baseline, []PerturbedDataset{pd})
	require.Len(t, rows, 1)
	require.ErrorIs(t, rows[0].Err, ErrInsufficientData)
}
