package cmd

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteReport(t *testing.T) {
	rows := []ReportRow{
		{
			Level:        0.1,
			Metric:       MetricIndegree,
			Corr:         CorrelationResult{Pearson: 0.95, Spearman: 0.9, NPairs: 100},
			MeanAbsError: math.NaN(),
		},
		{
			Level:        0.1,
			Metric:       MetricCoexpression,
			Corr:         CorrelationResult{Pearson: 0.8, Spearman: 0.7, NPairs: 400},
			MeanAbsError: 0.1,
		},
		{
			Level:        0.2,
			Metric:       MetricCoexpression,
			Corr:         CorrelationResult{Pearson: 0.6, Spearman: 0.5, NPairs: 400},
			MeanAbsError: 0.3,
		},
		{
			Level:  0.3,
			Metric: MetricExpression,
			Err:    fmt.Errorf("unit: %w", ErrDegenerateVariance),
		},
	}

	fileName := filepath.Join(t.TempDir(), "report.tsv")
	require.NoError(t, WriteReport(fileName, rows))

	content, err := os.ReadFile(fileName)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	require.Len(t, lines, 6) // header + 4 rows + aggregate

	require.Equal(t, strings.Join(reportHeader, "\t"), lines[0])
	require.Equal(t, "0.1\tindegree\t0.950000\t0.900000\t100\tNA\tok", lines[1])
	require.Equal(t, "0.1\tcoexpression\t0.800000\t0.700000\t400\t0.100000\tok", lines[2])

	// A failed unit keeps its row with the error kind, not numbers
	require.Equal(t, "0.3\texpression\tNA\tNA\tNA\tNA\tdegenerate_variance", lines[4])

	// Aggregate of the per-level coexpression errors: (0.1 + 0.3) / 2
	require.Equal(t, "aggregate\tcoexpression\tNA\tNA\t2\t0.200000\tok", lines[5])
}

func TestWriteReportEmpty(t *testing.T) {
	fileName := filepath.Join(t.TempDir(), "report.tsv")
	require.NoError(t, WriteReport(fileName, nil))

	content, err := os.ReadFile(fileName)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	require.Len(t, lines, 1) // header only, no aggregate without coexpression rows
}

func TestErrorKindNames(t *testing.T) {
	cases := map[error]string{
		ErrInvalidLabel:                       "invalid_label",
		ErrInsufficientData:                   "insufficient_data",
		ErrDegenerateVariance:                 "degenerate_variance",
		ErrShapeMismatch:                      "shape_mismatch",
		fmt.Errorf("ctx: %w", ErrShapeMismatch): "shape_mismatch",
	}
	for err, want := range cases {
		if got := errorKind(err); got != want {
			t.Errorf("%v => %q, want %q", err, got, want)
		}
	}
}
