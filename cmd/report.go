package cmd

import (
	"bufio"
	"math"
	"os"
	"strconv"
	"strings"
)

// Report columns. Failed units keep their row with NA values and the error
// kind in the status column. The final aggregate row carries the mean of
// the per-level co-expression errors, with n_pairs holding the number of
// contributing levels.
var reportHeader = []string{
	"sparsity_level", "metric", "pearson_r", "spearman_r", "n_pairs", "mean_abs_error", "status",
}

// WriteReport writes the full report as a tab separated file, in one pass
// after all computation has finished.
func WriteReport(fileName string, rows []ReportRow) error {
	out, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	if _, err := w.WriteString(strings.Join(reportHeader, "\t") + "\n"); err != nil {
		return err
	}

	for _, row := range rows {
		fields := []string{
			formatLevel(row.Level),
			row.Metric,
		}
		if row.Err != nil {
			fields = append(fields, "NA", "NA", "NA", "NA", errorKind(row.Err))
		} else {
			fields = append(fields,
				formatStat(row.Corr.Pearson),
				formatStat(row.Corr.Spearman),
				strconv.Itoa(row.Corr.NPairs),
				formatStat(row.MeanAbsError),
				"ok",
			)
		}
		if _, err := w.WriteString(strings.Join(fields, "\t") + "\n"); err != nil {
			return err
		}
	}

	if agg, n := AggregateCoexpressionError(rows); n > 0 {
		fields := []string{
			"aggregate", MetricCoexpression, "NA", "NA", strconv.Itoa(n), formatStat(agg), "ok",
		}
		if _, err := w.WriteString(strings.Join(fields, "\t") + "\n"); err != nil {
			return err
		}
	}

	return w.Flush()
}

func formatLevel(level float64) string {
	return strconv.FormatFloat(level, 'g', -1, 64)
}

func formatStat(v float64) string {
	if math.IsNaN(v) {
		return "NA"
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
