package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var baselineDir string
var perturbedDir string
var levelsArg string
var metricsArg string
var reportFile string

// File names of the comparable quantities inside a dataset directory
var metricFiles = map[string]string{
	MetricExpression:   "expression.tsv",
	MetricCoexpression: "coexpression.tsv",
	MetricIndegree:     "indegree.tsv",
	MetricEdgeWeight:   "edge_weights.tsv",
}

func init() {
	// Directory with the unperturbed (no sparsity) quantities
	summarizeCmd.Flags().StringVarP(&baselineDir, "baseline", "b", "", "Directory with the baseline dataset")
	// Directory with one subdirectory per sparsity level
	summarizeCmd.Flags().StringVarP(&perturbedDir, "perturbed", "p", "", "Directory with per-level perturbed datasets")
	// Restrict or order the sparsity levels; defaults to every numeric subdirectory
	summarizeCmd.Flags().StringVarP(&levelsArg, "levels", "l", "", "Comma-separated sparsity levels to compare")
	// Restrict the metrics; defaults to all four
	summarizeCmd.Flags().StringVarP(&metricsArg, "metrics", "m", "", "Comma-separated metrics to compute")
	// Output report
	summarizeCmd.Flags().StringVarP(&reportFile, "output", "o", "sparsity_report.tsv", "File to write the report to")

	rootCmd.AddCommand(summarizeCmd)
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarise network changes across sparsity levels",
	Long: "Compare LIONESS-derived quantities (edge weights, indegrees, expression,\n" +
		"co-expression) of sparsified datasets against the unperturbed baseline and\n" +
		"report Pearson/Spearman correlations and mean absolute co-expression error",
	Run: func(cmd *cobra.Command, args []string) {
		if baselineDir == "" || perturbedDir == "" {
			log.Fatal("both --baseline and --perturbed are required")
		}

		metrics, err := parseMetrics(metricsArg)
		if err != nil {
			log.Fatal(err)
		}

		baseline, err := loadDataset(baselineDir, metrics)
		if err != nil {
			log.Fatal(err)
		}
		for _, metric := range metrics {
			if baseline.quantity(metric) == nil {
				log.Printf("baseline has no %s data, skipping that metric", metric)
			}
		}

		levels, err := resolveLevels(perturbedDir, levelsArg)
		if err != nil {
			log.Fatal(err)
		}

		perturbed := make([]PerturbedDataset, 0, len(levels))
		for _, lv := range levels {
			ds, err := loadDataset(filepath.Join(perturbedDir, lv.name), metrics)
			if err != nil {
				log.Fatal(err)
			}
			perturbed = append(perturbed, PerturbedDataset{Level: lv.value, Dataset: *ds})
		}

		rows := ComputeSummary(baseline, perturbed)

		var failed int
		for _, row := range rows {
			if row.Err != nil {
				failed++
				log.Printf("%s at level %s failed: %v", row.Metric, formatLevel(row.Level), row.Err)
			}
		}
		if len(rows) > 0 && failed == len(rows) {
			log.Fatal("every metric/level comparison failed")
		}

		if err := WriteReport(reportFile, rows); err != nil {
			log.Fatal(err)
		}
		log.Printf("wrote %d rows (%d failed) to %s", len(rows), failed, reportFile)
	},
}

type sparsityLevel struct {
	name  string
	value float64
}

func parseMetrics(arg string) ([]string, error) {
	if arg == "" {
		return allMetrics, nil
	}
	var metrics []string
	for _, m := range strings.Split(arg, ",") {
		m = strings.TrimSpace(m)
		if _, ok := metricFiles[m]; !ok {
			return nil, fmt.Errorf("unknown metric %q, expected one of %s", m, strings.Join(allMetrics, ", "))
		}
		metrics = append(metrics, m)
	}
	return metrics, nil
}

// resolveLevels takes the --levels list or, when empty, every numerically
// named subdirectory of the perturbed directory, sorted ascending.
func resolveLevels(dir string, arg string) ([]sparsityLevel, error) {
	var levels []sparsityLevel
	if arg != "" {
		for _, tok := range strings.Split(arg, ",") {
			tok = strings.TrimSpace(tok)
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, fmt.Errorf("invalid sparsity level %q: %v", tok, err)
			}
			levels = append(levels, sparsityLevel{name: tok, value: v})
		}
	} else {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if !entry.IsDir() {
				continue
			}
			v, err := strconv.ParseFloat(entry.Name(), 64)
			if err != nil {
				continue
			}
			levels = append(levels, sparsityLevel{name: entry.Name(), value: v})
		}
	}

	sort.Slice(levels, func(a, b int) bool { return levels[a].value < levels[b].value })
	for i := 1; i < len(levels); i++ {
		if levels[i].value == levels[i-1].value {
			return nil, fmt.Errorf("duplicate sparsity level %s", levels[i].name)
		}
	}
	return levels, nil
}

// loadDataset reads the requested metric files from a dataset directory.
// Missing files are allowed; their metrics are simply absent.
func loadDataset(dir string, metrics []string) (*Dataset, error) {
	ds := &Dataset{}
	for _, metric := range metrics {
		fileName := filepath.Join(dir, metricFiles[metric])
		if _, err := os.Stat(fileName); os.IsNotExist(err) {
			continue
		} else if err != nil {
			return nil, err
		}

		switch metric {
		case MetricExpression:
			m, err := ReadMatrixTSV(fileName)
			if err != nil {
				return nil, err
			}
			ds.Expression = m
		case MetricCoexpression:
			m, err := ReadMatrixTSV(fileName)
			if err != nil {
				return nil, err
			}
			ds.Coexpression = m
		case MetricIndegree:
			v, err := ReadVectorTSV(fileName)
			if err != nil {
				return nil, err
			}
			ds.Indegree = v
		case MetricEdgeWeight:
			v, err := ReadEdgeListTSV(fileName)
			if err != nil {
				return nil, err
			}
			ds.EdgeWeights = v
		}
	}
	return ds, nil
}
