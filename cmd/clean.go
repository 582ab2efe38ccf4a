package cmd

import (
	"bufio"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/stat"
)

var cleanExprFile string
var motifFile string
var ppiFile string
var cleanOutDir string

func init() {
	// Expression matrix (genes x samples)
	cleanCmd.Flags().StringVarP(&cleanExprFile, "expression", "e", "", "Input expression matrix file")
	// Gene regulation prior (tf, gene, weight)
	cleanCmd.Flags().StringVarP(&motifFile, "motif", "g", "", "Motif prior edge list to restrict to cleaned genes")
	// Protein-protein interaction prior (tf, tf, weight)
	cleanCmd.Flags().StringVarP(&ppiFile, "ppi", "q", "", "PPI prior edge list to restrict to motif TFs")
	// Output directory
	cleanCmd.Flags().StringVarP(&cleanOutDir, "output", "o", "cleaned/", "Directory to write cleaned files to")

	rootCmd.AddCommand(cleanCmd)
}

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean expression and prior network data",
	Long: "Drop uninformative genes (all missing or zero variance) from an expression\n" +
		"matrix and restrict motif and PPI priors to the surviving genes and TFs,\n" +
		"ahead of PANDA/LIONESS network inference",
	Run: func(cmd *cobra.Command, args []string) {
		if cleanExprFile == "" {
			log.Fatal("--expression is required")
		}

		expr, err := ReadMatrixTSV(cleanExprFile)
		if err != nil {
			log.Fatal(err)
		}
		cleaned, dropped := CleanExpression(expr)
		log.Printf("kept %d of %d genes (%d dropped)",
			len(cleaned.RowLabels), len(expr.RowLabels), len(dropped))

		if _, err := os.Stat(cleanOutDir); os.IsNotExist(err) {
			os.Mkdir(cleanOutDir, 0700)
		}

		if err := WriteMatrixTSV(filepath.Join(cleanOutDir, "expression.tsv"), cleaned); err != nil {
			log.Fatal(err)
		}

		keptGenes := make(map[string]bool, len(cleaned.RowLabels))
		for _, g := range cleaned.RowLabels {
			keptGenes[g] = true
		}

		var motifTFs map[string]bool
		if motifFile != "" {
			motif, err := ReadEdgeListTSV(motifFile)
			if err != nil {
				log.Fatal(err)
			}
			// Keep only regulatory edges whose target gene survived
			filtered := filterEdges(motif, func(tf, gene string) bool { return keptGenes[gene] })
			log.Printf("motif prior: kept %d of %d edges", len(filtered.Labels), len(motif.Labels))
			if err := WriteEdgeListTSV(filepath.Join(cleanOutDir, "motif_prior.tsv"), filtered); err != nil {
				log.Fatal(err)
			}
			motifTFs = make(map[string]bool)
			for _, l := range filtered.Labels {
				tf, _, _ := strings.Cut(l, labelSep)
				motifTFs[tf] = true
			}
		}

		if ppiFile != "" {
			if motifTFs == nil {
				log.Fatal("--ppi requires --motif to determine the TF set")
			}
			ppi, err := ReadEdgeListTSV(ppiFile)
			if err != nil {
				log.Fatal(err)
			}
			filtered := filterEdges(ppi, func(a, b string) bool { return motifTFs[a] && motifTFs[b] })
			log.Printf("ppi prior: kept %d of %d edges", len(filtered.Labels), len(ppi.Labels))
			if err := WriteEdgeListTSV(filepath.Join(cleanOutDir, "ppi_prior.tsv"), filtered); err != nil {
				log.Fatal(err)
			}
		}
	},
}

// CleanExpression drops genes that carry no information for co-expression:
// rows that are entirely missing or have zero variance over their
// non-missing values. Returns the cleaned matrix and the dropped labels.
func CleanExpression(m *Matrix) (*Matrix, []string) {
	var rowLabels []string
	var data [][]float64
	var dropped []string

	for i, label := range m.RowLabels {
		present := make([]float64, 0, len(m.Data[i]))
		for _, v := range m.Data[i] {
			if !math.IsNaN(v) {
				present = append(present, v)
			}
		}
		if len(present) == 0 || stat.Variance(present, nil) == 0 {
			dropped = append(dropped, label)
			continue
		}
		rowLabels = append(rowLabels, label)
		data = append(data, m.Data[i])
	}

	return &Matrix{RowLabels: rowLabels, ColLabels: m.ColLabels, Data: data}, dropped
}

// filterEdges keeps the edges whose endpoint labels satisfy keep.
func filterEdges(edges *Vector, keep func(a, b string) bool) *Vector {
	out := &Vector{}
	for i, l := range edges.Labels {
		a, b, _ := strings.Cut(l, labelSep)
		if keep(a, b) {
			out.Labels = append(out.Labels, l)
			out.Values = append(out.Values, edges.Values[i])
		}
	}
	return out
}

// WriteMatrixTSV writes a labelled matrix with a header row of column
// labels and one row label per line.
func WriteMatrixTSV(fileName string, m *Matrix) error {
	out, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	if _, err := w.WriteString("gene\t" + strings.Join(m.ColLabels, "\t") + "\n"); err != nil {
		return err
	}
	for i, label := range m.RowLabels {
		fields := make([]string, 0, len(m.Data[i])+1)
		fields = append(fields, label)
		for _, v := range m.Data[i] {
			fields = append(fields, formatCell(v))
		}
		if _, err := w.WriteString(strings.Join(fields, "\t") + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}

// WriteEdgeListTSV writes a vector of composite-labelled edges back out as
// three gene1/gene2/weight columns.
func WriteEdgeListTSV(fileName string, edges *Vector) error {
	out, err := os.Create(fileName)
	if err != nil {
		return err
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	for i, l := range edges.Labels {
		a, b, _ := strings.Cut(l, labelSep)
		if _, err := w.WriteString(a + "\t" + b + "\t" + formatCell(edges.Values[i]) + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}

func formatCell(v float64) string {
	if math.IsNaN(v) {
		return "NA"
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
