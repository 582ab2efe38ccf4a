package cmd

import (
	"fmt"
	"log"
	"math"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var describeFile string

func init() {
	describeCmd.Flags().StringVarP(&describeFile, "input", "i", "", "Input tabular file")
	rootCmd.AddCommand(describeCmd)
}

var describeCmd = &cobra.Command{
	Use:   "describe",
	Short: "Describe a tabular input file",
	Long:  "Detect whether a file is a matrix, vector or edge list and print its shape,\nlabel counts and number of missing values",
	Run: func(cmd *cobra.Command, args []string) {
		if describeFile == "" {
			log.Fatal("--input is required")
		}
		if err := Describe(describeFile); err != nil {
			log.Fatal(err)
		}
	},
}

// Describe detects the tabular kind from the column count of the first
// line and prints a short summary to stdout.
func Describe(fileName string) error {
	cols, err := firstLineColumns(fileName)
	if err != nil {
		return err
	}

	switch cols {
	case 2:
		v, err := ReadVectorTSV(fileName)
		if err != nil {
			return err
		}
		fmt.Printf("vector\t%d entries\t%d missing\n", len(v.Values), countMissing(v.Values))
	case 3:
		v, err := ReadEdgeListTSV(fileName)
		if err != nil {
			return err
		}
		fmt.Printf("edge list\t%d edges\t%d missing\n", len(v.Values), countMissing(v.Values))
	default:
		m, err := ReadMatrixTSV(fileName)
		if err != nil {
			return err
		}
		var missing int
		for _, row := range m.Data {
			missing += countMissing(row)
		}
		fmt.Printf("matrix\t%d rows\t%d columns\t%d missing\n",
			len(m.RowLabels), len(m.ColLabels), missing)
	}
	return nil
}

func firstLineColumns(fileName string) (int, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return 0, err
	}
	defer file.Close()

	scanner := newFileScanner(file)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %s is empty", ErrShapeMismatch, fileName)
	}
	return len(strings.Split(scanner.Text(), "\t")), nil
}

func countMissing(values []float64) (n int) {
	for _, v := range values {
		if math.IsNaN(v) {
			n++
		}
	}
	return
}
