package cmd

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// Tabular input formats, all tab separated:
//   matrix    - header row with column labels, one row label per line
//   vector    - label and value columns, optional header
//   edge list - two gene columns and a weight column, optional header
// Empty fields, NA and NaN load as missing values.

const maxLineBytes = 64 * 1024 * 1024

func newFileScanner(file *os.File) *bufio.Scanner {
	scanner := bufio.NewScanner(file)
	// Rows of wide sample matrices overflow the default token buffer
	scanner.Buffer(make([]byte, 1024*1024), maxLineBytes)
	return scanner
}

func parseValue(field string) (float64, error) {
	switch field {
	case "", "NA", "NaN", "nan":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(field, 64)
}

// ReadMatrixTSV reads a labelled matrix: column labels on the first line
// (the leading index cell is ignored), a row label and its values per line.
func ReadMatrixTSV(fileName string) (*Matrix, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := newFileScanner(file)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s is empty", ErrShapeMismatch, fileName)
	}
	header := strings.Split(scanner.Text(), "\t")
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: %s header has no column labels", ErrShapeMismatch, fileName)
	}
	colLabels := header[1:]

	var rowLabels []string
	var data [][]float64
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		rowLabels = append(rowLabels, fields[0])
		row := make([]float64, 0, len(fields)-1)
		for _, f := range fields[1:] {
			v, err := parseValue(f)
			if err != nil {
				return nil, fmt.Errorf("%s row %q: %v", fileName, fields[0], err)
			}
			row = append(row, v)
		}
		data = append(data, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	m, err := NewMatrix(rowLabels, colLabels, data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	return m, nil
}

// ReadVectorTSV reads a two column label/value file, e.g. indegrees per
// gene. A header line is detected when its value field is not numeric.
func ReadVectorTSV(fileName string) (*Vector, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := newFileScanner(file)
	var labels []string
	var values []float64
	first := true
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) != 2 {
			return nil, fmt.Errorf("%w: %s has %d columns, expected 2", ErrShapeMismatch, fileName, len(fields))
		}
		v, err := parseValue(fields[1])
		if err != nil {
			if first {
				first = false
				continue
			}
			return nil, fmt.Errorf("%s label %q: %v", fileName, fields[0], err)
		}
		first = false
		labels = append(labels, fields[0])
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	vec, err := NewVector(labels, values)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	return vec, nil
}

// ReadEdgeListTSV reads a three column gene1/gene2/weight file into a
// vector keyed by composite "gene1:gene2" labels, e.g. PANDA edge weights.
func ReadEdgeListTSV(fileName string) (*Vector, error) {
	file, err := os.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := newFileScanner(file)
	var labels []string
	var values []float64
	first := true
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) != 3 {
			return nil, fmt.Errorf("%w: %s has %d columns, expected 3", ErrShapeMismatch, fileName, len(fields))
		}
		v, err := parseValue(fields[2])
		if err != nil {
			if first {
				first = false
				continue
			}
			return nil, fmt.Errorf("%s edge %q-%q: %v", fileName, fields[0], fields[1], err)
		}
		first = false
		labels = append(labels, fields[0]+labelSep+fields[1])
		values = append(values, v)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	vec, err := NewVector(labels, values)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	return vec, nil
}
