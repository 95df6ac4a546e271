package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/born-ml/mlnotes/internal/tensor"
)

// CSVOptions controls LoadCSV.
type CSVOptions struct {
	Header     bool    // skip the first record
	Scale      float64 // features are multiplied by Scale (0 means 1)
	MaxSamples int     // 0 = load all
}

// LoadCSV loads a dataset from a CSV file.
//
// Format (Kaggle-style): the first column is the integer class label, the
// remaining columns are numeric features.
//
//	label,f0,f1,...
//	5,0,0,12,...
func LoadCSV(filename string, opts CSVOptions) (*Dataset, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return ReadCSV(file, opts)
}

// ReadCSV is LoadCSV for an already open reader.
func ReadCSV(r io.Reader, opts CSVOptions) (*Dataset, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	if opts.Header {
		if len(records) == 0 {
			return nil, fmt.Errorf("CSV file is empty or missing header")
		}
		records = records[1:]
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file has no samples")
	}
	if opts.MaxSamples > 0 && len(records) > opts.MaxSamples {
		records = records[:opts.MaxSamples]
	}
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}

	width := len(records[0])
	if width < 2 {
		return nil, fmt.Errorf("CSV rows need a label and at least one feature, got %d columns", width)
	}

	features := make([]float64, 0, len(records)*(width-1))
	labels := make([]int, len(records))

	for i, record := range records {
		if len(record) != width {
			return nil, fmt.Errorf("invalid record length at row %d: got %d, want %d", i+1, len(record), width)
		}

		label, err := strconv.Atoi(record[0])
		if err != nil {
			return nil, fmt.Errorf("invalid label at row %d: %w", i+1, err)
		}
		labels[i] = label

		for j := 1; j < width; j++ {
			v, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				return nil, fmt.Errorf("invalid feature at row %d, column %d: %w", i+1, j+1, err)
			}
			features = append(features, v*scale)
		}
	}

	x, err := tensor.FromSlice(features, tensor.Shape{len(records), width - 1})
	if err != nil {
		return nil, err
	}
	return New(x, labels)
}
