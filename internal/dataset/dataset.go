// Package dataset loads labelled feature matrices for the trainer.
package dataset

import (
	"fmt"

	"github.com/born-ml/mlnotes/internal/tensor"
)

// Dataset holds samples as rows of X with one integer class label per row.
type Dataset struct {
	X      *tensor.Tensor // [num_samples, num_features]
	Labels []int          // [num_samples]
}

// New validates that X and labels agree and wraps them.
func New(x *tensor.Tensor, labels []int) (*Dataset, error) {
	if len(x.Shape()) != 2 {
		return nil, fmt.Errorf("dataset: expected 2D features, got shape %v", x.Shape())
	}
	if x.Rows() != len(labels) {
		return nil, fmt.Errorf("dataset: %d rows but %d labels", x.Rows(), len(labels))
	}
	for i, l := range labels {
		if l < 0 {
			return nil, fmt.Errorf("dataset: negative label %d at row %d", l, i)
		}
	}
	return &Dataset{X: x, Labels: labels}, nil
}

// NumSamples returns the number of samples.
func (d *Dataset) NumSamples() int {
	return len(d.Labels)
}

// NumFeatures returns the width of each sample.
func (d *Dataset) NumFeatures() int {
	return d.X.Cols()
}

// NumClasses returns max(label) + 1, or 0 for an empty dataset.
func (d *Dataset) NumClasses() int {
	n := 0
	for _, l := range d.Labels {
		if l+1 > n {
			n = l + 1
		}
	}
	return n
}

// Split splits the dataset into train and validation sets.
//
// The last validationRatio of the rows become the validation set; order is
// preserved. Both halves share storage with d.
func (d *Dataset) Split(validationRatio float64) (train, validation *Dataset) {
	numSamples := d.NumSamples()
	splitIdx := int(float64(numSamples) * (1.0 - validationRatio))
	splitIdx = min(max(splitIdx, 0), numSamples)

	return &Dataset{
			X:      d.X.SliceRows(0, splitIdx),
			Labels: d.Labels[:splitIdx:splitIdx],
		}, &Dataset{
			X:      d.X.SliceRows(splitIdx, numSamples),
			Labels: d.Labels[splitIdx:],
		}
}
