package nn

import (
	"fmt"

	"github.com/born-ml/mlnotes/internal/tensor"
)

// OneHot encodes integer class labels as an [len(labels), width] tensor.
// Panics if a label is outside [0, width).
func OneHot(labels []int, width int) *tensor.Tensor {
	out := tensor.Zeros(tensor.Shape{len(labels), width})
	for i, label := range labels {
		if label < 0 || label >= width {
			panic(fmt.Sprintf("one hot: label %d at index %d out of range [0, %d)", label, i, width))
		}
		out.Set(i, label, 1)
	}
	return out
}

// L2Loss computes the squared error between predictions and one-hot labels.
//
//	loss  = sum((pred - onehot)²) / N
//	dpred = 2/N * (pred - onehot)
//
// pred has shape [N, num_classes]; labels holds N class indices.
// N is the batch size, so the loss is summed over classes and averaged over rows.
func L2Loss(pred *tensor.Tensor, labels []int) (float64, *tensor.Tensor) {
	n := pred.Rows()
	if len(labels) != n {
		panic(fmt.Sprintf("l2 loss: %d labels for %d predictions", len(labels), n))
	}

	diff := pred.Sub(OneHot(labels, pred.Cols()))
	loss := diff.Mul(diff).Sum() / float64(n)
	dpred := diff.Scale(2 / float64(n))

	return loss, dpred
}
