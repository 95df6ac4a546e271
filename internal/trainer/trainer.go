// Package trainer runs mini-batch gradient descent on a TwoLayerNet.
package trainer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/born-ml/mlnotes/internal/nn"
	"github.com/born-ml/mlnotes/internal/optim"
	"github.com/born-ml/mlnotes/internal/tensor"
)

// Defaults used when Options fields are zero.
const (
	DefaultLearningRate = 1e-3
	DefaultBatchSize    = 16
)

// Options configures a training run.
type Options struct {
	Epochs       int
	LearningRate float64      // 0 selects DefaultLearningRate; must not be negative
	BatchSize    int          // 0 selects DefaultBatchSize
	Out          io.Writer    // accuracy report; default os.Stdout
	Logger       *slog.Logger // per-epoch progress; default slog.Default()
}

// Train optimizes model with plain SGD.
//
// The training set is truncated to a multiple of BatchSize and split into
// batches that are visited in order every epoch: forward, L2 loss, backward,
// then param -= grad * lr for W1, b1, W2, b2. No shuffling.
//
// After the last epoch the accuracy on the full (untruncated) training set
// and on the validation set is written to Out as
//
//	Train Accuracy: <acc>
//	Val Accuracy: <acc>
func Train(
	model *nn.TwoLayerNet,
	trainData *tensor.Tensor,
	trainLabels []int,
	valData *tensor.Tensor,
	valLabels []int,
	opts Options,
) error {
	if opts.Epochs < 0 {
		return fmt.Errorf("trainer: epochs must be >= 0 (got %d)", opts.Epochs)
	}
	if opts.BatchSize < 0 {
		return fmt.Errorf("trainer: batch size must be > 0 (got %d)", opts.BatchSize)
	}
	if opts.LearningRate < 0 {
		return fmt.Errorf("trainer: learning rate must be >= 0 (got %g)", opts.LearningRate)
	}
	if opts.BatchSize == 0 {
		opts.BatchSize = DefaultBatchSize
	}
	if opts.LearningRate == 0 {
		opts.LearningRate = DefaultLearningRate
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if trainData == nil {
		return errors.New("trainer: training data is nil")
	}
	if trainData.Rows() != len(trainLabels) {
		return fmt.Errorf("trainer: %d training rows but %d labels", trainData.Rows(), len(trainLabels))
	}
	if valRows := rowsOf(valData); valRows != len(valLabels) {
		return fmt.Errorf("trainer: %d validation rows but %d labels", valRows, len(valLabels))
	}

	batches := Batches(trainData, trainLabels, opts.BatchSize)
	if dropped := len(trainLabels) - len(batches)*opts.BatchSize; dropped > 0 {
		opts.Logger.Debug("dropping trailing training rows",
			"rows", dropped, "batch_size", opts.BatchSize)
	}

	sgd := optim.NewSGD(optim.SGDConfig{LR: opts.LearningRate})

	for epoch := 0; epoch < opts.Epochs; epoch++ {
		var total float64
		for _, b := range batches {
			out, cache := model.Forward(b.X)
			loss, dout := nn.L2Loss(out, b.Labels)
			model.Backward(dout, cache)
			sgd.Step(model.Params(), model.Grads())
			total += loss
		}
		if len(batches) > 0 {
			opts.Logger.Debug("epoch complete",
				"epoch", epoch+1, "epochs", opts.Epochs, "mean_loss", total/float64(len(batches)))
		}
	}

	trainAcc := nn.Accuracy(model, trainData, trainLabels)
	valAcc := nn.Accuracy(model, valData, valLabels)

	if _, err := fmt.Fprintf(opts.Out, "Train Accuracy: %v\nVal Accuracy: %v\n", trainAcc, valAcc); err != nil {
		return fmt.Errorf("trainer: write report: %w", err)
	}

	return nil
}

// rowsOf returns the row count of t, treating nil as an empty set.
func rowsOf(t *tensor.Tensor) int {
	if t == nil {
		return 0
	}
	return t.Rows()
}

// Batch is a contiguous slice of the training set.
type Batch struct {
	X      *tensor.Tensor
	Labels []int
}

// Batches splits data into len(labels)/size full batches, dropping the
// remainder. Batch tensors are views into data.
func Batches(data *tensor.Tensor, labels []int, size int) []Batch {
	n := len(labels) / size
	out := make([]Batch, 0, n)
	for i := 0; i < n; i++ {
		start, end := i*size, (i+1)*size
		out = append(out, Batch{
			X:      data.SliceRows(start, end),
			Labels: labels[start:end:end],
		})
	}
	return out
}
