// Package neural provides the blobs' feedforward brains and the genetic
// machinery (genomes, gene pools, breeding) that evolves their weights.
package neural

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

var (
	ErrInvalidLayout = errors.New("invalid neuron layout")
	ErrInputLength   = errors.New("input length does not match brain input count")
	ErrWeightLength  = errors.New("weight length does not match brain weight count")
)

// Activation selects the squashing function applied to a layer's sums.
type Activation uint8

const (
	Threshold Activation = iota // 1 if sum > 0, else 0
	Sigmoid                     // logistic 1/(1+e^-sum)
)

// ParseActivation maps a config name to an Activation.
func ParseActivation(name string) (Activation, error) {
	switch name {
	case "", "threshold":
		return Threshold, nil
	case "sigmoid":
		return Sigmoid, nil
	}
	return Threshold, fmt.Errorf("unknown activation %q", name)
}

func (a Activation) String() string {
	if a == Sigmoid {
		return "sigmoid"
	}
	return "threshold"
}

func (a Activation) apply(sum float64) float64 {
	if a == Sigmoid {
		return 1 / (1 + math.Exp(-sum))
	}
	if sum > 0 {
		return 1
	}
	return 0
}

// layer is one fully connected weighted layer.
// Row i of weights is neuron i: column 0 is its bias, columns 1.. its input weights.
type layer struct {
	inputs  int
	outputs int
	act     Activation
	weights *mat.Dense
	in      *mat.VecDense // bias-augmented input, element 0 fixed at 1
	sum     *mat.VecDense
}

func newLayer(inputs, outputs int, act Activation) *layer {
	return &layer{
		inputs:  inputs,
		outputs: outputs,
		act:     act,
		weights: mat.NewDense(outputs, inputs+1, nil),
		in:      mat.NewVecDense(inputs+1, nil),
		sum:     mat.NewVecDense(outputs, nil),
	}
}

func (l *layer) weightCount() int {
	return (l.inputs + 1) * l.outputs
}

// putWeights copies neuron-major weights starting at offset and returns the next offset.
func (l *layer) putWeights(offset int, w []float64) int {
	raw := l.weights.RawMatrix()
	cols := l.inputs + 1
	for i := 0; i < l.outputs; i++ {
		copy(raw.Data[i*raw.Stride:i*raw.Stride+cols], w[offset:offset+cols])
		offset += cols
	}
	return offset
}

func (l *layer) appendWeights(dst []float64) []float64 {
	raw := l.weights.RawMatrix()
	cols := l.inputs + 1
	for i := 0; i < l.outputs; i++ {
		dst = append(dst, raw.Data[i*raw.Stride:i*raw.Stride+cols]...)
	}
	return dst
}

func (l *layer) forward(input []float64) []float64 {
	l.in.SetVec(0, 1)
	for i, v := range input {
		l.in.SetVec(i+1, v)
	}
	l.sum.MulVec(l.weights, l.in)

	out := make([]float64, l.outputs)
	for i := range out {
		out[i] = l.act.apply(l.sum.AtVec(i))
	}
	return out
}

// Brain is a fixed-topology feedforward network. It has no learning rule;
// its weights are loaded from a genome.
type Brain struct {
	layout      []int
	layers      []*layer
	weightCount int
}

// WeightCount returns the number of weights a brain with the given layout uses,
// including one bias weight per neuron.
func WeightCount(layout []int) int {
	count := 0
	for i := 0; i < len(layout)-1; i++ {
		count += (layout[i] + 1) * layout[i+1]
	}
	return count
}

// NewBrain builds a brain from a neuron layout (input count first, output count last).
// With no activations every layer uses Threshold; otherwise one activation per
// weighted layer (len(layout)-1) is required.
func NewBrain(layout []int, activations ...Activation) (*Brain, error) {
	if len(layout) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 layers, got %d", ErrInvalidLayout, len(layout))
	}
	if len(activations) > 0 && len(activations) != len(layout)-1 {
		return nil, fmt.Errorf("%w: %d activations for %d layers", ErrInvalidLayout, len(activations), len(layout)-1)
	}

	b := &Brain{
		layout: append([]int(nil), layout...),
		layers: make([]*layer, len(layout)-1),
	}
	for i := range b.layers {
		if layout[i] < 1 || layout[i+1] < 1 {
			return nil, fmt.Errorf("%w: layer sizes must be at least 1, got %v", ErrInvalidLayout, layout)
		}
		act := Threshold
		if len(activations) > 0 {
			act = activations[i]
		}
		b.layers[i] = newLayer(layout[i], layout[i+1], act)
		b.weightCount += b.layers[i].weightCount()
	}
	return b, nil
}

// InputCount returns the expected input vector length.
func (b *Brain) InputCount() int { return b.layout[0] }

// OutputCount returns the output vector length.
func (b *Brain) OutputCount() int { return b.layout[len(b.layout)-1] }

// WeightCount returns the number of settable weights.
func (b *Brain) WeightCount() int { return b.weightCount }

// Layout returns a copy of the neuron layout.
func (b *Brain) Layout() []int { return append([]int(nil), b.layout...) }

// SetWeights copies weights into the brain, layer by layer, neuron by neuron.
func (b *Brain) SetWeights(w []float64) error {
	if len(w) != b.weightCount {
		return fmt.Errorf("%w: got %d, want %d", ErrWeightLength, len(w), b.weightCount)
	}
	offset := 0
	for _, l := range b.layers {
		offset = l.putWeights(offset, w)
	}
	return nil
}

// Weights returns a copy of the brain's weights in SetWeights order.
func (b *Brain) Weights() []float64 {
	out := make([]float64, 0, b.weightCount)
	for _, l := range b.layers {
		out = l.appendWeights(out)
	}
	return out
}

// Infer maps an input vector to the output vector.
func (b *Brain) Infer(input []float64) ([]float64, error) {
	if len(input) != b.InputCount() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInputLength, len(input), b.InputCount())
	}
	out := input
	for _, l := range b.layers {
		out = l.forward(out)
	}
	return out, nil
}

// Trace runs inference and returns every layer's values, the input first
// and the output last.
func (b *Brain) Trace(input []float64) ([][]float64, error) {
	if len(input) != b.InputCount() {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrInputLength, len(input), b.InputCount())
	}
	trace := make([][]float64, 0, len(b.layout))
	trace = append(trace, append([]float64(nil), input...))
	for _, l := range b.layers {
		trace = append(trace, l.forward(trace[len(trace)-1]))
	}
	return trace, nil
}
