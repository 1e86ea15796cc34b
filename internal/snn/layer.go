package snn

import "fmt"

// Layer is a fixed-size collection of neurons with no internal
// connectivity. Units are advanced independently in index order, which
// keeps evaluation deterministic; unit order must match the row/column
// indices of the adjacent weight matrices.
type Layer struct {
	neurons []*Neuron
}

// NewLayer creates a layer of size identical neurons.
func NewLayer(size int, threshold, decay float64, refractoryPeriod uint32) *Layer {
	neurons := make([]*Neuron, size)
	for i := range neurons {
		neurons[i] = NewNeuron(threshold, decay, refractoryPeriod)
	}
	return &Layer{neurons: neurons}
}

// NewLayerWithThresholds creates a layer whose units have per-unit
// thresholds but share decay and refractory period. Used for the output
// layer, where each action unit has its own firing threshold.
func NewLayerWithThresholds(thresholds []float64, decay float64, refractoryPeriod uint32) *Layer {
	neurons := make([]*Neuron, len(thresholds))
	for i, th := range thresholds {
		neurons[i] = NewNeuron(th, decay, refractoryPeriod)
	}
	return &Layer{neurons: neurons}
}

// Size returns the number of units in the layer.
func (l *Layer) Size() int {
	return len(l.neurons)
}

// Neuron returns the unit at index i.
func (l *Layer) Neuron(i int) *Neuron {
	return l.neurons[i]
}

// Advance steps every unit one tick with its corresponding input current
// and returns the per-unit spike vector. len(currents) must equal Size.
func (l *Layer) Advance(currents []float64, tick uint64) []bool {
	if len(currents) != len(l.neurons) {
		panic(fmt.Sprintf("snn: layer size %d, got %d currents", len(l.neurons), len(currents)))
	}
	spikes := make([]bool, len(l.neurons))
	for i, n := range l.neurons {
		spikes[i] = n.Step(currents[i], tick)
	}
	return spikes
}

// Reset returns every unit to rest.
func (l *Layer) Reset() {
	for _, n := range l.neurons {
		n.Reset()
	}
}
