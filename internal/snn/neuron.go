// Package snn implements the discrete-time Leaky-Integrate-and-Fire network:
// single neurons, fixed-size layers, dense inter-layer weight matrices, and
// the four-layer feed-forward Network that ties them together.
//
// The simulation is a pure sequential recurrence over ticks. A Network is
// owned by exactly one driver and must never be mutated concurrently;
// parallel training requires independent Network instances.
package snn

// Neuron is a single Leaky-Integrate-and-Fire unit. Between spikes the
// membrane potential decays multiplicatively each tick and integrates the
// input current; crossing the threshold emits a spike and locks the unit
// out for RefractoryPeriod ticks.
type Neuron struct {
	Threshold        float64
	Decay            float64 // multiplicative leak per tick, 0 < Decay < 1
	RefractoryPeriod uint32  // lockout ticks after a spike

	potential         float64
	refractoryCounter uint32
	spikeTimes        []uint64
}

// NewNeuron creates a neuron at rest.
func NewNeuron(threshold, decay float64, refractoryPeriod uint32) *Neuron {
	return &Neuron{
		Threshold:        threshold,
		Decay:            decay,
		RefractoryPeriod: refractoryPeriod,
	}
}

// Step advances the neuron one tick with the given input current and
// returns true iff it spikes. Lockout takes priority over integration:
// a refractory neuron ignores its input entirely and holds at zero.
func (n *Neuron) Step(inputCurrent float64, tick uint64) bool {
	if n.refractoryCounter > 0 {
		n.refractoryCounter--
		n.potential = 0
		return false
	}

	n.potential = n.potential*n.Decay + inputCurrent

	if n.potential >= n.Threshold {
		n.potential = 0
		n.refractoryCounter = n.RefractoryPeriod
		n.spikeTimes = append(n.spikeTimes, tick)
		return true
	}
	return false
}

// Reset returns the neuron to rest: zero potential, no lockout, empty
// spike history. Thresholds and decay are untouched.
func (n *Neuron) Reset() {
	n.potential = 0
	n.refractoryCounter = 0
	n.spikeTimes = n.spikeTimes[:0]
}

// Potential returns the current membrane potential.
func (n *Neuron) Potential() float64 {
	return n.potential
}

// Refractory returns true while the neuron is locked out.
func (n *Neuron) Refractory() bool {
	return n.refractoryCounter > 0
}

// SpikeTimes returns the ticks at which the neuron has spiked since the
// last Reset, in ascending order. The slice is owned by the neuron.
func (n *Neuron) SpikeTimes() []uint64 {
	return n.spikeTimes
}
