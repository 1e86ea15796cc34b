package snn

import (
	"math/rand"

	"github.com/spikenav/spikenav/internal/models"
)

// Layer sizes of the fixed four-layer topology.
const (
	SensorLayerSize     = models.NumSensors
	ProcessingLayerSize = 8
	FilterLayerSize     = 4
	OutputLayerSize     = models.NumActions
)

// Params holds the neuron parameters for each layer. Zero values are not
// usable; start from DefaultParams.
type Params struct {
	SensorThreshold     float64
	SensorDecay         float64
	ProcessingThreshold float64
	ProcessingDecay     float64
	FilterThreshold     float64
	FilterDecay         float64

	// OutputThresholds are per-action firing thresholds, indexed by
	// models.Action. Earlier actions fire more readily than later ones,
	// biasing the untrained network toward moving over stopping.
	OutputThresholds [models.NumActions]float64
	OutputDecay      float64

	RefractoryPeriod uint32

	// MaxDistance is the nominal sensor range fed to the encoder.
	MaxDistance float64
}

// DefaultParams returns the reference parameterization.
func DefaultParams() Params {
	return Params{
		SensorThreshold:     0.7,
		SensorDecay:         0.85,
		ProcessingThreshold: 0.6,
		ProcessingDecay:     0.9,
		FilterThreshold:     0.8,
		FilterDecay:         0.95,
		OutputThresholds:    [models.NumActions]float64{0.5, 0.6, 0.6, 0.7, 0.8},
		OutputDecay:         0.9,
		RefractoryPeriod:    5,
		MaxDistance:         DefaultMaxDistance,
	}
}

// Network is the four-layer feed-forward LIF network: a sensor layer fed
// by the distance encoder, a processing layer, a smoothing filter layer,
// and one output unit per action. The three weight matrices between
// adjacent layers are the only trainable state.
//
// The Network exclusively owns its layers and matrices; callers interact
// only through Forward, Reset, and the matrix accessors.
type Network struct {
	params Params

	sensor     *Layer
	processing *Layer
	filter     *Layer
	output     *Layer

	wSensorToProcessing *WeightMatrix
	wProcessingToFilter *WeightMatrix
	wFilterToOutput     *WeightMatrix
}

// NewNetwork builds a network with the given parameters and randomly
// initialized weights drawn from rng. Two networks built from identically
// seeded sources are identical.
func NewNetwork(params Params, rng *rand.Rand) *Network {
	return &Network{
		params:     params,
		sensor:     NewLayer(SensorLayerSize, params.SensorThreshold, params.SensorDecay, params.RefractoryPeriod),
		processing: NewLayer(ProcessingLayerSize, params.ProcessingThreshold, params.ProcessingDecay, params.RefractoryPeriod),
		filter:     NewLayer(FilterLayerSize, params.FilterThreshold, params.FilterDecay, params.RefractoryPeriod),
		output:     NewLayerWithThresholds(params.OutputThresholds[:], params.OutputDecay, params.RefractoryPeriod),

		wSensorToProcessing: NewWeightMatrix(SensorLayerSize, ProcessingLayerSize, rng),
		wProcessingToFilter: NewWeightMatrix(ProcessingLayerSize, FilterLayerSize, rng),
		wFilterToOutput:     NewWeightMatrix(FilterLayerSize, OutputLayerSize, rng),
	}
}

// Params returns the network's neuron parameters.
func (n *Network) Params() Params { return n.params }

// SensorLayer returns the sensor layer.
func (n *Network) SensorLayer() *Layer { return n.sensor }

// ProcessingLayer returns the processing layer.
func (n *Network) ProcessingLayer() *Layer { return n.processing }

// FilterLayer returns the filter layer.
func (n *Network) FilterLayer() *Layer { return n.filter }

// OutputLayer returns the output layer; unit i corresponds to
// models.Action(i).
func (n *Network) OutputLayer() *Layer { return n.output }

// SensorToProcessing returns the 4×8 weight matrix.
func (n *Network) SensorToProcessing() *WeightMatrix { return n.wSensorToProcessing }

// ProcessingToFilter returns the 8×4 weight matrix.
func (n *Network) ProcessingToFilter() *WeightMatrix { return n.wProcessingToFilter }

// FilterToOutput returns the 4×5 weight matrix. This is the only matrix
// the reward-modulated rule adapts.
func (n *Network) FilterToOutput() *WeightMatrix { return n.wFilterToOutput }

// Forward runs one full tick: encode the readings, advance the sensor
// layer, and propagate spikes forward through the processing, filter, and
// output layers. It returns the per-action spike map for this tick and
// the encoded stimulation vector (diagnostic only).
//
// Forward does not validate readings; callers clamp or reject non-finite
// values upstream.
func (n *Network) Forward(readings models.Readings, tick uint64) (map[models.Action]bool, [models.NumSensors]float64) {
	var stims [models.NumSensors]float64
	for i, d := range readings {
		stims[i] = DistanceToStimulation(d, n.params.MaxDistance)
	}

	sensorSpikes := n.sensor.Advance(stims[:], tick)
	processingSpikes := n.processing.Advance(n.wSensorToProcessing.Propagate(sensorSpikes), tick)
	filterSpikes := n.filter.Advance(n.wProcessingToFilter.Propagate(processingSpikes), tick)
	outputSpikes := n.output.Advance(n.wFilterToOutput.Propagate(filterSpikes), tick)

	outputs := make(map[models.Action]bool, models.NumActions)
	for _, a := range models.Actions() {
		outputs[a] = outputSpikes[a.Index()]
	}
	return outputs, stims
}

// Reset returns every neuron in every layer to rest. Weights are never
// touched by Reset.
func (n *Network) Reset() {
	n.sensor.Reset()
	n.processing.Reset()
	n.filter.Reset()
	n.output.Reset()
}

// ClipWeights clamps all three matrices into [MinWeight, MaxWeight].
func (n *Network) ClipWeights() {
	n.wSensorToProcessing.Clip()
	n.wProcessingToFilter.Clip()
	n.wFilterToOutput.Clip()
}
