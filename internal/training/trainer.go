// Package training implements reward-modulated training and evaluation of
// the spiking network: the per-sample update rule and the epoch loop that
// drives it over a dataset.
package training

import (
	"github.com/spikenav/spikenav/internal/models"
	"github.com/spikenav/spikenav/internal/snn"
)

// Config holds the trainer parameters.
type Config struct {
	// LearningRate scales the reward-modulated weight update.
	LearningRate float64

	// TimeWindow is the number of ticks the network runs per sample.
	TimeWindow uint64
}

// DefaultConfig returns the reference trainer parameters.
func DefaultConfig() Config {
	return Config{
		LearningRate: 0.01,
		TimeWindow:   50,
	}
}

// Trainer drives a Network through training windows and applies the
// reward-modulated update rule. It owns no state beyond the network it
// wraps; a Trainer must not be shared across goroutines.
type Trainer struct {
	net *snn.Network
	cfg Config
}

// NewTrainer wraps net with the given parameters.
func NewTrainer(net *snn.Network, cfg Config) *Trainer {
	return &Trainer{net: net, cfg: cfg}
}

// Network returns the wrapped network.
func (t *Trainer) Network() *snn.Network {
	return t.net
}

// TrainOne runs one training window for the sample and applies the weight
// update. The network is reset first (weights untouched), run for the full
// time window, and rewarded 1.0 if the target output unit spiked at least
// once, else 0.0.
//
// The update is deliberately crude, preserved from the reference system:
// only the filter→output column of the target action moves — up by
// LearningRate on reward, down by LearningRate/2 otherwise. All three
// matrices are then clipped into [0.1, 2.0] unconditionally.
//
// Invalid samples (non-finite readings, unknown target) are rejected
// before any state mutation.
func (t *Trainer) TrainOne(sample models.TrainingSample) (float64, error) {
	if err := sample.Validate(); err != nil {
		return 0, err
	}

	t.net.Reset()

	spiked := false
	for tick := uint64(0); tick < t.cfg.TimeWindow; tick++ {
		outputs, _ := t.net.Forward(sample.Readings, tick)
		if outputs[sample.Target] {
			spiked = true
		}
	}

	reward := 0.0
	if spiked {
		reward = 1.0
	}

	col := sample.Target.Index()
	if reward > 0 {
		t.net.FilterToOutput().AddToColumn(col, t.cfg.LearningRate*reward)
	} else {
		t.net.FilterToOutput().AddToColumn(col, -t.cfg.LearningRate*0.5)
	}
	t.net.ClipWeights()

	return reward, nil
}

// CountSpikes resets the network and runs the full time window, counting
// spikes per output unit. No weights are modified.
func (t *Trainer) CountSpikes(readings models.Readings) ([models.NumActions]int, error) {
	var counts [models.NumActions]int
	if err := readings.Validate(); err != nil {
		return counts, err
	}

	t.net.Reset()
	for tick := uint64(0); tick < t.cfg.TimeWindow; tick++ {
		outputs, _ := t.net.Forward(readings, tick)
		for _, a := range models.Actions() {
			if outputs[a] {
				counts[a.Index()]++
			}
		}
	}
	return counts, nil
}

// Evaluate predicts the action for a sensor snapshot: the output unit with
// the most spikes over the window wins, ties going to the lowest action
// index. With identical network state the result is fully deterministic.
func (t *Trainer) Evaluate(readings models.Readings) (models.Action, error) {
	counts, err := t.CountSpikes(readings)
	if err != nil {
		return 0, err
	}

	best := models.ActionMoveForward
	for _, a := range models.Actions() {
		if counts[a.Index()] > counts[best.Index()] {
			best = a
		}
	}
	return best, nil
}
