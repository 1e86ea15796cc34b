package simulation

import (
	"github.com/spikenav/spikenav/internal/models"
	"github.com/spikenav/spikenav/internal/snn"
	"github.com/spikenav/spikenav/internal/training"
)

// Scenario defines a complete training experiment.
type Scenario struct {
	Name string

	// Seed drives weight initialization, synthetic data, and shuffling.
	Seed int64

	// Params overrides the network parameters. Nil uses defaults.
	Params *snn.Params

	// Trainer overrides the trainer parameters. Nil uses defaults.
	Trainer *training.Config

	// Samples is the explicit dataset. When nil, Synthetic samples are
	// generated from the rule-based policy instead.
	Samples   []models.TrainingSample
	Synthetic int

	// TestFraction is the held-out share. Zero keeps everything in the
	// training split.
	TestFraction float64

	// Epochs is the number of training passes. Zero means 10.
	Epochs int

	// BeforeTraining, when non-nil, is called with the network after
	// construction and before the first epoch. Use this to pin weights
	// for deterministic update checks.
	BeforeTraining func(net *snn.Network)
}

// Result captures the outcome of a scenario run.
type Result struct {
	History training.History
	Trainer *training.Trainer
	Train   []models.TrainingSample
	Test    []models.TrainingSample
}

// Network returns the trained network.
func (r Result) Network() *snn.Network {
	return r.Trainer.Network()
}
