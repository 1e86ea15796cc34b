package simulation

import (
	"context"
	"io"
	"math/rand"
	"testing"

	"github.com/spikenav/spikenav/internal/dataset"
	"github.com/spikenav/spikenav/internal/logging"
	"github.com/spikenav/spikenav/internal/models"
	"github.com/spikenav/spikenav/internal/snn"
	"github.com/spikenav/spikenav/internal/training"
)

// Runner orchestrates training experiments against the real network,
// trainer, and epoch loop.
type Runner struct {
	t *testing.T
}

// NewRunner creates a simulation runner.
func NewRunner(t *testing.T) *Runner {
	t.Helper()
	return &Runner{t: t}
}

// Run executes the scenario and returns the collected results.
func (r *Runner) Run(scenario Scenario) Result {
	r.t.Helper()

	rng := rand.New(rand.NewSource(scenario.Seed))

	params := snn.DefaultParams()
	if scenario.Params != nil {
		params = *scenario.Params
	}
	trainerCfg := training.DefaultConfig()
	if scenario.Trainer != nil {
		trainerCfg = *scenario.Trainer
	}

	net := snn.NewNetwork(params, rng)
	if scenario.BeforeTraining != nil {
		scenario.BeforeTraining(net)
	}
	trainer := training.NewTrainer(net, trainerCfg)

	samples := scenario.Samples
	if samples == nil {
		n := scenario.Synthetic
		if n == 0 {
			n = 100
		}
		samples = dataset.Generate(n, rng)
	}

	train, test := samples, []models.TrainingSample(nil)
	if scenario.TestFraction > 0 {
		var err error
		train, test, err = dataset.Split(samples, scenario.TestFraction, rng)
		if err != nil {
			r.t.Fatalf("%s: split: %v", scenario.Name, err)
		}
	}

	epochs := scenario.Epochs
	if epochs == 0 {
		epochs = 10
	}

	loop := training.NewLoop(trainer, rng, logging.NewLogger("info", io.Discard), nil)
	history, err := loop.Run(context.Background(), train, test, training.LoopConfig{Epochs: epochs})
	if err != nil {
		r.t.Fatalf("%s: training loop: %v", scenario.Name, err)
	}

	return Result{
		History: history,
		Trainer: trainer,
		Train:   train,
		Test:    test,
	}
}
