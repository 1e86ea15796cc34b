package simulation_test

import (
	"testing"

	"github.com/spikenav/spikenav/internal/models"
	"github.com/spikenav/spikenav/internal/simulation"
)

func TestIdenticalSeedsProduceIdenticalRuns(t *testing.T) {
	scenario := simulation.Scenario{
		Name:         "determinism",
		Seed:         99,
		Synthetic:    150,
		TestFraction: 0.2,
		Epochs:       4,
	}

	r := simulation.NewRunner(t)
	a := r.Run(scenario)
	b := r.Run(scenario)

	for e := range a.History.Rewards {
		if a.History.Rewards[e] != b.History.Rewards[e] {
			t.Errorf("epoch %d: reward %v vs %v", e, a.History.Rewards[e], b.History.Rewards[e])
		}
		if a.History.Accuracies[e] != b.History.Accuracies[e] {
			t.Errorf("epoch %d: accuracy %v vs %v", e, a.History.Accuracies[e], b.History.Accuracies[e])
		}
	}

	probes := []models.Readings{
		{100, 80, 90, 120},
		{10, 15, 12, 80},
		{45, 35, 60, 100},
	}
	for _, probe := range probes {
		got := simulation.AssertPredictsValid(t, a, probe)
		want := simulation.AssertPredictsValid(t, b, probe)
		if got != want {
			t.Errorf("prediction diverged for %v: %v vs %v", probe, got, want)
		}
	}
}

func TestDifferentSeedsDivergeWeights(t *testing.T) {
	r := simulation.NewRunner(t)
	a := r.Run(simulation.Scenario{Name: "seed-1", Seed: 1, Synthetic: 50, Epochs: 1})
	b := r.Run(simulation.Scenario{Name: "seed-2", Seed: 2, Synthetic: 50, Epochs: 1})

	av := a.Network().SensorToProcessing().Values()
	bv := b.Network().SensorToProcessing().Values()
	same := true
	for i := range av {
		if av[i] != bv[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("different seeds produced identical sensor→processing weights")
	}
}
