package simulation

import (
	"testing"

	"github.com/spikenav/spikenav/internal/models"
	"github.com/spikenav/spikenav/internal/snn"
)

// AssertWeightsInBounds fails if any entry of any matrix escaped
// [snn.MinWeight, snn.MaxWeight].
func AssertWeightsInBounds(t *testing.T, result Result) {
	t.Helper()
	net := result.Network()
	matrices := map[string]*snn.WeightMatrix{
		"sensor→processing": net.SensorToProcessing(),
		"processing→filter": net.ProcessingToFilter(),
		"filter→output":     net.FilterToOutput(),
	}
	for name, m := range matrices {
		for i := 0; i < m.Rows(); i++ {
			for j := 0; j < m.Cols(); j++ {
				if v := m.At(i, j); v < snn.MinWeight || v > snn.MaxWeight {
					t.Errorf("%s (%d,%d) = %v outside [%v, %v]",
						name, i, j, v, snn.MinWeight, snn.MaxWeight)
				}
			}
		}
	}
}

// AssertRewardNonDecreasing fails if the average reward ever drops between
// consecutive epochs. Only meaningful for scenarios whose reward dynamics
// are monotone, such as a single repeated sample.
func AssertRewardNonDecreasing(t *testing.T, result Result) {
	t.Helper()
	rewards := result.History.Rewards
	for e := 1; e < len(rewards); e++ {
		if rewards[e] < rewards[e-1] {
			t.Errorf("avg reward fell from %v (epoch %d) to %v (epoch %d)",
				rewards[e-1], e-1, rewards[e], e)
		}
	}
}

// AssertHistoryLength fails unless both metric series have exactly epochs
// entries.
func AssertHistoryLength(t *testing.T, result Result, epochs int) {
	t.Helper()
	if len(result.History.Rewards) != epochs {
		t.Errorf("reward series has %d entries, want %d", len(result.History.Rewards), epochs)
	}
	if len(result.History.Accuracies) != epochs {
		t.Errorf("accuracy series has %d entries, want %d", len(result.History.Accuracies), epochs)
	}
}

// AssertPredictsValid fails unless evaluating readings yields an action
// from the fixed vocabulary without error.
func AssertPredictsValid(t *testing.T, result Result, readings models.Readings) models.Action {
	t.Helper()
	action, err := result.Trainer.Evaluate(readings)
	if err != nil {
		t.Fatalf("Evaluate(%v): %v", readings, err)
	}
	if !action.Valid() {
		t.Fatalf("Evaluate(%v) = %v, not a valid action", readings, action)
	}
	return action
}
