// Package simulation provides a multi-epoch test harness for validating
// emergent dynamics of the training pipeline.
//
// The simulation exercises the real Network, Trainer, and epoch Loop — no
// mocks. Scenarios are Go builders that construct seeded networks and
// datasets and run configurable training schedules, capturing the metric
// history and final weights for property-based assertions.
//
// Usage:
//
//	func TestRewardHolds(t *testing.T) {
//	    r := simulation.NewRunner(t)
//	    result := r.Run(simulation.Scenario{
//	        Name:      "repeated-target",
//	        Seed:      7,
//	        Samples:   []models.TrainingSample{...},
//	        Epochs:    20,
//	    })
//	    simulation.AssertRewardNonDecreasing(t, result)
//	}
package simulation
