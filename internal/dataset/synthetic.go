package dataset

import (
	"math/rand"

	"github.com/spikenav/spikenav/internal/models"
)

// Synthetic distance bounds in centimeters: the sensor floor and the
// nominal ultrasonic range.
const (
	synthMin = 5
	synthMax = 200
)

// Generate produces n labelled samples from the rule-based obstacle policy.
// Distances are drawn uniformly from [5, 200) and labelled by priority:
// anything critically close stops the robot, a blocked front turns toward
// the freer side, moderate clutter slows down, a close flank steers away,
// and an open field moves forward.
func Generate(n int, rng *rand.Rand) []models.TrainingSample {
	samples := make([]models.TrainingSample, n)
	for i := range samples {
		readings := models.Readings{
			synthMin + rng.Float64()*(synthMax-synthMin),
			synthMin + rng.Float64()*(synthMax-synthMin),
			synthMin + rng.Float64()*(synthMax-synthMin),
			synthMin + rng.Float64()*(synthMax-synthMin),
		}
		samples[i] = models.TrainingSample{
			Readings: readings,
			Target:   Label(readings),
		}
	}
	return samples
}

// Label applies the rule-based policy to one sensor snapshot.
func Label(r models.Readings) models.Action {
	front, left, right := r.Front(), r.Left(), r.Right()
	switch {
	case front < 15 || left < 15 || right < 15:
		return models.ActionStop
	case front < 30:
		if left > right {
			return models.ActionTurnLeft
		}
		return models.ActionTurnRight
	case front < 50 || left < 30 || right < 30:
		return models.ActionSlowDown
	case left < 40:
		return models.ActionTurnRight
	case right < 40:
		return models.ActionTurnLeft
	default:
		return models.ActionMoveForward
	}
}
