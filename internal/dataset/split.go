package dataset

import (
	"fmt"
	"math/rand"

	"github.com/spikenav/spikenav/internal/models"
)

// Split shuffles samples with rng and partitions them into train and test
// sets, with testFraction of the data (rounded down, at least one sample
// when possible) held out. The input slice is not modified.
func Split(samples []models.TrainingSample, testFraction float64, rng *rand.Rand) (train, test []models.TrainingSample, err error) {
	if testFraction < 0 || testFraction >= 1 {
		return nil, nil, fmt.Errorf("test fraction %v outside [0, 1)", testFraction)
	}

	shuffled := make([]models.TrainingSample, len(samples))
	copy(shuffled, samples)
	rng.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	nTest := int(float64(len(shuffled)) * testFraction)
	if nTest == 0 && testFraction > 0 && len(shuffled) > 1 {
		nTest = 1
	}
	return shuffled[nTest:], shuffled[:nTest], nil
}
