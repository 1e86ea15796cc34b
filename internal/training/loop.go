package training

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/spikenav/spikenav/internal/logging"
	"github.com/spikenav/spikenav/internal/models"
)

// LoopConfig holds the epoch-orchestration parameters.
type LoopConfig struct {
	// Epochs is the number of full passes over the training split.
	Epochs int

	// LogEvery controls slog progress output: one line every LogEvery
	// epochs. Zero disables progress lines.
	LogEvery int
}

// DefaultLoopConfig returns the reference orchestration parameters.
func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		Epochs:   50,
		LogEvery: 10,
	}
}

// History is the per-epoch metric series produced by a training run,
// consumed by the report renderer and the store.
type History struct {
	// Rewards[e] is the average reward over the training split in epoch e.
	Rewards []float64

	// Accuracies[e] is the held-out accuracy after epoch e.
	Accuracies []float64
}

// Loop runs the full training schedule: per epoch it shuffles the training
// split, trains every sample, aggregates the average reward, and measures
// accuracy on the held-out split.
type Loop struct {
	trainer  *Trainer
	rng      *rand.Rand
	logger   *slog.Logger
	epochLog *logging.EpochLogger
}

// NewLoop creates an epoch loop. epochLog may be nil.
func NewLoop(trainer *Trainer, rng *rand.Rand, logger *slog.Logger, epochLog *logging.EpochLogger) *Loop {
	return &Loop{
		trainer:  trainer,
		rng:      rng,
		logger:   logger,
		epochLog: epochLog,
	}
}

// Run trains over train for cfg.Epochs epochs, evaluating on test after
// each. The shuffle order is drawn from the loop's random source, so runs
// with the same seed, data, and initial weights are identical.
func (l *Loop) Run(ctx context.Context, train, test []models.TrainingSample, cfg LoopConfig) (History, error) {
	history := History{
		Rewards:    make([]float64, 0, cfg.Epochs),
		Accuracies: make([]float64, 0, cfg.Epochs),
	}
	if len(train) == 0 {
		return history, fmt.Errorf("training split is empty")
	}

	for epoch := 0; epoch < cfg.Epochs; epoch++ {
		if err := ctx.Err(); err != nil {
			return history, err
		}

		l.rng.Shuffle(len(train), func(i, j int) {
			train[i], train[j] = train[j], train[i]
		})

		var epochReward float64
		for _, sample := range train {
			reward, err := l.trainer.TrainOne(sample)
			if err != nil {
				return history, fmt.Errorf("epoch %d: %w", epoch, err)
			}
			epochReward += reward
		}
		avgReward := epochReward / float64(len(train))

		accuracy, err := l.accuracy(test)
		if err != nil {
			return history, fmt.Errorf("epoch %d: %w", epoch, err)
		}

		history.Rewards = append(history.Rewards, avgReward)
		history.Accuracies = append(history.Accuracies, accuracy)

		l.epochLog.Log(map[string]any{
			"epoch":      epoch,
			"avg_reward": avgReward,
			"accuracy":   accuracy,
		})
		if cfg.LogEvery > 0 && epoch%cfg.LogEvery == 0 {
			l.logger.Info("epoch complete",
				"epoch", epoch,
				"avg_reward", avgReward,
				"accuracy", accuracy)
		}
	}

	return history, nil
}

// accuracy evaluates every held-out sample and returns the fraction
// predicted correctly. An empty split reports zero accuracy.
func (l *Loop) accuracy(test []models.TrainingSample) (float64, error) {
	if len(test) == 0 {
		return 0, nil
	}
	correct := 0
	for _, sample := range test {
		predicted, err := l.trainer.Evaluate(sample.Readings)
		if err != nil {
			return 0, err
		}
		if predicted == sample.Target {
			correct++
		}
	}
	return float64(correct) / float64(len(test)), nil
}
