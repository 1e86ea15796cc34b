// Package config provides unified configuration loading for spikenav.
// It supports loading from YAML files and environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/spikenav/spikenav/internal/models"
	"github.com/spikenav/spikenav/internal/snn"
	"github.com/spikenav/spikenav/internal/training"
)

// Config contains all spikenav configuration settings.
type Config struct {
	// Network contains the neuron parameters for each layer.
	Network NetworkConfig `json:"network" yaml:"network"`

	// Training contains the trainer and epoch-loop parameters.
	Training TrainingConfig `json:"training" yaml:"training"`

	// Logging contains settings for operational and epoch logging.
	Logging LoggingConfig `json:"logging" yaml:"logging"`
}

// NetworkConfig configures the four-layer LIF network.
type NetworkConfig struct {
	// SensorThreshold and SensorDecay parameterize the 4 sensor neurons.
	SensorThreshold float64 `json:"sensor_threshold" yaml:"sensor_threshold"`
	SensorDecay     float64 `json:"sensor_decay" yaml:"sensor_decay"`

	// ProcessingThreshold and ProcessingDecay parameterize the 8 hidden neurons.
	ProcessingThreshold float64 `json:"processing_threshold" yaml:"processing_threshold"`
	ProcessingDecay     float64 `json:"processing_decay" yaml:"processing_decay"`

	// FilterThreshold and FilterDecay parameterize the 4 smoothing neurons.
	FilterThreshold float64 `json:"filter_threshold" yaml:"filter_threshold"`
	FilterDecay     float64 `json:"filter_decay" yaml:"filter_decay"`

	// OutputThresholds are per-action firing thresholds in output-unit
	// order (move_forward, turn_left, turn_right, slow_down, stop).
	OutputThresholds []float64 `json:"output_thresholds" yaml:"output_thresholds"`
	OutputDecay      float64   `json:"output_decay" yaml:"output_decay"`

	// RefractoryPeriod is the post-spike lockout in ticks, shared by all layers.
	RefractoryPeriod uint32 `json:"refractory_period" yaml:"refractory_period"`

	// MaxDistance is the nominal ultrasonic sensor range in centimeters.
	MaxDistance float64 `json:"max_distance" yaml:"max_distance"`
}

// TrainingConfig configures the trainer and epoch loop.
type TrainingConfig struct {
	// LearningRate scales the reward-modulated weight update.
	LearningRate float64 `json:"learning_rate" yaml:"learning_rate"`

	// TimeWindow is the number of simulation ticks per training sample.
	TimeWindow uint64 `json:"time_window" yaml:"time_window"`

	// Epochs is the number of passes over the training split.
	Epochs int `json:"epochs" yaml:"epochs"`

	// TestFraction is the share of the dataset held out for accuracy
	// measurement. Range: [0, 1).
	TestFraction float64 `json:"test_fraction" yaml:"test_fraction"`

	// Seed drives weight initialization, shuffling, and synthetic data.
	// Runs with the same seed and data are identical.
	Seed int64 `json:"seed" yaml:"seed"`

	// SyntheticSamples is the dataset size generated when no CSV is given.
	SyntheticSamples int `json:"synthetic_samples" yaml:"synthetic_samples"`
}

// LoggingConfig configures spikenav's logging behavior.
type LoggingConfig struct {
	// Level sets the log verbosity: "info" (default), "debug", or "trace".
	// "debug" enables epoch logging to .spikenav/epochs.jsonl.
	Level string `json:"level" yaml:"level"`
}

// Default returns a Config with the reference parameterization.
func Default() *Config {
	params := snn.DefaultParams()
	trainCfg := training.DefaultConfig()
	return &Config{
		Network: NetworkConfig{
			SensorThreshold:     params.SensorThreshold,
			SensorDecay:         params.SensorDecay,
			ProcessingThreshold: params.ProcessingThreshold,
			ProcessingDecay:     params.ProcessingDecay,
			FilterThreshold:     params.FilterThreshold,
			FilterDecay:         params.FilterDecay,
			OutputThresholds:    append([]float64(nil), params.OutputThresholds[:]...),
			OutputDecay:         params.OutputDecay,
			RefractoryPeriod:    params.RefractoryPeriod,
			MaxDistance:         params.MaxDistance,
		},
		Training: TrainingConfig{
			LearningRate:     trainCfg.LearningRate,
			TimeWindow:       trainCfg.TimeWindow,
			Epochs:           50,
			TestFraction:     0.2,
			Seed:             42,
			SyntheticSamples: 1000,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads configuration from path, falling back to defaults for any
// missing file and applying environment overrides last. A malformed file
// is an error; a missing one is not.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// applyEnv overlays SPIKENAV_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("SPIKENAV_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SPIKENAV_SEED"); v != "" {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Training.Seed = seed
		}
	}
	if v := os.Getenv("SPIKENAV_EPOCHS"); v != "" {
		if epochs, err := strconv.Atoi(v); err == nil && epochs > 0 {
			cfg.Training.Epochs = epochs
		}
	}
}

// Validate checks structural constraints the simulator depends on.
func (c *Config) Validate() error {
	if len(c.Network.OutputThresholds) != models.NumActions {
		return fmt.Errorf("output_thresholds needs %d entries, got %d",
			models.NumActions, len(c.Network.OutputThresholds))
	}
	for name, decay := range map[string]float64{
		"sensor_decay":     c.Network.SensorDecay,
		"processing_decay": c.Network.ProcessingDecay,
		"filter_decay":     c.Network.FilterDecay,
		"output_decay":     c.Network.OutputDecay,
	} {
		if decay <= 0 || decay >= 1 {
			return fmt.Errorf("%s = %v outside (0, 1)", name, decay)
		}
	}
	if c.Training.TimeWindow == 0 {
		return fmt.Errorf("time_window must be positive")
	}
	if c.Training.TestFraction < 0 || c.Training.TestFraction >= 1 {
		return fmt.Errorf("test_fraction %v outside [0, 1)", c.Training.TestFraction)
	}
	if c.Training.Epochs <= 0 {
		return fmt.Errorf("epochs must be positive")
	}
	return nil
}

// Params converts the network section into snn.Params.
func (c *Config) Params() snn.Params {
	params := snn.Params{
		SensorThreshold:     c.Network.SensorThreshold,
		SensorDecay:         c.Network.SensorDecay,
		ProcessingThreshold: c.Network.ProcessingThreshold,
		ProcessingDecay:     c.Network.ProcessingDecay,
		FilterThreshold:     c.Network.FilterThreshold,
		FilterDecay:         c.Network.FilterDecay,
		OutputDecay:         c.Network.OutputDecay,
		RefractoryPeriod:    c.Network.RefractoryPeriod,
		MaxDistance:         c.Network.MaxDistance,
	}
	copy(params.OutputThresholds[:], c.Network.OutputThresholds)
	return params
}

// TrainerConfig converts the training section into training.Config.
func (c *Config) TrainerConfig() training.Config {
	return training.Config{
		LearningRate: c.Training.LearningRate,
		TimeWindow:   c.Training.TimeWindow,
	}
}

// LoopConfig converts the training section into training.LoopConfig.
func (c *Config) LoopConfig() training.LoopConfig {
	return training.LoopConfig{
		Epochs:   c.Training.Epochs,
		LogEvery: 10,
	}
}
