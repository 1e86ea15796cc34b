package mcp

import "time"

// PredictInput defines the input for the snn_predict tool.
type PredictInput struct {
	Front float64 `json:"front" jsonschema:"Front sensor distance in centimeters"`
	Left  float64 `json:"left" jsonschema:"Left sensor distance in centimeters"`
	Right float64 `json:"right" jsonschema:"Right sensor distance in centimeters"`
	Back  float64 `json:"back" jsonschema:"Back sensor distance in centimeters"`
}

// PredictOutput defines the output for the snn_predict tool.
type PredictOutput struct {
	Action      string         `json:"action" jsonschema:"Selected avoidance maneuver"`
	SpikeCounts map[string]int `json:"spike_counts" jsonschema:"Output spikes per action over the evaluation window"`
}

// TrainInput defines the input for the snn_train tool.
type TrainInput struct {
	Front  float64 `json:"front" jsonschema:"Front sensor distance in centimeters"`
	Left   float64 `json:"left" jsonschema:"Left sensor distance in centimeters"`
	Right  float64 `json:"right" jsonschema:"Right sensor distance in centimeters"`
	Back   float64 `json:"back" jsonschema:"Back sensor distance in centimeters"`
	Action string  `json:"action" jsonschema:"Target action label (move_forward turn_left turn_right slow_down stop)"`
}

// TrainOutput defines the output for the snn_train tool.
type TrainOutput struct {
	Reward float64 `json:"reward" jsonschema:"Reward for this sample: 1.0 if the target unit spiked, else 0.0"`
}

// StatsInput defines the input for the snn_stats tool.
type StatsInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"Maximum number of runs to return (default: 10)"`
}

// StatsOutput defines the output for the snn_stats tool.
type StatsOutput struct {
	Runs  []RunSummary `json:"runs" jsonschema:"Recent training runs newest first"`
	Count int          `json:"count" jsonschema:"Number of runs returned"`
}

// RunSummary provides a list view of one training run.
type RunSummary struct {
	ID            int64     `json:"id"`
	StartedAt     time.Time `json:"started_at"`
	Seed          int64     `json:"seed"`
	Epochs        int       `json:"epochs"`
	Samples       int       `json:"samples"`
	FinalReward   float64   `json:"final_reward"`
	FinalAccuracy float64   `json:"final_accuracy"`
}
