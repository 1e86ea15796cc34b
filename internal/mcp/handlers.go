package mcp

import (
	"context"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/spikenav/spikenav/internal/models"
)

// handlePredict runs an inference window and reports the winning action.
func (s *Server) handlePredict(ctx context.Context, req *sdk.CallToolRequest, args PredictInput) (*sdk.CallToolResult, PredictOutput, error) {
	readings := models.Readings{args.Front, args.Left, args.Right, args.Back}

	s.mu.Lock()
	defer s.mu.Unlock()

	action, err := s.trainer.Evaluate(readings)
	if err != nil {
		return nil, PredictOutput{}, fmt.Errorf("evaluate: %w", err)
	}
	counts, err := s.trainer.CountSpikes(readings)
	if err != nil {
		return nil, PredictOutput{}, fmt.Errorf("count spikes: %w", err)
	}

	out := PredictOutput{
		Action:      action.String(),
		SpikeCounts: make(map[string]int, models.NumActions),
	}
	for _, a := range models.Actions() {
		out.SpikeCounts[a.String()] = counts[a.Index()]
	}
	return nil, out, nil
}

// handleTrain applies one reward-modulated update to the live network.
func (s *Server) handleTrain(ctx context.Context, req *sdk.CallToolRequest, args TrainInput) (*sdk.CallToolResult, TrainOutput, error) {
	action, err := models.ParseAction(args.Action)
	if err != nil {
		return nil, TrainOutput{}, err
	}
	sample := models.TrainingSample{
		Readings: models.Readings{args.Front, args.Left, args.Right, args.Back},
		Target:   action,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	reward, err := s.trainer.TrainOne(sample)
	if err != nil {
		return nil, TrainOutput{}, fmt.Errorf("train: %w", err)
	}
	return nil, TrainOutput{Reward: reward}, nil
}

// handleStats lists recent training runs from the store.
func (s *Server) handleStats(ctx context.Context, req *sdk.CallToolRequest, args StatsInput) (*sdk.CallToolResult, StatsOutput, error) {
	limit := args.Limit
	if limit <= 0 {
		limit = 10
	}

	runs, err := s.store.ListRuns(ctx, limit)
	if err != nil {
		return nil, StatsOutput{}, fmt.Errorf("list runs: %w", err)
	}

	out := StatsOutput{Runs: make([]RunSummary, len(runs)), Count: len(runs)}
	for i, r := range runs {
		out.Runs[i] = RunSummary{
			ID:            r.ID,
			StartedAt:     r.StartedAt,
			Seed:          r.Seed,
			Epochs:        r.Epochs,
			Samples:       r.Samples,
			FinalReward:   r.FinalReward,
			FinalAccuracy: r.FinalAccuracy,
		}
	}
	return nil, out, nil
}
