package store

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/spikenav/spikenav/internal/snn"
	"github.com/spikenav/spikenav/internal/training"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRun(seed int64) (Run, training.History, *snn.Network) {
	net := snn.NewNetwork(snn.DefaultParams(), rand.New(rand.NewSource(seed)))
	run := Run{
		StartedAt: time.Now(),
		Seed:      seed,
		Epochs:    3,
		Samples:   100,
	}
	history := training.History{
		Rewards:    []float64{0.2, 0.5, 0.8},
		Accuracies: []float64{0.3, 0.5, 0.7},
	}
	return run, history, net
}

func TestSaveRunAndLatest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, history, net := testRun(42)
	runID, err := s.SaveRun(ctx, run, history, net)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	if runID == 0 {
		t.Fatal("SaveRun returned zero ID")
	}

	latest, err := s.LatestRun(ctx)
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	if latest == nil {
		t.Fatal("LatestRun returned nil after save")
	}
	if latest.ID != runID {
		t.Errorf("latest ID = %d, want %d", latest.ID, runID)
	}
	if latest.Seed != 42 || latest.Epochs != 3 || latest.Samples != 100 {
		t.Errorf("latest run = %+v, metadata mismatch", latest)
	}
	if latest.FinalReward != 0.8 || latest.FinalAccuracy != 0.7 {
		t.Errorf("final metrics = %v/%v, want 0.8/0.7", latest.FinalReward, latest.FinalAccuracy)
	}
}

func TestLatestRunEmpty(t *testing.T) {
	s := newTestStore(t)
	latest, err := s.LatestRun(context.Background())
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	if latest != nil {
		t.Errorf("LatestRun on empty store = %+v, want nil", latest)
	}
}

func TestEpochMetricsRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, history, net := testRun(1)
	runID, err := s.SaveRun(ctx, run, history, net)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	metrics, err := s.EpochMetrics(ctx, runID)
	if err != nil {
		t.Fatalf("EpochMetrics: %v", err)
	}
	if len(metrics) != 3 {
		t.Fatalf("got %d metrics, want 3", len(metrics))
	}
	for e, m := range metrics {
		if m.Epoch != e {
			t.Errorf("metric %d epoch = %d", e, m.Epoch)
		}
		if m.AvgReward != history.Rewards[e] || m.Accuracy != history.Accuracies[e] {
			t.Errorf("epoch %d = %v/%v, want %v/%v", e, m.AvgReward, m.Accuracy,
				history.Rewards[e], history.Accuracies[e])
		}
	}
}

func TestLoadWeightsRestoresNetwork(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	run, history, trained := testRun(7)
	runID, err := s.SaveRun(ctx, run, history, trained)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}

	// A differently seeded network starts with different weights.
	restored := snn.NewNetwork(snn.DefaultParams(), rand.New(rand.NewSource(99)))
	if err := s.LoadWeights(ctx, runID, restored); err != nil {
		t.Fatalf("LoadWeights: %v", err)
	}

	pairs := []struct {
		name string
		a, b *snn.WeightMatrix
	}{
		{"sensor→processing", trained.SensorToProcessing(), restored.SensorToProcessing()},
		{"processing→filter", trained.ProcessingToFilter(), restored.ProcessingToFilter()},
		{"filter→output", trained.FilterToOutput(), restored.FilterToOutput()},
	}
	for _, p := range pairs {
		av, bv := p.a.Values(), p.b.Values()
		for i := range av {
			if av[i] != bv[i] {
				t.Fatalf("%s differs at %d after restore", p.name, i)
			}
		}
	}
}

func TestLoadWeightsMissingRun(t *testing.T) {
	s := newTestStore(t)
	net := snn.NewNetwork(snn.DefaultParams(), rand.New(rand.NewSource(1)))
	if err := s.LoadWeights(context.Background(), 12345, net); err == nil {
		t.Fatal("expected error for missing run")
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for seed := int64(1); seed <= 3; seed++ {
		run, history, net := testRun(seed)
		if _, err := s.SaveRun(ctx, run, history, net); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	runs, err := s.ListRuns(ctx, 10)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("got %d runs, want 3", len(runs))
	}
	if runs[0].Seed != 3 || runs[2].Seed != 1 {
		t.Errorf("runs not newest-first: %+v", runs)
	}

	limited, err := s.ListRuns(ctx, 2)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("limit ignored: got %d runs", len(limited))
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	s1, err := Open(dir)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	run, history, net := testRun(5)
	runID, err := s1.SaveRun(context.Background(), run, history, net)
	if err != nil {
		t.Fatalf("SaveRun: %v", err)
	}
	s1.Close()

	s2, err := Open(dir)
	if err != nil {
		t.Fatalf("second Open: %v", err)
	}
	defer s2.Close()

	latest, err := s2.LatestRun(context.Background())
	if err != nil {
		t.Fatalf("LatestRun: %v", err)
	}
	if latest == nil || latest.ID != runID {
		t.Errorf("run not persisted across reopen: %+v", latest)
	}
}
