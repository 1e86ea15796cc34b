package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spikenav/spikenav/internal/dataset"
)

// execute runs the full CLI with args and returns its stdout.
func execute(t *testing.T, args ...string) string {
	t.Helper()
	rootCmd := newRootCmd()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("spikenav %s: %v\noutput: %s", strings.Join(args, " "), err, out.String())
	}
	return out.String()
}

func TestInitCreatesWorkspace(t *testing.T) {
	tmpDir := t.TempDir()

	out := execute(t, "init", "--root", tmpDir)
	if !strings.Contains(out, "Initialized") {
		t.Errorf("unexpected init output: %q", out)
	}

	if _, err := os.Stat(configPath(tmpDir)); err != nil {
		t.Errorf("config.yaml not created: %v", err)
	}
}

func TestInitIsIdempotent(t *testing.T) {
	tmpDir := t.TempDir()
	execute(t, "init", "--root", tmpDir)

	if err := os.WriteFile(configPath(tmpDir), []byte("logging:\n  level: debug\n"), 0644); err != nil {
		t.Fatal(err)
	}
	execute(t, "init", "--root", tmpDir)

	data, err := os.ReadFile(configPath(tmpDir))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "level: debug") {
		t.Error("second init overwrote existing config.yaml")
	}
}

func TestGenerateWritesLoadableCSV(t *testing.T) {
	tmpDir := t.TempDir()
	csvPath := filepath.Join(tmpDir, "sensors.csv")

	execute(t, "generate", "--root", tmpDir, "--count", "25", "--output", csvPath, "--seed", "1")

	samples, err := dataset.Load(csvPath)
	if err != nil {
		t.Fatalf("generated CSV does not load back: %v", err)
	}
	if len(samples) != 25 {
		t.Errorf("loaded %d samples, want 25", len(samples))
	}
}

func TestTrainPredictRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()
	csvPath := filepath.Join(tmpDir, "sensors.csv")
	execute(t, "generate", "--root", tmpDir, "--count", "40", "--output", csvPath, "--seed", "2")

	out := execute(t, "train", "--root", tmpDir, "--data", csvPath, "--epochs", "2", "--json")
	var trainResult struct {
		RunID   int64 `json:"run_id"`
		Epochs  int   `json:"epochs"`
		Samples int   `json:"samples"`
	}
	if err := json.Unmarshal([]byte(out), &trainResult); err != nil {
		t.Fatalf("train output not JSON: %v\noutput: %s", err, out)
	}
	if trainResult.RunID == 0 {
		t.Error("train did not report a run ID")
	}
	if trainResult.Epochs != 2 || trainResult.Samples != 40 {
		t.Errorf("train reported epochs=%d samples=%d, want 2/40", trainResult.Epochs, trainResult.Samples)
	}

	out = execute(t, "predict", "--root", tmpDir,
		"--front", "100", "--left", "80", "--right", "90", "--back", "120", "--json")
	var predictResult struct {
		Action  string `json:"action"`
		Trained bool   `json:"trained"`
	}
	if err := json.Unmarshal([]byte(out), &predictResult); err != nil {
		t.Fatalf("predict output not JSON: %v\noutput: %s", err, out)
	}
	if !predictResult.Trained {
		t.Error("predict did not use the trained run's weights")
	}
	if predictResult.Action == "" {
		t.Error("predict returned no action")
	}
}

func TestRunsListsTrainedRun(t *testing.T) {
	tmpDir := t.TempDir()
	csvPath := filepath.Join(tmpDir, "sensors.csv")
	execute(t, "generate", "--root", tmpDir, "--count", "20", "--output", csvPath, "--seed", "3")
	execute(t, "train", "--root", tmpDir, "--data", csvPath, "--epochs", "1")

	out := execute(t, "runs", "--root", tmpDir)
	if strings.Contains(out, "No training runs") {
		t.Errorf("runs found no runs after training:\n%s", out)
	}
}

func TestGraphOutputsDOT(t *testing.T) {
	tmpDir := t.TempDir()

	out := execute(t, "graph", "--root", tmpDir)
	if !strings.Contains(out, "digraph spikenav") {
		t.Errorf("expected DOT output, got: %q", out)
	}
	for _, label := range []string{"front", "move_forward", "stop"} {
		if !strings.Contains(out, label) {
			t.Errorf("DOT output missing node label %q", label)
		}
	}
}

func TestReportRendersHTML(t *testing.T) {
	tmpDir := t.TempDir()
	csvPath := filepath.Join(tmpDir, "sensors.csv")
	execute(t, "generate", "--root", tmpDir, "--count", "20", "--output", csvPath, "--seed", "4")
	execute(t, "train", "--root", tmpDir, "--data", csvPath, "--epochs", "2")

	out := execute(t, "report", "--root", tmpDir)
	if !strings.Contains(out, "<!DOCTYPE html>") {
		t.Errorf("expected HTML report, got: %q", out)
	}
	if !strings.Contains(out, "polyline") {
		t.Error("report missing metric curves")
	}
}

func TestReportWithoutRunsFails(t *testing.T) {
	tmpDir := t.TempDir()

	rootCmd := newRootCmd()
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"report", "--root", tmpDir})
	if err := rootCmd.Execute(); err == nil {
		t.Fatal("expected error when no runs exist")
	}
}
