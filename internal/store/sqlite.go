package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/spikenav/spikenav/internal/snn"
	"github.com/spikenav/spikenav/internal/training"
)

// Matrix names used in the weight_matrices table, in forward order.
const (
	MatrixSensorToProcessing = "sensor_to_processing"
	MatrixProcessingToFilter = "processing_to_filter"
	MatrixFilterToOutput     = "filter_to_output"
)

// Run is one completed training run.
type Run struct {
	ID            int64
	StartedAt     time.Time
	Seed          int64
	Epochs        int
	Samples       int
	FinalReward   float64
	FinalAccuracy float64
}

// EpochMetric is one row of a run's reward/accuracy series.
type EpochMetric struct {
	Epoch     int
	AvgReward float64
	Accuracy  float64
}

// SQLiteStore persists runs, metrics, and weights in dataDir/spikenav.db.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// Open creates (if needed) and opens the store under dataDir.
func Open(dataDir string) (*SQLiteStore, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "spikenav.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	return &SQLiteStore{db: db, path: dbPath}, nil
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// SaveRun records a completed run with its metric series and the trained
// weights of net, atomically. It returns the new run ID.
func (s *SQLiteStore) SaveRun(ctx context.Context, run Run, history training.History, net *snn.Network) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	finalReward, finalAccuracy := 0.0, 0.0
	if n := len(history.Rewards); n > 0 {
		finalReward = history.Rewards[n-1]
	}
	if n := len(history.Accuracies); n > 0 {
		finalAccuracy = history.Accuracies[n-1]
	}

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (started_at, seed, epochs, samples, final_reward, final_accuracy)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.Seed, run.Epochs, run.Samples, finalReward, finalAccuracy)
	if err != nil {
		return 0, fmt.Errorf("insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("run id: %w", err)
	}

	for epoch := range history.Rewards {
		accuracy := 0.0
		if epoch < len(history.Accuracies) {
			accuracy = history.Accuracies[epoch]
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO epoch_metrics (run_id, epoch, avg_reward, accuracy)
			VALUES (?, ?, ?, ?)`,
			runID, epoch, history.Rewards[epoch], accuracy); err != nil {
			return 0, fmt.Errorf("insert epoch %d: %w", epoch, err)
		}
	}

	matrices := map[string]*snn.WeightMatrix{
		MatrixSensorToProcessing: net.SensorToProcessing(),
		MatrixProcessingToFilter: net.ProcessingToFilter(),
		MatrixFilterToOutput:     net.FilterToOutput(),
	}
	for name, m := range matrices {
		weights, err := json.Marshal(m.Values())
		if err != nil {
			return 0, fmt.Errorf("encode %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO weight_matrices (run_id, name, rows, cols, weights)
			VALUES (?, ?, ?, ?, ?)`,
			runID, name, m.Rows(), m.Cols(), string(weights)); err != nil {
			return 0, fmt.Errorf("insert %s: %w", name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit run: %w", err)
	}
	return runID, nil
}

// LatestRun returns the most recent run, or nil if none exist.
func (s *SQLiteStore) LatestRun(ctx context.Context) (*Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, started_at, seed, epochs, samples, final_reward, final_accuracy
		FROM runs ORDER BY id DESC LIMIT 1`)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest run: %w", err)
	}
	return run, nil
}

// ListRuns returns up to limit runs, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, started_at, seed, epochs, samples, final_reward, final_accuracy
		FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// EpochMetrics returns a run's metric series in epoch order.
func (s *SQLiteStore) EpochMetrics(ctx context.Context, runID int64) ([]EpochMetric, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT epoch, avg_reward, accuracy FROM epoch_metrics
		WHERE run_id = ? ORDER BY epoch`, runID)
	if err != nil {
		return nil, fmt.Errorf("query epoch metrics: %w", err)
	}
	defer rows.Close()

	var metrics []EpochMetric
	for rows.Next() {
		var m EpochMetric
		if err := rows.Scan(&m.Epoch, &m.AvgReward, &m.Accuracy); err != nil {
			return nil, fmt.Errorf("scan epoch metric: %w", err)
		}
		metrics = append(metrics, m)
	}
	return metrics, rows.Err()
}

// LoadWeights restores the three weight matrices of runID into net.
// The network's topology must match the stored shapes.
func (s *SQLiteStore) LoadWeights(ctx context.Context, runID int64, net *snn.Network) error {
	matrices := map[string]*snn.WeightMatrix{
		MatrixSensorToProcessing: net.SensorToProcessing(),
		MatrixProcessingToFilter: net.ProcessingToFilter(),
		MatrixFilterToOutput:     net.FilterToOutput(),
	}

	for name, m := range matrices {
		var rows, cols int
		var weightsJSON string
		err := s.db.QueryRowContext(ctx, `
			SELECT rows, cols, weights FROM weight_matrices
			WHERE run_id = ? AND name = ?`, runID, name).Scan(&rows, &cols, &weightsJSON)
		if err == sql.ErrNoRows {
			return fmt.Errorf("run %d has no %s matrix", runID, name)
		}
		if err != nil {
			return fmt.Errorf("query %s: %w", name, err)
		}
		if rows != m.Rows() || cols != m.Cols() {
			return fmt.Errorf("%s is %dx%d in store, network expects %dx%d",
				name, rows, cols, m.Rows(), m.Cols())
		}

		var weights []float64
		if err := json.Unmarshal([]byte(weightsJSON), &weights); err != nil {
			return fmt.Errorf("decode %s: %w", name, err)
		}
		if err := m.SetValues(weights); err != nil {
			return fmt.Errorf("restore %s: %w", name, err)
		}
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var startedAt string
	if err := row.Scan(&run.ID, &startedAt, &run.Seed, &run.Epochs,
		&run.Samples, &run.FinalReward, &run.FinalAccuracy); err != nil {
		return nil, err
	}
	if ts, err := time.Parse(time.RFC3339Nano, startedAt); err == nil {
		run.StartedAt = ts
	}
	return &run, nil
}
