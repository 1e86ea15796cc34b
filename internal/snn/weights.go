package snn

import (
	"fmt"
	"math/rand"
)

// Weight bounds enforced after every training update. Keeping weights in
// a positive band prevents both dead synapses and runaway excitation.
const (
	MinWeight = 0.1
	MaxWeight = 2.0
)

// WeightMatrix is a dense rows×cols matrix of synaptic weights connecting
// two adjacent layers: rows index source units, cols index destination
// units. Storage is row-major.
type WeightMatrix struct {
	rows, cols int
	w          []float64
}

// NewWeightMatrix creates a rows×cols matrix with entries drawn from a
// normal distribution centered at 0.5 with stddev 0.3, using the supplied
// random source so runs are reproducible.
func NewWeightMatrix(rows, cols int, rng *rand.Rand) *WeightMatrix {
	m := &WeightMatrix{
		rows: rows,
		cols: cols,
		w:    make([]float64, rows*cols),
	}
	for i := range m.w {
		m.w[i] = 0.5 + 0.3*rng.NormFloat64()
	}
	return m
}

// Rows returns the source-layer size.
func (m *WeightMatrix) Rows() int { return m.rows }

// Cols returns the destination-layer size.
func (m *WeightMatrix) Cols() int { return m.cols }

// At returns the weight from source unit i to destination unit j.
func (m *WeightMatrix) At(i, j int) float64 {
	return m.w[i*m.cols+j]
}

// Set assigns the weight from source unit i to destination unit j.
func (m *WeightMatrix) Set(i, j int, v float64) {
	m.w[i*m.cols+j] = v
}

// Propagate computes the destination-layer input currents from a source
// spike vector: each spiking source unit contributes its full weight row,
// silent units contribute nothing. Propagation is same-tick, with no
// synaptic delay.
func (m *WeightMatrix) Propagate(spikes []bool) []float64 {
	if len(spikes) != m.rows {
		panic(fmt.Sprintf("snn: matrix has %d rows, got %d spikes", m.rows, len(spikes)))
	}
	currents := make([]float64, m.cols)
	for i, spiked := range spikes {
		if !spiked {
			continue
		}
		row := m.w[i*m.cols : (i+1)*m.cols]
		for j, w := range row {
			currents[j] += w
		}
	}
	return currents
}

// AddToColumn adds delta to every weight feeding destination unit col.
// This is the reward-modulated update path: only the column of the target
// action is ever adjusted.
func (m *WeightMatrix) AddToColumn(col int, delta float64) {
	for i := 0; i < m.rows; i++ {
		m.w[i*m.cols+col] += delta
	}
}

// Clip clamps every entry into [MinWeight, MaxWeight].
func (m *WeightMatrix) Clip() {
	for i, v := range m.w {
		m.w[i] = clamp(v, MinWeight, MaxWeight)
	}
}

// Values returns a copy of the matrix in row-major order. Used by the
// store when persisting trained weights.
func (m *WeightMatrix) Values() []float64 {
	out := make([]float64, len(m.w))
	copy(out, m.w)
	return out
}

// SetValues replaces the matrix contents with vals, which must be
// rows*cols entries in row-major order. Used when restoring persisted
// weights.
func (m *WeightMatrix) SetValues(vals []float64) error {
	if len(vals) != len(m.w) {
		return fmt.Errorf("weight matrix is %dx%d, got %d values", m.rows, m.cols, len(vals))
	}
	copy(m.w, vals)
	return nil
}
