package models

import (
	"errors"
	"fmt"
	"math"
)

// NumSensors is the number of ultrasonic distance sensors feeding the
// network (front, left, right, back).
const NumSensors = 4

var (
	// ErrNonFinite reports a NaN or infinite sensor reading. Readings are
	// rejected at the trainer boundary so NaN never reaches neuron state.
	ErrNonFinite = errors.New("non-finite sensor reading")

	// ErrUnknownAction reports an action label with no output unit.
	ErrUnknownAction = errors.New("unknown action")
)

// Readings holds one snapshot of the four distance sensors, in centimeters,
// ordered front, left, right, back.
type Readings [NumSensors]float64

// Front, Left, Right, Back name the conventional sensor positions.
func (r Readings) Front() float64 { return r[0] }
func (r Readings) Left() float64  { return r[1] }
func (r Readings) Right() float64 { return r[2] }
func (r Readings) Back() float64  { return r[3] }

// Validate rejects NaN and infinite readings. Distances below the physical
// sensor floor are legal; the encoder clamps them.
func (r Readings) Validate() error {
	for i, v := range r {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: sensor %d = %v", ErrNonFinite, i, v)
		}
	}
	return nil
}

// TrainingSample pairs a sensor snapshot with the maneuver the network
// should learn to select for it. Immutable once constructed.
type TrainingSample struct {
	Readings Readings
	Target   Action
}

// Validate checks both the readings and the target label.
func (s TrainingSample) Validate() error {
	if err := s.Readings.Validate(); err != nil {
		return err
	}
	if !s.Target.Valid() {
		return fmt.Errorf("%w: index %d", ErrUnknownAction, int(s.Target))
	}
	return nil
}
