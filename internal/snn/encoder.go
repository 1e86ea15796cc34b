package snn

// DefaultMaxDistance is the nominal range of the ultrasonic sensors in
// centimeters.
const DefaultMaxDistance = 200

// minDistance is the physical sensor floor. Readings below it are treated
// as exactly minDistance, which also keeps the rate division bounded.
const minDistance = 5

// maxStimulation caps the encoded input current for very close obstacles.
const maxStimulation = 1.5

// DistanceToStimulation converts a raw distance reading into a bounded
// input current for a sensor neuron. The encoding is rate-like: stimulation
// is proportional to maxDistance/distance, scaled down by 10 and clamped to
// [0, 1.5], so near obstacles drive the sensor layer hard and far ones
// barely at all.
//
// The function is monotone non-increasing in distance and total over all
// finite inputs; distances below the sensor floor behave as the floor.
func DistanceToStimulation(distance, maxDistance float64) float64 {
	if distance < minDistance {
		distance = minDistance
	}
	rate := maxDistance / distance
	return clamp(rate/10, 0, maxStimulation)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
