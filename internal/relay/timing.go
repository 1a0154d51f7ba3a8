package relay

import "time"

// Timing holds the delays the board firmware needs between frames.
type Timing struct {
	// IntraCommandDelay separates consecutive frames in a sequence.
	IntraCommandDelay time.Duration
	// VolumeTurnUnit is how long the motor runs per unit of volume amount.
	VolumeTurnUnit time.Duration
	// ResetSeekUnits is the volume-down pulse length used by a full reset.
	ResetSeekUnits int
}

// DefaultTiming returns the delays the relay board is known to work with.
func DefaultTiming() Timing {
	return Timing{
		IntraCommandDelay: 100 * time.Millisecond,
		VolumeTurnUnit:    time.Second,
		ResetSeekUnits:    10,
	}
}

// PulseDuration is how long the motor stays energized for units of travel.
func (t Timing) PulseDuration(units int) time.Duration {
	return time.Duration(units) * t.VolumeTurnUnit
}
