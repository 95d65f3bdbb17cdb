package countdown

import (
	"time"

	"poker-platform/tournament-sync/internal/models"
)

const (
	WarningThreshold  = 60 * time.Second
	CriticalThreshold = 15 * time.Second
)

// Reading is the countdown at one instant.
type Reading struct {
	Deadline  time.Time     `json:"deadline"`
	Duration  time.Duration `json:"-"`
	Remaining time.Duration `json:"-"`
	Formatted string        `json:"formatted"`
	Warning   bool          `json:"warning"`
	Critical  bool          `json:"critical"`
	// Progress is the fraction of the nominal duration still to run, in [0,1].
	Progress float64 `json:"progress"`
}

// NewReading computes the reading for deadline at now.
func NewReading(deadline time.Time, duration time.Duration, now time.Time) Reading {
	r := Reading{
		Deadline: deadline,
		Duration: duration,
	}
	if !deadline.IsZero() {
		r.Remaining = models.TimeRemainingAt(deadline, now)
	}
	r.Formatted = models.FormatTimeRemaining(r.Remaining)
	r.Warning = r.Remaining > 0 && r.Remaining <= WarningThreshold
	r.Critical = r.Remaining > 0 && r.Remaining <= CriticalThreshold
	r.Progress = progress(r.Remaining, duration)
	return r
}

func progress(remaining, duration time.Duration) float64 {
	if duration <= 0 {
		return 0
	}
	f := float64(remaining) / float64(duration)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

// StrokeOffset is the dash offset of a circular indicator of the given
// circumference showing this reading's progress.
func (r Reading) StrokeOffset(circumference float64) float64 {
	return circumference * (1 - r.Progress)
}

// Expired reports whether a deadline is set and has passed.
func (r Reading) Expired() bool {
	return !r.Deadline.IsZero() && r.Remaining == 0
}
