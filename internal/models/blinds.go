package models

import (
	"fmt"
	"time"
)

// BlindLevel is one step of the blind schedule
type BlindLevel struct {
	Level      int `json:"level"`
	SmallBlind int `json:"smallBlind"`
	BigBlind   int `json:"bigBlind"`
	Ante       int `json:"ante"`
	Duration   int `json:"duration"` // seconds
}

// DurationTime returns the nominal length of the level.
func (b BlindLevel) DurationTime() time.Duration {
	return time.Duration(b.Duration) * time.Second
}

// FindBlindLevel returns the schedule entry for the given level number.
// Schedules are matched on the level field so gaps are tolerated.
func FindBlindLevel(level int, levels []BlindLevel) *BlindLevel {
	for i := range levels {
		if levels[i].Level == level {
			l := levels[i]
			return &l
		}
	}
	return nil
}

// GetNextBlindLevel returns the level following currentLevel, or nil when
// currentLevel is the last level or is not in the schedule at all.
func GetNextBlindLevel(currentLevel int, levels []BlindLevel) *BlindLevel {
	return FindBlindLevel(currentLevel+1, levels)
}

// CalculateTimeRemaining returns how long until end, never negative.
func CalculateTimeRemaining(end time.Time) time.Duration {
	return TimeRemainingAt(end, time.Now())
}

// TimeRemainingAt is CalculateTimeRemaining against an explicit now.
func TimeRemainingAt(end, now time.Time) time.Duration {
	remaining := end.Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// FormatTimeRemaining renders a duration as MM:SS. Minutes do not roll over
// into hours and partial seconds are dropped.
func FormatTimeRemaining(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	totalSeconds := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d", totalSeconds/60, totalSeconds%60)
}
