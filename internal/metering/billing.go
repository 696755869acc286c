package metering

import (
	"fmt"
	"math"
	"time"
)

// ElapsedSeconds returns whole seconds since start, clamped at zero so clock
// skew can never render a negative duration.
func ElapsedSeconds(start, now time.Time) int64 {
	diff := now.Sub(start)
	if diff < 0 {
		return 0
	}
	return int64(diff / time.Second)
}

// AccruedAmount computes the running cost at full float precision. Rounding
// happens only at display time to avoid compounding error across ticks.
func AccruedAmount(ratePerHour float64, elapsedSeconds int64) float64 {
	return float64(elapsedSeconds) / 3600 * ratePerHour
}

// RoundDisplay rounds an amount to cents for display.
func RoundDisplay(amount float64) float64 {
	return math.Round(amount*100) / 100
}

// FormatElapsed renders HH:MM:SS with zero padding. Hours are unbounded, so
// a session past 99 hours still renders correctly (e.g. 120:00:00).
func FormatElapsed(totalSeconds int64) string {
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// Reading derives the display state for a session at the given instant.
// Non-active sessions read as zero.
func Reading(session Session, now time.Time) DisplayReading {
	if session.Status != StatusActive {
		return DisplayReading{SessionID: session.ID, Formatted: FormatElapsed(0)}
	}

	elapsed := ElapsedSeconds(session.StartTime, now)
	return DisplayReading{
		SessionID:      session.ID,
		ElapsedSeconds: elapsed,
		Formatted:      FormatElapsed(elapsed),
		Amount:         AccruedAmount(session.RatePerHour, elapsed),
	}
}
