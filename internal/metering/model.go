package metering

import "time"

type Status string

const (
	StatusActive Status = "active"
	StatusEnded  Status = "ended"
)

// Session mirrors a server-owned metered rental. RatePerHour is the hourly
// price snapshotted when the session started; later catalog price changes
// never touch it.
type Session struct {
	ID          string
	ResourceID  string
	StartTime   time.Time
	RatePerHour float64
	Status      Status
}

// DisplayReading is one tick's worth of advisory display state. It is never
// authoritative; the server's invoice replaces it when the session ends.
type DisplayReading struct {
	SessionID      string
	ElapsedSeconds int64
	Formatted      string
	Amount         float64
}
