package checkout

import "errors"

var (
	// -- Submission guards --
	ErrSubmitInFlight = errors.New("an order submission is already in flight")
	ErrNoTarget       = errors.New("select a table or a session first")

	// -- Metered sessions --
	ErrDeviceOccupied      = errors.New("device already has an active session")
	ErrSessionAlreadyEnded = errors.New("session already ended")
)
