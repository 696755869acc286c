package checkout

import "pos-terminal/internal/api"

// State tracks one submission attempt. Confirmed is terminal for the
// checkout context; a new context (or Reset) starts the next order.
type State string

const (
	StateIdle       State = "idle"
	StateSubmitting State = "submitting"
	StateConfirmed  State = "confirmed"
)

type Customer struct {
	Name   string
	Phone  string
	Guests int
}

const (
	defaultCustomerName  = "Guest"
	defaultCustomerPhone = "N/A"
)

// Result is the outcome of a confirmed submission. TableWarning carries the
// non-blocking message when the follow-up table status update failed; the
// order itself is already confirmed at that point.
type Result struct {
	Order        *api.Order
	TableWarning string
}
