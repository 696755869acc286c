package cart

import "errors"

var (
	// -- Validation & Input --
	ErrInvalidQuantity = errors.New("invalid cart quantity")
	ErrInvalidPrice    = errors.New("invalid unit price")

	// -- Resource State --
	ErrLineNotFound = errors.New("cart line not found")
	ErrCartEmpty    = errors.New("cart is empty")
)
