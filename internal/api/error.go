package api

import (
	"errors"
	"fmt"
)

// Kind classifies how a failed backend call should be handled by the
// checkout flow: validation and business failures keep local state for
// correction, transport failures keep it for a manual retry.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindBusinessRule Kind = "business_rule"
	KindTransport    Kind = "transport"
	KindUnauthorized Kind = "unauthorized"
)

const genericMessage = "request failed, please try again"

type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api: %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("api: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage is what the terminal surfaces to the cashier.
func (e *Error) UserMessage() string {
	if e.Message == "" {
		return genericMessage
	}
	return e.Message
}

func IsValidation(err error) bool   { return hasKind(err, KindValidation) }
func IsBusinessRule(err error) bool { return hasKind(err, KindBusinessRule) }
func IsTransport(err error) bool    { return hasKind(err, KindTransport) }
func IsUnauthorized(err error) bool { return hasKind(err, KindUnauthorized) }

func hasKind(err error, kind Kind) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind == kind
	}
	return false
}
