package checkout

import (
	"context"

	"pos-terminal/internal/api"
	"pos-terminal/internal/logger"
	"pos-terminal/internal/metering"
	"pos-terminal/internal/resources"

	"go.uber.org/zap"
)

// StartDeviceSession opens a metered session on an available device. The
// server assigns the start time and snapshots the hourly rate; the local
// card starts ticking only after that confirmation arrives.
func (c *Checkout) StartDeviceSession(ctx context.Context, deviceID string) (*metering.Session, error) {
	card, ok := c.cards.Get(deviceID)
	if !ok {
		return nil, resources.ErrCardNotFound
	}
	if card.Status == resources.StatusOccupied {
		return nil, ErrDeviceOccupied
	}

	apiSession, err := c.backend.StartSession(ctx, deviceID)
	if err != nil {
		logger.FromCtx(ctx).Warn("failed to start session",
			zap.String("device_id", deviceID),
			zap.Error(err),
		)
		return nil, err
	}

	rate := apiSession.PricePerHourSnapshot
	if rate == 0 {
		rate = card.RatePerHour
	}
	session := metering.Session{
		ID:          apiSession.ID,
		ResourceID:  deviceID,
		StartTime:   apiSession.StartTime,
		RatePerHour: rate,
		Status:      metering.StatusActive,
	}

	if err := c.cards.SessionStarted(deviceID, session); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("session started",
		zap.String("device_id", deviceID),
		zap.String("session_id", session.ID),
		zap.Float64("rate_per_hour", session.RatePerHour),
	)
	return &session, nil
}

// EndDeviceSession closes the device's session and returns the server's
// invoice. The locally accrued amount is advisory only and is discarded in
// favor of the returned figure.
//
// If a poll has already marked the session ended elsewhere, the call is
// skipped and the caller just refreshes the display.
func (c *Checkout) EndDeviceSession(ctx context.Context, deviceID string) (*api.SessionInvoice, error) {
	card, ok := c.cards.Get(deviceID)
	if !ok {
		return nil, resources.ErrCardNotFound
	}
	if card.Status != resources.StatusOccupied || card.Session == nil {
		return nil, ErrSessionAlreadyEnded
	}

	invoice, err := c.backend.EndSession(ctx, card.Session.ID)
	if err != nil {
		// Still active and still billing; the cashier retries manually.
		logger.FromCtx(ctx).Warn("failed to end session",
			zap.String("session_id", card.Session.ID),
			zap.Error(err),
		)
		return nil, err
	}

	if err := c.cards.SessionEnded(deviceID); err != nil {
		return nil, err
	}

	logger.FromCtx(ctx).Info("session ended",
		zap.String("session_id", card.Session.ID),
		zap.Int("duration_minutes", invoice.DurationMinutes),
		zap.Float64("amount", invoice.Amount),
	)
	return invoice, nil
}
