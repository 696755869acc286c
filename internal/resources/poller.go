package resources

import (
	"context"
	"errors"
	"time"

	"pos-terminal/internal/api"
	"pos-terminal/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

var ErrRefreshThrottled = errors.New("refresh throttled")

// Lister is the slice of the backend client the poller needs.
type Lister interface {
	ListPlayStations(ctx context.Context) ([]api.Device, error)
	ListTables(ctx context.Context) ([]api.Table, error)
}

// Poller refreshes the resource cards on a fixed interval. Manual refreshes
// share the same limiter so repeated clicks cannot hammer the backend.
type Poller struct {
	client   Lister
	store    *Store
	interval time.Duration
	limiter  *rate.Limiter
}

func NewPoller(client Lister, store *Store, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	return &Poller{
		client:   client,
		store:    store,
		interval: interval,
		// One refresh per second sustained, small burst for a manual
		// refresh landing next to a scheduled poll.
		limiter: rate.NewLimiter(rate.Every(time.Second), 2),
	}
}

// Run polls until the context is cancelled. Poll failures are logged and
// skipped; the next tick tries again.
func (p *Poller) Run(ctx context.Context) {
	if err := p.refresh(ctx); err != nil && !errors.Is(err, ErrRefreshThrottled) {
		logger.FromCtx(ctx).Warn("initial resource poll failed", zap.Error(err))
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := p.refresh(ctx); err != nil && !errors.Is(err, ErrRefreshThrottled) {
				logger.FromCtx(ctx).Warn("resource poll failed", zap.Error(err))
			}
		}
	}
}

// RefreshNow serves the cashier's manual refresh button.
func (p *Poller) RefreshNow(ctx context.Context) error {
	return p.refresh(ctx)
}

func (p *Poller) refresh(ctx context.Context) error {
	if !p.limiter.Allow() {
		return ErrRefreshThrottled
	}

	devices, err := p.client.ListPlayStations(ctx)
	if err != nil {
		return err
	}
	tables, err := p.client.ListTables(ctx)
	if err != nil {
		return err
	}

	cards := make([]Card, 0, len(devices)+len(tables))
	for _, d := range devices {
		cards = append(cards, CardFromDevice(d))
	}
	for _, t := range tables {
		cards = append(cards, CardFromTable(t))
	}

	p.store.Merge(cards)
	return nil
}
