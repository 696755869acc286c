package metering

import (
	"sync"
	"time"

	"pos-terminal/internal/logger"

	"go.uber.org/zap"
)

// Clock is injectable so tests can drive readings deterministically.
type Clock func() time.Time

// Engine runs one display timer per tracked session. It never calls the
// network; every reading is a pure function of (startTime, rate, now).
type Engine struct {
	mu       sync.Mutex
	timers   map[string]*timer
	interval time.Duration
	clock    Clock
}

type timer struct {
	mu      sync.Mutex
	stopped bool
	done    chan struct{}
}

type Option func(*Engine)

// WithInterval overrides the 1s tick interval (tests only, in practice).
func WithInterval(d time.Duration) Option {
	return func(e *Engine) { e.interval = d }
}

func WithClock(clock Clock) Option {
	return func(e *Engine) { e.clock = clock }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		timers:   make(map[string]*timer),
		interval: time.Second,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Track starts a ticker for an active session, invoking fn with a fresh
// reading immediately and then once per interval. Tracking an already
// tracked session id restarts its timer with the refreshed session fields.
func (e *Engine) Track(session Session, fn func(DisplayReading)) {
	if session.Status != StatusActive {
		return
	}

	e.mu.Lock()
	if existing, ok := e.timers[session.ID]; ok {
		existing.stop()
	}
	t := &timer{done: make(chan struct{})}
	e.timers[session.ID] = t
	e.mu.Unlock()

	logger.L().Debug("tracking session",
		zap.String("session_id", session.ID),
		zap.String("resource_id", session.ResourceID),
	)

	go e.run(t, session, fn)
}

func (e *Engine) run(t *timer, session Session, fn func(DisplayReading)) {
	t.fire(session, e.clock, fn)

	ticker := time.NewTicker(e.interval)
	defer ticker.Stop()

	for {
		select {
		case <-t.done:
			return
		case <-ticker.C:
			t.fire(session, e.clock, fn)
		}
	}
}

// fire delivers one reading unless the timer was stopped. The timer mutex
// makes Stop a barrier: once Stop returns, no further callback can run.
func (t *timer) fire(session Session, clock Clock, fn func(DisplayReading)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stopped {
		return
	}
	fn(Reading(session, clock()))
}

func (t *timer) stop() {
	t.mu.Lock()
	if !t.stopped {
		t.stopped = true
		close(t.done)
	}
	t.mu.Unlock()
}

// Stop cancels a session's timer synchronously. A late tick for an ended
// session is impossible after Stop returns.
func (e *Engine) Stop(sessionID string) {
	e.mu.Lock()
	t, ok := e.timers[sessionID]
	if ok {
		delete(e.timers, sessionID)
	}
	e.mu.Unlock()

	if ok {
		t.stop()
	}
}

// StopAll tears down every timer; used when the view unmounts or the
// process shuts down.
func (e *Engine) StopAll() {
	e.mu.Lock()
	timers := e.timers
	e.timers = make(map[string]*timer)
	e.mu.Unlock()

	for _, t := range timers {
		t.stop()
	}
}

// Tracking reports whether a session currently has a live timer.
func (e *Engine) Tracking(sessionID string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	_, ok := e.timers[sessionID]
	return ok
}
