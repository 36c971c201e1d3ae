package inquiry

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

const (
	defaultIdleTTL     = 30 * time.Minute
	minSweepInterval   = time.Second
	sweepIntervalRatio = 2
)

// Desk keeps one Submission per visitor key (the session id) and forgets visitors that have
// been idle longer than the TTL.
type Desk struct {
	clock  Clock
	delay  time.Duration
	ttl    time.Duration
	logger *zap.Logger

	mu      sync.Mutex
	entries map[string]*deskEntry
}

type deskEntry struct {
	sub      *Submission
	lastSeen time.Time
}

// DeskOption configures a Desk.
type DeskOption func(*Desk)

// WithClock overrides the clock used for delays and idle tracking.
func WithClock(c Clock) DeskOption {
	return func(d *Desk) {
		if c != nil {
			d.clock = c
		}
	}
}

// WithDelay sets the simulated send delay for new submissions.
func WithDelay(delay time.Duration) DeskOption {
	return func(d *Desk) {
		if delay > 0 {
			d.delay = delay
		}
	}
}

// WithTTL sets how long an untouched submission is kept.
func WithTTL(ttl time.Duration) DeskOption {
	return func(d *Desk) {
		if ttl > 0 {
			d.ttl = ttl
		}
	}
}

// WithLogger attaches a logger to the desk and its submissions.
func WithLogger(l *zap.Logger) DeskOption {
	return func(d *Desk) {
		if l != nil {
			d.logger = l
		}
	}
}

// NewDesk constructs an empty desk.
func NewDesk(opts ...DeskOption) *Desk {
	d := &Desk{
		clock:   SystemClock{},
		delay:   DefaultSubmitDelay,
		ttl:     defaultIdleTTL,
		logger:  zap.NewNop(),
		entries: make(map[string]*deskEntry),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Submission returns the submission for key, creating an idle one on first use.
func (d *Desk) Submission(key string) *Submission {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.clock.Now()
	if e, ok := d.entries[key]; ok {
		e.lastSeen = now
		return e.sub
	}
	sub := NewSubmission(d.clock, d.delay, d.logger.With(zap.String("visitor", shortKey(key))))
	d.entries[key] = &deskEntry{sub: sub, lastSeen: now}
	return sub
}

// Lookup returns the submission for key without creating one.
func (d *Desk) Lookup(key string) (*Submission, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	e, ok := d.entries[key]
	if !ok {
		return nil, false
	}
	e.lastSeen = d.clock.Now()
	return e.sub, true
}

// Len returns the number of tracked visitors.
func (d *Desk) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.entries)
}

// Sweep drops entries idle for longer than the TTL and returns how many were removed.
// Submissions still waiting on their delay are kept.
func (d *Desk) Sweep() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	cutoff := d.clock.Now().Add(-d.ttl)
	removed := 0
	for key, e := range d.entries {
		if e.lastSeen.After(cutoff) || e.sub.busy() {
			continue
		}
		delete(d.entries, key)
		removed++
	}
	return removed
}

// Run sweeps periodically until ctx is done.
func (d *Desk) Run(ctx context.Context) error {
	interval := d.ttl / sweepIntervalRatio
	if interval < minSweepInterval {
		interval = minSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := d.Sweep(); n > 0 {
				d.logger.Debug("inquiry desk swept", zap.Int("removed", n), zap.Int("remaining", d.Len()))
			}
		}
	}
}

func shortKey(key string) string {
	if len(key) > 8 {
		return key[:8]
	}
	return key
}
