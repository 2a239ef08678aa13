// Package refresher keeps the latest portfolio snapshot up to date.
//
// A single Refresher is shared by the periodic timer, the manual refresh
// button and the quote API. Calls that overlap join the fetch already in
// flight, so the upstream provider sees at most one request at a time and
// snapshots are never replaced out of order.
package refresher

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/glbter/portfolio-dashboard/entities"
	"github.com/glbter/portfolio-dashboard/portfolio"
	"github.com/glbter/portfolio-dashboard/quotes"
)

var ErrNoSnapshot = errors.New("no snapshot fetched yet")

type Config struct {
	Currency string
	Interval time.Duration
	Timeout  time.Duration
}

// Status describes the outcome of the most recent refresh attempts.
type Status struct {
	LastAttempt time.Time
	LastSuccess time.Time
	LastError   error
}

// Stale reports whether the latest attempt failed after an earlier success.
func (s Status) Stale() bool {
	return s.LastError != nil && !s.LastSuccess.IsZero()
}

type Refresher struct {
	holdings []entities.Holding
	symbols  []string
	source   quotes.Source
	config   Config
	logger   *zap.Logger
	now      func() time.Time

	group singleflight.Group

	mu          sync.RWMutex
	latest      *entities.Snapshot
	status      Status
	subscribers []func(entities.Snapshot)
}

func New(holdings []entities.Holding, source quotes.Source, config Config, logger *zap.Logger) *Refresher {
	return &Refresher{
		holdings: holdings,
		symbols:  portfolio.Symbols(holdings),
		source:   source,
		config:   config,
		logger:   logger.With(zap.String("caller", "Refresher")),
		now:      time.Now,
	}
}

// Interval is how often Run refreshes.
func (r *Refresher) Interval() time.Duration {
	return r.config.Interval
}

// Subscribe registers fn to be called with every new snapshot, from the
// goroutine that fetched it.
func (r *Refresher) Subscribe(fn func(entities.Snapshot)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subscribers = append(r.subscribers, fn)
}

// Latest returns the last successfully fetched snapshot.
func (r *Refresher) Latest() (entities.Snapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.latest == nil {
		return entities.Snapshot{}, ErrNoSnapshot
	}
	return *r.latest, nil
}

func (r *Refresher) Status() Status {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status
}

// Snapshot returns the latest snapshot together with the status it was read
// with, so that both describe the same moment.
func (r *Refresher) Snapshot() (entities.Snapshot, Status, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.latest == nil {
		return entities.Snapshot{}, r.status, ErrNoSnapshot
	}
	return *r.latest, r.status, nil
}

// Refresh fetches quotes and replaces the latest snapshot. If a fetch is
// already running the call waits for it and shares its result. ctx only
// bounds the wait: the fetch itself runs with the configured timeout so that
// one impatient caller does not fail the others.
func (r *Refresher) Refresh(ctx context.Context) (entities.Snapshot, error) {
	ch := r.group.DoChan("refresh", func() (any, error) {
		return r.fetch(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return entities.Snapshot{}, res.Err
		}
		return res.Val.(entities.Snapshot), nil
	case <-ctx.Done():
		return entities.Snapshot{}, ctx.Err()
	}
}

// Run refreshes immediately and then once per interval until ctx is done.
// Failed refreshes are logged and the previous snapshot is kept.
func (r *Refresher) Run(ctx context.Context) {
	logger := r.logger.With(zap.String("method", "Run"))
	logger.Info("start refreshing", zap.Duration("interval", r.config.Interval), zap.Strings("symbols", r.symbols))

	r.refreshAndLog(ctx, logger)

	ticker := time.NewTicker(r.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("stop refreshing")
			return
		case <-ticker.C:
			r.refreshAndLog(ctx, logger)
		}
	}
}

func (r *Refresher) refreshAndLog(ctx context.Context, logger *zap.Logger) {
	if _, err := r.Refresh(ctx); err != nil && ctx.Err() == nil {
		logger.Warn("refresh failed, keeping previous snapshot", zap.Error(err))
	}
}

func (r *Refresher) fetch(ctx context.Context) (entities.Snapshot, error) {
	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	start := r.now()
	data, err := r.source.Quotes(ctx, r.symbols)
	if err != nil {
		r.mu.Lock()
		r.status.LastAttempt = start
		r.status.LastError = err
		r.mu.Unlock()
		return entities.Snapshot{}, err
	}

	snap := portfolio.NewSnapshot(r.holdings, data, r.config.Currency, start)

	r.mu.Lock()
	r.latest = &snap
	r.status = Status{LastAttempt: start, LastSuccess: start}
	subscribers := append([]func(entities.Snapshot){}, r.subscribers...)
	r.mu.Unlock()

	r.logger.Debug("snapshot refreshed",
		zap.String("snapshot_id", snap.ID.String()),
		zap.Int("quotes", len(data)),
		zap.Duration("duration", time.Since(start)),
	)

	for _, fn := range subscribers {
		fn(snap)
	}
	return snap, nil
}
