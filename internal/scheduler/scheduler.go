package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/ticketly/ticket-service/internal/service"
)

// Scheduler drives the periodic transaction sweeps: expiry of unpaid
// transactions and cancellation of stale unreviewed ones. Both sweeps are
// idempotent, so overlap with user-triggered operations is safe.
type Scheduler struct {
	txns         service.TransactionService
	expireEvery  time.Duration
	cancelEvery  time.Duration
	expireTicker *time.Ticker
	cancelTicker *time.Ticker
	done         chan struct{}
}

func New(txns service.TransactionService, expireEvery, cancelEvery time.Duration) *Scheduler {
	return &Scheduler{
		txns:        txns,
		expireEvery: expireEvery,
		cancelEvery: cancelEvery,
		done:        make(chan struct{}),
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	slog.Info("starting transaction sweeps",
		"expire_every", s.expireEvery, "cancel_every", s.cancelEvery)

	s.expireTicker = time.NewTicker(s.expireEvery)
	s.cancelTicker = time.NewTicker(s.cancelEvery)

	// First pass immediately so a restart does not delay overdue work.
	go s.runExpire(ctx)
	go s.runCancel(ctx)

	go func() {
		for {
			select {
			case <-s.expireTicker.C:
				s.runExpire(ctx)
			case <-s.cancelTicker.C:
				s.runCancel(ctx)
			case <-s.done:
				slog.Info("transaction sweeps stopped")
				return
			}
		}
	}()
}

func (s *Scheduler) Stop() {
	if s.expireTicker != nil {
		s.expireTicker.Stop()
	}
	if s.cancelTicker != nil {
		s.cancelTicker.Stop()
	}
	close(s.done)
}

func (s *Scheduler) runExpire(ctx context.Context) {
	if _, err := s.txns.AutoExpire(ctx); err != nil {
		slog.Error("auto-expire sweep failed", "error", err)
	}
}

func (s *Scheduler) runCancel(ctx context.Context) {
	if _, err := s.txns.AutoCancel(ctx); err != nil {
		slog.Error("auto-cancel sweep failed", "error", err)
	}
}
