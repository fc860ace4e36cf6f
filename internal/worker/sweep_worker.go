package worker

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/spec-kit/helpdesk/internal/service"
)

const sweepTimeout = 5 * time.Minute

// UnattendedHandler acts on one open, assigned ticket found by the sweep.
type UnattendedHandler func(ctx context.Context, item service.UnattendedTicket) error

// SweepWorker periodically scans open tickets that have an assignee. Without an
// OnUnattended handler the sweep only reads and logs.
type SweepWorker struct {
	assignments  *service.AssignmentService
	logger       *zap.Logger
	schedule     string
	cron         *cron.Cron
	OnUnattended UnattendedHandler
}

// NewSweepWorker constructs the worker. An empty schedule means hourly.
func NewSweepWorker(assignments *service.AssignmentService, schedule string, logger *zap.Logger) *SweepWorker {
	if schedule == "" {
		schedule = "0 * * * *"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SweepWorker{
		assignments: assignments,
		logger:      logger,
		schedule:    schedule,
	}
}

// Sweep runs one pass and returns how many tickets it inspected.
func (w *SweepWorker) Sweep(ctx context.Context) (int, error) {
	items, err := w.assignments.UnattendedTickets(ctx)
	if err != nil {
		return 0, err
	}
	for _, item := range items {
		w.logger.Debug("unattended ticket",
			zap.String("ticket_id", item.Ticket.ID),
			zap.String("assignee_id", item.Assignee.ID))
		if w.OnUnattended == nil {
			continue
		}
		if err := w.OnUnattended(ctx, item); err != nil {
			w.logger.Warn("unattended handler failed",
				zap.String("ticket_id", item.Ticket.ID),
				zap.Error(err))
		}
	}
	return len(items), nil
}

// Start schedules the sweep.
func (w *SweepWorker) Start() error {
	w.cron = cron.New()
	if _, err := w.cron.AddFunc(w.schedule, w.run); err != nil {
		return err
	}
	w.cron.Start()
	w.logger.Info("sweep scheduled", zap.String("schedule", w.schedule))
	return nil
}

// Stop halts scheduling and waits for a running sweep or ctx, whichever ends first.
func (w *SweepWorker) Stop(ctx context.Context) {
	if w.cron == nil {
		return
	}
	select {
	case <-w.cron.Stop().Done():
	case <-ctx.Done():
	}
}

func (w *SweepWorker) run() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()
	count, err := w.Sweep(ctx)
	if err != nil {
		w.logger.Error("sweep failed", zap.Error(err))
		return
	}
	w.logger.Info("sweep completed", zap.Int("tickets", count))
}
