package tracking

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// HistoryRecorder appends every status change to a StatusHistoryRepository.
type HistoryRecorder struct {
	repo ports.StatusHistoryRepository
	now  func() time.Time
}

// NewHistoryRecorder creates an observer that writes one StatusEvent per
// transition. now stamps the events and defaults to time.Now.
//
// Example:
//
//	recorder := tracking.NewHistoryRecorder(historyRepo, nil)
//	if err := tracker.Attach(recorder); err != nil {
//	    return err
//	}
func NewHistoryRecorder(repo ports.StatusHistoryRepository, now func() time.Time) *HistoryRecorder {
	if now == nil {
		now = time.Now
	}
	return &HistoryRecorder{repo: repo, now: now}
}

// OnStatusChanged stores the order's current status. A storage error is
// returned to the tracker, which logs it; the transition stands.
func (r *HistoryRecorder) OnStatusChanged(ctx context.Context, o *order.Order, _ order.Status) error {
	if err := r.repo.Add(ctx, order.NewStatusEvent(o, r.now())); err != nil {
		return fmt.Errorf("record status of order %s: %w", o.ID(), err)
	}
	return nil
}

// Name labels the observer in tracker logs.
func (r *HistoryRecorder) Name() string {
	return "history_recorder"
}

// StatusNotifier forwards status changes to the customer notifier.
type StatusNotifier struct {
	notifier ports.Notifier
}

// NewStatusNotifier creates an observer that sends a status-change
// notification for every transition.
func NewStatusNotifier(notifier ports.Notifier) *StatusNotifier {
	return &StatusNotifier{notifier: notifier}
}

func (n *StatusNotifier) OnStatusChanged(ctx context.Context, o *order.Order, status order.Status) error {
	n.notifier.NotifyStatusChanged(ctx, o, status)
	return nil
}

// Name labels the observer in tracker logs.
func (n *StatusNotifier) Name() string {
	return "status_notifier"
}
