package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/xo-club/storefront-api/internal/events"
)

// TaskEnqueuer is the slice of asynq.Client used by the notifier.
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// EmailNotifier turns order.created events into queued confirmation emails.
// It implements events.Notifier; rendering happens at emit time so the worker
// only needs the finished message.
type EmailNotifier struct {
	Tasks   TaskEnqueuer
	Enabled bool
	Logger  zerolog.Logger
}

// Notify implements the events.Notifier interface.
func (n EmailNotifier) Notify(ctx context.Context, event events.DomainEvent) error {
	if !n.Enabled || n.Tasks == nil {
		return nil
	}
	if event.Topic != events.TopicOrderCreated {
		return nil
	}

	var data OrderEmailData
	if err := json.Unmarshal(event.Payload, &data); err != nil {
		return fmt.Errorf("email notify: decode payload: %w", err)
	}
	to := strings.TrimSpace(data.Email)
	if to == "" {
		return nil
	}

	html, err := RenderConfirmation(data)
	if err != nil {
		return fmt.Errorf("email notify: %w", err)
	}
	task, err := NewOrderConfirmationTask(EmailTaskPayload{
		To:      to,
		Subject: ConfirmationSubject(data.OrderNumber),
		HTML:    html,
	})
	if err != nil {
		return fmt.Errorf("email notify: %w", err)
	}
	info, err := n.Tasks.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("email notify: enqueue: %w", err)
	}
	n.Logger.Debug().Str("task_id", info.ID).Str("order_number", data.OrderNumber).Msg("queued order confirmation")
	return nil
}
