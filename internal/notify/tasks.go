package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/xo-club/storefront-api/internal/common"
	"github.com/xo-club/storefront-api/internal/obs"
)

// TypeOrderConfirmation is the asynq task type for confirmation emails.
const TypeOrderConfirmation = "email:order_confirmation"

// EmailTaskPayload is the serialised body of an email task.
type EmailTaskPayload struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

// NewOrderConfirmationTask builds the asynq task carrying a rendered email.
func NewOrderConfirmationTask(payload EmailTaskPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode email task: %w", err)
	}
	return asynq.NewTask(TypeOrderConfirmation, body, asynq.MaxRetry(5)), nil
}

// EmailWorker processes queued email tasks.
type EmailWorker struct {
	Mail   common.EmailSender
	Logger zerolog.Logger
}

// ProcessTask implements asynq.Handler for order confirmation emails.
func (w *EmailWorker) ProcessTask(ctx context.Context, task *asynq.Task) error {
	var payload EmailTaskPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		// A malformed payload never becomes valid; skip retries.
		return fmt.Errorf("decode email task: %v: %w", err, asynq.SkipRetry)
	}
	if err := w.Mail.Send(ctx, payload.To, payload.Subject, payload.HTML); err != nil {
		if obs.OrderEmailsTotal != nil {
			obs.OrderEmailsTotal.WithLabelValues("error").Inc()
		}
		w.Logger.Error().Err(err).Str("to", payload.To).Msg("send order confirmation")
		return err
	}
	if obs.OrderEmailsTotal != nil {
		obs.OrderEmailsTotal.WithLabelValues("ok").Inc()
	}
	w.Logger.Info().Str("to", payload.To).Msg("order confirmation sent")
	return nil
}
