package notify

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/xo-club/storefront-api/internal/common"
	"github.com/xo-club/storefront-api/internal/events"
)

type captureEnqueuer struct {
	tasks []*asynq.Task
	err   error
}

func (c *captureEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	if c.err != nil {
		return nil, c.err
	}
	c.tasks = append(c.tasks, task)
	return &asynq.TaskInfo{ID: "task-1"}, nil
}

func orderCreatedEvent(t *testing.T) events.DomainEvent {
	t.Helper()
	payload, err := json.Marshal(OrderEmailData{
		OrderNumber:    "XO-00042",
		Email:          "kai@example.com",
		FirstName:      "Kai",
		LastName:       "Ramos",
		Products:       []OrderEmailLine{{Name: "Oversized Hoodie", Size: "L", Quantity: 1, Price: decimal.RequireFromString("65.00")}},
		Subtotal:       decimal.RequireFromString("65.00"),
		PromoDiscount:  decimal.Zero,
		ShippingFee:    decimal.Zero,
		Tax:            decimal.RequireFromString("4.71"),
		TotalAmount:    decimal.RequireFromString("69.71"),
		ShippingMethod: "express",
		ShippingAddress: OrderEmailAddress{
			Street: "1 Fairfax Ave",
			City:   "Los Angeles",
			State:  "CA",
			Zip:    "90036",
		},
	})
	require.NoError(t, err)
	return events.DomainEvent{ID: 1, Topic: events.TopicOrderCreated, AggregateID: "XO-00042", Payload: payload}
}

func TestEmailNotifierEnqueuesRenderedEmail(t *testing.T) {
	queue := &captureEnqueuer{}
	notifier := EmailNotifier{Tasks: queue, Enabled: true, Logger: zerolog.Nop()}

	require.NoError(t, notifier.Notify(context.Background(), orderCreatedEvent(t)))
	require.Len(t, queue.tasks, 1)
	require.Equal(t, TypeOrderConfirmation, queue.tasks[0].Type())

	var payload EmailTaskPayload
	require.NoError(t, json.Unmarshal(queue.tasks[0].Payload(), &payload))
	require.Equal(t, "kai@example.com", payload.To)
	require.Equal(t, "Order Confirmation - XO-00042", payload.Subject)
	require.Contains(t, payload.HTML, "XO-00042")
	require.Contains(t, payload.HTML, "Hi Kai,")
	require.Contains(t, payload.HTML, "$69.71")
	require.Contains(t, payload.HTML, "FREE")
}

func TestEmailNotifierDisabled(t *testing.T) {
	queue := &captureEnqueuer{}
	notifier := EmailNotifier{Tasks: queue, Enabled: false, Logger: zerolog.Nop()}

	require.NoError(t, notifier.Notify(context.Background(), orderCreatedEvent(t)))
	require.Empty(t, queue.tasks)
}

func TestEmailNotifierIgnoresOtherTopics(t *testing.T) {
	queue := &captureEnqueuer{}
	notifier := EmailNotifier{Tasks: queue, Enabled: true, Logger: zerolog.Nop()}

	ev := orderCreatedEvent(t)
	ev.Topic = events.TopicOrderStatusChanged
	require.NoError(t, notifier.Notify(context.Background(), ev))
	require.Empty(t, queue.tasks)
}

func TestEmailNotifierMissingRecipient(t *testing.T) {
	queue := &captureEnqueuer{}
	notifier := EmailNotifier{Tasks: queue, Enabled: true, Logger: zerolog.Nop()}

	ev := events.DomainEvent{Topic: events.TopicOrderCreated, Payload: []byte(`{"orderNumber":"XO-00001"}`)}
	require.NoError(t, notifier.Notify(context.Background(), ev))
	require.Empty(t, queue.tasks)
}

func TestRenderConfirmationDiscountRow(t *testing.T) {
	html, err := RenderConfirmation(OrderEmailData{
		OrderNumber:   "XO-00002",
		FirstName:     "Mia",
		PromoDiscount: decimal.RequireFromString("30.00"),
		Subtotal:      decimal.RequireFromString("200.00"),
		TotalAmount:   decimal.RequireFromString("183.60"),
		ShippingFee:   decimal.Zero,
	})
	require.NoError(t, err)
	require.Contains(t, html, "-$30.00")
	require.Contains(t, html, "$183.60")

	noPromo, err := RenderConfirmation(OrderEmailData{OrderNumber: "XO-00003", FirstName: "Mia"})
	require.NoError(t, err)
	require.NotContains(t, noPromo, "DISCOUNT")
}

func TestEmailWorkerProcessTask(t *testing.T) {
	sent := &common.InMemoryEmail{}
	worker := &EmailWorker{Mail: sent, Logger: zerolog.Nop()}

	task, err := NewOrderConfirmationTask(EmailTaskPayload{To: "kai@example.com", Subject: "s", HTML: "<p></p>"})
	require.NoError(t, err)
	require.NoError(t, worker.ProcessTask(context.Background(), task))
	require.Len(t, sent.Outbox, 1)
	require.Equal(t, "kai@example.com", sent.Outbox[0].To)
}

func TestEmailWorkerMalformedPayloadSkipsRetry(t *testing.T) {
	worker := &EmailWorker{Mail: &common.InMemoryEmail{}, Logger: zerolog.Nop()}
	task := asynq.NewTask(TypeOrderConfirmation, []byte("{not json"))

	err := worker.ProcessTask(context.Background(), task)
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "decode email task"))
	require.ErrorIs(t, err, asynq.SkipRetry)
}
