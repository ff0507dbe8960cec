package events

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists domain events in the domain_events table.
type PostgresStore struct {
	Pool *pgxpool.Pool
}

// InsertDomainEvent implements the Store interface.
func (s PostgresStore) InsertDomainEvent(ctx context.Context, topic, aggregateID string, payload []byte) (DomainEvent, error) {
	if s.Pool == nil {
		return DomainEvent{}, fmt.Errorf("events: pool not configured")
	}
	q := `
INSERT INTO domain_events (topic, aggregate_id, payload)
VALUES ($1, $2, $3)
RETURNING id, topic, aggregate_id, payload, occurred_at`
	var ev DomainEvent
	if err := s.Pool.QueryRow(ctx, q, topic, aggregateID, payload).Scan(
		&ev.ID,
		&ev.Topic,
		&ev.AggregateID,
		&ev.Payload,
		&ev.OccurredAt,
	); err != nil {
		return DomainEvent{}, err
	}
	return ev, nil
}
