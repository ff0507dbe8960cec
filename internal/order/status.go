package order

import (
	"fmt"
	"strings"
)

// Status is the fulfilment state of an order. The checkout core only writes
// pending; every later transition is driven by the admin console.
type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

// ParseStatus validates a status string.
func ParseStatus(value string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(value)))
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return s, nil
	}
	return "", fmt.Errorf("unknown order status %q", value)
}

// rank orders the forward lifecycle; cancelled sits outside of it.
func rank(s Status) int {
	switch s {
	case StatusPending:
		return 0
	case StatusProcessing:
		return 1
	case StatusShipped:
		return 2
	case StatusDelivered:
		return 3
	default:
		return -1
	}
}

// CanTransition reports whether an order may move from one status to the
// target. The lifecycle is strictly forward
// (pending -> processing -> shipped -> delivered) and cancellation is only
// allowed while the order is still pending.
func CanTransition(from, to Status) bool {
	if from == to {
		return false
	}
	if to == StatusCancelled {
		return from == StatusPending
	}
	if from == StatusCancelled {
		return false
	}
	return rank(to) > rank(from)
}
