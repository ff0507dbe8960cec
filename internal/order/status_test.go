package order

import "testing"

func TestParseStatus(t *testing.T) {
	got, err := ParseStatus("  Shipped ")
	if err != nil {
		t.Fatalf("ParseStatus: %v", err)
	}
	if got != StatusShipped {
		t.Fatalf("got %s, want shipped", got)
	}
	if _, err := ParseStatus("refunded"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}

func TestCanTransitionForwardOnly(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusProcessing, true},
		{StatusPending, StatusShipped, true},
		{StatusProcessing, StatusShipped, true},
		{StatusShipped, StatusDelivered, true},
		{StatusProcessing, StatusPending, false},
		{StatusShipped, StatusProcessing, false},
		{StatusDelivered, StatusShipped, false},
		{StatusPending, StatusPending, false},
	}
	for _, tc := range cases {
		if got := CanTransition(tc.from, tc.to); got != tc.want {
			t.Fatalf("CanTransition(%s, %s) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestCancellationOnlyFromPending(t *testing.T) {
	if !CanTransition(StatusPending, StatusCancelled) {
		t.Fatal("pending orders must be cancellable")
	}
	for _, from := range []Status{StatusProcessing, StatusShipped, StatusDelivered} {
		if CanTransition(from, StatusCancelled) {
			t.Fatalf("%s must not be cancellable", from)
		}
	}
}

func TestCancelledIsTerminal(t *testing.T) {
	for _, to := range []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered} {
		if CanTransition(StatusCancelled, to) {
			t.Fatalf("cancelled order must not move to %s", to)
		}
	}
}

func TestNumber(t *testing.T) {
	if got := Number(7); got != "XO-00007" {
		t.Fatalf("Number(7) = %s", got)
	}
	if got := Number(123456); got != "XO-123456" {
		t.Fatalf("Number(123456) = %s", got)
	}
}
