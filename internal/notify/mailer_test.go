package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestResendMailerSend(t *testing.T) {
	var got resendRequest
	var auth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		if r.URL.Path != "/emails" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"id":"email-123"}`))
	}))
	defer srv.Close()

	mailer := &ResendMailer{
		APIKey:  "re_test",
		From:    "XO Club <orders@xoclub.com>",
		BaseURL: srv.URL,
	}
	if err := mailer.Send(context.Background(), "kai@example.com", "Order Confirmation - XO-00042", "<p>hi</p>"); err != nil {
		t.Fatalf("Send: %v", err)
	}
	if auth != "Bearer re_test" {
		t.Fatalf("authorization header = %q", auth)
	}
	if got.To != "kai@example.com" || got.Subject != "Order Confirmation - XO-00042" {
		t.Fatalf("unexpected request: %+v", got)
	}
	if got.From != "XO Club <orders@xoclub.com>" {
		t.Fatalf("from = %q", got.From)
	}
}

func TestResendMailerAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"message":"invalid to address"}`))
	}))
	defer srv.Close()

	mailer := &ResendMailer{APIKey: "re_test", From: "orders@xoclub.com", BaseURL: srv.URL}
	err := mailer.Send(context.Background(), "broken", "subject", "<p></p>")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "invalid to address") {
		t.Fatalf("error must carry the API message, got %v", err)
	}
}

func TestResendMailerMissingKey(t *testing.T) {
	mailer := &ResendMailer{From: "orders@xoclub.com"}
	if err := mailer.Send(context.Background(), "kai@example.com", "subject", "<p></p>"); err == nil {
		t.Fatal("expected error when api key is missing")
	}
}
