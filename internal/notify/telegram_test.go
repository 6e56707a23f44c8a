package notify

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"kstartup-pbanc-watcher/internal/observability"
)

func testLogger() *observability.Logger {
	return observability.NewLogger("", "error")
}

func TestSendDeliversPayload(t *testing.T) {
	var gotPath string
	var gotPayload map[string]string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &gotPayload)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	n := NewNotifier("test-token", "42", testLogger())
	n.APIBase = server.URL

	if err := n.Send(context.Background(), "[새로운 공고]\n제목: 테스트"); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if gotPath != "/bottest-token/sendMessage" {
		t.Errorf("path = %q", gotPath)
	}
	if gotPayload["chat_id"] != "42" {
		t.Errorf("chat_id = %q", gotPayload["chat_id"])
	}
	if gotPayload["text"] != "[새로운 공고]\n제목: 테스트" {
		t.Errorf("text = %q", gotPayload["text"])
	}
}

func TestSendNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"ok":false,"description":"bot was blocked"}`))
	}))
	defer server.Close()

	n := NewNotifier("test-token", "42", testLogger())
	n.APIBase = server.URL

	err := n.Send(context.Background(), "message")
	var deliveryErr *DeliveryError
	if !errors.As(err, &deliveryErr) {
		t.Fatalf("Send error = %v, want DeliveryError", err)
	}
	if deliveryErr.Status != http.StatusForbidden {
		t.Errorf("Status = %d", deliveryErr.Status)
	}
}

func TestSendUnconfiguredLogsOnly(t *testing.T) {
	n := NewNotifier("", "", testLogger())

	if n.Configured() {
		t.Error("Configured should be false without token and chat id")
	}
	if err := n.Send(context.Background(), "message"); err != nil {
		t.Errorf("Send in log-only mode returned %v", err)
	}
}

func TestSendPartialConfigurationLogsOnly(t *testing.T) {
	n := NewNotifier("token-only", "", testLogger())

	if n.Configured() {
		t.Error("Configured should be false without a chat id")
	}
	if err := n.Send(context.Background(), "message"); err != nil {
		t.Errorf("Send in log-only mode returned %v", err)
	}
}
