package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"kstartup-pbanc-watcher/internal/observability"
)

const defaultAPIBase = "https://api.telegram.org"

// DeliveryError is a non-success response from the messaging provider.
// Recoverable: the orchestrator logs it and moves on, it never blocks
// other notifications or the state save.
type DeliveryError struct {
	Status int
	Body   string
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("telegram delivery failed: status %d: %s", e.Status, e.Body)
}

// Notifier sends messages to a single Telegram chat. Without a bot token
// and chat id it degrades to logging the message instead of sending.
type Notifier struct {
	// APIBase is overridable for tests.
	APIBase string

	token  string
	chatID string
	client *http.Client
	logger *observability.Logger
}

func NewNotifier(token, chatID string, logger *observability.Logger) *Notifier {
	return &Notifier{
		APIBase: defaultAPIBase,
		token:   token,
		chatID:  chatID,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

func (n *Notifier) Configured() bool {
	return n.token != "" && n.chatID != ""
}

func (n *Notifier) Send(ctx context.Context, text string) error {
	if !n.Configured() {
		n.logger.Info("Telegram configuration missing, logging message instead", "message", text)
		return nil
	}

	payload, err := json.Marshal(map[string]string{
		"chat_id": n.chatID,
		"text":    text,
	})
	if err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.APIBase, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			n.logger.Warn("Failed to close response body", "error", closeErr.Error())
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &DeliveryError{Status: resp.StatusCode, Body: string(body)}
	}
	return nil
}
