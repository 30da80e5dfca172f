package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Notifier posts booking confirmations to the email server. Fire and forget:
// delivery failures are logged and otherwise ignored so they never block a
// booking.
type Notifier struct {
	endpoint   string
	httpClient *http.Client
	logger     *slog.Logger
}

func NewNotifier(endpoint string, logger *slog.Logger) *Notifier {
	return &Notifier{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger,
	}
}

type BookingNotification struct {
	EventTitle string      `json:"event_title"`
	EventStart time.Time   `json:"event_start"`
	EventEnd   time.Time   `json:"event_end"`
	Dates      []time.Time `json:"booking_dates"`
}

func (n *Notifier) NotifyBooking(ctx context.Context, notification BookingNotification) {
	if n.endpoint == "" {
		return
	}

	body, err := json.Marshal(notification)
	if err != nil {
		n.logger.Error("failed to encode booking notification", "error", err)
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, bytes.NewReader(body))
	if err != nil {
		n.logger.Error("failed to build booking notification", "error", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		n.logger.Warn("booking notification not delivered", "error", err)
		return
	}
	resp.Body.Close()

	if resp.StatusCode >= 400 {
		n.logger.Warn("booking notification rejected", "status", resp.StatusCode)
	}
}
