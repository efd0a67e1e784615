package publisher

import (
	"encoding/json"
	"time"

	"sjsage522/slickdealer/pkg/errors"

	"github.com/google/uuid"
)

// Publisher represents a service for publishing messages
type Publisher interface {
	// Publish publishes a message to a stream under the given field
	Publish(key string, message []byte) error

	// TrimStreams trims the stream to the configured maximum length
	TrimStreams() error

	// Close closes the publisher connection
	Close() error
}

// AlertField is the stream field alerts are published under
const AlertField = "alert"

// Alert announces a deal whose title contains a wishlist term
type Alert struct {
	ID      string    `json:"id"`
	Term    string    `json:"term"`
	Title   string    `json:"title"`
	URL     string    `json:"url"`
	FoundAt time.Time `json:"found_at"`
}

// NewAlert creates an alert with a fresh id
func NewAlert(term, title, url string) Alert {
	return Alert{
		ID:      uuid.NewString(),
		Term:    term,
		Title:   title,
		URL:     url,
		FoundAt: time.Now().UTC(),
	}
}

// PublishAlert encodes the alert as JSON and publishes it
func PublishAlert(p Publisher, alert Alert) error {
	data, err := json.Marshal(alert)
	if err != nil {
		return errors.NewPublisher("alerts", "failed to encode alert", err)
	}
	if err := p.Publish(AlertField, data); err != nil {
		return errors.NewPublisher("alerts", "failed to publish alert", err)
	}
	return nil
}
