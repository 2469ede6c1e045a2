// Package events publishes voucher notifications to a message broker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/model"
)

// Kind names what happened to a voucher.
type Kind string

const (
	VoucherCreated Kind = "voucher.created"
	VoucherDeleted Kind = "voucher.deleted"
)

// Event is the JSON message sent for each voucher change.
type Event struct {
	ID        uuid.UUID       `json:"id"`
	Kind      Kind            `json:"kind"`
	VoucherID string          `json:"voucher_id"`
	Company   string          `json:"company,omitempty"`
	Type      string          `json:"type,omitempty"`
	Amount    decimal.Decimal `json:"amount"`
	At        time.Time       `json:"at"`
}

// NewEvent stamps a fresh event for v.
func NewEvent(kind Kind, v model.Voucher) Event {
	return Event{
		ID:        uuid.New(),
		Kind:      kind,
		VoucherID: v.ID,
		Company:   v.Company,
		Type:      string(v.Type),
		Amount:    v.Amount,
		At:        time.Now().UTC(),
	}
}

// ToJSON encodes the event.
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// EventFromJSON decodes an event body.
func EventFromJSON(data []byte) (Event, error) {
	var e Event
	if err := json.Unmarshal(data, &e); err != nil {
		return Event{}, fmt.Errorf("decode event: %w", err)
	}
	return e, nil
}

// Publisher delivers events.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }

// New builds the publisher selected by cfg.Backend.
func New(cfg config.EventsConfig, logger *slog.Logger) (Publisher, error) {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "events", "backend", cfg.Backend)

	switch cfg.Backend {
	case "", "none":
		return Nop{}, nil
	case "amqp":
		return NewAMQPPublisher(cfg.URL, cfg.Exchange, cfg.Queue, logger)
	case "kafka":
		return NewKafkaPublisher(cfg.Brokers, cfg.Topic, logger), nil
	default:
		return nil, fmt.Errorf("unknown events backend %q", cfg.Backend)
	}
}
