package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"studentenfutter/internal/domain"
	"studentenfutter/internal/infra"
)

const DefaultExchange = "studentenfutter.events"

// Event is the JSON body published for every handled request.
type Event struct {
	EventID    string    `json:"event_id"`
	RequestID  string    `json:"request_id"`
	Locale     string    `json:"locale"`
	Request    string    `json:"request"`
	Outcome    string    `json:"outcome"`
	DishCount  int       `json:"dish_count"`
	Error      string    `json:"error,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewEvent(inv domain.Invocation) Event {
	return Event{
		EventID:    uuid.NewString(),
		RequestID:  inv.RequestID,
		Locale:     inv.Locale,
		Request:    inv.Name,
		Outcome:    string(inv.Outcome),
		DishCount:  inv.DishCount,
		Error:      inv.Error,
		OccurredAt: inv.HandledAt,
	}
}

// RoutingKey is "lunch.<outcome>", e.g. lunch.served or lunch.unavailable.
func RoutingKey(inv domain.Invocation) string {
	return "lunch." + string(inv.Outcome)
}

// Publisher sends invocation events to a durable topic exchange.
type Publisher struct {
	exchange string

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// Dial connects to url, retrying while the broker comes up, and declares
// the exchange.
func Dial(ctx context.Context, url, exchange string, logger *slog.Logger) (*Publisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	var conn *amqp.Connection
	err := infra.WithRetry(ctx, infra.DialRetryConfig(logRetry(logger)), func() error {
		c, err := amqp.Dial(url)
		if err != nil {
			return err
		}
		conn = c
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("dialing rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("opening channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declaring exchange %s: %w", exchange, err)
	}

	return &Publisher{exchange: exchange, conn: conn, ch: ch}, nil
}

func (p *Publisher) Record(ctx context.Context, inv domain.Invocation) error {
	body, err := json.Marshal(NewEvent(inv))
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	err = p.ch.PublishWithContext(ctx, p.exchange, RoutingKey(inv), false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		ContentType:  "application/json",
		MessageId:    inv.RequestID,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publishing event: %w", err)
	}

	return nil
}

func (p *Publisher) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

func logRetry(logger *slog.Logger) func(int, time.Duration, error) {
	return func(attempt int, delay time.Duration, err error) {
		logger.Warn("rabbitmq not reachable yet", "attempt", attempt, "retry_in", delay, "error", err)
	}
}
