package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
)

// session is one broker connection with its publishing channel.
type session interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	IsClosed() bool
	Close() error
}

type amqpSession struct {
	conn *amqp091.Connection
	ch   *amqp091.Channel
}

func (s *amqpSession) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	return s.ch.PublishWithContext(ctx, exchange, key, mandatory, immediate, msg)
}

func (s *amqpSession) IsClosed() bool {
	return s.conn.IsClosed() || s.ch.IsClosed()
}

func (s *amqpSession) Close() error {
	chErr := s.ch.Close()
	if err := s.conn.Close(); err != nil {
		return err
	}
	return chErr
}

// AMQPPublisher publishes order events to a durable topic exchange, routed by
// event type. A session closed by the broker is replaced on the next publish.
type AMQPPublisher struct {
	mu       sync.Mutex
	sess     session
	dial     func() (session, error)
	exchange string
	timeout  time.Duration
}

func DialAMQP(url, exchange string) (*AMQPPublisher, error) {
	return newAMQPPublisher(exchange, func() (session, error) {
		return openSession(url, exchange)
	})
}

func newAMQPPublisher(exchange string, dial func() (session, error)) (*AMQPPublisher, error) {
	sess, err := dial()
	if err != nil {
		return nil, err
	}
	return &AMQPPublisher{sess: sess, dial: dial, exchange: exchange, timeout: 5 * time.Second}, nil
}

func openSession(url, exchange string) (session, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connect to rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}
	if err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // kind
		true,     // durable
		false,    // auto-delete
		false,    // internal
		false,    // no-wait
		nil,
	); err != nil {
		conn.Close()
		return nil, fmt.Errorf("declare exchange %s: %w", exchange, err)
	}
	return &amqpSession{conn: conn, ch: ch}, nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, ev OrderEvent) error {
	msg, err := newPublishing(ev)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sess == nil || p.sess.IsClosed() {
		if err := p.reconnect(); err != nil {
			return err
		}
	}
	err = p.sess.PublishWithContext(ctx, p.exchange, ev.Type, false, false, msg)
	// The close notification can trail the failure; retry once on a fresh session.
	if errors.Is(err, amqp091.ErrClosed) {
		if err := p.reconnect(); err != nil {
			return err
		}
		err = p.sess.PublishWithContext(ctx, p.exchange, ev.Type, false, false, msg)
	}
	if err != nil {
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}
	return nil
}

// reconnect replaces the session. Callers hold p.mu.
func (p *AMQPPublisher) reconnect() error {
	if p.sess != nil {
		p.sess.Close()
		p.sess = nil
	}
	sess, err := p.dial()
	if err != nil {
		return fmt.Errorf("reconnect to rabbitmq: %w", err)
	}
	p.sess = sess
	return nil
}

func newPublishing(ev OrderEvent) (amqp091.Publishing, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return amqp091.Publishing{}, fmt.Errorf("marshal event: %w", err)
	}
	return amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    ev.OccurredAt,
		Type:         ev.Type,
		Body:         body,
	}, nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.sess == nil {
		return nil
	}
	err := p.sess.Close()
	p.sess = nil
	return err
}
