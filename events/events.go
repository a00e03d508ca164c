// Package events announces order lifecycle changes to other systems.
package events

import (
	"context"
	"time"
)

const (
	OrderCreated       = "order.created"
	OrderStatusChanged = "order.status_changed"
	OrderDeleted       = "order.deleted"
)

// OrderEvent is the message body published for every order change.
type OrderEvent struct {
	Type         string    `json:"type"`
	OrderID      uint      `json:"order_id"`
	UserID       uint      `json:"user_id"`
	RestaurantID uint      `json:"restaurant_id"`
	Status       string    `json:"status,omitempty"`
	OldStatus    string    `json:"old_status,omitempty"`
	TotalPrice   string    `json:"total_price,omitempty"`
	ChangedBy    uint      `json:"changed_by,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, ev OrderEvent) error
	Close() error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, OrderEvent) error { return nil }

func (NopPublisher) Close() error { return nil }
