package services

import (
	"context"
	"log/slog"
	"time"

	"food-marketplace-api/apperr"
	"food-marketplace-api/authz"
	"food-marketplace-api/events"
	"food-marketplace-api/logger"
	"food-marketplace-api/models"
	"food-marketplace-api/repository"
	"food-marketplace-api/statemachine"

	"github.com/shopspring/decimal"
)

// OrderService owns the order lifecycle: placement, status changes,
// cancellation and deletion. Every write runs in one transaction and the
// matching event is published after commit.
type OrderService struct {
	store       *repository.Store
	orders      *repository.OrderRepository
	restaurants *repository.RestaurantRepository
	foodItems   *repository.FoodItemRepository
	publisher   events.Publisher
	log         *logger.Logger
	now         func() time.Time
}

func NewOrderService(store *repository.Store, publisher events.Publisher, log *logger.Logger) *OrderService {
	return &OrderService{
		store:       store,
		orders:      repository.NewOrderRepository(store),
		restaurants: repository.NewRestaurantRepository(store),
		foodItems:   repository.NewFoodItemRepository(store),
		publisher:   publisher,
		log:         log,
		now:         time.Now,
	}
}

type OrderLine struct {
	FoodItemID uint
	Quantity   int
}

type CreateOrderInput struct {
	RestaurantID  uint
	Items         []OrderLine
	Notes         string
	PaymentMethod string
}

// Create validates every line against the restaurant's menu, snapshots the
// total and persists the order with its items.
func (s *OrderService) Create(ctx context.Context, caller authz.Caller, in CreateOrderInput) (*models.Order, error) {
	if err := caller.Require(models.RoleCustomer); err != nil {
		return nil, err
	}
	if len(in.Items) == 0 {
		return nil, apperr.InvalidArgument("an order needs at least one item")
	}

	var orderID uint
	err := s.store.RunAtomic(ctx, func(ctx context.Context) error {
		foods := make([]*models.FoodItem, len(in.Items))
		for i, line := range in.Items {
			item, err := s.foodItems.GetByID(ctx, line.FoodItemID)
			if err != nil {
				return err
			}
			if item.RestaurantID != in.RestaurantID {
				return apperr.Conflict("food item %d does not belong to restaurant %d", item.ID, in.RestaurantID)
			}
			if line.Quantity <= 0 {
				return apperr.InvalidArgument("quantity for food item %d must be greater than zero", item.ID)
			}
			foods[i] = item
		}

		rest, err := s.restaurants.GetByID(ctx, in.RestaurantID)
		if err != nil {
			return err
		}
		if !rest.IsOpen {
			return apperr.Conflict("restaurant %q is currently closed", rest.Name)
		}

		total := decimal.Zero
		items := make([]models.OrderItem, len(in.Items))
		for i, line := range in.Items {
			if !foods[i].IsAvailable {
				return apperr.Conflict("food item %q is not available", foods[i].Name)
			}
			total = total.Add(foods[i].Price.Mul(decimal.NewFromInt(int64(line.Quantity))))
			items[i] = models.OrderItem{FoodItemID: foods[i].ID, Quantity: line.Quantity}
		}

		order := &models.Order{
			UserID:        caller.UserID,
			RestaurantID:  rest.ID,
			Status:        models.StatusPending,
			TotalPrice:    total,
			Notes:         in.Notes,
			PaymentMethod: in.PaymentMethod,
			Items:         items,
			CreatedAt:     s.now().UTC(),
		}
		if err := s.orders.Create(ctx, order); err != nil {
			return err
		}
		orderID = order.ID
		return s.orders.AddHistory(ctx, &models.OrderStatusHistory{
			OrderID:   order.ID,
			ToStatus:  models.StatusPending,
			ChangedBy: caller.UserID,
			Note:      "order placed",
		})
	})
	if err != nil {
		return nil, err
	}

	order, err := s.orders.GetDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	s.publish(ctx, events.OrderEvent{
		Type:         events.OrderCreated,
		OrderID:      order.ID,
		UserID:       order.UserID,
		RestaurantID: order.RestaurantID,
		Status:       string(order.Status),
		TotalPrice:   order.TotalPrice.StringFixed(2),
		ChangedBy:    caller.UserID,
	})
	return order, nil
}

// UpdateStatus moves an order to status on behalf of the restaurant that
// received it, or an admin. Any whitelisted status may follow any other.
func (s *OrderService) UpdateStatus(ctx context.Context, caller authz.Caller, orderID uint, status, note string) (*models.Order, error) {
	if err := caller.Require(models.RoleRestaurantOwner, models.RoleAdmin); err != nil {
		return nil, err
	}
	if status == "" {
		return nil, apperr.InvalidArgument("status is required")
	}
	to, ok := models.ParseOrderStatus(status)
	if !ok {
		return nil, apperr.InvalidArgument("invalid status %q, expected one of %v", status, models.OrderStatuses)
	}

	actor := statemachine.ActorRestaurant
	if caller.IsAdmin() {
		actor = statemachine.ActorAdmin
	}
	return s.transition(ctx, caller, orderID, to, actor, note, func(o *models.Order) error {
		if caller.IsAdmin() {
			return nil
		}
		if o.Restaurant == nil {
			return apperr.Forbidden("this order does not belong to you")
		}
		return caller.RequireOwner(o.Restaurant.ManagerID, "order")
	})
}

// Cancel lets a customer withdraw their own order while it is still Pending.
func (s *OrderService) Cancel(ctx context.Context, caller authz.Caller, orderID uint) (*models.Order, error) {
	if err := caller.Require(models.RoleCustomer); err != nil {
		return nil, err
	}
	return s.transition(ctx, caller, orderID, models.StatusCancelled, statemachine.ActorCustomer, "cancelled by customer",
		func(o *models.Order) error {
			return caller.RequireOwner(o.UserID, "order")
		})
}

func (s *OrderService) transition(ctx context.Context, caller authz.Caller, orderID uint, to models.OrderStatus,
	actor statemachine.Actor, note string, check func(*models.Order) error) (*models.Order, error) {
	var from models.OrderStatus
	var order *models.Order
	err := s.store.RunAtomic(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := check(order); err != nil {
			return err
		}
		if err := statemachine.CanTransition(order.Status, to, actor); err != nil {
			return err
		}
		from = order.Status
		if err := s.orders.UpdateStatus(ctx, orderID, to); err != nil {
			return err
		}
		return s.orders.AddHistory(ctx, &models.OrderStatusHistory{
			OrderID:    orderID,
			FromStatus: from,
			ToStatus:   to,
			ChangedBy:  caller.UserID,
			Note:       note,
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("order_status_changed", logger.RequestID(ctx), "order status changed",
		slog.Uint64("order_id", uint64(orderID)),
		slog.String("transition", statemachine.Transition{From: from, To: to, Actor: actor}.String()),
		slog.Uint64("changed_by", uint64(caller.UserID)))
	s.publish(ctx, events.OrderEvent{
		Type:         events.OrderStatusChanged,
		OrderID:      orderID,
		UserID:       order.UserID,
		RestaurantID: order.RestaurantID,
		Status:       string(to),
		OldStatus:    string(from),
		ChangedBy:    caller.UserID,
	})
	return s.orders.GetDetail(ctx, orderID)
}

// Delete removes one of the caller's orders together with its items. Missing,
// foreign and empty orders fail with distinct errors.
func (s *OrderService) Delete(ctx context.Context, caller authz.Caller, orderID uint) error {
	var order *models.Order
	err := s.store.RunAtomic(ctx, func(ctx context.Context) error {
		var err error
		order, err = s.orders.GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if err := caller.RequireOwnerOrAdmin(order.UserID, "order"); err != nil {
			return err
		}
		n, err := s.orders.CountItems(ctx, orderID)
		if err != nil {
			return err
		}
		if n == 0 {
			return apperr.Conflict("order %d has no items", orderID)
		}
		return s.orders.Delete(ctx, orderID)
	})
	if err != nil {
		return err
	}

	s.publish(ctx, events.OrderEvent{
		Type:         events.OrderDeleted,
		OrderID:      order.ID,
		UserID:       order.UserID,
		RestaurantID: order.RestaurantID,
		Status:       string(order.Status),
		ChangedBy:    caller.UserID,
	})
	return nil
}

// Actor kinds accepted by ListForActor.
const (
	ActorKindCustomer   = "customer"
	ActorKindRestaurant = "restaurant"
)

// ListForActor lists the orders a customer placed or a restaurant owner
// received, newest first, optionally restricted to one status.
func (s *OrderService) ListForActor(ctx context.Context, caller authz.Caller, kind, status string) ([]models.Order, error) {
	f := repository.OrderFilter{}
	switch kind {
	case ActorKindCustomer:
		if err := caller.Require(models.RoleCustomer); err != nil {
			return nil, err
		}
		f.CustomerID = caller.UserID
	case ActorKindRestaurant:
		if err := caller.Require(models.RoleRestaurantOwner); err != nil {
			return nil, err
		}
		f.ManagerID = caller.UserID
	default:
		return nil, apperr.InvalidArgument("unknown actor kind %q", kind)
	}

	st, err := parseStatusFilter(status)
	if err != nil {
		return nil, err
	}
	f.Status = st
	return s.orders.List(ctx, f)
}

// Get returns the full order to its customer, the receiving restaurant's
// owner or an admin.
func (s *OrderService) Get(ctx context.Context, caller authz.Caller, orderID uint) (*models.Order, error) {
	if err := caller.Require(models.RoleCustomer, models.RoleRestaurantOwner, models.RoleAdmin); err != nil {
		return nil, err
	}
	order, err := s.orders.GetDetail(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if caller.IsAdmin() || order.UserID == caller.UserID ||
		(order.Restaurant != nil && order.Restaurant.ManagerID == caller.UserID) {
		return order, nil
	}
	return nil, apperr.Forbidden("this order does not belong to you")
}

type OrderQuery struct {
	Status       string
	CustomerID   uint
	RestaurantID uint
}

func (s *OrderService) AdminList(ctx context.Context, caller authz.Caller, q OrderQuery) ([]models.Order, error) {
	if err := caller.Require(models.RoleAdmin); err != nil {
		return nil, err
	}
	st, err := parseStatusFilter(q.Status)
	if err != nil {
		return nil, err
	}
	return s.orders.List(ctx, repository.OrderFilter{
		Status:       st,
		CustomerID:   q.CustomerID,
		RestaurantID: q.RestaurantID,
	})
}

func parseStatusFilter(status string) (models.OrderStatus, error) {
	if status == "" {
		return "", nil
	}
	st, ok := models.ParseOrderStatus(status)
	if !ok {
		return "", apperr.InvalidArgument("invalid status filter %q", status)
	}
	return st, nil
}

// publish never fails the request; the change is already committed.
func (s *OrderService) publish(ctx context.Context, ev events.OrderEvent) {
	ev.OccurredAt = s.now().UTC()
	if err := s.publisher.Publish(ctx, ev); err != nil {
		s.log.Error("publish_order_event", logger.RequestID(ctx), "failed to publish order event", err,
			slog.String("type", ev.Type), slog.Uint64("order_id", uint64(ev.OrderID)))
	}
}
