package repository

import (
	"context"

	"food-marketplace-api/apperr"
	"food-marketplace-api/models"

	"gorm.io/gorm"
)

type OrderRepository struct {
	store *Store
}

func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

// OrderFilter narrows order listings. Zero fields are ignored.
type OrderFilter struct {
	Status       models.OrderStatus
	CustomerID   uint
	RestaurantID uint
	ManagerID    uint
}

// Create inserts the order together with its items.
func (r *OrderRepository) Create(ctx context.Context, o *models.Order) error {
	return r.store.conn(ctx).Create(o).Error
}

func (r *OrderRepository) GetByID(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	if err := r.store.conn(ctx).Preload("Restaurant").First(&o, id).Error; err != nil {
		return nil, notFound(err, "order %d not found", id)
	}
	return &o, nil
}

// GetDetail loads the order with items, their food items, the restaurant and
// the status history.
func (r *OrderRepository) GetDetail(ctx context.Context, id uint) (*models.Order, error) {
	var o models.Order
	err := withDetail(r.store.conn(ctx)).
		Preload("StatusHistory", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&o, id).Error
	if err != nil {
		return nil, notFound(err, "order %d not found", id)
	}
	return &o, nil
}

func (r *OrderRepository) List(ctx context.Context, f OrderFilter) ([]models.Order, error) {
	q := withDetail(r.store.conn(ctx)).Model(&models.Order{})
	if f.ManagerID != 0 {
		q = q.Joins("JOIN restaurants ON restaurants.id = orders.restaurant_id").
			Where("restaurants.manager_id = ?", f.ManagerID)
	}
	if f.CustomerID != 0 {
		q = q.Where("orders.user_id = ?", f.CustomerID)
	}
	if f.RestaurantID != 0 {
		q = q.Where("orders.restaurant_id = ?", f.RestaurantID)
	}
	if f.Status != "" {
		q = q.Where("orders.status = ?", f.Status)
	}
	var orders []models.Order
	err := q.Order("orders.created_at desc, orders.id desc").Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	res := r.store.conn(ctx).Model(&models.Order{ID: id}).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("order %d not found", id)
	}
	return nil
}

func (r *OrderRepository) AddHistory(ctx context.Context, h *models.OrderStatusHistory) error {
	return r.store.conn(ctx).Create(h).Error
}

func (r *OrderRepository) CountItems(ctx context.Context, orderID uint) (int64, error) {
	var n int64
	err := r.store.conn(ctx).Model(&models.OrderItem{}).Where("order_id = ?", orderID).Count(&n).Error
	return n, err
}

// Delete removes the order's items and history, then the order.
func (r *OrderRepository) Delete(ctx context.Context, id uint) error {
	db := r.store.conn(ctx)
	if err := db.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	if err := db.Where("order_id = ?", id).Delete(&models.OrderStatusHistory{}).Error; err != nil {
		return err
	}
	res := db.Delete(&models.Order{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("order %d not found", id)
	}
	return nil
}

func (r *OrderRepository) CountByRestaurant(ctx context.Context, restaurantID uint) (int64, error) {
	var n int64
	err := r.store.conn(ctx).Model(&models.Order{}).Where("restaurant_id = ?", restaurantID).Count(&n).Error
	return n, err
}

func (r *OrderRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.store.conn(ctx).Model(&models.Order{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}

func withDetail(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Preload("Items.FoodItem").
		Preload("Restaurant")
}
