package repository

import (
	"context"

	"food-marketplace-api/apperr"
	"food-marketplace-api/models"
)

type FoodItemRepository struct {
	store *Store
}

func NewFoodItemRepository(store *Store) *FoodItemRepository {
	return &FoodItemRepository{store: store}
}

// MenuFilter narrows a restaurant's menu.
type MenuFilter struct {
	Category      string
	AvailableOnly bool
}

func (r *FoodItemRepository) Create(ctx context.Context, item *models.FoodItem) error {
	return r.store.conn(ctx).Create(item).Error
}

func (r *FoodItemRepository) GetByID(ctx context.Context, id uint) (*models.FoodItem, error) {
	var item models.FoodItem
	if err := r.store.conn(ctx).First(&item, id).Error; err != nil {
		return nil, notFound(err, "food item %d not found", id)
	}
	return &item, nil
}

func (r *FoodItemRepository) ListByRestaurant(ctx context.Context, restaurantID uint, f MenuFilter) ([]models.FoodItem, error) {
	q := r.store.conn(ctx).Where("restaurant_id = ?", restaurantID).Order("id")
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.AvailableOnly {
		q = q.Where("is_available = ?", true)
	}
	var items []models.FoodItem
	err := q.Find(&items).Error
	return items, err
}

func (r *FoodItemRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	res := r.store.conn(ctx).Model(&models.FoodItem{ID: id}).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("food item %d not found", id)
	}
	return nil
}

// IsReferenced reports whether any order line points at the item.
func (r *FoodItemRepository) IsReferenced(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.store.conn(ctx).Model(&models.OrderItem{}).Where("food_item_id = ?", id).Count(&n).Error
	return n > 0, err
}

func (r *FoodItemRepository) Delete(ctx context.Context, id uint) error {
	res := r.store.conn(ctx).Delete(&models.FoodItem{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("food item %d not found", id)
	}
	return nil
}

func (r *FoodItemRepository) DeleteByRestaurant(ctx context.Context, restaurantID uint) error {
	return r.store.conn(ctx).Where("restaurant_id = ?", restaurantID).Delete(&models.FoodItem{}).Error
}
