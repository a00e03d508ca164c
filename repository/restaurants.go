package repository

import (
	"context"

	"food-marketplace-api/apperr"
	"food-marketplace-api/models"

	"gorm.io/gorm"
)

type RestaurantRepository struct {
	store *Store
}

func NewRestaurantRepository(store *Store) *RestaurantRepository {
	return &RestaurantRepository{store: store}
}

// RestaurantFilter narrows the public listing.
type RestaurantFilter struct {
	Category string
	Search   string
	OpenOnly bool
}

func (r *RestaurantRepository) Create(ctx context.Context, rest *models.Restaurant) error {
	if err := r.store.conn(ctx).Create(rest).Error; err != nil {
		return duplicate(err, "user %d already manages a restaurant", rest.ManagerID)
	}
	return nil
}

func (r *RestaurantRepository) GetByID(ctx context.Context, id uint) (*models.Restaurant, error) {
	var rest models.Restaurant
	if err := r.store.conn(ctx).First(&rest, id).Error; err != nil {
		return nil, notFound(err, "restaurant %d not found", id)
	}
	return &rest, nil
}

// GetWithMenu loads the restaurant together with its food items.
func (r *RestaurantRepository) GetWithMenu(ctx context.Context, id uint) (*models.Restaurant, error) {
	var rest models.Restaurant
	err := r.store.conn(ctx).
		Preload("FoodItems", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		First(&rest, id).Error
	if err != nil {
		return nil, notFound(err, "restaurant %d not found", id)
	}
	return &rest, nil
}

func (r *RestaurantRepository) GetByManager(ctx context.Context, managerID uint) (*models.Restaurant, error) {
	var rest models.Restaurant
	err := r.store.conn(ctx).
		Preload("FoodItems", func(db *gorm.DB) *gorm.DB { return db.Order("id") }).
		Where("manager_id = ?", managerID).
		First(&rest).Error
	if err != nil {
		return nil, notFound(err, "no restaurant found for user %d", managerID)
	}
	return &rest, nil
}

func (r *RestaurantRepository) ExistsForManager(ctx context.Context, managerID uint) (bool, error) {
	var n int64
	err := r.store.conn(ctx).Model(&models.Restaurant{}).Where("manager_id = ?", managerID).Count(&n).Error
	return n > 0, err
}

func (r *RestaurantRepository) List(ctx context.Context, f RestaurantFilter) ([]models.Restaurant, error) {
	q := r.store.conn(ctx).Order("id")
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		q = q.Where("name LIKE ?", "%"+f.Search+"%")
	}
	if f.OpenOnly {
		q = q.Where("is_open = ?", true)
	}
	var out []models.Restaurant
	err := q.Find(&out).Error
	return out, err
}

// ListWithManagers is the admin view.
func (r *RestaurantRepository) ListWithManagers(ctx context.Context) ([]models.Restaurant, error) {
	var out []models.Restaurant
	err := r.store.conn(ctx).Preload("Manager").Order("id").Find(&out).Error
	return out, err
}

func (r *RestaurantRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	res := r.store.conn(ctx).Model(&models.Restaurant{ID: id}).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("restaurant %d not found", id)
	}
	return nil
}

func (r *RestaurantRepository) Delete(ctx context.Context, id uint) error {
	res := r.store.conn(ctx).Delete(&models.Restaurant{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("restaurant %d not found", id)
	}
	return nil
}

// AddRating folds one review into the stored (sum, count) pair and the
// derived average in a single statement.
func (r *RestaurantRepository) AddRating(ctx context.Context, id uint, rating int) error {
	res := r.store.conn(ctx).Model(&models.Restaurant{}).Where("id = ?", id).
		UpdateColumns(map[string]any{
			"rating_sum":   gorm.Expr("rating_sum + ?", rating),
			"review_count": gorm.Expr("review_count + 1"),
			"rating":       gorm.Expr("(rating_sum + ?) * 1.0 / (review_count + 1)", rating),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("restaurant %d not found", id)
	}
	return nil
}

// RemoveRating reverses AddRating.
func (r *RestaurantRepository) RemoveRating(ctx context.Context, id uint, rating int) error {
	res := r.store.conn(ctx).Model(&models.Restaurant{}).Where("id = ? AND review_count > 0", id).
		UpdateColumns(map[string]any{
			"rating_sum":   gorm.Expr("rating_sum - ?", rating),
			"review_count": gorm.Expr("review_count - 1"),
			"rating": gorm.Expr("CASE WHEN review_count <= 1 THEN 0 ELSE (rating_sum - ?) * 1.0 / (review_count - 1) END",
				rating),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("restaurant %d not found", id)
	}
	return nil
}
