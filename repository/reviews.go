package repository

import (
	"context"

	"food-marketplace-api/apperr"
	"food-marketplace-api/models"
)

type ReviewRepository struct {
	store *Store
}

func NewReviewRepository(store *Store) *ReviewRepository {
	return &ReviewRepository{store: store}
}

func (r *ReviewRepository) Create(ctx context.Context, rev *models.Review) error {
	return r.store.conn(ctx).Create(rev).Error
}

func (r *ReviewRepository) GetByID(ctx context.Context, id uint) (*models.Review, error) {
	var rev models.Review
	if err := r.store.conn(ctx).First(&rev, id).Error; err != nil {
		return nil, notFound(err, "review %d not found", id)
	}
	return &rev, nil
}

// ListByRestaurant returns one page of reviews, newest first, and the total count.
func (r *ReviewRepository) ListByRestaurant(ctx context.Context, restaurantID uint, p Page) ([]models.Review, int64, error) {
	p = p.normalize()
	db := r.store.conn(ctx)

	var total int64
	if err := db.Model(&models.Review{}).Where("restaurant_id = ?", restaurantID).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []models.Review
	err := db.Preload("User").
		Where("restaurant_id = ?", restaurantID).
		Order("created_at desc, id desc").
		Limit(p.Limit).Offset(p.Offset).
		Find(&out).Error
	return out, total, err
}

func (r *ReviewRepository) Delete(ctx context.Context, id uint) error {
	res := r.store.conn(ctx).Delete(&models.Review{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("review %d not found", id)
	}
	return nil
}

func (r *ReviewRepository) DeleteByRestaurant(ctx context.Context, restaurantID uint) error {
	return r.store.conn(ctx).Where("restaurant_id = ?", restaurantID).Delete(&models.Review{}).Error
}

func (r *ReviewRepository) CountByUser(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.store.conn(ctx).Model(&models.Review{}).Where("user_id = ?", userID).Count(&n).Error
	return n, err
}
