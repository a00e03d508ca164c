package repository

import (
	"context"

	"food-marketplace-api/models"
)

type CardRepository struct {
	store *Store
}

func NewCardRepository(store *Store) *CardRepository {
	return &CardRepository{store: store}
}

// Replace stores card as the user's only card.
func (r *CardRepository) Replace(ctx context.Context, card *models.Card) error {
	return r.store.RunAtomic(ctx, func(ctx context.Context) error {
		if err := r.DeleteByUser(ctx, card.UserID); err != nil {
			return err
		}
		return r.store.conn(ctx).Create(card).Error
	})
}

func (r *CardRepository) GetByUser(ctx context.Context, userID uint) (*models.Card, error) {
	var c models.Card
	if err := r.store.conn(ctx).Where("user_id = ?", userID).First(&c).Error; err != nil {
		return nil, notFound(err, "no card on file")
	}
	return &c, nil
}

func (r *CardRepository) DeleteByUser(ctx context.Context, userID uint) error {
	return r.store.conn(ctx).Where("user_id = ?", userID).Delete(&models.Card{}).Error
}
