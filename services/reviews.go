package services

import (
	"context"

	"food-marketplace-api/apperr"
	"food-marketplace-api/authz"
	"food-marketplace-api/models"
	"food-marketplace-api/repository"
)

type ReviewService struct {
	store       *repository.Store
	restaurants *repository.RestaurantRepository
	reviews     *repository.ReviewRepository
}

func NewReviewService(store *repository.Store) *ReviewService {
	return &ReviewService{
		store:       store,
		restaurants: repository.NewRestaurantRepository(store),
		reviews:     repository.NewReviewRepository(store),
	}
}

// Add stores a review and folds its rating into the restaurant's average in
// the same transaction.
func (s *ReviewService) Add(ctx context.Context, caller authz.Caller, restaurantID uint, rating int, comment string) (*models.Review, error) {
	if err := caller.Require(models.RoleCustomer, models.RoleRestaurantOwner, models.RoleAdmin); err != nil {
		return nil, err
	}
	if rating < 1 || rating > 5 {
		return nil, apperr.InvalidArgument("rating must be between 1 and 5")
	}

	rev := &models.Review{
		RestaurantID: restaurantID,
		UserID:       caller.UserID,
		Rating:       rating,
		Comment:      comment,
	}
	err := s.store.RunAtomic(ctx, func(ctx context.Context) error {
		rest, err := s.restaurants.GetByID(ctx, restaurantID)
		if err != nil {
			return err
		}
		if rest.ManagerID == caller.UserID {
			return apperr.Conflict("you cannot review your own restaurant")
		}
		if err := s.reviews.Create(ctx, rev); err != nil {
			return err
		}
		return s.restaurants.AddRating(ctx, restaurantID, rating)
	})
	if err != nil {
		return nil, err
	}
	return rev, nil
}

type ReviewPage struct {
	Reviews []models.Review
	Total   int64
}

func (s *ReviewService) List(ctx context.Context, restaurantID uint, p repository.Page) (*ReviewPage, error) {
	if _, err := s.restaurants.GetByID(ctx, restaurantID); err != nil {
		return nil, err
	}
	reviews, total, err := s.reviews.ListByRestaurant(ctx, restaurantID, p)
	if err != nil {
		return nil, err
	}
	return &ReviewPage{Reviews: reviews, Total: total}, nil
}

// Delete is open to the author and to admins; the rating is taken back out of
// the restaurant's average.
func (s *ReviewService) Delete(ctx context.Context, caller authz.Caller, id uint) error {
	return s.store.RunAtomic(ctx, func(ctx context.Context) error {
		rev, err := s.reviews.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := caller.RequireOwnerOrAdmin(rev.UserID, "review"); err != nil {
			return err
		}
		if err := s.reviews.Delete(ctx, id); err != nil {
			return err
		}
		return s.restaurants.RemoveRating(ctx, rev.RestaurantID, rev.Rating)
	})
}
