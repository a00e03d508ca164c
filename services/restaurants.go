package services

import (
	"context"
	"strings"

	"food-marketplace-api/apperr"
	"food-marketplace-api/authz"
	"food-marketplace-api/models"
	"food-marketplace-api/repository"
)

type RestaurantService struct {
	store       *repository.Store
	restaurants *repository.RestaurantRepository
	foodItems   *repository.FoodItemRepository
	orders      *repository.OrderRepository
	reviews     *repository.ReviewRepository
}

func NewRestaurantService(store *repository.Store) *RestaurantService {
	return &RestaurantService{
		store:       store,
		restaurants: repository.NewRestaurantRepository(store),
		foodItems:   repository.NewFoodItemRepository(store),
		orders:      repository.NewOrderRepository(store),
		reviews:     repository.NewReviewRepository(store),
	}
}

type RestaurantInput struct {
	Name         string
	Category     string
	Address      string
	Description  string
	OpeningHours string
	IsOpen       *bool
}

// Create registers the caller's restaurant. An owner manages at most one.
func (s *RestaurantService) Create(ctx context.Context, caller authz.Caller, in RestaurantInput) (*models.Restaurant, error) {
	if err := caller.Require(models.RoleRestaurantOwner); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.InvalidArgument("restaurant name is required")
	}

	rest := &models.Restaurant{
		ManagerID:    caller.UserID,
		Name:         name,
		Category:     strings.TrimSpace(in.Category),
		Address:      strings.TrimSpace(in.Address),
		Description:  in.Description,
		OpeningHours: in.OpeningHours,
		IsOpen:       true,
	}
	closed := in.IsOpen != nil && !*in.IsOpen

	err := s.store.RunAtomic(ctx, func(ctx context.Context) error {
		exists, err := s.restaurants.ExistsForManager(ctx, caller.UserID)
		if err != nil {
			return err
		}
		if exists {
			return apperr.Conflict("you already have a restaurant")
		}
		if err := s.restaurants.Create(ctx, rest); err != nil {
			return err
		}
		// is_open has a column default, so an explicit false needs a second write.
		if closed {
			rest.IsOpen = false
			return s.restaurants.Update(ctx, rest.ID, map[string]any{"is_open": false})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rest, nil
}

// Mine returns the caller's restaurant with its menu.
func (s *RestaurantService) Mine(ctx context.Context, caller authz.Caller) (*models.Restaurant, error) {
	if err := caller.Require(models.RoleRestaurantOwner); err != nil {
		return nil, err
	}
	return s.restaurants.GetByManager(ctx, caller.UserID)
}

func (s *RestaurantService) List(ctx context.Context, f repository.RestaurantFilter) ([]models.Restaurant, error) {
	return s.restaurants.List(ctx, f)
}

func (s *RestaurantService) Get(ctx context.Context, id uint) (*models.Restaurant, error) {
	return s.restaurants.GetWithMenu(ctx, id)
}

func (s *RestaurantService) Menu(ctx context.Context, id uint, f repository.MenuFilter) ([]models.FoodItem, error) {
	if _, err := s.restaurants.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.foodItems.ListByRestaurant(ctx, id, f)
}

type RestaurantUpdate struct {
	Name         *string
	Category     *string
	Address      *string
	Description  *string
	OpeningHours *string
	IsOpen       *bool
}

func (s *RestaurantService) Update(ctx context.Context, caller authz.Caller, id uint, upd RestaurantUpdate) (*models.Restaurant, error) {
	rest, err := s.restaurants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := caller.RequireOwnerOrAdmin(rest.ManagerID, "restaurant"); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, apperr.InvalidArgument("restaurant name cannot be empty")
		}
		fields["name"] = name
	}
	if upd.Category != nil {
		fields["category"] = strings.TrimSpace(*upd.Category)
	}
	if upd.Address != nil {
		fields["address"] = strings.TrimSpace(*upd.Address)
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	if upd.OpeningHours != nil {
		fields["opening_hours"] = *upd.OpeningHours
	}
	if upd.IsOpen != nil {
		fields["is_open"] = *upd.IsOpen
	}
	if len(fields) > 0 {
		if err := s.restaurants.Update(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.restaurants.GetByID(ctx, id)
}

// Delete is open to the managing owner and to admins. A restaurant with order
// history is kept; otherwise its menu and reviews go with it.
func (s *RestaurantService) Delete(ctx context.Context, caller authz.Caller, id uint) error {
	return s.store.RunAtomic(ctx, func(ctx context.Context) error {
		rest, err := s.restaurants.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := caller.RequireOwnerOrAdmin(rest.ManagerID, "restaurant"); err != nil {
			return err
		}
		n, err := s.orders.CountByRestaurant(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.Conflict("restaurant %d has %d order(s) and cannot be deleted", id, n)
		}
		if err := s.reviews.DeleteByRestaurant(ctx, id); err != nil {
			return err
		}
		if err := s.foodItems.DeleteByRestaurant(ctx, id); err != nil {
			return err
		}
		return s.restaurants.Delete(ctx, id)
	})
}

// AdminList returns every restaurant with its manager.
func (s *RestaurantService) AdminList(ctx context.Context, caller authz.Caller) ([]models.Restaurant, error) {
	if err := caller.Require(models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.restaurants.ListWithManagers(ctx)
}
