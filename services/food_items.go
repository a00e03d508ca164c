package services

import (
	"context"
	"strings"

	"food-marketplace-api/apperr"
	"food-marketplace-api/authz"
	"food-marketplace-api/models"
	"food-marketplace-api/repository"

	"github.com/shopspring/decimal"
)

type FoodItemService struct {
	store       *repository.Store
	restaurants *repository.RestaurantRepository
	items       *repository.FoodItemRepository
}

func NewFoodItemService(store *repository.Store) *FoodItemService {
	return &FoodItemService{
		store:       store,
		restaurants: repository.NewRestaurantRepository(store),
		items:       repository.NewFoodItemRepository(store),
	}
}

type FoodItemInput struct {
	Name        string
	Description string
	Category    string
	Price       decimal.Decimal
	IsAvailable *bool
}

// Add puts an item on the caller's own menu.
func (s *FoodItemService) Add(ctx context.Context, caller authz.Caller, in FoodItemInput) (*models.FoodItem, error) {
	if err := caller.Require(models.RoleRestaurantOwner); err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.InvalidArgument("food item name is required")
	}
	if !in.Price.IsPositive() {
		return nil, apperr.InvalidArgument("price must be greater than zero")
	}

	rest, err := s.restaurants.GetByManager(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	item := &models.FoodItem{
		RestaurantID: rest.ID,
		Name:         name,
		Description:  in.Description,
		Category:     strings.TrimSpace(in.Category),
		Price:        in.Price.Round(2),
		IsAvailable:  true,
	}
	err = s.store.RunAtomic(ctx, func(ctx context.Context) error {
		if err := s.items.Create(ctx, item); err != nil {
			return err
		}
		if in.IsAvailable != nil && !*in.IsAvailable {
			item.IsAvailable = false
			return s.items.Update(ctx, item.ID, map[string]any{"is_available": false})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

type FoodItemUpdate struct {
	Name        *string
	Description *string
	Category    *string
	Price       *decimal.Decimal
	IsAvailable *bool
}

func (s *FoodItemService) Update(ctx context.Context, caller authz.Caller, id uint, upd FoodItemUpdate) (*models.FoodItem, error) {
	if _, err := s.authorize(ctx, caller, id); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, apperr.InvalidArgument("food item name cannot be empty")
		}
		fields["name"] = name
	}
	if upd.Description != nil {
		fields["description"] = *upd.Description
	}
	if upd.Category != nil {
		fields["category"] = strings.TrimSpace(*upd.Category)
	}
	if upd.Price != nil {
		if !upd.Price.IsPositive() {
			return nil, apperr.InvalidArgument("price must be greater than zero")
		}
		fields["price"] = upd.Price.Round(2)
	}
	if upd.IsAvailable != nil {
		fields["is_available"] = *upd.IsAvailable
	}
	if len(fields) > 0 {
		if err := s.items.Update(ctx, id, fields); err != nil {
			return nil, err
		}
	}
	return s.items.GetByID(ctx, id)
}

// Delete refuses while any order line references the item.
func (s *FoodItemService) Delete(ctx context.Context, caller authz.Caller, id uint) error {
	return s.store.RunAtomic(ctx, func(ctx context.Context) error {
		if _, err := s.authorize(ctx, caller, id); err != nil {
			return err
		}
		referenced, err := s.items.IsReferenced(ctx, id)
		if err != nil {
			return err
		}
		if referenced {
			return apperr.Conflict("food item %d is part of existing orders and cannot be deleted", id)
		}
		return s.items.Delete(ctx, id)
	})
}

func (s *FoodItemService) authorize(ctx context.Context, caller authz.Caller, id uint) (*models.FoodItem, error) {
	item, err := s.items.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	rest, err := s.restaurants.GetByID(ctx, item.RestaurantID)
	if err != nil {
		return nil, err
	}
	if err := caller.RequireOwnerOrAdmin(rest.ManagerID, "food item"); err != nil {
		return nil, err
	}
	return item, nil
}
