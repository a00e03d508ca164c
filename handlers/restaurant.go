package handlers

import (
	"net/http"

	"food-marketplace-api/middleware"
	"food-marketplace-api/services"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type RestaurantRequest struct {
	Name         string `json:"name" binding:"required"`
	Category     string `json:"category"`
	Address      string `json:"address"`
	Description  string `json:"description"`
	OpeningHours string `json:"opening_hours"`
	IsOpen       *bool  `json:"is_open"`
}

type UpdateRestaurantRequest struct {
	Name         *string `json:"name"`
	Category     *string `json:"category"`
	Address      *string `json:"address"`
	Description  *string `json:"description"`
	OpeningHours *string `json:"opening_hours"`
	IsOpen       *bool   `json:"is_open"`
}

type FoodItemRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Price       decimal.Decimal `json:"price"`
	IsAvailable *bool           `json:"is_available"`
}

type UpdateFoodItemRequest struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Category    *string          `json:"category"`
	Price       *decimal.Decimal `json:"price"`
	IsAvailable *bool            `json:"is_available"`
}

// CreateRestaurant registers the owner's restaurant
func (h *Handler) CreateRestaurant(c *gin.Context) {
	var req RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	restaurant, err := h.restaurants.Create(c.Request.Context(), middleware.CurrentCaller(c), services.RestaurantInput{
		Name:         req.Name,
		Category:     req.Category,
		Address:      req.Address,
		Description:  req.Description,
		OpeningHours: req.OpeningHours,
		IsOpen:       req.IsOpen,
	})
	if err != nil {
		h.fail(c, "create_restaurant", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Restaurant created", "restaurant": restaurant})
}

// GetMyRestaurant returns the owner's restaurant with its menu
func (h *Handler) GetMyRestaurant(c *gin.Context) {
	restaurant, err := h.restaurants.Mine(c.Request.Context(), middleware.CurrentCaller(c))
	if err != nil {
		h.fail(c, "get_my_restaurant", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// UpdateRestaurant edits the owner's restaurant
func (h *Handler) UpdateRestaurant(c *gin.Context) {
	var req UpdateRestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	caller := middleware.CurrentCaller(c)
	mine, err := h.restaurants.Mine(c.Request.Context(), caller)
	if err != nil {
		h.fail(c, "update_restaurant", err)
		return
	}
	restaurant, err := h.restaurants.Update(c.Request.Context(), caller, mine.ID, services.RestaurantUpdate{
		Name:         req.Name,
		Category:     req.Category,
		Address:      req.Address,
		Description:  req.Description,
		OpeningHours: req.OpeningHours,
		IsOpen:       req.IsOpen,
	})
	if err != nil {
		h.fail(c, "update_restaurant", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Restaurant updated", "restaurant": restaurant})
}

// DeleteMyRestaurant removes the owner's restaurant
func (h *Handler) DeleteMyRestaurant(c *gin.Context) {
	caller := middleware.CurrentCaller(c)
	mine, err := h.restaurants.Mine(c.Request.Context(), caller)
	if err != nil {
		h.fail(c, "delete_restaurant", err)
		return
	}
	if err := h.restaurants.Delete(c.Request.Context(), caller, mine.ID); err != nil {
		h.fail(c, "delete_restaurant", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddFoodItem adds an item to the owner's menu
func (h *Handler) AddFoodItem(c *gin.Context) {
	var req FoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.foodItems.Add(c.Request.Context(), middleware.CurrentCaller(c), services.FoodItemInput{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		h.fail(c, "add_food_item", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Food item added", "item": item})
}

func (h *Handler) UpdateFoodItem(c *gin.Context) {
	id, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	var req UpdateFoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	item, err := h.foodItems.Update(c.Request.Context(), middleware.CurrentCaller(c), id, services.FoodItemUpdate{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Price:       req.Price,
		IsAvailable: req.IsAvailable,
	})
	if err != nil {
		h.fail(c, "update_food_item", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Food item updated", "item": item})
}

func (h *Handler) DeleteFoodItem(c *gin.Context) {
	id, ok := pathID(c, "itemId")
	if !ok {
		return
	}
	if err := h.foodItems.Delete(c.Request.Context(), middleware.CurrentCaller(c), id); err != nil {
		h.fail(c, "delete_food_item", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Food item deleted"})
}
