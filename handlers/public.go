package handlers

import (
	"net/http"
	"strconv"

	"food-marketplace-api/models"
	"food-marketplace-api/repository"
	"food-marketplace-api/statemachine"

	"github.com/gin-gonic/gin"
)

// ListRestaurants returns restaurants, optionally filtered (public)
func (h *Handler) ListRestaurants(c *gin.Context) {
	restaurants, err := h.restaurants.List(c.Request.Context(), repository.RestaurantFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		OpenOnly: c.Query("open") == "true",
	})
	if err != nil {
		h.fail(c, "list_restaurants", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"count":       len(restaurants),
		"restaurants": restaurants,
	})
}

// GetRestaurant returns a single restaurant with its menu
func (h *Handler) GetRestaurant(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	restaurant, err := h.restaurants.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "get_restaurant", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"restaurant": restaurant})
}

// GetMenu returns the menu for a specific restaurant (public)
func (h *Handler) GetMenu(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	items, err := h.restaurants.Menu(c.Request.Context(), id, repository.MenuFilter{
		Category:      c.Query("category"),
		AvailableOnly: c.Query("available") == "true",
	})
	if err != nil {
		h.fail(c, "get_menu", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"restaurant_id": id,
		"count":         len(items),
		"menu":          items,
	})
}

// ListReviews returns one page of a restaurant's reviews (public)
func (h *Handler) ListReviews(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	page, err := h.reviews.List(c.Request.Context(), id, repository.Page{Limit: limit, Offset: offset})
	if err != nil {
		h.fail(c, "list_reviews", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"total":   page.Total,
		"count":   len(page.Reviews),
		"reviews": page.Reviews,
	})
}

// GetStateMachineInfo describes the order lifecycle for clients
func (h *Handler) GetStateMachineInfo(c *gin.Context) {
	allowed := gin.H{}
	for _, actor := range []statemachine.Actor{statemachine.ActorCustomer, statemachine.ActorRestaurant, statemachine.ActorAdmin} {
		from := gin.H{}
		for _, st := range models.OrderStatuses {
			if nexts := statemachine.ValidTransitionsFrom(st, actor); len(nexts) > 0 {
				from[string(st)] = nexts
			}
		}
		allowed[string(actor)] = from
	}
	c.JSON(http.StatusOK, gin.H{
		"statuses":      models.OrderStatuses,
		"initial_state": models.StatusPending,
		"lifecycle":     statemachine.NominalTransitions(),
		"allowed":       allowed,
		"description":   "Order lifecycle. Restaurants and admins may set any status; customers may cancel Pending orders.",
	})
}
