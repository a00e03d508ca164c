package handlers

import (
	"net/http"

	"food-marketplace-api/middleware"
	"food-marketplace-api/services"

	"github.com/gin-gonic/gin"
)

// AdminGetAllOrders returns all orders, filtered by status, customer or restaurant
func (h *Handler) AdminGetAllOrders(c *gin.Context) {
	customerID, ok := queryID(c, "customer_id")
	if !ok {
		return
	}
	restaurantID, ok := queryID(c, "restaurant_id")
	if !ok {
		return
	}
	orders, err := h.orders.AdminList(c.Request.Context(), middleware.CurrentCaller(c), services.OrderQuery{
		Status:       c.Query("status"),
		CustomerID:   customerID,
		RestaurantID: restaurantID,
	})
	if err != nil {
		h.fail(c, "admin_list_orders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": newOrderViews(orders)})
}

// AdminForceOrderStatus lets admin override any order state
func (h *Handler) AdminForceOrderStatus(c *gin.Context) {
	h.updateStatus(c, "admin_force_status")
}

// AdminGetAllUsers returns all users, optionally one role only
func (h *Handler) AdminGetAllUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context(), middleware.CurrentCaller(c), c.Query("role"))
	if err != nil {
		h.fail(c, "admin_list_users", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(users), "users": users})
}

func (h *Handler) AdminDeleteUser(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.users.DeleteUser(c.Request.Context(), middleware.CurrentCaller(c), id); err != nil {
		h.fail(c, "admin_delete_user", err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AdminGetAllRestaurants returns every restaurant with its manager
func (h *Handler) AdminGetAllRestaurants(c *gin.Context) {
	restaurants, err := h.restaurants.AdminList(c.Request.Context(), middleware.CurrentCaller(c))
	if err != nil {
		h.fail(c, "admin_list_restaurants", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(restaurants), "restaurants": restaurants})
}

func (h *Handler) AdminDeleteRestaurant(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.restaurants.Delete(c.Request.Context(), middleware.CurrentCaller(c), id); err != nil {
		h.fail(c, "admin_delete_restaurant", err)
		return
	}
	c.Status(http.StatusNoContent)
}
