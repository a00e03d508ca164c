package handlers

import (
	"net/http"

	"food-marketplace-api/middleware"
	"food-marketplace-api/services"

	"github.com/gin-gonic/gin"
)

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

// GetRestaurantOrders returns orders received by the owner's restaurant
func (h *Handler) GetRestaurantOrders(c *gin.Context) {
	orders, err := h.orders.ListForActor(c.Request.Context(), middleware.CurrentCaller(c),
		services.ActorKindRestaurant, c.Query("status"))
	if err != nil {
		h.fail(c, "list_restaurant_orders", err)
		return
	}

	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}
	c.JSON(http.StatusOK, gin.H{
		"count":   len(orders),
		"summary": summary,
		"orders":  newOrderViews(orders),
	})
}

// UpdateOrderStatus sets a new status on an order the owner's restaurant received
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	h.updateStatus(c, "update_order_status")
}

func (h *Handler) updateStatus(c *gin.Context, action string) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), middleware.CurrentCaller(c), id, req.Status, req.Note)
	if err != nil {
		h.fail(c, action, err)
		return
	}
	resp := gin.H{
		"message":    "Order status updated",
		"new_status": order.Status,
		"order":      newOrderView(order),
	}
	if n := len(order.StatusHistory); n > 0 {
		resp["previous_status"] = order.StatusHistory[n-1].FromStatus
	}
	c.JSON(http.StatusOK, resp)
}
