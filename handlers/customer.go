package handlers

import (
	"net/http"

	"food-marketplace-api/middleware"
	"food-marketplace-api/services"

	"github.com/gin-gonic/gin"
)

type PlaceOrderRequest struct {
	RestaurantID  uint   `json:"restaurant_id" binding:"required"`
	Notes         string `json:"notes"`
	PaymentMethod string `json:"payment_method"`
	Items         []struct {
		FoodItemID uint `json:"food_item_id" binding:"required"`
		Quantity   int  `json:"quantity"`
	} `json:"items" binding:"required,min=1,dive"`
}

// PlaceOrder creates a new order (customer only)
func (h *Handler) PlaceOrder(c *gin.Context) {
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	lines := make([]services.OrderLine, len(req.Items))
	for i, it := range req.Items {
		lines[i] = services.OrderLine{FoodItemID: it.FoodItemID, Quantity: it.Quantity}
	}
	order, err := h.orders.Create(c.Request.Context(), middleware.CurrentCaller(c), services.CreateOrderInput{
		RestaurantID:  req.RestaurantID,
		Items:         lines,
		Notes:         req.Notes,
		PaymentMethod: req.PaymentMethod,
	})
	if err != nil {
		h.fail(c, "place_order", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   newOrderView(order),
	})
}

// GetMyOrders returns all orders for the logged-in customer
func (h *Handler) GetMyOrders(c *gin.Context) {
	orders, err := h.orders.ListForActor(c.Request.Context(), middleware.CurrentCaller(c),
		services.ActorKindCustomer, c.Query("status"))
	if err != nil {
		h.fail(c, "list_my_orders", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": newOrderViews(orders)})
}

// GetOrderDetail returns a single order with its status history
func (h *Handler) GetOrderDetail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.Get(c.Request.Context(), middleware.CurrentCaller(c), id)
	if err != nil {
		h.fail(c, "get_order", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"order": newOrderView(order)})
}

// CancelOrder cancels a Pending order
func (h *Handler) CancelOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.Cancel(c.Request.Context(), middleware.CurrentCaller(c), id)
	if err != nil {
		h.fail(c, "cancel_order", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order_id": order.ID})
}

// DeleteOrder removes one of the customer's orders
func (h *Handler) DeleteOrder(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := h.orders.Delete(c.Request.Context(), middleware.CurrentCaller(c), id); err != nil {
		h.fail(c, "delete_order", err)
		return
	}
	c.Status(http.StatusNoContent)
}
