package handlers

import (
	"time"

	"food-marketplace-api/models"

	"github.com/shopspring/decimal"
)

type orderLineView struct {
	ID         uint   `json:"id"`
	FoodItemID uint   `json:"food_item_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	UnitPrice  string `json:"unit_price"`
	LineTotal  string `json:"line_total"`
}

type orderView struct {
	ID             uint                        `json:"id"`
	UserID         uint                        `json:"user_id"`
	RestaurantID   uint                        `json:"restaurant_id"`
	RestaurantName string                      `json:"restaurant_name,omitempty"`
	Status         models.OrderStatus          `json:"status"`
	TotalPrice     string                      `json:"total_price"`
	Notes          string                      `json:"notes"`
	PaymentMethod  string                      `json:"payment_method"`
	CreatedAt      time.Time                   `json:"created_at"`
	Items          []orderLineView             `json:"items"`
	StatusHistory  []models.OrderStatusHistory `json:"status_history,omitempty"`
}

// newOrderView prices each line from the food item's current price; the total
// is the amount fixed when the order was placed.
func newOrderView(o *models.Order) orderView {
	v := orderView{
		ID:            o.ID,
		UserID:        o.UserID,
		RestaurantID:  o.RestaurantID,
		Status:        o.Status,
		TotalPrice:    o.TotalPrice.StringFixed(2),
		Notes:         o.Notes,
		PaymentMethod: o.PaymentMethod,
		CreatedAt:     o.CreatedAt,
		Items:         make([]orderLineView, 0, len(o.Items)),
		StatusHistory: o.StatusHistory,
	}
	if o.Restaurant != nil {
		v.RestaurantName = o.Restaurant.Name
	}
	for _, it := range o.Items {
		line := orderLineView{ID: it.ID, FoodItemID: it.FoodItemID, Quantity: it.Quantity}
		if it.FoodItem != nil {
			line.Name = it.FoodItem.Name
			line.UnitPrice = it.FoodItem.Price.StringFixed(2)
			line.LineTotal = it.FoodItem.Price.Mul(decimal.NewFromInt(int64(it.Quantity))).StringFixed(2)
		}
		v.Items = append(v.Items, line)
	}
	return v
}

func newOrderViews(orders []models.Order) []orderView {
	out := make([]orderView, len(orders))
	for i := range orders {
		out[i] = newOrderView(&orders[i])
	}
	return out
}

type cardView struct {
	ID         uint   `json:"id"`
	HolderName string `json:"holder_name"`
	Brand      string `json:"brand"`
	Number     string `json:"number"`
	ExpMonth   int    `json:"exp_month"`
	ExpYear    int    `json:"exp_year"`
}

func newCardView(c *models.Card) cardView {
	return cardView{
		ID:         c.ID,
		HolderName: c.HolderName,
		Brand:      c.Brand,
		Number:     c.Masked(),
		ExpMonth:   c.ExpMonth,
		ExpYear:    c.ExpYear,
	}
}
