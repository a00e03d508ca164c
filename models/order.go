package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID            uint                 `json:"id" gorm:"primaryKey"`
	UserID        uint                 `json:"user_id" gorm:"not null;index"`
	User          *User                `json:"customer,omitempty" gorm:"foreignKey:UserID"`
	RestaurantID  uint                 `json:"restaurant_id" gorm:"not null;index"`
	Restaurant    *Restaurant          `json:"restaurant,omitempty" gorm:"foreignKey:RestaurantID"`
	Status        OrderStatus          `json:"status" gorm:"not null;default:'Pending';index"`
	TotalPrice    decimal.Decimal      `json:"total_price" gorm:"type:decimal(12,2);not null"` // snapshot taken at creation
	Notes         string               `json:"notes"`
	PaymentMethod string               `json:"payment_method"`
	Items         []OrderItem          `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	StatusHistory []OrderStatusHistory `json:"status_history,omitempty" gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

// OrderItem has no price column: the line price is always the food item's
// current price.
type OrderItem struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	OrderID    uint      `json:"order_id" gorm:"not null;index"`
	FoodItemID uint      `json:"food_item_id" gorm:"not null;index"`
	FoodItem   *FoodItem `json:"food_item,omitempty" gorm:"foreignKey:FoodItemID;constraint:OnDelete:RESTRICT"`
	Quantity   int       `json:"quantity" gorm:"not null"`
}

// OrderStatusHistory tracks every status change
type OrderStatusHistory struct {
	ID         uint        `json:"id" gorm:"primaryKey"`
	OrderID    uint        `json:"order_id" gorm:"not null;index"`
	FromStatus OrderStatus `json:"from_status"`
	ToStatus   OrderStatus `json:"to_status" gorm:"not null"`
	ChangedBy  uint        `json:"changed_by"`
	Note       string      `json:"note"`
	CreatedAt  time.Time   `json:"created_at"`
}
