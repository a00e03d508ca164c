package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Restaurant struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	ManagerID    uint       `json:"manager_id" gorm:"not null;uniqueIndex"`
	Manager      *User      `json:"manager,omitempty" gorm:"foreignKey:ManagerID"`
	Name         string     `json:"name" gorm:"not null"`
	Category     string     `json:"category" gorm:"index"`
	Address      string     `json:"address"`
	Description  string     `json:"description"`
	OpeningHours string     `json:"opening_hours"`
	IsOpen       bool       `json:"is_open" gorm:"default:true"`
	Rating       float64    `json:"rating" gorm:"not null;default:0"`
	RatingSum    int64      `json:"-" gorm:"not null;default:0"`
	ReviewCount  int64      `json:"review_count" gorm:"not null;default:0"`
	FoodItems    []FoodItem `json:"food_items,omitempty" gorm:"foreignKey:RestaurantID"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type FoodItem struct {
	ID           uint            `json:"id" gorm:"primaryKey"`
	RestaurantID uint            `json:"restaurant_id" gorm:"not null;index"`
	Name         string          `json:"name" gorm:"not null"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	Category     string          `json:"category"`
	Rating       float64         `json:"rating" gorm:"not null;default:0"`
	IsAvailable  bool            `json:"is_available" gorm:"default:true"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
