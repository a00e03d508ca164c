package models

import (
	"fmt"
	"time"
)

// Card never holds the clear card number; Sealed is the authenticated
// ciphertext produced by the vault.
type Card struct {
	ID         uint      `json:"id" gorm:"primaryKey"`
	UserID     uint      `json:"user_id" gorm:"not null;uniqueIndex"`
	HolderName string    `json:"holder_name" gorm:"not null"`
	Brand      string    `json:"brand"`
	Last4      string    `json:"-" gorm:"size:4;not null"`
	ExpMonth   int       `json:"exp_month" gorm:"not null"`
	ExpYear    int       `json:"exp_year" gorm:"not null"`
	Sealed     []byte    `json:"-" gorm:"not null"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Masked renders the card number with everything but the last four digits hidden.
func (c Card) Masked() string {
	return fmt.Sprintf("**** **** **** %s", c.Last4)
}
