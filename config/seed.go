package config

import (
	"context"
	"errors"
	"fmt"

	"food-marketplace-api/auth"
	"food-marketplace-api/models"

	"gorm.io/gorm"
)

// SeedAdmin creates the bootstrap admin account once. It reports whether a
// new account was created.
func SeedAdmin(ctx context.Context, db *gorm.DB, cfg *Config) (bool, error) {
	email := auth.NormalizeEmail(cfg.AdminEmail)
	if email == "" || cfg.AdminPassword == "" {
		return false, nil
	}

	var existing models.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("look up admin: %w", err)
	}

	hash, err := auth.HashPassword(cfg.AdminPassword)
	if err != nil {
		return false, err
	}
	admin := models.User{
		Name:         "Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         models.RoleAdmin,
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}
