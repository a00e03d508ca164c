package repository

import (
	"context"
	"fmt"

	"food-marketplace-api/apperr"
	"food-marketplace-api/models"
)

type UserRepository struct {
	store *Store
}

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) Create(ctx context.Context, u *models.User) error {
	if err := r.store.conn(ctx).Create(u).Error; err != nil {
		return duplicate(err, "email %s already registered", u.Email)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var u models.User
	if err := r.store.conn(ctx).First(&u, id).Error; err != nil {
		return nil, notFound(err, "user %d not found", id)
	}
	return &u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.store.conn(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, notFound(err, "user %s not found", email)
	}
	return &u, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var n int64
	if err := r.store.conn(ctx).Model(&models.User{}).Where("email = ?", email).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// Update writes the given columns.
func (r *UserRepository) Update(ctx context.Context, id uint, fields map[string]any) error {
	res := r.store.conn(ctx).Model(&models.User{ID: id}).Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user %d not found", id)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	res := r.store.conn(ctx).Delete(&models.User{}, id)
	if res.Error != nil {
		return fmt.Errorf("delete user %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user %d not found", id)
	}
	return nil
}

// List returns all users, optionally restricted to one role.
func (r *UserRepository) List(ctx context.Context, role models.UserRole) ([]models.User, error) {
	q := r.store.conn(ctx).Order("id")
	if role != "" {
		q = q.Where("role = ?", role)
	}
	var users []models.User
	err := q.Find(&users).Error
	return users, err
}
