package services

import (
	"context"
	"strings"
	"time"

	"food-marketplace-api/apperr"
	"food-marketplace-api/auth"
	"food-marketplace-api/authz"
	"food-marketplace-api/models"
	"food-marketplace-api/repository"
)

const minPasswordLength = 6

// UserService handles accounts: registration, login and profile upkeep.
type UserService struct {
	store       *repository.Store
	users       *repository.UserRepository
	restaurants *repository.RestaurantRepository
	orders      *repository.OrderRepository
	reviews     *repository.ReviewRepository
	cards       *repository.CardRepository
	tokens      *auth.TokenIssuer
}

func NewUserService(store *repository.Store, tokens *auth.TokenIssuer) *UserService {
	return &UserService{
		store:       store,
		users:       repository.NewUserRepository(store),
		restaurants: repository.NewRestaurantRepository(store),
		orders:      repository.NewOrderRepository(store),
		reviews:     repository.NewReviewRepository(store),
		cards:       repository.NewCardRepository(store),
		tokens:      tokens,
	}
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     models.UserRole
	Phone    string
	Address  string
}

// Register creates a Customer or RestaurantOwner account. Admin accounts are
// only ever seeded.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := auth.NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if name == "" || email == "" {
		return nil, apperr.InvalidArgument("name and email are required")
	}
	if len(in.Password) < minPasswordLength {
		return nil, apperr.InvalidArgument("password must be at least %d characters", minPasswordLength)
	}

	role := in.Role
	if role == "" {
		role = models.RoleCustomer
	}
	if role != models.RoleCustomer && role != models.RoleRestaurantOwner {
		return nil, apperr.InvalidArgument("role must be %s or %s", models.RoleCustomer, models.RoleRestaurantOwner)
	}

	exists, err := s.users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("email already registered")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Phone:        strings.TrimSpace(in.Phone),
		Address:      strings.TrimSpace(in.Address),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

type LoginResult struct {
	Token     string
	ExpiresIn time.Duration
	User      *models.User
}

// Login checks the credentials and issues an access token. Unknown emails and
// wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := s.users.GetByEmail(ctx, auth.NormalizeEmail(email))
	if err != nil {
		if apperr.IsClientError(err) {
			return nil, apperr.Unauthorized("invalid email or password")
		}
		return nil, err
	}
	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, apperr.Unauthorized("invalid email or password")
	}
	if auth.NeedsRehash(user.PasswordHash) {
		hash, err := auth.HashPassword(password)
		if err != nil {
			return nil, err
		}
		if err := s.users.Update(ctx, user.ID, map[string]any{"password_hash": hash}); err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, ExpiresIn: s.tokens.TTL(), User: user}, nil
}

func (s *UserService) Profile(ctx context.Context, caller authz.Caller) (*models.User, error) {
	if err := caller.Require(models.RoleCustomer, models.RoleRestaurantOwner, models.RoleAdmin); err != nil {
		return nil, err
	}
	return s.users.GetByID(ctx, caller.UserID)
}

// ProfileUpdate holds optional changes; nil fields are left alone.
type ProfileUpdate struct {
	Name    *string
	Phone   *string
	Address *string
}

func (s *UserService) UpdateProfile(ctx context.Context, caller authz.Caller, upd ProfileUpdate) (*models.User, error) {
	if err := caller.Require(models.RoleCustomer, models.RoleRestaurantOwner, models.RoleAdmin); err != nil {
		return nil, err
	}

	fields := map[string]any{}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return nil, apperr.InvalidArgument("name cannot be empty")
		}
		fields["name"] = name
	}
	if upd.Phone != nil {
		fields["phone"] = strings.TrimSpace(*upd.Phone)
	}
	if upd.Address != nil {
		fields["address"] = strings.TrimSpace(*upd.Address)
	}
	if len(fields) > 0 {
		if err := s.users.Update(ctx, caller.UserID, fields); err != nil {
			return nil, err
		}
	}
	return s.users.GetByID(ctx, caller.UserID)
}

func (s *UserService) ChangePassword(ctx context.Context, caller authz.Caller, current, next string) error {
	if err := caller.Require(models.RoleCustomer, models.RoleRestaurantOwner, models.RoleAdmin); err != nil {
		return err
	}
	if len(next) < minPasswordLength {
		return apperr.InvalidArgument("password must be at least %d characters", minPasswordLength)
	}

	user, err := s.users.GetByID(ctx, caller.UserID)
	if err != nil {
		return err
	}
	if !auth.VerifyPassword(current, user.PasswordHash) {
		return apperr.InvalidArgument("current password is incorrect")
	}
	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}
	return s.users.Update(ctx, user.ID, map[string]any{"password_hash": hash})
}

// DeleteAccount removes the caller's own account.
func (s *UserService) DeleteAccount(ctx context.Context, caller authz.Caller) error {
	if err := caller.Require(models.RoleCustomer, models.RoleRestaurantOwner, models.RoleAdmin); err != nil {
		return err
	}
	return s.deleteUser(ctx, caller.UserID)
}

func (s *UserService) ListUsers(ctx context.Context, caller authz.Caller, role string) ([]models.User, error) {
	if err := caller.Require(models.RoleAdmin); err != nil {
		return nil, err
	}
	r := models.UserRole(role)
	if r != "" && !r.Valid() {
		return nil, apperr.InvalidArgument("unknown role %q", role)
	}
	return s.users.List(ctx, r)
}

func (s *UserService) DeleteUser(ctx context.Context, caller authz.Caller, id uint) error {
	if err := caller.Require(models.RoleAdmin); err != nil {
		return err
	}
	if id == caller.UserID {
		return apperr.Conflict("use account deletion to remove your own account")
	}
	return s.deleteUser(ctx, id)
}

// deleteUser refuses while other rows still point at the user; the card goes
// with the account.
func (s *UserService) deleteUser(ctx context.Context, id uint) error {
	return s.store.RunAtomic(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetByID(ctx, id); err != nil {
			return err
		}
		owns, err := s.restaurants.ExistsForManager(ctx, id)
		if err != nil {
			return err
		}
		if owns {
			return apperr.Conflict("user %d still manages a restaurant", id)
		}
		n, err := s.orders.CountByUser(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.Conflict("user %d has %d order(s)", id, n)
		}
		n, err = s.reviews.CountByUser(ctx, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return apperr.Conflict("user %d has %d review(s)", id, n)
		}
		if err := s.cards.DeleteByUser(ctx, id); err != nil {
			return err
		}
		return s.users.Delete(ctx, id)
	})
}
