package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"food-marketplace-api/auth"
	"food-marketplace-api/authz"
	"food-marketplace-api/config"
	"food-marketplace-api/events"
	"food-marketplace-api/logger"
	"food-marketplace-api/models"
	"food-marketplace-api/repository"
	"food-marketplace-api/vault"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.OrderEvent
	err    error
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

func (p *recordingPublisher) last() events.OrderEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[len(p.events)-1]
}

type testEnv struct {
	ctx    context.Context
	db     *gorm.DB
	logs   *bytes.Buffer
	events *recordingPublisher
	tokens *auth.TokenIssuer

	users       *UserService
	restaurants *RestaurantService
	foodItems   *FoodItemService
	orders      *OrderService
	reviews     *ReviewService
	cards       *CardService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := config.InitDB(&config.Config{
		DBDriver: config.DriverSQLite,
		DBSource: filepath.Join(t.TempDir(), "marketplace.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	key, err := vault.GenerateKey()
	require.NoError(t, err)
	sealer, err := vault.New(key)
	require.NoError(t, err)

	store := repository.NewStore(db)
	logs := &bytes.Buffer{}
	pub := &recordingPublisher{}
	tokens := auth.NewTokenIssuer("test-secret", time.Hour, "food-marketplace-test")

	return &testEnv{
		ctx:         context.Background(),
		db:          db,
		logs:        logs,
		events:      pub,
		tokens:      tokens,
		users:       NewUserService(store, tokens),
		restaurants: NewRestaurantService(store),
		foodItems:   NewFoodItemService(store),
		orders:      NewOrderService(store, pub, logger.New(logs, "test", "debug")),
		reviews:     NewReviewService(store),
		cards:       NewCardService(store, sealer),
	}
}

// user inserts a user with a fixed id and returns the matching caller.
func (e *testEnv) user(t *testing.T, id uint, role models.UserRole) authz.Caller {
	t.Helper()
	u := models.User{
		ID:           id,
		Name:         "user",
		Email:        fmt.Sprintf("%s-%d@example.com", strings.ToLower(string(role)), id),
		PasswordHash: "unused",
		Role:         role,
	}
	require.NoError(t, e.db.Create(&u).Error)
	return authz.Caller{UserID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

func (e *testEnv) restaurant(t *testing.T, id, managerID uint) {
	t.Helper()
	require.NoError(t, e.db.Create(&models.Restaurant{ID: id, ManagerID: managerID, Name: "Restaurant", IsOpen: true}).Error)
}

func (e *testEnv) food(t *testing.T, id, restaurantID uint, price string) {
	t.Helper()
	require.NoError(t, e.db.Create(&models.FoodItem{
		ID:           id,
		RestaurantID: restaurantID,
		Name:         "dish",
		Price:        decimal.RequireFromString(price),
		IsAvailable:  true,
	}).Error)
}

func (e *testEnv) count(t *testing.T, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, e.db.Model(model).Count(&n).Error)
	return n
}

// marketplace seeds the usual cast: restaurant 1 managed by owner 42 with
// items 3 (5.00) and 9 (12.50), restaurant 2 managed by owner 43 with item 20,
// customers 7 and 8, and admin 1.
type marketplace struct {
	admin     authz.Caller
	customer  authz.Caller
	customer2 authz.Caller
	owner     authz.Caller
	owner2    authz.Caller
}

func (e *testEnv) seed(t *testing.T) marketplace {
	t.Helper()
	m := marketplace{
		admin:     e.user(t, 1, models.RoleAdmin),
		customer:  e.user(t, 7, models.RoleCustomer),
		customer2: e.user(t, 8, models.RoleCustomer),
		owner:     e.user(t, 42, models.RoleRestaurantOwner),
		owner2:    e.user(t, 43, models.RoleRestaurantOwner),
	}
	e.restaurant(t, 1, 42)
	e.restaurant(t, 2, 43)
	e.food(t, 3, 1, "5.00")
	e.food(t, 9, 1, "12.50")
	e.food(t, 20, 2, "8.00")
	return m
}

func (e *testEnv) placeOrder(t *testing.T, caller authz.Caller) *models.Order {
	t.Helper()
	order, err := e.orders.Create(e.ctx, caller, CreateOrderInput{
		RestaurantID: 1,
		Items:        []OrderLine{{FoodItemID: 3, Quantity: 2}, {FoodItemID: 9, Quantity: 1}},
	})
	require.NoError(t, err)
	return order
}

var errBrokerDown = errors.New("broker unreachable")
