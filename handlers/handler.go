package handlers

import (
	"reflect"
	"strings"
	"sync"

	"food-marketplace-api/logger"
	"food-marketplace-api/services"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Services bundles what the handlers call into.
type Services struct {
	Users       *services.UserService
	Restaurants *services.RestaurantService
	FoodItems   *services.FoodItemService
	Orders      *services.OrderService
	Reviews     *services.ReviewService
	Cards       *services.CardService
}

type Handler struct {
	users       *services.UserService
	restaurants *services.RestaurantService
	foodItems   *services.FoodItemService
	orders      *services.OrderService
	reviews     *services.ReviewService
	cards       *services.CardService
	log         *logger.Logger
}

func New(svc Services, log *logger.Logger) *Handler {
	registerJSONFieldNames()
	return &Handler{
		users:       svc.Users,
		restaurants: svc.Restaurants,
		foodItems:   svc.FoodItems,
		orders:      svc.Orders,
		reviews:     svc.Reviews,
		cards:       svc.Cards,
		log:         log,
	}
}

var jsonNamesOnce sync.Once

// registerJSONFieldNames makes validation errors report json field names.
func registerJSONFieldNames() {
	jsonNamesOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}
