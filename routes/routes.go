package routes

import (
	"net/http"

	"food-marketplace-api/auth"
	"food-marketplace-api/handlers"
	"food-marketplace-api/middleware"
	"food-marketplace-api/models"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler, tokens *auth.TokenIssuer) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "service": "food-marketplace-api"})
	})

	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)

		public.GET("/restaurants", h.ListRestaurants)
		public.GET("/restaurants/:id", h.GetRestaurant)
		public.GET("/restaurants/:id/menu", h.GetMenu)
		public.GET("/restaurants/:id/reviews", h.ListReviews)

		public.GET("/state-machine", h.GetStateMachineInfo)
	}

	// ── Any signed-in user ─────────────────────────────────────────
	signedIn := r.Group("/api")
	signedIn.Use(middleware.AuthRequired(tokens))
	{
		signedIn.GET("/profile", h.GetProfile)
		signedIn.PUT("/profile", h.UpdateProfile)
		signedIn.DELETE("/profile", h.DeleteAccount)
		signedIn.PUT("/profile/password", h.ChangePassword)

		signedIn.PUT("/profile/card", h.SaveCard)
		signedIn.GET("/profile/card", h.GetCard)
		signedIn.DELETE("/profile/card", h.DeleteCard)

		signedIn.POST("/restaurants/:id/reviews", h.AddReview)
		signedIn.DELETE("/reviews/:id", h.DeleteReview)
	}

	// ── Customer routes ────────────────────────────────────────────
	customer := r.Group("/api/customer")
	customer.Use(middleware.AuthRequired(tokens), middleware.RoleRequired(models.RoleCustomer))
	{
		customer.POST("/orders", h.PlaceOrder)
		customer.GET("/orders", h.GetMyOrders)
		customer.GET("/orders/:id", h.GetOrderDetail)
		customer.PUT("/orders/:id/cancel", h.CancelOrder)
		customer.DELETE("/orders/:id", h.DeleteOrder)
	}

	// ── Restaurant owner routes ────────────────────────────────────
	restaurant := r.Group("/api/restaurant")
	restaurant.Use(middleware.AuthRequired(tokens), middleware.RoleRequired(models.RoleRestaurantOwner))
	{
		restaurant.POST("", h.CreateRestaurant)
		restaurant.GET("", h.GetMyRestaurant)
		restaurant.PUT("", h.UpdateRestaurant)
		restaurant.DELETE("", h.DeleteMyRestaurant)

		restaurant.POST("/menu", h.AddFoodItem)
		restaurant.PUT("/menu/:itemId", h.UpdateFoodItem)
		restaurant.DELETE("/menu/:itemId", h.DeleteFoodItem)

		restaurant.GET("/orders", h.GetRestaurantOrders)
		restaurant.GET("/orders/:id", h.GetOrderDetail)
		restaurant.PUT("/orders/:id/status", h.UpdateOrderStatus)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api/admin")
	admin.Use(middleware.AuthRequired(tokens), middleware.RoleRequired(models.RoleAdmin))
	{
		admin.GET("/orders", h.AdminGetAllOrders)
		admin.GET("/orders/:id", h.GetOrderDetail)
		admin.PUT("/orders/:id/status", h.AdminForceOrderStatus)
		admin.GET("/users", h.AdminGetAllUsers)
		admin.DELETE("/users/:id", h.AdminDeleteUser)
		admin.GET("/restaurants", h.AdminGetAllRestaurants)
		admin.DELETE("/restaurants/:id", h.AdminDeleteRestaurant)
		admin.DELETE("/reviews/:id", h.DeleteReview)
	}
}
