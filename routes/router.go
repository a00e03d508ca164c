package routes

import (
	"food-marketplace-api/auth"
	"food-marketplace-api/handlers"
	"food-marketplace-api/logger"
	"food-marketplace-api/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the engine with the middleware stack every route shares.
func NewRouter(h *handlers.Handler, tokens *auth.TokenIssuer, log *logger.Logger, compress bool) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.CORS())
	if compress {
		r.Use(middleware.Brotli())
	}
	SetupRoutes(r, h, tokens)
	return r
}
