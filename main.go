package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"food-marketplace-api/auth"
	"food-marketplace-api/config"
	"food-marketplace-api/events"
	"food-marketplace-api/handlers"
	"food-marketplace-api/logger"
	"food-marketplace-api/repository"
	"food-marketplace-api/routes"
	"food-marketplace-api/services"
	"food-marketplace-api/vault"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

const serviceName = "food-marketplace-api"

func main() {
	if err := run(); err != nil {
		logger.NewLogger(serviceName, "info").Error("startup", "", "server stopped with error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.NewLogger(serviceName, cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	db, err := config.InitDB(cfg)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	log.Info("db_connected", "", "database ready", slog.String("driver", cfg.DBDriver))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	seeded, err := config.SeedAdmin(ctx, db, cfg)
	if err != nil {
		return err
	}
	if seeded {
		log.Info("admin_seeded", "", "bootstrap admin account created", slog.String("email", cfg.AdminEmail))
	}

	sealer, err := newSealer(cfg, log)
	if err != nil {
		return err
	}

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.RabbitMQURL != "" {
		p, err := events.DialAMQP(cfg.RabbitMQURL, cfg.RabbitMQExchange)
		if err != nil {
			return err
		}
		publisher = p
		log.Info("rabbitmq_connected", "", "publishing order events", slog.String("exchange", cfg.RabbitMQExchange))
	}
	defer publisher.Close()

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL, cfg.JWTIssuer)
	store := repository.NewStore(db)
	h := handlers.New(handlers.Services{
		Users:       services.NewUserService(store, tokens),
		Restaurants: services.NewRestaurantService(store),
		FoodItems:   services.NewFoodItemService(store),
		Orders:      services.NewOrderService(store, publisher, log),
		Reviews:     services.NewReviewService(store),
		Cards:       services.NewCardService(store, sealer),
	}, log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.NewRouter(h, tokens, log, cfg.CompressResponses),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("server_started", "", "listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("server_stopping", "", "shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// newSealer uses the configured card key, or a per-process key when none is
// set. Cards saved under a per-process key cannot be opened after a restart.
func newSealer(cfg *config.Config, log *logger.Logger) (*vault.Sealer, error) {
	if cfg.CardEncryptionKey != "" {
		return vault.NewFromBase64(cfg.CardEncryptionKey)
	}
	key, err := vault.GenerateKey()
	if err != nil {
		return nil, err
	}
	log.Warn("card_key_missing", "", "CARD_ENCRYPTION_KEY not set, using an ephemeral key")
	return vault.New(key)
}
