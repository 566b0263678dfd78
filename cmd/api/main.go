// cmd/api/main.go
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/your-org/storefront-cart/internal/config"
	"github.com/your-org/storefront-cart/internal/domain/cart"
	"github.com/your-org/storefront-cart/internal/domain/order"
	"github.com/your-org/storefront-cart/internal/infrastructure/database/postgres"
	"github.com/your-org/storefront-cart/internal/infrastructure/database/redis"
	"github.com/your-org/storefront-cart/internal/infrastructure/orderapi"
	"github.com/your-org/storefront-cart/internal/infrastructure/orderstore"
	"github.com/your-org/storefront-cart/internal/interfaces/http"
	"github.com/your-org/storefront-cart/internal/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLog := logger.New(cfg)
	appLog.Infof("🚀 Starting %s v%s in %s mode", cfg.App.Name, cfg.App.Version, cfg.App.Environment)

	// Connect to Redis (session cart store)
	redisClient, err := redis.NewConnection(cfg)
	if err != nil {
		appLog.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	if err := redisClient.Health(); err != nil {
		appLog.Fatalf("Redis health check failed: %v", err)
	}

	// Pick the order collaborator: upstream commerce API or the
	// embedded database-backed store
	var orders order.Service
	if cfg.UseUpstreamOrderAPI() {
		appLog.Infof("🔗 Using upstream order API at %s", cfg.OrderAPI.URL)
		orders = orderapi.NewClient(cfg)
	} else {
		db, err := postgres.NewConnection(cfg)
		if err != nil {
			appLog.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.Health(); err != nil {
			appLog.Fatalf("Database health check failed: %v", err)
		}

		migration := postgres.NewMigration(db.GetDB())
		if err := migration.RunAutoMigrations(); err != nil {
			appLog.Fatalf("Database migration failed: %v", err)
		}
		if err := migration.CreateIndexes(); err != nil {
			appLog.Warnf("Index creation failed: %v", err)
		}

		appLog.Info("🗄️  Using embedded order store")
		orders = orderstore.NewStore(db.GetDB())
	}

	// One cart controller per browsing session, each with its own
	// session-scoped Redis store
	manager := cart.NewManager(orders, cfg.Cart.BranchID, func(sessionID string) cart.Store {
		return cart.NewRedisStore(redisClient.GetClient(), sessionID, cfg.Cart.SessionTTL, appLog)
	}, appLog)

	appLog.Info("✅ All systems operational!")

	// Create and start HTTP server
	server := http.NewServer(cfg, manager, redisClient.GetClient(), appLog)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			appLog.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLog.Info("👋 Shutting down gracefully...")

	// Give the server 30 seconds to shutdown gracefully
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Stop(ctx); err != nil {
		appLog.Errorf("Failed to shutdown HTTP server gracefully: %v", err)
	}

	appLog.Info("✅ Server shutdown completed")
}
