package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"salsa-storefront/internal/auth"
	"salsa-storefront/internal/cart"
	"salsa-storefront/internal/cart/cart_api"
	"salsa-storefront/internal/catalog"
	"salsa-storefront/internal/catalog/catalog_api"
	"salsa-storefront/internal/clock"
	"salsa-storefront/internal/config"
	"salsa-storefront/internal/events"
	"salsa-storefront/internal/events/event_api"
	"salsa-storefront/internal/kafka"
	"salsa-storefront/internal/kv"
	"salsa-storefront/internal/logger"
)

// openStore builds the configured key-value backend.
func openStore(ctx context.Context, cfg config.Store, log *logger.Logger) kv.Store {
	switch cfg.Backend {
	case "memory":
		log.Warn("STORE", "Using in-memory store, nothing will survive a restart")
		return kv.NewMemoryStore()

	case "redis":
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			log.Fatal("STORE", fmt.Sprintf("Redis connection error: %v", err))
		}
		log.Info("STORE", fmt.Sprintf("Redis store ready at %s", cfg.RedisAddr))
		return kv.NewRedisStore(client)

	case "postgres":
		if cfg.PostgresDSN == "" {
			log.Fatal("CONFIG", "STORE_POSTGRES_DSN not set")
		}
		sqldb, err := sql.Open("postgres", cfg.PostgresDSN)
		if err != nil {
			log.Fatal("STORE", fmt.Sprintf("Failed to open Postgres: %v", err))
		}
		if err := sqldb.Ping(); err != nil {
			log.Fatal("STORE", fmt.Sprintf("Failed to connect to Postgres: %v", err))
		}
		store := kv.NewBunStore(bun.NewDB(sqldb, pgdialect.New()))
		if err := store.Init(ctx); err != nil {
			log.Fatal("STORE", fmt.Sprintf("Failed to create kv table: %v", err))
		}
		log.Info("STORE", "Postgres store ready")
		return store

	case "sqlite":
		sqldb, err := sql.Open("sqlite", cfg.SQLitePath)
		if err != nil {
			log.Fatal("STORE", fmt.Sprintf("Failed to open SQLite: %v", err))
		}
		store := kv.NewBunStore(bun.NewDB(sqldb, sqlitedialect.New()))
		if err := store.Init(ctx); err != nil {
			log.Fatal("STORE", fmt.Sprintf("Failed to create kv table: %v", err))
		}
		log.Info("STORE", fmt.Sprintf("SQLite store ready at %s", cfg.SQLitePath))
		return store

	default:
		log.Fatal("CONFIG", fmt.Sprintf("Unknown store backend: %s", cfg.Backend))
		return nil
	}
}

func buildPublisher(cfg config.Kafka, log *logger.Logger) cart.Publisher {
	if !cfg.Enabled || cfg.MockMode {
		log.Info("KAFKA", "Kafka disabled, order events will not be streamed")
		return kafka.NoopPublisher{}
	}

	topics := []string{cfg.Topics.OrderPlaced, cfg.Topics.OrderStatus, cfg.Topics.OrderDeleted}
	if err := kafka.EnsureTopicsExist(cfg.Brokers, topics); err != nil {
		log.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
	}
	log.Info("KAFKA", fmt.Sprintf("Kafka producer ready, brokers: %v", cfg.Brokers))
	return kafka.NewProducer(cfg.Brokers, cfg.Topics)
}

func main() {
	log := logger.NewLogger()
	defer log.Close()

	log.Info("APP", "Starting storefront service initialization")

	if err := godotenv.Load(); err != nil {
		log.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		log.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	ctx := context.Background()
	clk := clock.NewSystem()

	store := openStore(ctx, cfg.Store, log)
	publisher := buildPublisher(cfg.Kafka, log)

	shopCatalog := catalog.New()

	cartService := cart.NewService(store, clk, log, publisher, cfg.Shop.TaxRate, cfg.Shop.AutoConfirmDelay)
	cartService.Load(ctx)

	eventService := events.NewService(store, clk, log)
	eventService.Load(ctx)

	gate := auth.NewGate(cfg.Admin, clk, log)

	cartHandler := &cart_api.Handler{CartService: cartService, Catalog: shopCatalog, Logger: log}
	eventHandler := &event_api.Handler{EventService: eventService, Logger: log}
	catalogHandler := &catalog_api.Handler{Catalog: shopCatalog}
	authHandler := &auth.Handler{Gate: gate}

	log.Info("HTTP", "Setting up router and middleware")
	r := chi.NewRouter()

	// --- Public Routes ---
	r.Route("/api", func(r chi.Router) {
		r.Get("/products", catalogHandler.ListProducts)
		r.Get("/products/{productId}", catalogHandler.GetProduct)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cartHandler.GetCart)
			r.Delete("/", cartHandler.ClearCart)
			r.Post("/items", cartHandler.AddItem)
			r.Put("/items/{productId}/{size}", cartHandler.UpdateQuantity)
			r.Delete("/items/{productId}/{size}", cartHandler.RemoveItem)
			r.Put("/tip", cartHandler.SetTip)
		})

		r.Post("/checkout", cartHandler.Checkout)
		r.Get("/events", eventHandler.ListEvents)

		// --- Admin Routes ---
		r.Route("/admin", func(r chi.Router) {
			r.Post("/unlock", authHandler.Unlock)

			r.Group(func(r chi.Router) {
				r.Use(gate.Middleware())

				r.Get("/orders", cartHandler.ListOrders)
				r.Get("/orders/{orderId}", cartHandler.GetOrder)
				r.Put("/orders/{orderId}/status", cartHandler.UpdateOrderStatus)
				r.Delete("/orders/{orderId}", cartHandler.DeleteOrder)
				r.Get("/orders/{orderId}/qr", cartHandler.GetOrderQR)

				r.Post("/events", eventHandler.CreateEvent)
				r.Put("/events/{eventId}", eventHandler.UpdateEvent)
				r.Delete("/events/{eventId}", eventHandler.DeleteEvent)
			})
		})
	})
	log.Info("ROUTER", "Storefront routes registered under /api")

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		log.Info("HTTP", fmt.Sprintf("Storefront service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	log.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	log.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Error("HTTP", fmt.Sprintf("Server shutdown failed: %v", err))
	} else {
		log.Info("HTTP", "Storefront service shutdown complete")
	}
}
