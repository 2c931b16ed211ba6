package main

import (
	"context"
	"log"
	"time"

	"letlalo-shop/internal/cart"
	"letlalo-shop/internal/config"
	shophttp "letlalo-shop/internal/controllers/http"
	"letlalo-shop/internal/infra/paystack"
	"letlalo-shop/internal/infra/postgres"
	"letlalo-shop/internal/infra/rabbitmq"
	pgrepo "letlalo-shop/internal/repository/postgres"
	"letlalo-shop/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()

	db, err := postgres.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: connect: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		log.Fatalf("redis: parse url: %v", err)
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("redis: connect: %v", err)
	}

	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQURL, "shop.exchange")
	if err != nil {
		log.Fatalf("failed to init publisher: %v", err)
	}
	defer publisher.Close()

	payments := paystack.NewClient(cfg.PaystackBaseURL, cfg.PaystackSecretKey, 10*time.Second)
	if !payments.Configured() {
		log.Println("WARNING: PAYSTACK_SECRET_KEY not set, checkout will be unavailable")
	}

	orderRepo := pgrepo.NewOrderRepository(db)
	historyRepo := pgrepo.NewStatusHistoryRepository(db)
	productRepo := pgrepo.NewProductRepository(db)
	categoryRepo := pgrepo.NewCategoryRepository(db)

	cartStore := cart.NewRedisStore(redisClient, time.Duration(cfg.CartTTL)*time.Second)

	catalog := services.NewCatalogService(productRepo, categoryRepo)
	catalog.SetRedisClient(redisClient, time.Duration(cfg.ProductCacheTTL)*time.Second)

	checkout := services.NewCheckoutService(orderRepo, historyRepo, cartStore, payments, publisher)
	checkout.SetRedisClient(redisClient)

	orders := services.NewOrderService(orderRepo, historyRepo)
	admin := services.NewOrderAdminService(orderRepo, historyRepo, publisher)

	handler := shophttp.NewHandler(catalog, checkout, orders, admin, cartStore, cfg.AdminToken)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	handler.RegisterRoutes(r)

	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		log.Printf("Starting shop server on port %s", cfg.ServerPort)
		return r.Run(":" + cfg.ServerPort)
	})

	g.Go(func() error {
		interval := time.Duration(cfg.ReconcileInterval) * time.Second
		minAge := time.Duration(cfg.ReconcileMinAge) * time.Second
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-ticker.C:
				if err := checkout.ReconcilePending(ctx, minAge); err != nil {
					log.Printf("reconcile sweep failed: %v", err)
				}
			}
		}
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server run: %v", err)
	}
}
