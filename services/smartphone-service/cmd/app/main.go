package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smartphones/services/smartphone-service/config"
	"smartphones/services/smartphone-service/internal/application"
	"smartphones/services/smartphone-service/internal/infrastructure/repository"
	"smartphones/services/smartphone-service/internal/infrastructure/security"
	"smartphones/services/smartphone-service/internal/middleware"
	grpc_server "smartphones/services/smartphone-service/internal/transport/grpc"
	handlers "smartphones/services/smartphone-service/internal/transport/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var demoPhones = []map[string]interface{}{
	{"nom": "iPhone 12", "marque": "Apple", "prix": 909, "stockage": "128Go"},
	{"nom": "Galaxy S21", "marque": "Samsung", "prix": 859, "stockage": "256Go"},
	{"nom": "Pixel 8", "marque": "Google", "prix": 699, "stockage": "128Go"},
}

func main() {
	// app hash-code <code> prints a value for DELETE_CODE_HASH.
	if len(os.Args) == 3 && os.Args[1] == "hash-code" {
		hash, err := security.HashDeleteCode(os.Args[2])
		if err != nil {
			log.Fatalf("Failed to hash delete code: %v", err)
		}
		fmt.Println(hash)
		return
	}

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	repo, err := openRepository(cfg)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}

	verifier, err := security.NewDeleteCodeVerifier(cfg.DeleteCode, cfg.DeleteCodeHash)
	if err != nil {
		log.Fatalf("Failed to configure delete code: %v", err)
	}

	useCase := application.NewSmartphoneUseCase(repo, verifier)

	if cfg.SeedDemo {
		n, err := useCase.Seed(context.Background(), demoPhones)
		if err != nil {
			log.Fatalf("Failed to seed store: %v", err)
		}
		if n > 0 {
			log.Printf(">>> Store seeded with %d smartphones", n)
		}
	}

	var limiter *middleware.RateLimiter
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr: cfg.RedisAddr,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Printf("Redis at %s unreachable, delete rate limiting fails open: %v", cfg.RedisAddr, err)
		} else {
			log.Println("Connected to Redis at", cfg.RedisAddr)
		}
		limiter = middleware.NewRateLimiter(rdb)
	}

	router := handlers.NewRouter(
		handlers.NewSmartphoneHandler(useCase, cfg.Env),
		handlers.NewSystemHandler(cfg.Env, cfg.Port),
		limiter,
		handlers.RouterConfig{
			Environment:     cfg.Env,
			AllowedOrigins:  cfg.Origins(),
			DeleteRateLimit: cfg.DeleteRateLimit,
			DeleteWindow:    cfg.DeleteWindow,
			MaxBodyBytes:    cfg.MaxBodyBytes,
		},
	)

	srv := &http.Server{
		Addr:    "0.0.0.0:" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server listening on http://0.0.0.0:%s (env=%s, store=%s)", cfg.Port, cfg.Env, cfg.StoreDriver)
		log.Printf("Health: http://localhost:%s/health", cfg.Port)
		log.Printf("API: http://localhost:%s/api/smartphones", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	var healthSrv *grpc_server.HealthServer
	if cfg.GRPCPort != "" {
		lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
		if err != nil {
			log.Fatalf("Failed to listen: %v", err)
		}
		healthSrv = grpc_server.NewHealthServer()
		go func() {
			log.Printf("gRPC health running on port %s", cfg.GRPCPort)
			if err := healthSrv.Serve(lis); err != nil {
				log.Fatalf("Failed to serve gRPC: %v", err)
			}
		}()
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	log.Println("Shutting down server...")
	if healthSrv != nil {
		healthSrv.Shutdown()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
}

func openRepository(cfg config.Config) (application.SmartphoneRepository, error) {
	switch cfg.StoreDriver {
	case "memory":
		log.Println("Using in-memory store")
		return repository.NewMemoryRepository(), nil
	case "postgres", "":
		db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		repo := repository.NewSmartphoneRepository(db)
		if err := repo.Migrate(); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
		log.Println("Connected to postgres")
		return repo, nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
