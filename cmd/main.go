package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kayceeDev/altschooltestingBE/config"
	"github.com/kayceeDev/altschooltestingBE/db"
	"github.com/kayceeDev/altschooltestingBE/middleware"
	"github.com/kayceeDev/altschooltestingBE/server"
	"github.com/kayceeDev/altschooltestingBE/services/users"
)

const readinessCheckInterval = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Printf("❌ Fatal error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	log.Printf("🚀 Starting users API (environment: %s)", cfg.Environment)

	// The listener starts regardless of the datastore outcome
	dbConn := db.NewConnection(cfg.MongoURI, cfg.MongoDatabase)
	connectCtx, cancelConnect := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelConnect()
	dbConn.ConnectAsync(connectCtx)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := dbConn.Close(ctx); err != nil {
			log.Printf("❌ %v", err)
		}
	}()

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	go dbConn.Monitor(monitorCtx, readinessCheckInterval)

	rateLimitStore, closeStore, err := newRateLimitStore(cfg.RateLimitConfig)
	if err != nil {
		return err
	}
	defer closeStore()

	usersRepo := db.NewMongoUsersRepository(dbConn)
	usersService := users.NewUsersService(usersRepo)

	handler := server.NewHandler(cfg, server.Dependencies{
		UsersService:   usersService,
		RateLimitStore: rateLimitStore,
		Readiness:      dbConn,
	})

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 30 * time.Second,
	}

	return handleGracefulShutdown(httpServer)
}

// newRateLimitStore picks Redis when configured, otherwise an in-memory store swept every minute
func newRateLimitStore(cfg config.RateLimitConfig) (middleware.RateLimitStore, func(), error) {
	if cfg.UsesRedis() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		client, err := middleware.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("✅ Connected to Redis for rate limiting")
		return middleware.NewRedisStore(client, cfg.Window), func() {
			if err := client.Close(); err != nil {
				log.Printf("❌ Failed to close Redis client: %v", err)
			}
		}, nil
	}

	store := middleware.NewMemoryStore(cfg.Window)
	sweepTicker := time.NewTicker(1 * time.Minute)
	stopSweep := make(chan struct{})
	go func() {
		for {
			select {
			case <-sweepTicker.C:
				if removed := store.Sweep(); removed > 0 {
					log.Printf("🧹 Removed %d expired rate limit windows", removed)
				}
			case <-stopSweep:
				return
			}
		}
	}()

	return store, func() {
		sweepTicker.Stop()
		close(stopSweep)
	}, nil
}

func handleGracefulShutdown(httpServer *http.Server) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("✅ Server is running on http://localhost%s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		log.Printf("❌ Server error: %v", err)
		return err
	case <-stop:
	}
	log.Printf("🛑 Shutdown signal received, cleaning up...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("❌ Server shutdown error: %v", err)
		return err
	}

	log.Printf("✅ Server stopped gracefully")
	return nil
}
