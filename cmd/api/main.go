package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"qrattendance/internal/api"
	"qrattendance/internal/attendance"
	"qrattendance/internal/campus"
	"qrattendance/internal/config"
	"qrattendance/internal/store"
	"qrattendance/internal/student"
	"qrattendance/internal/token"
)

func main() {
	cfg := config.Load()

	if cfg.Env == "production" || cfg.Env == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}

func run(cfg config.App) error {
	deps := api.Deps{Schedule: campus.SeedDemo()}

	// Attendance + students: postgres in prod, memory for local dev.
	var records attendance.Store
	if cfg.StoreBackend == "memory" {
		log.Println("using in-memory attendance store")
		records = attendance.NewMemoryStore()
		deps.Students = student.SeedDemo()
	} else {
		db, err := store.NewDB(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		if err := store.Migrate(db.Client); err != nil {
			return err
		}
		records = attendance.NewPostgresStore(db.Client)
		deps.Students = student.NewPostgresDirectory(db.Client)
		deps.DBHealthy = func() bool {
			return db.Client.PingContext(context.Background()) == nil
		}
	}

	// Tokens: redis native TTL in prod, swept memory store for local dev.
	var tokens token.Store
	if cfg.TokenBackend == "memory" {
		log.Println("using in-memory token store")
		mem := token.NewMemoryStore(cfg.SweepInterval)
		defer mem.Close()
		tokens = mem
	} else {
		redisClient := store.NewRedis(cfg.RedisAddr)
		tokens = token.NewRedisStore(redisClient.Client)
		deps.RedisHealthy = func() bool {
			return redisClient.Healthy(context.Background())
		}
	}

	deps.Issuer = token.NewIssuer(tokens, cfg.TokenTTL)
	deps.Recorder = attendance.NewRecorder(tokens, records)
	deps.Query = attendance.NewQuery(records, deps.Students)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      api.NewRouter(cfg, deps),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("starting server on :%s (tokens=%s, store=%s, ttl=%s)",
			cfg.HTTPPort, cfg.TokenBackend, cfg.StoreBackend, cfg.TokenTTL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server forced shutdown: %v", err)
	}

	log.Println("server exited")
	return nil
}
