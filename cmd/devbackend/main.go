package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"hotelbooking/internal/config"
	"hotelbooking/internal/database"
	"hotelbooking/internal/middleware"
	"hotelbooking/internal/modules/pricing"
	jwtsvc "hotelbooking/internal/pkg/jwt"
	"hotelbooking/internal/repository"
)

// devbackend serves the REST endpoints the gateway consumes, backed by the
// local database. Tokens are signed with the gateway's JWT secret.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	if err := repository.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	pricingService := pricing.NewService(
		repository.NewUserRepository(db),
		repository.NewRoomRepository(db),
		repository.NewPromotionRepository(db),
		repository.NewHotelRepository(db),
		j,
		cfg.Location,
		log.Printf,
	)
	pricingHandler := pricing.NewHandler(pricingService)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.ErrorLogger(),
	)
	pricingHandler.Mount(r, middleware.JWTAuth(j))

	srv := &http.Server{
		Addr:              cfg.DevBackendAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("level=info msg=dev backend starting addr=%s db=%s", cfg.DevBackendAddr, cfg.DatabaseURL)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("level=info msg=dev backend stopped")
}
