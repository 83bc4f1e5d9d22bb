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

	"hotelbooking/internal/backend"
	"hotelbooking/internal/config"
	"hotelbooking/internal/domain"
	"hotelbooking/internal/middleware"
	"hotelbooking/internal/modules/auth"
	"hotelbooking/internal/modules/booking"
	"hotelbooking/internal/modules/catalog"
	jwtsvc "hotelbooking/internal/pkg/jwt"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)
	client := backend.New(cfg.BackendBaseURL, cfg.BackendTimeout, cfg.Location, log.Printf)

	authService := auth.NewService(client, j, log.Printf)
	authHandler := auth.NewHandler(authService)

	catalogService := catalog.NewService(client, log.Printf)
	catalogHandler := catalog.NewHandler(catalogService)

	bookingService := booking.NewService(client, client, cfg.Location, log.Printf)
	bookingHandler := booking.NewHandler(bookingService)
	bookingHub := booking.NewHub()
	bookingWS := booking.NewWSHandler(bookingService, authService, bookingHub, cfg.CORSOrigins, log.Printf)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(),
		middleware.ErrorLogger(),
		middleware.CORS(cfg.CORSOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":        "ok",
			"env":           cfg.AppEnv,
			"live_sessions": bookingHub.Count(),
		})
	})

	// token travels in the query string, checked by the handler
	bookingWS.RegisterRoutes(r)

	v1 := r.Group("/api/v1")
	{
		authHandler.RegisterPublicRoutes(v1)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			catalogHandler.RegisterRoutes(protected)

			bookingGroup := protected.Group("")
			bookingGroup.Use(middleware.RequireRole(domain.RoleClient, domain.RoleAdmin))
			bookingHandler.RegisterRoutes(bookingGroup)
		}
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	// Shutdown does not track hijacked websocket connections.
	srv.RegisterOnShutdown(bookingHub.Close)

	go func() {
		log.Printf("level=info msg=gateway starting addr=%s backend=%s env=%s", cfg.HTTPAddr, cfg.BackendBaseURL, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("level=info msg=shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("level=info msg=gateway stopped")
}
