package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/onehealth/clinicdesk/internal/config"
	"github.com/onehealth/clinicdesk/internal/domain/catalog"
	"github.com/onehealth/clinicdesk/internal/domain/clinic"
	"github.com/onehealth/clinicdesk/internal/domain/doctor"
	"github.com/onehealth/clinicdesk/internal/domain/location"
	"github.com/onehealth/clinicdesk/internal/domain/patient"
	"github.com/onehealth/clinicdesk/internal/domain/staff"
	"github.com/onehealth/clinicdesk/internal/domain/visit"
	"github.com/onehealth/clinicdesk/internal/platform/apiclient"
	"github.com/onehealth/clinicdesk/internal/platform/auth"
	"github.com/onehealth/clinicdesk/internal/platform/db"
	"github.com/onehealth/clinicdesk/internal/platform/middleware"
	"github.com/onehealth/clinicdesk/internal/platform/websocket"
)

const version = "0.1.0"

func serveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the console API gateway",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runServer()
		},
	}
}

func (a *app) runServer() error {
	cfg := a.cfg

	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	ctx := context.Background()
	api := apiclient.New(cfg.APIBaseURL, cfg.HTTPTimeout, logger)

	lookup, closeLookup, err := newLookup(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to set up pincode lookup")
	}
	defer closeLookup()

	catalogSvc, pinger, closeCatalog, err := newCatalog(ctx, cfg, api, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to set up catalog")
	}
	defer closeCatalog()

	e := newServer(cfg, logger)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})
	e.GET("/health/db", db.HealthHandler(pinger, logger))

	apiV1 := e.Group("/api/v1")
	apiV1.GET("/session", auth.InfoHandler([]byte(cfg.AuthSigningKey)))

	location.NewHandler(lookup, logger).RegisterRoutes(apiV1)
	clinic.NewHandler(clinic.NewService(api), logger).RegisterRoutes(apiV1)
	doctor.NewHandler(doctor.NewService(api), logger).RegisterRoutes(apiV1)
	patient.NewHandler(patient.NewService(api), logger).RegisterRoutes(apiV1)
	staff.NewHandler(staff.NewService(api), logger).RegisterRoutes(apiV1)
	visit.NewHandler(visit.NewService(api), logger).RegisterRoutes(apiV1)

	catalogHandler := catalog.NewHandler(catalogSvc, logger)
	catalogHandler.RegisterRoutes(apiV1)
	e.GET("/ws/search", websocket.Handler(
		websocket.NewUpgrader(cfg.CORSOrigins),
		catalogHandler.Searcher,
		cfg.SearchDebounce,
		logger,
	))

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server shutdown failed")
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

// newServer returns echo with the global middleware stack.
func newServer(cfg *config.Config, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
	}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.Sanitize(logger))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))
	e.Use(auth.Middleware([]byte(cfg.AuthSigningKey), logger))
	e.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}))
	return e
}
