package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/amanraj069/m-frontend-sub001/docs"
	"github.com/amanraj069/m-frontend-sub001/internal/auth"
	"github.com/amanraj069/m-frontend-sub001/internal/cache"
	"github.com/amanraj069/m-frontend-sub001/internal/config"
	"github.com/amanraj069/m-frontend-sub001/internal/db"
	"github.com/amanraj069/m-frontend-sub001/internal/handler"
	"github.com/amanraj069/m-frontend-sub001/internal/logger"
	"github.com/amanraj069/m-frontend-sub001/internal/login"
	"github.com/amanraj069/m-frontend-sub001/internal/model"
	"github.com/amanraj069/m-frontend-sub001/internal/repository"
	"github.com/amanraj069/m-frontend-sub001/internal/router"
	"github.com/amanraj069/m-frontend-sub001/internal/service"
	"github.com/amanraj069/m-frontend-sub001/internal/session"
	"github.com/amanraj069/m-frontend-sub001/internal/web"
)

const shutdownTimeout = 10 * time.Second

// @title Freelance Hub API
// @version 1.0
// @description Marketplace front end API: role-aware login, token refresh and the admin dashboard.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		// no logger yet
		zap.NewExample().Fatal("load config", zap.Error(err))
	}

	log, err := logger.New(cfg.AppMode)
	if err != nil {
		zap.NewExample().Fatal("init logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, cfg.IsDev())
	if err != nil {
		log.Fatal("database init", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer func() { _ = cacheClient.Close() }()
	if err := cacheClient.Ping(context.Background()); err != nil {
		log.Warn("redis unreachable, sessions cannot be revoked until it is back", zap.String("addr", cfg.RedisAddr), zap.Error(err))
	}

	// Repositories and auth components
	userRepo := repository.NewUserRepository(gormDB)
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)

	// Services
	authService := service.NewAuthService(userRepo, jwtService, tokenStore, log.Named("auth"))
	userService := service.NewUserService(userRepo, cacheClient)
	dashboardService := service.NewDashboardService()
	sessions := session.New(authService, log.Named("session"))

	screens := login.NewRegistry(sessions, cfg.LoginScreenTTL,
		login.WithTimeout(cfg.AuthTimeout),
		login.WithLogger(log.Named("login")),
	)

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatal("parse templates", zap.Error(err))
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	router.Register(e, log, jwtService, tokenStore, renderer, router.Handlers{
		Login: handler.NewLoginHandler(screens, sessions, jwtService,
			handler.CookieOptions{Secure: cfg.CookieSecure}, cfg.LoginScreenTTL, log.Named("login")),
		Dashboard: handler.NewDashboardHandler(dashboardService),
		Auth:      handler.NewAuthHandler(authService),
		User:      handler.NewUserHandler(userService),
	})

	if cfg.SwaggerHost != "" {
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.SwaggerHost, "http://"), "https://")
		docs.SwaggerInfo.Host = host
	}
	log.Info("swagger documentation available", zap.String("url", "http://"+docs.SwaggerInfo.Host+"/swagger/index.html"))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		addr := ":" + cfg.ServerPort
		log.Info("server listening", zap.String("addr", addr), zap.String("mode", cfg.AppMode))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
	log.Info("server exited")
}
