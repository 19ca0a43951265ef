package main

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/amanraj069/m-frontend-sub001/internal/auth"
	"github.com/amanraj069/m-frontend-sub001/internal/cache"
	"github.com/amanraj069/m-frontend-sub001/internal/config"
	"github.com/amanraj069/m-frontend-sub001/internal/db"
	apperrors "github.com/amanraj069/m-frontend-sub001/internal/errors"
	"github.com/amanraj069/m-frontend-sub001/internal/logger"
	"github.com/amanraj069/m-frontend-sub001/internal/model"
	"github.com/amanraj069/m-frontend-sub001/internal/repository"
	"github.com/amanraj069/m-frontend-sub001/internal/service"
)

// demoPassword is shared by every seeded account.
const demoPassword = "password123"

type seedUser struct {
	Name   string
	Email  string
	Role   model.Role
	Active bool
}

var seedUsers = []seedUser{
	{Name: "Priya Sharma", Email: "freelancer@example.com", Role: model.RoleFreelancer, Active: true},
	{Name: "Acme Hiring", Email: "employer@example.com", Role: model.RoleEmployer, Active: true},
	{Name: "Site Admin", Email: "admin@example.com", Role: model.RoleAdmin, Active: true},
	{Name: "Dormant Freelancer", Email: "inactive@example.com", Role: model.RoleFreelancer, Active: false},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("load config", zap.Error(err))
	}
	log, err := logger.New(cfg.AppMode)
	if err != nil {
		zap.NewExample().Fatal("init logger", zap.Error(err))
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting seed script")

	gormDB, err := db.NewMySQL(cfg.MySQLDSN, cfg.IsDev())
	if err != nil {
		log.Fatal("connect database", zap.Error(err))
	}
	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatal("run migrations", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer func() { _ = cacheClient.Close() }()

	userRepo := repository.NewUserRepository(gormDB)
	authService := service.NewAuthService(userRepo, auth.NewJWTService(cfg.JWTSecret), auth.NewTokenStore(cacheClient), log)
	userService := service.NewUserService(userRepo, cacheClient)

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	created, skipped := 0, 0
	for _, su := range seedUsers {
		user, err := authService.Provision(ctx, su.Email, demoPassword, su.Name, su.Role)
		switch {
		case errors.Is(err, apperrors.ErrUserAlreadyExists):
			skipped++
			user, err = userRepo.FindByEmail(ctx, su.Email)
			if err != nil {
				log.Fatal("load existing user", zap.String("email", su.Email), zap.Error(err))
			}
		case err != nil:
			log.Fatal("provision user", zap.String("email", su.Email), zap.Error(err))
		default:
			created++
		}

		if _, err := userService.SetActive(ctx, user.ID, su.Active); err != nil {
			log.Fatal("set active", zap.String("email", su.Email), zap.Error(err))
		}
	}

	log.Info("seed completed",
		zap.Int("created", created),
		zap.Int("existing", skipped),
		zap.String("password", demoPassword),
	)
}
