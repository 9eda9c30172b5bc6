package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"providerrisk/cmd/internal/config"
	"providerrisk/cmd/internal/domain/database"
	"providerrisk/cmd/internal/domain/database/repository"
	"providerrisk/cmd/internal/http/handler"
	"providerrisk/cmd/internal/http/router"
	"providerrisk/cmd/internal/infrastructure/credentials"
	"providerrisk/cmd/internal/infrastructure/metrics"
	"providerrisk/cmd/internal/service"
	"providerrisk/cmd/internal/validators"

	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Loads env vars depending on environment (.env or AWS SSM Parameter Store)
	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(cfg.LogLevel)

	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("failed to open %s database: %v", cfg.Database.Driver, err)
	}

	tokens, err := credentials.NewTokenService(credentials.TokenConfig{
		Secret: cfg.Auth.Secret,
		Issuer: cfg.Auth.Issuer,
		TTL:    cfg.Auth.TokenTTL,
	})
	if err != nil {
		log.Fatal(err)
	}

	validate := validators.New()
	m := metrics.New()

	// Getting repos
	companyRepo := repository.NewCompanyRepository(db)
	requestRepo := repository.NewRequestRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Getting services
	userService := service.NewUserService(userRepo, credentials.NewPasswordHasher(bcrypt.DefaultCost), tokens, validate)
	companyService := service.NewCompanyService(companyRepo, validate)
	requestService := service.NewRequestService(requestRepo, companyRepo, m, validate)

	e := router.New(router.Config{
		Companies:     handler.NewCompanyDefault(companyService),
		Requests:      handler.NewRequestDefault(requestService),
		Auth:          handler.NewAuthDefault(userService),
		Authenticator: userService,
		Metrics:       m,
	})

	go func() {
		log.Infof("listening on :%s (%s database)", cfg.Port, cfg.Database.Driver)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Errorf("failed to shut down cleanly: %v", err)
	}
}
