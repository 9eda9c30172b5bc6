package main

import (
	"context"

	"providerrisk/cmd/internal/config"
	"providerrisk/cmd/internal/domain/database"
	"providerrisk/cmd/internal/domain/database/repository"
	"providerrisk/cmd/internal/infrastructure/credentials"
	"providerrisk/cmd/internal/seed"

	"github.com/labstack/gommon/log"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal(err)
	}
	log.SetLevel(cfg.LogLevel)

	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("failed to open %s database: %v", cfg.Database.Driver, err)
	}

	seeder := &seed.Seeder{
		Users:     repository.NewUserRepository(db),
		Companies: repository.NewCompanyRepository(db),
		Requests:  repository.NewRequestRepository(db),
		Hasher:    credentials.NewPasswordHasher(bcrypt.DefaultCost),
	}

	result, err := seeder.Run(ctx)
	if err != nil {
		log.Fatal(err)
	}
	log.Infof("seed completed: admin created=%t, companies created=%d, requests created=%d",
		result.AdminCreated, result.CompaniesCreated, result.RequestsCreated)
}
