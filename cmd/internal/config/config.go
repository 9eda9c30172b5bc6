package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"providerrisk/cmd/internal/domain/database"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

const (
	EnvProduction = "production"

	ssmPrefix        = "/providerrisk/prod/"
	defaultRegion    = "us-east-2"
	defaultPort      = "7070"
	defaultTokenMins = 30
)

type Config struct {
	Env      string
	Port     string
	LogLevel log.Lvl
	Database database.Config
	Auth     AuthConfig
}

type AuthConfig struct {
	Secret   string
	Issuer   string
	TokenTTL time.Duration
}

// Load populates the process environment (.env locally, SSM Parameter Store
// in production) and reads the configuration from it.
func Load(ctx context.Context) (*Config, error) {
	if os.Getenv("GO_ENV") == EnvProduction {
		if err := loadProdEnv(ctx); err != nil {
			return nil, err
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv reads the configuration from the current environment only.
func FromEnv() (*Config, error) {
	secret := os.Getenv("SECRET_KEY")
	if secret == "" {
		return nil, errors.New("config: SECRET_KEY is required")
	}

	ttlMinutes := defaultTokenMins
	if raw := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return nil, fmt.Errorf("config: ACCESS_TOKEN_EXPIRE_MINUTES must be a positive integer, got %q", raw)
		}
		ttlMinutes = parsed
	}

	return &Config{
		Env:      os.Getenv("GO_ENV"),
		Port:     getEnv("PORT", defaultPort),
		LogLevel: parseLevel(os.Getenv("LOG_LEVEL")),
		Database: database.Config{
			Driver: getEnv("DB_DRIVER", database.DriverSQLite),
			DSN:    os.Getenv("DATABASE_URL"),
		},
		Auth: AuthConfig{
			Secret:   secret,
			Issuer:   getEnv("JWT_ISSUER", "providerrisk"),
			TokenTTL: time.Duration(ttlMinutes) * time.Minute,
		},
	}, nil
}

func loadProdEnv(ctx context.Context) error {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(getEnv("AWS_REGION", defaultRegion)))
	if err != nil {
		return fmt.Errorf("config: unable to load SDK config: %w", err)
	}

	client := ssm.NewFromConfig(cfg)
	paginator := ssm.NewGetParametersByPathPaginator(client, &ssm.GetParametersByPathInput{
		Path:           aws.String(ssmPrefix),
		WithDecryption: aws.Bool(true),
		Recursive:      aws.Bool(true),
	})

	loaded := 0
	for paginator.HasMorePages() {
		out, err := paginator.NextPage(ctx)
		if err != nil {
			return fmt.Errorf("config: unable to load prod environment: %w", err)
		}

		for _, param := range out.Parameters {
			key := strings.TrimPrefix(aws.ToString(param.Name), ssmPrefix)
			if err = os.Setenv(key, aws.ToString(param.Value)); err != nil {
				return fmt.Errorf("config: unable to set environment variable %s: %w", key, err)
			}
			loaded++
		}
	}

	log.Debugf("loaded %d prod environment variables", loaded)
	return nil
}

func parseLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
