// Package router assembles the echo instance serving the API.
package router

import (
	"providerrisk/cmd/internal/http/handler"
	"providerrisk/cmd/internal/http/middleware"
	"providerrisk/cmd/internal/infrastructure/metrics"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

const defaultBodyLimit = "1M"

type Config struct {
	Companies     *handler.DefaultCompanyRoute
	Requests      *handler.DefaultRequestRoute
	Auth          *handler.DefaultAuthRoute
	Authenticator middleware.Authenticator

	// Metrics is optional, nil disables both collection and /metrics.
	Metrics   *metrics.Metrics
	BodyLimit string
}

func New(cfg Config) *echo.Echo {
	if cfg.BodyLimit == "" {
		cfg.BodyLimit = defaultBodyLimit
	}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())
	e.Use(echomw.BodyLimit(cfg.BodyLimit))

	if cfg.Metrics != nil {
		e.Use(middleware.NewMetricsMiddleware(cfg.Metrics))
		e.GET("/metrics", echo.WrapHandler(cfg.Metrics.Handler()))
	}

	e.GET("/", handler.Welcome)
	// Docker Compose healthcheck
	e.GET("/health", handler.HealthCheck)

	// Auth
	e.POST("/auth/register", cfg.Auth.Register)
	e.POST("/auth/login", cfg.Auth.Login)

	requireAuth := middleware.NewAuthMiddleware(&middleware.AuthMiddlewareConfig{
		Authenticator: cfg.Authenticator,
	})
	e.GET("/auth/me", cfg.Auth.Me, requireAuth)

	// Companies
	companies := e.Group("/companies", requireAuth)
	companies.POST("", cfg.Companies.CreateCompany)
	companies.GET("", cfg.Companies.GetCompanies)
	companies.GET("/:id", cfg.Companies.GetCompany)
	companies.PUT("/:id", cfg.Companies.UpdateCompany)
	companies.PATCH("/:id", cfg.Companies.UpdateCompany)
	companies.DELETE("/:id", cfg.Companies.DeleteCompany)

	// Requests
	requests := e.Group("/requests", requireAuth)
	requests.POST("", cfg.Requests.CreateRequest)
	requests.GET("", cfg.Requests.GetRequests)
	requests.GET("/:id", cfg.Requests.GetRequest)
	requests.PUT("/:id", cfg.Requests.UpdateRequest)
	requests.PATCH("/:id", cfg.Requests.UpdateRequest)
	requests.DELETE("/:id", cfg.Requests.DeleteRequest)

	return e
}
