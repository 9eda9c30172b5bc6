package handler

import (
	"net/http"

	"providerrisk/cmd/internal/contract"

	"github.com/labstack/echo/v4"
)

const welcomeMessage = "The provider risk API is up and running!"

func Welcome(c echo.Context) error {
	return c.JSON(http.StatusOK, &contract.WelcomeResponse{Message: welcomeMessage})
}

// HealthCheck backs the Docker Compose healthcheck.
func HealthCheck(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}
