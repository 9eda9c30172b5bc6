package middleware

import (
	"context"
	"net/http"
	"strings"

	"providerrisk/cmd/internal/domain/entity"
	"providerrisk/cmd/internal/utils"
	"providerrisk/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*entity.User, apierror.ErrorResponse)
}

type AuthMiddlewareConfig struct {
	Authenticator Authenticator
}

// NewAuthMiddleware creates the handler with dependencies injected
func NewAuthMiddleware(cfg *AuthMiddlewareConfig) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return unauthorized(c, apierror.UnauthorizedError)
			}

			user, apierr := cfg.Authenticator.Authenticate(c.Request().Context(), token)
			if apierr != nil {
				return unauthorized(c, apierr)
			}

			c.Set(utils.ContextUserKey, user)
			return next(c)
		}
	}
}

func unauthorized(c echo.Context, apierr apierror.ErrorResponse) error {
	if apierr.Code() == http.StatusUnauthorized {
		c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
	}
	return c.JSON(apierr.Code(), apierr)
}

// bearerToken extracts the credentials of an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}
