package handler

import (
	"context"
	"net/http"

	"providerrisk/cmd/internal/contract"
	"providerrisk/cmd/internal/domain/entity"
	"providerrisk/cmd/internal/utils"
	"providerrisk/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type UserService interface {
	Register(ctx context.Context, req *contract.RegisterRequest) (*contract.UserResponse, apierror.ErrorResponse)
	Login(ctx context.Context, req *contract.LoginRequest) (*contract.TokenResponse, apierror.ErrorResponse)
	Profile(user *entity.User) *contract.UserResponse
}

type DefaultAuthRoute struct {
	UserService UserService
}

func NewAuthDefault(userService UserService) *DefaultAuthRoute {
	return &DefaultAuthRoute{UserService: userService}
}

func (a *DefaultAuthRoute) Register(c echo.Context) error {
	var req contract.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	user, apierr := a.UserService.Register(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, user)
}

// Login accepts either a JSON body or an OAuth2 password form.
func (a *DefaultAuthRoute) Login(c echo.Context) error {
	var req contract.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	token, apierr := a.UserService.Login(c.Request().Context(), &req)
	if apierr != nil {
		if apierr.Code() == http.StatusUnauthorized {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		}
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, token)
}

// Me returns the caller resolved by the auth middleware.
func (a *DefaultAuthRoute) Me(c echo.Context) error {
	user, apierr := utils.GetUserFromContext(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, a.UserService.Profile(user))
}
