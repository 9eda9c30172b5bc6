package handler

import (
	"context"
	"net/http"

	"providerrisk/cmd/internal/contract"
	"providerrisk/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type RequestService interface {
	CreateRequest(ctx context.Context, req *contract.CreateRequestRequest) (*contract.RequestResponse, apierror.ErrorResponse)
	ListRequests(ctx context.Context, page contract.PageParams, filter contract.RequestFilter) (*contract.PageResponse[*contract.RequestResponse], apierror.ErrorResponse)
	GetRequest(ctx context.Context, id string) (*contract.RequestResponse, apierror.ErrorResponse)
	UpdateRequest(ctx context.Context, id string, req *contract.UpdateRequestRequest) (*contract.RequestResponse, apierror.ErrorResponse)
	DeleteRequest(ctx context.Context, id string) apierror.ErrorResponse
}

type DefaultRequestRoute struct {
	RequestService RequestService
}

func NewRequestDefault(requestService RequestService) *DefaultRequestRoute {
	return &DefaultRequestRoute{RequestService: requestService}
}

func (r *DefaultRequestRoute) CreateRequest(c echo.Context) error {
	var req contract.CreateRequestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	request, apierr := r.RequestService.CreateRequest(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, request)
}

// GetRequests supports ?page=&page_size=&q=&status=&risk_min=&risk_max=,
// q filters by company name.
func (r *DefaultRequestRoute) GetRequests(c echo.Context) error {
	page, apierr := pageParams(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	riskMin, apierr := queryInt(c, "risk_min")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	riskMax, apierr := queryInt(c, "risk_max")
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	filter := contract.RequestFilter{
		Query:   c.QueryParam("q"),
		Status:  c.QueryParam("status"),
		RiskMin: riskMin,
		RiskMax: riskMax,
	}

	requests, apierr := r.RequestService.ListRequests(c.Request().Context(), page, filter)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, requests)
}

func (r *DefaultRequestRoute) GetRequest(c echo.Context) error {
	request, apierr := r.RequestService.GetRequest(c.Request().Context(), c.Param("id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, request)
}

func (r *DefaultRequestRoute) UpdateRequest(c echo.Context) error {
	var req contract.UpdateRequestRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	request, apierr := r.RequestService.UpdateRequest(c.Request().Context(), c.Param("id"), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, request)
}

func (r *DefaultRequestRoute) DeleteRequest(c echo.Context) error {
	if apierr := r.RequestService.DeleteRequest(c.Request().Context(), c.Param("id")); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}
