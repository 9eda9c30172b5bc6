package handler

import (
	"context"
	"net/http"

	"providerrisk/cmd/internal/contract"
	"providerrisk/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

type CompanyService interface {
	CreateCompany(ctx context.Context, req *contract.CreateCompanyRequest) (*contract.CompanyResponse, apierror.ErrorResponse)
	ListCompanies(ctx context.Context, page contract.PageParams, query string) (*contract.PageResponse[*contract.CompanyResponse], apierror.ErrorResponse)
	GetCompany(ctx context.Context, id string) (*contract.CompanyResponse, apierror.ErrorResponse)
	UpdateCompany(ctx context.Context, id string, req *contract.UpdateCompanyRequest) (*contract.CompanyResponse, apierror.ErrorResponse)
	DeleteCompany(ctx context.Context, id string) apierror.ErrorResponse
}

type DefaultCompanyRoute struct {
	CompanyService CompanyService
}

func NewCompanyDefault(companyService CompanyService) *DefaultCompanyRoute {
	return &DefaultCompanyRoute{CompanyService: companyService}
}

func (r *DefaultCompanyRoute) CreateCompany(c echo.Context) error {
	var req contract.CreateCompanyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	company, apierr := r.CompanyService.CreateCompany(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusCreated, company)
}

// GetCompanies supports ?page=&page_size=&q= where q filters by name.
func (r *DefaultCompanyRoute) GetCompanies(c echo.Context) error {
	page, apierr := pageParams(c)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	companies, apierr := r.CompanyService.ListCompanies(c.Request().Context(), page, c.QueryParam("q"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, companies)
}

func (r *DefaultCompanyRoute) GetCompany(c echo.Context) error {
	company, apierr := r.CompanyService.GetCompany(c.Request().Context(), c.Param("id"))
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, company)
}

func (r *DefaultCompanyRoute) UpdateCompany(c echo.Context) error {
	var req contract.UpdateCompanyRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedJSONError)
	}

	company, apierr := r.CompanyService.UpdateCompany(c.Request().Context(), c.Param("id"), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.JSON(http.StatusOK, company)
}

func (r *DefaultCompanyRoute) DeleteCompany(c echo.Context) error {
	if apierr := r.CompanyService.DeleteCompany(c.Request().Context(), c.Param("id")); apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}
	return c.NoContent(http.StatusNoContent)
}
