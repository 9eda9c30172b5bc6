package handler

import (
	"strconv"
	"strings"

	"providerrisk/cmd/internal/contract"
	"providerrisk/cmd/internal/utils/apierror"

	"github.com/labstack/echo/v4"
)

// queryInt reads an optional integer query parameter.
func queryInt(c echo.Context, name string) (*int, apierror.ErrorResponse) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apierror.NewInvalidParamTypeError(name, "int")
	}
	return &val, nil
}

func pageParams(c echo.Context) (contract.PageParams, apierror.ErrorResponse) {
	params := contract.PageParams{Page: 1, PageSize: contract.DefaultPageSize}

	page, apierr := queryInt(c, "page")
	if apierr != nil {
		return params, apierr
	}

	size, apierr := queryInt(c, "page_size")
	if apierr != nil {
		return params, apierr
	}

	if page != nil {
		params.Page = *page
	}

	if size != nil {
		params.PageSize = *size
	}
	return params, nil
}
