package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/wanderwise/internal/domain"
	"github.com/ougirez/wanderwise/internal/pkg/constants"
	"github.com/ougirez/wanderwise/internal/pkg/logger"
)

func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	msg := err.Error()
	code := http.StatusInternalServerError

	var (
		coded   *constants.CodedError
		httpErr *echo.HTTPError
	)
	switch {
	case errors.As(err, &coded):
		code = coded.Code()
	case errors.As(err, &httpErr):
		code = httpErr.Code
		if m, ok := httpErr.Message.(string); ok {
			msg = m
		}
	}

	if code >= http.StatusInternalServerError {
		logger.Errorf(c.Request().Context(), "%s %s: %s", c.Request().Method, c.Path(), err.Error())
	}

	_ = c.JSON(code, domain.ErrorResponse{
		Message: msg,
		Code:    code,
	})
}
