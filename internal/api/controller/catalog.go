package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/wanderwise/internal/domain/dto"
)

func (c *Controller) ReloadCatalog(ctx echo.Context) error {
	reloaded, err := c.reload(ctx.Request().Context())
	if err != nil {
		return err
	}

	table, err := c.holder.Current()
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dto.ReloadResponse{
		CatalogVersion: table.Version(),
		Reloaded:       reloaded,
	})
}
