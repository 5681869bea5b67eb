package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/wanderwise/internal/domain"
	"github.com/ougirez/wanderwise/internal/domain/dto"
)

func (c *Controller) ListDestinations(ctx echo.Context) error {
	var req dto.ListDestinationsRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	table, err := c.holder.Current()
	if err != nil {
		return err
	}

	destinations := make([]*domain.Destination, 0, table.Len())
	for _, d := range table.All() {
		if req.Region != "" && string(d.Region) != req.Region {
			continue
		}
		destinations = append(destinations, d)
	}

	total := len(destinations)
	if req.Limit > 0 && len(destinations) > req.Limit {
		destinations = destinations[:req.Limit]
	}

	return ctx.JSON(http.StatusOK, dto.DestinationsResponse{
		CatalogVersion: table.Version(),
		Total:          total,
		Destinations:   destinations,
	})
}

func (c *Controller) GetDestination(ctx echo.Context) error {
	table, err := c.holder.Current()
	if err != nil {
		return err
	}

	d, err := table.Lookup(ctx.Param("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, d)
}

func (c *Controller) GetStyleTiers(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, c.tables.Tiers().Copy())
}
