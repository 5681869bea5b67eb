package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/wanderwise/internal/domain"
	"github.com/ougirez/wanderwise/internal/domain/dto"
	"github.com/ougirez/wanderwise/internal/pkg/logger"
	"github.com/ougirez/wanderwise/internal/service/trip"
	"github.com/shopspring/decimal"
)

func (c *Controller) FindTrips(ctx echo.Context) error {
	var req dto.FindTripsRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	style, err := c.resolveStyle(req.Style)
	if err != nil {
		return err
	}

	q := trip.Query{
		Mode:      trip.ModeFind,
		Origin:    req.Origin,
		Travelers: req.Travelers,
		Style:     style,
		Days:      req.Days,
		Budget:    decimal.NewFromFloat(req.Budget),
		Filters:   filtersFromRequest(req.Filters),
		SortBy:    trip.SortBy(req.SortBy),
		Limit:     req.Limit,
	}

	return c.runTrips(ctx, q)
}

func (c *Controller) MaximizeDays(ctx echo.Context) error {
	var req dto.MaximizeDaysRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	style, err := c.resolveStyle(req.Style)
	if err != nil {
		return err
	}

	q := trip.Query{
		Mode:        trip.ModeMaximize,
		Origin:      req.Origin,
		Travelers:   req.Travelers,
		Style:       style,
		Budget:      decimal.NewFromFloat(req.Budget),
		Destination: req.Destination,
	}

	return c.runTrips(ctx, q)
}

func (c *Controller) PriceTrip(ctx echo.Context) error {
	var req dto.PriceTripRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}

	style, err := c.resolveStyle(req.Style)
	if err != nil {
		return err
	}

	q := trip.Query{
		Mode:        trip.ModePrice,
		Origin:      req.Origin,
		Travelers:   req.Travelers,
		Style:       style,
		Days:        req.Days,
		Destination: req.Destination,
	}

	return c.runTrips(ctx, q)
}

func (c *Controller) runTrips(ctx echo.Context, q trip.Query) error {
	table, err := c.holder.Current()
	if err != nil {
		return err
	}

	quotes, err := c.engine.Run(table, q)
	if err != nil {
		return err
	}

	logger.Debugf(ctx.Request().Context(), "trips %s: %d quotes", q.Mode, len(quotes))

	return ctx.JSON(http.StatusOK, dto.TripsResponse{
		Mode:           string(q.Mode),
		CatalogVersion: table.Version(),
		Quotes:         quotes,
	})
}

func (c *Controller) resolveStyle(req dto.StyleRequest) (trip.Style, error) {
	return c.engine.ResolveStyle(domain.SpendingStyle(req.Spending), req.FlightClass, req.Accommodation, req.Activity)
}

func filtersFromRequest(req dto.FiltersRequest) trip.Filters {
	f := trip.Filters{
		Activities: req.Activities,
		MinSafety:  req.MinSafety,
	}
	for _, r := range req.Regions {
		f.Regions = append(f.Regions, domain.Region(r))
	}
	for _, w := range req.Weather {
		f.Weather = append(f.Weather, domain.WeatherCategory(w))
	}
	return f
}
