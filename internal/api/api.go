package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/ougirez/wanderwise/internal/api/controller"
	"github.com/ougirez/wanderwise/internal/domain/reference"
	"github.com/ougirez/wanderwise/internal/pkg/constants"
	"github.com/ougirez/wanderwise/internal/pkg/logger"
	"github.com/ougirez/wanderwise/internal/service/catalog"
	"github.com/ougirez/wanderwise/internal/service/trip"
	"github.com/spf13/viper"
)

type APIService struct {
	router *echo.Echo
}

func (svc *APIService) Serve(addr string) {
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal(context.Background(), err)
	}
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

// Handler - для тестов через httptest.
func (svc *APIService) Handler() http.Handler {
	return svc.router
}

func NewAPIService(holder *catalog.Holder, engine *trip.Engine, tables *reference.Tables, reload controller.ReloadFunc) *APIService {
	svc := &APIService{router: echo.New()}

	svc.router.HideBanner = true
	svc.router.Logger.SetLevel(logLevel(viper.GetString(constants.ViperLogLevel)))
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.JSONSerializer = jsonSerializer{}
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(middleware.Recover())
	svc.router.Use(middleware.Logger())
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: viper.GetStringSlice(constants.ViperHTTPCorsOrigins),
		AllowMethods: []string{echo.GET, echo.POST},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	api := svc.router.Group("/api/v1")
	cntrl := controller.NewController(holder, engine, tables, reload)

	destinations := api.Group("/destinations")
	destinations.GET("", cntrl.ListDestinations)
	destinations.GET("/:id", cntrl.GetDestination)

	trips := api.Group("/trips")
	trips.POST("/find", cntrl.FindTrips)
	trips.POST("/maximize", cntrl.MaximizeDays)
	trips.POST("/price", cntrl.PriceTrip)

	api.GET("/reference/tiers", cntrl.GetStyleTiers)

	if viper.GetBool(constants.ViperAdminReloadEnabled) {
		admin := api.Group("/catalog", svc.AdminMiddleware)
		admin.POST("/reload", cntrl.ReloadCatalog)
	}

	return svc
}

func logLevel(level string) log.Lvl {
	switch level {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	default:
		return log.INFO
	}
}
