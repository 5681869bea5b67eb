package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ougirez/wanderwise/internal/api"
	"github.com/ougirez/wanderwise/internal/domain/reference"
	"github.com/ougirez/wanderwise/internal/pkg/config"
	"github.com/ougirez/wanderwise/internal/pkg/constants"
	"github.com/ougirez/wanderwise/internal/pkg/logger"
	"github.com/ougirez/wanderwise/internal/pkg/notify"
	"github.com/ougirez/wanderwise/internal/pkg/store"
	"github.com/ougirez/wanderwise/internal/pkg/store/xpgx"
	"github.com/ougirez/wanderwise/internal/service/catalog"
	"github.com/ougirez/wanderwise/internal/service/trip"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to config file")
	pflag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// до чтения конфига пишем с уровнем по умолчанию
	_ = logger.Init("info", false)

	if err := config.Load(*configPath); err != nil {
		logger.Fatal(ctx, err)
	}
	if err := logger.Init(viper.GetString(constants.ViperLogLevel), viper.GetBool(constants.ViperLogDevelopment)); err != nil {
		logger.Fatal(ctx, err)
	}
	defer logger.Sync()

	var source catalog.Source
	switch viper.GetString(constants.ViperCatalogSource) {
	case constants.CatalogSourcePostgres:
		pool, err := xpgx.Connect(ctx, viper.GetString(constants.ViperPostgresDSN))
		if err != nil {
			logger.Fatal(ctx, err)
		}
		defer pool.Close()
		source = catalog.StoreSource(store.NewStore(pool))
	default:
		source = catalog.CSVSource(viper.GetString(constants.ViperOutputCSVPath))
	}

	holder := catalog.NewHolder()
	reload := func(ctx context.Context) (bool, error) {
		return catalog.Reload(ctx, holder, source)
	}

	// без каталога сервис поднимается, но отвечает 503 до первой успешной загрузки
	if _, err := reload(ctx); err != nil {
		logger.Errorf(ctx, "initial catalog load: %s", err.Error())
	}

	nc, err := notify.Connect(ctx, viper.GetString(constants.ViperNATSURL))
	if err != nil {
		logger.Fatal(ctx, err)
	}
	if nc != nil {
		defer nc.Close()
		subject := viper.GetString(constants.ViperNATSSubject)
		if _, err = notify.Subscribe(ctx, nc, subject, func(ctx context.Context, version string) {
			logger.Infof(ctx, "catalog %s published, reloading", version)
			if _, err := reload(ctx); err != nil {
				logger.Errorf(ctx, "reload catalog: %s", err.Error())
			}
		}); err != nil {
			logger.Fatal(ctx, err)
		}
	}

	tables := reference.Default()
	engine := trip.New(tables, viper.GetBool(constants.ViperPricingDistanceAware))
	svc := api.NewAPIService(holder, engine, tables, reload)

	go svc.Serve(viper.GetString(constants.ViperHTTPAddr))

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := svc.Shutdown(shutdownCtx); err != nil {
		logger.Errorf(shutdownCtx, "shutdown: %s", err.Error())
	}
}
