package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/ougirez/wanderwise/internal/domain/reference"
	"github.com/ougirez/wanderwise/internal/pkg/config"
	"github.com/ougirez/wanderwise/internal/pkg/constants"
	"github.com/ougirez/wanderwise/internal/pkg/logger"
	"github.com/ougirez/wanderwise/internal/pkg/notify"
	"github.com/ougirez/wanderwise/internal/pkg/store"
	"github.com/ougirez/wanderwise/internal/pkg/store/xpgx"
	"github.com/ougirez/wanderwise/internal/service/catalog"
	"github.com/ougirez/wanderwise/internal/service/loader"
	"github.com/ougirez/wanderwise/internal/service/pipeline"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

func main() {
	configPath := pflag.StringP("config", "c", "", "path to config file")
	force := pflag.BoolP("force", "f", false, "rebuild even if sources did not change")
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

	if err := run(ctx, *force); err != nil {
		logger.Fatal(ctx, err)
	}
}

func run(ctx context.Context, force bool) error {
	tables := reference.Default()

	ld := loader.New(loader.Config{
		AirportsSource:    viper.GetString(constants.ViperAirportsSource),
		CountryCostSource: viper.GetString(constants.ViperCountryCostSource),
		CityCostSource:    viper.GetString(constants.ViperCityCostSource),
		TemperatureSource: viper.GetString(constants.ViperTemperatureSource),
		MaxRetries:        uint64(viper.GetInt(constants.ViperFetchMaxRetries)),
		RetryInterval:     viper.GetDuration(constants.ViperFetchRetryInterval),
		HTTPTimeout:       viper.GetDuration(constants.ViperFetchTimeout),
	})

	opts := []catalog.PublisherOption{catalog.WithArtifact(viper.GetString(constants.ViperOutputCSVPath))}

	if dsn := viper.GetString(constants.ViperPostgresDSN); dsn != "" {
		pool, err := xpgx.Connect(ctx, dsn)
		if err != nil {
			return err
		}
		defer pool.Close()

		s := store.NewStore(pool)
		if err = s.Migrate(ctx); err != nil {
			return err
		}
		opts = append(opts, catalog.WithStore(s))
	}

	nc, err := notify.Connect(ctx, viper.GetString(constants.ViperNATSURL))
	if err != nil {
		return err
	}
	if nc != nil {
		defer nc.Close()
		opts = append(opts, catalog.WithNotifier(nc, viper.GetString(constants.ViperNATSSubject)))
	}

	publisher := catalog.NewPublisher(opts...)

	src, err := ld.LoadAll(ctx)
	if err != nil {
		return err
	}

	version := pipeline.CatalogVersion(src.Version, tables.Version())
	current, err := publisher.CurrentVersion(ctx)
	if err != nil {
		return err
	}
	if current == version && !force {
		logger.Infof(ctx, "catalog %s is up to date, nothing to do", version)
		return nil
	}

	result, err := pipeline.New(tables, pipeline.NewCountryDirectory(tables)).Build(ctx, src)
	if err != nil {
		return err
	}

	if err = publisher.Publish(ctx, result.Report, result.Destinations); err != nil {
		return err
	}

	logger.Infof(ctx, "published catalog %s: %d destinations (%d resolved, %d dropped without cost basis)",
		result.Report.Version, result.Report.Published, result.Report.Resolved, result.Report.DroppedNoCost)

	return nil
}
