package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/ougirez/wanderwise/internal/pkg/constants"
	"github.com/spf13/viper"
)

const envPrefix = "WANDERWISE"

func setDefaults() {
	viper.SetDefault(constants.ViperLogLevel, "info")
	viper.SetDefault(constants.ViperLogDevelopment, false)

	viper.SetDefault(constants.ViperHTTPAddr, ":8080")
	viper.SetDefault(constants.ViperHTTPCorsOrigins, []string{"http://localhost:3000"})

	viper.SetDefault(constants.ViperAirportsSource, "https://davidmegginson.github.io/ourairports-data/airports.csv")
	viper.SetDefault(constants.ViperCountryCostSource, "data/Cost_of_Living_Index_by_Country_2024.csv")
	viper.SetDefault(constants.ViperCityCostSource, "data/Cost_of_living_index_by_city.csv")
	viper.SetDefault(constants.ViperTemperatureSource, "data/avg_temp_cities.csv")

	viper.SetDefault(constants.ViperAdminReloadEnabled, false)

	viper.SetDefault(constants.ViperFetchMaxRetries, 5)
	viper.SetDefault(constants.ViperFetchRetryInterval, 2*time.Second)
	viper.SetDefault(constants.ViperFetchTimeout, time.Minute)

	viper.SetDefault(constants.ViperOutputCSVPath, "master_travel_data.csv")

	viper.SetDefault(constants.ViperNATSSubject, "catalog.published")

	viper.SetDefault(constants.ViperCatalogSource, constants.CatalogSourceCSV)

	viper.SetDefault(constants.ViperPricingDistanceAware, false)
}

// Load читает .env (если есть), config-файл и переменные окружения WANDERWISE_*.
// Пустой path означает поиск config.yaml в рабочей директории.
func Load(path string) error {
	_ = godotenv.Load()

	setDefaults()

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || path != "" {
			return fmt.Errorf("viper.ReadInConfig: %w", err)
		}
	}

	switch src := viper.GetString(constants.ViperCatalogSource); src {
	case constants.CatalogSourceCSV, constants.CatalogSourcePostgres:
	default:
		return fmt.Errorf("unknown catalog source %q", src)
	}

	if viper.GetString(constants.ViperCatalogSource) == constants.CatalogSourcePostgres &&
		viper.GetString(constants.ViperPostgresDSN) == "" {
		return fmt.Errorf("%s is required for catalog source %q", constants.ViperPostgresDSN, constants.CatalogSourcePostgres)
	}

	if viper.GetBool(constants.ViperAdminReloadEnabled) &&
		(viper.GetString(constants.ViperSecretKey) == "" || viper.GetString(constants.ViperJWTKey) == "") {
		return fmt.Errorf("%s and %s are required when %s is set",
			constants.ViperSecretKey, constants.ViperJWTKey, constants.ViperAdminReloadEnabled)
	}

	return nil
}
