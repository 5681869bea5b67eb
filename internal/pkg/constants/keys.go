package constants

const (
	CookieKeySecretToken = "secret_token"

	ViperLogLevel       = "log.level"
	ViperLogDevelopment = "log.development"

	ViperHTTPAddr        = "http.addr"
	ViperHTTPCorsOrigins = "http.cors_origins"

	ViperAdminReloadEnabled = "admin.reload_enabled"
	ViperSecretKey          = "admin.secret"
	ViperJWTKey             = "admin.jwt_key"

	ViperAirportsSource    = "sources.airports"
	ViperCountryCostSource = "sources.country_cost_of_living"
	ViperCityCostSource    = "sources.city_cost_of_living"
	ViperTemperatureSource = "sources.temperatures"

	ViperFetchMaxRetries    = "fetch.max_retries"
	ViperFetchRetryInterval = "fetch.retry_interval"
	ViperFetchTimeout       = "fetch.timeout"

	ViperOutputCSVPath = "output.csv_path"

	ViperPostgresDSN = "postgres.dsn"

	ViperNATSURL     = "nats.url"
	ViperNATSSubject = "nats.subject"

	ViperCatalogSource = "catalog.source"

	ViperPricingDistanceAware = "pricing.distance_aware"
)

const (
	CatalogSourceCSV      = "csv"
	CatalogSourcePostgres = "postgres"
)
