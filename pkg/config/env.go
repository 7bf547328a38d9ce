package config

const EnvPrefix = "CARDFINDERZ"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv              = "CARDFINDERZ_APP_ENV"
	EnvPort                = "CARDFINDERZ_APP_PORT"
	EnvLogLevel            = "CARDFINDERZ_LOG_LEVEL"
	EnvCatalogBaseURL      = "CARDFINDERZ_CATALOG_BASE_URL"
	EnvCatalogAPIKey       = "CARDFINDERZ_CATALOG_API_KEY"
	EnvCatalogTimeout      = "CARDFINDERZ_CATALOG_TIMEOUT"
	EnvRedisURL            = "CARDFINDERZ_REDIS_URL"
	EnvDefaultCurrency     = "CARDFINDERZ_DEFAULT_CURRENCY"
	EnvDefaultExchangeRate = "CARDFINDERZ_DEFAULT_EXCHANGE_RATE"
	EnvExchangeRateMin     = "CARDFINDERZ_EXCHANGE_RATE_MIN"
	EnvExchangeRateMax     = "CARDFINDERZ_EXCHANGE_RATE_MAX"
)
