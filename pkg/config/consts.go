package config

const (
	// EnvPrefix is passed to envconfig; individual fields carry the full
	// variable name so the prefix stays empty.
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvCatalogBaseURL = "PEDILOYA_CATALOG_BASE_URL"
)
