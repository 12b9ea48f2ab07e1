package config

// EnvPrefix namespaces every environment variable read by envconfig.
const EnvPrefix = "EATZY"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)
