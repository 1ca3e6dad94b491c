package config

// EnvPrefix is passed to envconfig; individual fields carry fully-qualified
// names so the prefix stays empty here.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv                 = "FOODCONNECT_APP_ENV"
	EnvPort                   = "FOODCONNECT_APP_PORT"
	EnvDBDSN                  = "FOODCONNECT_DB_DSN"
	EnvDBHost                 = "FOODCONNECT_DB_HOST"
	EnvDBUser                 = "FOODCONNECT_DB_USER"
	EnvDBName                 = "FOODCONNECT_DB_NAME"
	EnvRedisURL               = "FOODCONNECT_REDIS_URL"
	EnvJWTSecret              = "FOODCONNECT_JWT_SECRET"
	EnvJWTIssuer              = "FOODCONNECT_JWT_ISSUER"
	EnvJWTExpMins             = "FOODCONNECT_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "FOODCONNECT_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
