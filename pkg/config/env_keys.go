package config

// EnvPrefix is passed to envconfig; individual fields carry fully qualified
// names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv  = "PROLINE_APP_ENV"
	EnvPort    = "PROLINE_APP_PORT"
	EnvDBDSN   = "PROLINE_DB_DSN"
	EnvDBHost  = "PROLINE_DB_HOST"
	EnvDBUser  = "PROLINE_DB_USER"
	EnvDBName  = "PROLINE_DB_NAME"
	EnvRedisURL = "PROLINE_REDIS_URL"

	EnvJWTSecret  = "PROLINE_JWT_SECRET"
	EnvJWTIssuer  = "PROLINE_JWT_ISSUER"
	EnvJWTExpMins = "PROLINE_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
