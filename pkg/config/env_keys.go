package config

// EnvPrefix namespaces every environment variable read by Load.
const EnvPrefix = "QUICKWISH"

const (
	AppEnvDev   = "dev"
	AppEnvStage = "stage"
	AppEnvProd  = "prod"
)

const (
	EnvAppEnv                 = "QUICKWISH_APP_ENV"
	EnvPort                   = "QUICKWISH_APP_PORT"
	EnvDBDSN                  = "QUICKWISH_DB_DSN"
	EnvDBHost                 = "QUICKWISH_DB_HOST"
	EnvDBUser                 = "QUICKWISH_DB_USER"
	EnvDBName                 = "QUICKWISH_DB_NAME"
	EnvRedisURL               = "QUICKWISH_REDIS_URL"
	EnvJWTSecret              = "QUICKWISH_JWT_SECRET"
	EnvJWTIssuer              = "QUICKWISH_JWT_ISSUER"
	EnvJWTExpMins             = "QUICKWISH_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "QUICKWISH_REFRESH_TOKEN_TTL_MINUTES"
	EnvGCPProjectID           = "QUICKWISH_GCP_PROJECT_ID"
	EnvPubSubDomainTopic      = "QUICKWISH_PUBSUB_DOMAIN_TOPIC"
	EnvPubSubNotificationSub  = "QUICKWISH_PUBSUB_NOTIFICATION_SUBSCRIPTION"
	EnvPubSubAnalyticsSub     = "QUICKWISH_PUBSUB_ANALYTICS_SUBSCRIPTION"
)

// legacyDBEnvVars are required when no full DSN is provided.
var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
