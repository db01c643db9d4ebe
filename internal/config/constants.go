package config

import "time"

const (
	envPort           = "PORT"
	envSyncInterval   = "SYNC_INTERVAL"
	envAdminToken     = "ADMIN_TOKEN"
	envAllowedOrigins = "CORS_ALLOWED_ORIGINS"
	envLogLevel       = "LOG_LEVEL"
	envLogFormat      = "LOG_FORMAT"

	envStoreBackend = "STORE_BACKEND"
	envDatabaseURL  = "DATABASE_URL"
	envNatsURL      = "NATS_URL"
	envNatsSubject  = "NATS_SUBJECT"

	envRulesFile   = "ROSTER_RULES_FILE"
	envSeedFile    = "SEED_FILE"
	envSeedEnabled = "SEED_ENABLED"

	envExportSink      = "EXPORT_SINK"
	envExportDir       = "EXPORT_DIR"
	envExportRetention = "EXPORT_RETENTION_DAYS"
	envS3Bucket        = "S3_BUCKET"
	envS3Prefix        = "S3_PREFIX"
	envS3Region        = "S3_REGION"
	envS3Endpoint      = "S3_ENDPOINT"
	envS3AccessKey     = "S3_ACCESS_KEY_ID"
	envS3SecretKey     = "S3_SECRET_ACCESS_KEY"
	envS3PublicURL     = "S3_PUBLIC_BASE_URL"

	envMetricsPort  = "METRICS_PORT"
	envMetricsOn    = "METRICS_ENABLED"
	envOtelEndpoint = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService  = "OTEL_SERVICE_NAME"
	envOtelInsecure = "OTEL_EXPORTER_OTLP_INSECURE"

	defaultPort = "4000"
	// Re-list cadence; store subscriptions deliver changes in between.
	defaultSyncInterval = Duration(time.Minute)
	defaultLogLevel     = "info"
	defaultLogFormat    = "json"

	defaultStoreBackend = BackendMemory
	defaultNatsSubject  = "equipment.roster.changed"

	defaultSeedEnabled = true

	defaultExportSink      = SinkFS
	defaultExportDir       = "data/exports"
	defaultExportRetention = 30

	defaultMetricsPort = "9090"
	defaultServiceName = "equipment-tracker"
)

// Store backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Export sinks. SinkNone disables exports.
const (
	SinkFS   = "fs"
	SinkS3   = "s3"
	SinkNone = "none"
)
