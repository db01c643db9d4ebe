package config

import "strings"

// ExportsConfig controls where the admin export writes CSV reports.
type ExportsConfig struct {
	Sink          string
	Dir           string
	RetentionDays int
	S3            S3Config
}

// S3Config describes an S3-compatible bucket (AWS, R2, MinIO).
type S3Config struct {
	Bucket          string
	Prefix          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
}

func loadExports() ExportsConfig {
	return ExportsConfig{
		Sink:          strings.ToLower(envOrDefault(envExportSink, defaultExportSink)),
		Dir:           envOrDefault(envExportDir, defaultExportDir),
		RetentionDays: intEnvOrDefault(envExportRetention, defaultExportRetention),
		S3: S3Config{
			Bucket:          envOrDefault(envS3Bucket, ""),
			Prefix:          envOrDefault(envS3Prefix, ""),
			Region:          envOrDefault(envS3Region, ""),
			Endpoint:        envOrDefault(envS3Endpoint, ""),
			AccessKeyID:     envOrDefault(envS3AccessKey, ""),
			SecretAccessKey: envOrDefault(envS3SecretKey, ""),
			PublicBaseURL:   envOrDefault(envS3PublicURL, ""),
		},
	}
}
