package main

import (
	"github.com/ideahub/ideahub-backend/utils"
)

type AppConfiguration struct {
	env                  string
	port                 string
	attachmentsBucketUrl string
	pgConfig             utils.PGConfig
}

func loadConfiguration() AppConfiguration {
	return AppConfiguration{
		env:                  utils.GetStringEnv("ENV", "development"),
		port:                 utils.GetRequiredStringEnv("PORT"),
		attachmentsBucketUrl: utils.GetRequiredStringEnv("ATTACHMENTS_BUCKET_URL"),
		pgConfig: utils.PGConfig{
			Hostname:         utils.GetStringEnv("PG_HOSTNAME", "localhost"),
			Port:             utils.GetStringEnv("PG_PORT", "5432"),
			User:             utils.GetStringEnv("PG_USER", "postgres"),
			Password:         utils.GetStringEnv("PG_PASSWORD", ""),
			Database:         utils.GetStringEnv("PG_DATABASE", "ideahub"),
			ConnectionString: utils.GetStringEnv("PG_CONNECTION_STRING", ""),
			MaxPoolSize:      utils.GetIntEnv("PG_MAX_POOL_SIZE", 20),
		},
	}
}
