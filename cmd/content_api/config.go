package main

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/pleygg/content-api/internal/search/es"
	"github.com/pleygg/content-api/internal/storage/pg"
	"github.com/pleygg/content-api/pkg/config/env"
	"github.com/pleygg/content-api/pkg/stringsutil"
)

type AppConfig struct {
	ENV string
}

func NewAppConfig() *AppConfig {
	return &AppConfig{
		ENV: os.Getenv("ENV"),
	}
}

type ContentAPIConfig struct {
	Pool          pg.PoolConfig
	Search        es.ClientConfig
	RedisURL      string
	BuildQueueKey string
	ReconcileKey  string
	PolicyPath    string
}

func (as *AppConfig) Load() (*ContentAPIConfig, error) {
	err := env.LoadDotEnv(as.ENV, "cmd/content_api/.env")
	if err != nil {
		slog.Info("Failed to .env load environment variables, continuing with existing environment variables", "error", err)
	}

	connStr := os.Getenv("PG_CONN_STRING")
	if connStr == "" {
		return nil, errors.New("PG_CONN_STRING is required")
	}

	addresses := splitCSV(os.Getenv("ES_ADDRESSES"))
	if len(addresses) == 0 {
		return nil, errors.New("ES_ADDRESSES is required")
	}

	indexName := os.Getenv("ES_INDEX")
	if indexName == "" {
		indexName = "articles"
	}

	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		return nil, errors.New("REDIS_URL is required")
	}

	policyPath := os.Getenv("POLICY_PATH")
	if policyPath == "" {
		return nil, errors.New("POLICY_PATH is required")
	}

	return &ContentAPIConfig{
		Pool: pg.PoolConfig{ConnStr: connStr},
		Search: es.ClientConfig{
			Addresses: addresses,
			IndexName: indexName,
			Username:  os.Getenv("ES_USERNAME"),
			Password:  os.Getenv("ES_PASSWORD"),
		},
		RedisURL:      redisURL,
		BuildQueueKey: os.Getenv("BUILD_QUEUE_KEY"),
		ReconcileKey:  os.Getenv("RECONCILE_KEY"),
		PolicyPath:    policyPath,
	}, nil
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return stringsutil.RemoveEmptyStrings(parts)
}
