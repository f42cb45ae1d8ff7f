package database

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"pathlab/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const minRemoteKeyLength = 20

var defaultURLPatterns = map[string]string{
	"postgres": `supabase\.(co|com)`,
	"mongo":    `mongodb\.net`,
}

// RemoteConfigured reports whether the remote backend settings look usable.
// It is a heuristic on the URL and key shape, not a connectivity check.
func RemoteConfigured(cfg config.Config) bool {
	if cfg.RemoteURL == "" || len(cfg.RemoteKey) <= minRemoteKeyLength {
		return false
	}
	pattern := cfg.RemoteURLPattern
	if pattern == "" {
		pattern = defaultURLPatterns[strings.ToLower(cfg.RemoteDriver)]
	}
	if pattern == "" {
		return false
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(cfg.RemoteURL)
}

// InitPostgres opens a pgx pool. The remote key is used as the password.
func InitPostgres(ctx context.Context, url, key string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if key != "" {
		cfg.ConnConfig.Password = key
	}
	cfg.MaxConns = 10

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

// InitMongo connects and pings a MongoDB deployment.
func InitMongo(ctx context.Context, uri, key string) (*mongo.Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	if key != "" && !strings.Contains(uri, "@") {
		clientOptions.SetAuth(options.Credential{Username: "pathlab", Password: key})
	}
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("connect to MongoDB: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping MongoDB: %w", err)
	}
	return client, nil
}
