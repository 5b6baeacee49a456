package cache

import (
	"context"
	"fmt"
	"net"
	"time"

	"go-hospital-encounter/config"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const pingTimeout = 5 * time.Second

// NewRedisClient connects to the cache used for medicine search results and
// token revocation. The client is closed again when the first ping fails.
func NewRedisClient(cfg config.RedisConfig, log *logrus.Logger) (*redis.Client, error) {
	addr := net.JoinHostPort(cfg.Host, cfg.Port)
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}

	log.WithFields(logrus.Fields{"addr": addr, "db": cfg.DB}).Info("Successfully connected to Redis")

	return client, nil
}
