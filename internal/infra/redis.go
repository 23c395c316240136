package infra

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedis abre el cliente que respalda la cache de consulta de precios.
// Falla rapido si el servidor no responde; el que llama decide si Redis es
// opcional (el server arranca sin cache, la consulta va directo a la base).
func NewRedis(redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return rdb, nil
}
