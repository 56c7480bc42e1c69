package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/lotto-analyzer-poc/pkg/contracts/events"
)

// RedisCache mantém o sorteio mais recente de cada jogo no Redis
// Client: cliente Redis
// TTL: tempo de expiração dos registros
type RedisCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisCache cria uma instância de cache Redis com TTL configurável
func NewRedisCache(c *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{Client: c, TTL: ttl}
}

// key gera a chave Redis do sorteio mais recente de um jogo
func key(game string) string { return "lotto:draw:latest:" + game }

// SetLatest grava o sorteio como mais recente do jogo, apenas quando for de
// fato mais novo que o registro atual (o backfill reprocessa anos inteiros
// fora de ordem).
func (r *RedisCache) SetLatest(ctx context.Context, d events.DrawResult) error {
	if cur, err := r.Client.Get(ctx, key(d.GameType)).Bytes(); err == nil {
		var existing events.DrawResult
		if json.Unmarshal(cur, &existing) == nil && existing.DrawDate.After(d.DrawDate) {
			return nil
		}
	}

	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return r.Client.Set(ctx, key(d.GameType), b, r.TTL).Err()
}
