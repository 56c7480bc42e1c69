package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/lotto-analyzer-poc/pkg/contracts/events"
)

// Cache guarda result sets já raspados, por (jogo, anos), evitando bater na
// fonte externa a cada requisição de análise.
type Cache struct{ R *redis.Client }

func New(r *redis.Client) *Cache { return &Cache{R: r} }

func keyResults(game string, years int) string {
	return fmt.Sprintf("lotto:results:%s:%d", game, years)
}

// GetResults retorna (true, nil) e preenche dst quando há cache para o jogo/período.
func (c *Cache) GetResults(ctx context.Context, game string, years int, dst *[]events.DrawResult) (bool, error) {
	b, err := c.R.Get(ctx, keyResults(game, years)).Bytes()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, json.Unmarshal(b, dst)
}

// SetResults grava o result set com TTL.
func (c *Cache) SetResults(ctx context.Context, game string, years int, v []events.DrawResult, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.R.Set(ctx, keyResults(game, years), b, ttl).Err()
}
