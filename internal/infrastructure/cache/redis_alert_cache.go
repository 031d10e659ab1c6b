// Package cache implementa la caché de alertas de stock bajo sobre Redis.
//
// Las claves incluyen un contador global y uno por empresa; invalidar es un INCR del
// contador, así las entradas viejas quedan huérfanas y expiran solas por TTL.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/ports"
	"github.com/jhoicas/stockflow-api/pkg/config"
)

var _ ports.AlertCache = (*RedisAlertCache)(nil)

const globalVersionKey = "alerts:low-stock:version"

func companyVersionKey(companyID int64) string {
	return fmt.Sprintf("alerts:low-stock:company:%d:version", companyID)
}

// entryKey clave de una respuesta cacheada para las versiones dadas.
func entryKey(global, company string, companyID int64, days int) string {
	return fmt.Sprintf("alerts:low-stock:g%s:c%d:v%s:d%d", global, companyID, company, days)
}

// NewRedisClient abre el cliente y verifica la conexión con PING.
func NewRedisClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// RedisAlertCache implementa ports.AlertCache. Los errores de Redis se registran y se ignoran.
type RedisAlertCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisAlertCache construye la caché. ttl <= 0 usa 30s.
func NewRedisAlertCache(rdb *redis.Client, ttl time.Duration) *RedisAlertCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &RedisAlertCache{rdb: rdb, ttl: ttl}
}

func (c *RedisAlertCache) key(ctx context.Context, companyID int64, days int) (string, error) {
	vals, err := c.rdb.MGet(ctx, globalVersionKey, companyVersionKey(companyID)).Result()
	if err != nil {
		return "", err
	}
	version := func(v any) string {
		if s, ok := v.(string); ok {
			return s
		}
		return "0"
	}
	return entryKey(version(vals[0]), version(vals[1]), companyID, days), nil
}

// Get devuelve la clave calculada con las versiones leídas ahora, haya acierto o no.
// Si no se pudieron leer las versiones la clave es vacía y Set no guarda nada.
func (c *RedisAlertCache) Get(ctx context.Context, companyID int64, days int) (*dto.LowStockAlertsResponse, string, bool) {
	key, err := c.key(ctx, companyID, days)
	if err != nil {
		log.Warn().Err(err).Int64("company_id", companyID).Msg("cache de alertas: leer versiones")
		return nil, "", false
	}
	data, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Warn().Err(err).Str("key", key).Msg("cache de alertas: GET")
		}
		return nil, key, false
	}
	var resp dto.LowStockAlertsResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache de alertas: entrada corrupta")
		return nil, key, false
	}
	return &resp, key, true
}

// Set guarda bajo la clave que devolvió Get; no relee las versiones.
func (c *RedisAlertCache) Set(ctx context.Context, key string, resp *dto.LowStockAlertsResponse) {
	if key == "" {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		log.Warn().Err(err).Msg("cache de alertas: serializar")
		return
	}
	if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache de alertas: SET")
	}
}

func (c *RedisAlertCache) InvalidateCompany(ctx context.Context, companyID int64) {
	if err := c.rdb.Incr(ctx, companyVersionKey(companyID)).Err(); err != nil {
		log.Warn().Err(err).Int64("company_id", companyID).Msg("cache de alertas: invalidar empresa")
	}
}

func (c *RedisAlertCache) InvalidateAll(ctx context.Context) {
	if err := c.rdb.Incr(ctx, globalVersionKey).Err(); err != nil {
		log.Warn().Err(err).Msg("cache de alertas: invalidar todo")
	}
}
