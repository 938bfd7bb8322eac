// Package cartstore guarda el carrito de cada sesión de caja.
package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/fertipos-api/internal/application/sales"
	"github.com/jhoicas/fertipos-api/internal/domain/pos"
	"github.com/jhoicas/fertipos-api/pkg/config"
)

const defaultKeyPrefix = "fertipos:cart:"

var _ sales.CartStore = (*RedisStore)(nil)

// RedisStore carritos compartidos entre instancias de la API. Cada Save renueva el TTL.
type RedisStore struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisStore conecta con Redis y verifica la conexión.
func NewRedisStore(ctx context.Context, cfg config.RedisConfig, ttl time.Duration) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("conectar redis: %w", err)
	}
	return NewRedisStoreWithClient(client, "", ttl), nil
}

// NewRedisStoreWithClient usa un cliente existente. keyPrefix vacío = "fertipos:cart:".
func NewRedisStoreWithClient(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisStore {
	if keyPrefix == "" {
		keyPrefix = defaultKeyPrefix
	}
	return &RedisStore{client: client, keyPrefix: keyPrefix, ttl: ttl}
}

// Load lee el carrito de la sesión. Un valor que no decodifica se borra y
// cuenta como carrito inexistente.
func (s *RedisStore) Load(ctx context.Context, key string) (pos.State, bool, error) {
	raw, err := s.client.Get(ctx, s.keyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return pos.State{}, false, nil
		}
		return pos.State{}, false, fmt.Errorf("leer carrito: %w", err)
	}
	st, err := decodeState(raw)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("carrito en redis ilegible, se descarta")
		if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("no se pudo borrar el carrito ilegible")
		}
		return pos.State{}, false, nil
	}
	return st, true, nil
}

func decodeState(raw []byte) (pos.State, error) {
	var st pos.State
	if err := json.Unmarshal(raw, &st); err != nil {
		return pos.State{}, fmt.Errorf("decodificar carrito: %w", err)
	}
	return st, nil
}

// Save guarda el carrito con el TTL configurado.
func (s *RedisStore) Save(ctx context.Context, key string, st pos.State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("codificar carrito: %w", err)
	}
	if err := s.client.Set(ctx, s.keyPrefix+key, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("guardar carrito: %w", err)
	}
	return nil
}

// Delete elimina el carrito de la sesión.
func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("borrar carrito: %w", err)
	}
	return nil
}

// Ping verifica la conexión (health check).
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close cierra el cliente.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
