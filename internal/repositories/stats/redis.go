package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/pokedex-web/internal/entities/pokedex"
	"github.com/KirkDiggler/pokedex-web/internal/errors"
	redisclient "github.com/KirkDiggler/pokedex-web/internal/redis"
)

const statsKeyPrefix = "stats:session:"

type redisRepository struct {
	client    redisclient.Client
	namespace string
	ttl       time.Duration
}

// RedisConfig contains configuration for the Redis stats repository.
type RedisConfig struct {
	Client redisclient.Client
	// Namespace scopes keys to one session
	Namespace string
	// TTL is refreshed on every read and write; zero keeps keys forever
	TTL time.Duration
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}

	vb := errors.NewValidationBuilder()
	if cfg.Client == nil {
		vb.RequiredField("Client")
	}
	if cfg.Namespace == "" {
		vb.RequiredField("Namespace")
	}
	if cfg.TTL < 0 {
		vb.InvalidField("TTL", "cannot be negative")
	}
	return vb.Build()
}

// NewRedis creates a Redis-backed stats repository scoped to one namespace
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client:    cfg.Client,
		namespace: cfg.Namespace,
		ttl:       cfg.TTL,
	}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	key := GetKey(r.namespace, input.Name)
	cmd := r.client.Get(ctx, key)
	if r.ttl > 0 {
		// a read keeps the entry alive as long as the session is in use
		cmd = r.client.GetEx(ctx, key, r.ttl)
	}
	result, err := cmd.Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("stats for %s not cached", input.Name)
		}
		return nil, errors.Wrapf(err, "failed to get stats for %s", input.Name)
	}

	var st pokedex.Stats
	if err := json.Unmarshal([]byte(result), &st); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal stats for %s", input.Name)
	}

	return &GetOutput{Name: input.Name, Stats: st}, nil
}

func (r *redisRepository) Put(ctx context.Context, input PutInput) (*PutOutput, error) {
	if input.Name == "" {
		return nil, errors.InvalidArgument(errNameEmpty)
	}

	data, err := json.Marshal(input.Stats)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal stats for %s", input.Name)
	}

	key := GetKey(r.namespace, input.Name)
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to cache stats for %s", input.Name)
	}

	return &PutOutput{}, nil
}

// GetKey returns the Redis key for an entry's stats within a namespace
// Exposed for testing purposes
func GetKey(namespace, name string) string {
	return fmt.Sprintf("%s%s:%s", statsKeyPrefix, namespace, name)
}
