package session

import (
	"time"

	redisclient "github.com/KirkDiggler/pokedex-web/internal/redis"
	"github.com/KirkDiggler/pokedex-web/internal/repositories/stats"
)

// StatsFactory builds the stat repository backing one session's cache
type StatsFactory func(sessionID string) (stats.Repository, error)

// MemoryStats keeps each session's stats in process memory
func MemoryStats() StatsFactory {
	return func(string) (stats.Repository, error) {
		return stats.NewInMemory(), nil
	}
}

// RedisStats keeps each session's stats in Redis under the session id.
// Keys expire after ttl without writes, matching the session idle timeout.
func RedisStats(client redisclient.Client, ttl time.Duration) StatsFactory {
	return func(sessionID string) (stats.Repository, error) {
		return stats.NewRedis(&stats.RedisConfig{
			Client:    client,
			Namespace: sessionID,
			TTL:       ttl,
		})
	}
}
