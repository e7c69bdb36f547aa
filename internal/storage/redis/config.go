package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// TTL settings for different entity types
	GameTTL        time.Duration
	MatchmakingTTL time.Duration
	PresenceTTL    time.Duration
	WordCacheTTL   time.Duration

	// MaxTxRetries bounds optimistic-transaction retries on contention
	MaxTxRetries int
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:            "redis://localhost:6379",
		PoolSize:       10,
		MinIdleConns:   2,
		GameTTL:        7 * 24 * time.Hour,
		MatchmakingTTL: time.Hour,
		PresenceTTL:    5 * time.Minute,
		WordCacheTTL:   24 * time.Hour,
		MaxTxRetries:   5,
	}
}
