package config

import "time"

type RedisConfig struct {
	DB       int
	Url      string
	Password string
	// ResultTTL of zero disables the result cache
	ResultTTL time.Duration
}

func NewRedisConfig() *RedisConfig {
	return &RedisConfig{
		DB:        getIntEnv("REDIS_DB", 0),
		Url:       getEnv("REDIS_ADDR", ""),
		Password:  getEnv("REDIS_PASSWORD", ""),
		ResultTTL: time.Duration(getIntEnv("RESULT_CACHE_TTL_SEC", 3600)) * time.Second,
	}
}

func (c *RedisConfig) Enabled() bool {
	return c.Url != "" && c.ResultTTL > 0
}
