package config

import "os"

type AppConfig struct {
	DebugMode      bool
	ExecutorConfig *ExecutorConfig
	RedisConfig    *RedisConfig
	PostgresConfig *PostgresConfig
	JwtConfig      *JwtConfig
	ServerConfig   *ServerConfig
	LogConfig      *LogConfig
}

func NewSystemConfig() *AppConfig {
	return &AppConfig{
		DebugMode:      os.Getenv("DEBUG_MODE") == "true",
		ExecutorConfig: NewExecutorConfig(),
		RedisConfig:    NewRedisConfig(),
		PostgresConfig: NewPostgresConfig(),
		JwtConfig:      NewJwtConfig(),
		ServerConfig:   NewServerConfig(),
		LogConfig:      NewLogConfig(),
	}
}
