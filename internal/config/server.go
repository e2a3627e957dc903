package config

type ServerConfig struct {
	Port             int
	ServiceName      string
	BatchConcurrency int
}

func NewServerConfig() *ServerConfig {
	concurrency := getIntEnv("BATCH_CONCURRENCY", 4)
	if concurrency < 1 {
		concurrency = 1
	}
	return &ServerConfig{
		Port:             getIntEnv("HTTP_PORT", 8082),
		ServiceName:      getEnv("SERVICE_NAME", "codejudge"),
		BatchConcurrency: concurrency,
	}
}
