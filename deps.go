package main

import (
	"os"
	"time"

	"github.com/gomodule/redigo/redis"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// Dependencies carries everything the pipeline stages share: logger, config,
// provider secrets, and the optional Redis pool for caching provider
// responses.
type Dependencies struct {
	logger    *zerolog.Logger
	config    *Config
	secrets   map[string]string
	redisPool *redis.Pool
}

// setupDependencies loads config and secrets and wires the Redis pool when
// one is configured. A missing .env file is fine; the variables may already
// be in the environment.
func setupDependencies(logger *zerolog.Logger, configPath string) (*Dependencies, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg("no .env file found, relying on environment")
	}

	config, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	deps := &Dependencies{
		logger:  logger,
		config:  config,
		secrets: loadSecrets(),
	}

	if config.RedisAddr != "" {
		deps.redisPool = &redis.Pool{
			MaxIdle:     3,
			IdleTimeout: 240 * time.Second,
			Dial: func() (redis.Conn, error) {
				return redis.Dial("tcp", config.RedisAddr)
			},
		}
	}

	return deps, nil
}

func loadSecrets() map[string]string {
	return map[string]string{
		"yhfinance_rapidapi_key":  os.Getenv("YHFINANCE_RAPIDAPI_KEY"),
		"yhfinance_rapidapi_host": os.Getenv("YHFINANCE_RAPIDAPI_HOST"),
	}
}
