package redis_client

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/yatrik/yatrik/pkg/util"
)

var Client *redis.Client

const defaultDatabase = 0

// Connect sets up the Redis client used for the scheduler run lock. Redis is
// optional unless required - without it runs proceed unlocked.
func Connect(required bool) error {
	env := util.GetEnvironmentVariables()

	if env["YATRIK_REDIS_ADDRESS"] == "" && !required {
		log.Info().Msg("Skipping Redis setup")
		return nil
	} else if env["YATRIK_REDIS_ADDRESS"] == "" && required {
		log.Fatal().Msg("Redis configuration not set")
	}

	database := defaultDatabase

	if env["YATRIK_REDIS_DATABASE"] != "" {
		if n, err := strconv.Atoi(env["YATRIK_REDIS_DATABASE"]); err == nil {
			database = n
		} else {
			return err
		}
	}

	Client = redis.NewClient(&redis.Options{
		Addr:     env["YATRIK_REDIS_ADDRESS"],
		Password: env["YATRIK_REDIS_PASSWORD"],
		DB:       database,
	})

	statusCmd := Client.Ping(context.Background())

	return statusCmd.Err()
}
