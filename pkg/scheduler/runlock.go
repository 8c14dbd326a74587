package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/yatrik/yatrik/pkg/redis_client"
)

const runLockKey = "yatrik:scheduler:runlock"

// acquireRunLock takes the Redis run lock so two horizon runs cannot
// interleave their delete-then-insert windows. Without Redis configured the
// run proceeds unlocked.
func acquireRunLock(ctx context.Context, ttl time.Duration) (func(), error) {
	if redis_client.Client == nil {
		log.Debug().Msg("Redis not configured, running without run lock")
		return func() {}, nil
	}

	acquired, err := redis_client.Client.SetNX(ctx, runLockKey, time.Now().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return nil, err
	}

	if !acquired {
		return nil, ErrRunInProgress
	}

	release := func() {
		if err := redis_client.Client.Del(context.Background(), runLockKey).Err(); err != nil {
			log.Error().Err(err).Msg("Failed to release run lock")
		}
	}

	return release, nil
}
