package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/yatrik/yatrik/pkg/database"
	"github.com/yatrik/yatrik/pkg/erp"
	"github.com/yatrik/yatrik/pkg/util"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	defaultBatchSize      = 50
	defaultMaxConcurrency = 4
	insertRetries         = 2
)

type SinkConfig struct {
	BatchSize      int
	MaxConcurrency int
}

// BatchError records one batch that failed to persist after retries. The
// run continues past it; the summary surfaces it.
type BatchError struct {
	BatchIndex int
	FirstTrip  int
	LastTrip   int
	Err        error
}

// Sink replaces the generated trips for a horizon's date range. Deleting the
// previous "scheduled" trips first makes a full-horizon rerun idempotent.
type Sink struct {
	Config SinkConfig
}

func NewSink(config SinkConfig) *Sink {
	if config.BatchSize <= 0 {
		config.BatchSize = defaultBatchSize
	}
	if config.MaxConcurrency <= 0 {
		config.MaxConcurrency = defaultMaxConcurrency
	}

	return &Sink{Config: config}
}

// Replace deletes the horizon's previously generated trips and inserts the
// new set in bounded-concurrency batches. Individual batch failures are
// collected, not fatal.
func (s *Sink) Replace(ctx context.Context, trips []erp.Trip, startDate time.Time, days int) (int, []BatchError, error) {
	tripsCollection := database.GetCollection("trips")

	startDate = util.TruncateToDay(startDate)
	endDate := startDate.AddDate(0, 0, days)

	deleteResult, err := tripsCollection.DeleteMany(ctx, bson.M{
		"servicedate": bson.M{"$gte": startDate, "$lt": endDate},
		"status":      erp.TripStatusScheduled,
	})
	if err != nil {
		return 0, nil, err
	}

	log.Info().
		Int64("deleted", deleteResult.DeletedCount).
		Str("from", util.ISODate(startDate)).
		Str("until", util.ISODate(endDate)).
		Msg("Cleared previously scheduled trips")

	var resultsMutex sync.Mutex
	insertedCount := 0
	var batchErrors []BatchError

	p := pool.New().WithMaxGoroutines(s.Config.MaxConcurrency)

	for batchIndex, firstTrip := 0, 0; firstTrip < len(trips); batchIndex, firstTrip = batchIndex+1, firstTrip+s.Config.BatchSize {
		lastTrip := firstTrip + s.Config.BatchSize
		if lastTrip > len(trips) {
			lastTrip = len(trips)
		}

		batchIndex := batchIndex
		firstTrip := firstTrip
		batch := trips[firstTrip:lastTrip]

		p.Go(func() {
			documents := make([]interface{}, len(batch))
			for i := range batch {
				documents[i] = batch[i]
			}

			retryBackoff := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), insertRetries)
			err := backoff.Retry(func() error {
				_, err := tripsCollection.InsertMany(ctx, documents, options.InsertMany().SetOrdered(false))
				return err
			}, backoff.WithContext(retryBackoff, ctx))

			resultsMutex.Lock()
			defer resultsMutex.Unlock()

			if err != nil {
				log.Error().Err(err).Int("batch", batchIndex).Msg("Failed to insert trip batch")

				batchErrors = append(batchErrors, BatchError{
					BatchIndex: batchIndex,
					FirstTrip:  firstTrip,
					LastTrip:   lastTrip - 1,
					Err:        err,
				})
				return
			}

			insertedCount += len(batch)
		})
	}

	p.Wait()

	return insertedCount, batchErrors, nil
}
