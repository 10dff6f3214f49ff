package collector

import (
	"context"

	"github.com/railstat/railstat/pkg/autotrain"
	"github.com/railstat/railstat/pkg/delays"
	"github.com/railstat/railstat/pkg/util"
	"github.com/rs/zerolog/log"
)

type StatusFetcher interface {
	FetchTrainStatus(ctx context.Context, trainNumber int, date string) (*autotrain.TrainStatusSnapshot, error)
}

type RecordStore interface {
	Upsert(record autotrain.DelayRecord) error
}

// Collector drives one collection pass over the status feed. All of its
// collaborators arrive through the struct so runs against a fake feed or a
// throwaway store need no special setup
type Collector struct {
	Fetcher    StatusFetcher
	Store      RecordStore
	Directions []autotrain.Direction

	OnTimeGraceMinutes int
}

type RunSummary struct {
	Recorded int
	Skipped  int
}

// Run fetches and records every requested date for every direction. A
// failure on one (date, train) pair only skips that pair, a failure in the
// store aborts the whole run. There are no retries, a pair that failed is
// picked up again by the next scheduled run
func (collector *Collector) Run(ctx context.Context, dates []string) (RunSummary, error) {
	summary := RunSummary{}

	for _, date := range util.RemoveDuplicateStrings(dates, []string{}) {
		for _, direction := range collector.Directions {
			pairLogger := log.With().
				Int("train", direction.TrainNumber).
				Str("date", date).
				Logger()

			snapshot, err := collector.Fetcher.FetchTrainStatus(ctx, direction.TrainNumber, date)
			if err != nil {
				pairLogger.Warn().Err(err).Msg("Skipping, no usable train status")
				summary.Skipped += 1

				continue
			}

			record, err := delays.Calculate(snapshot, direction, delays.Options{
				OnTimeGraceMinutes: collector.OnTimeGraceMinutes,
			})
			if err != nil {
				pairLogger.Warn().Err(err).Msg("Skipping, could not calculate delays")
				summary.Skipped += 1

				continue
			}

			if err := collector.Store.Upsert(*record); err != nil {
				return summary, err
			}

			summary.Recorded += 1

			recordedEvent := pairLogger.Info().
				Str("route", snapshot.RouteName).
				Bool("ontime", record.OnTimeArrival)
			if record.ArrivalDelayMinutes != nil {
				recordedEvent = recordedEvent.Int("arrivaldelay", *record.ArrivalDelayMinutes)
			}
			recordedEvent.Msg("Recorded delay metrics")
		}
	}

	return summary, nil
}
