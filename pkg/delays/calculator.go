package delays

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/railstat/railstat/pkg/autotrain"
)

var ErrIncompleteSchedule = errors.New("snapshot does not cover both endpoint stations")

type Options struct {
	// Largest arrival delay in minutes still counted as on time
	OnTimeGraceMinutes int
}

// Calculate reduces a train status snapshot to the delay metrics for one
// direction of the route. It never reaches outside the snapshot, so racing
// feed updates and clock changes cannot affect an in-flight calculation
func Calculate(snapshot *autotrain.TrainStatusSnapshot, direction autotrain.Direction, options Options) (*autotrain.DelayRecord, error) {
	origin := snapshot.Station(direction.Origin.Code)
	destination := snapshot.Station(direction.Destination.Code)

	if origin == nil || destination == nil {
		return nil, fmt.Errorf("train %d on %s: %w", direction.TrainNumber, snapshot.ServiceDate, ErrIncompleteSchedule)
	}

	record := &autotrain.DelayRecord{
		Date:        snapshot.ServiceDate,
		TrainNumber: direction.TrainNumber,

		Origin:      direction.Origin.Code,
		Destination: direction.Destination.Code,

		ScheduledArrival:    destination.ScheduledArrival,
		ActualArrival:       destination.Arrival,
		ArrivalDelayMinutes: delayMinutes(destination.ScheduledArrival, destination.Arrival),

		ScheduledDeparture:    origin.ScheduledDeparture,
		ActualDeparture:       origin.Departure,
		DepartureDelayMinutes: delayMinutes(origin.ScheduledDeparture, origin.Departure),

		FetchedAt: snapshot.FetchedAt,
	}

	record.OnTimeArrival = record.ArrivalDelayMinutes != nil && *record.ArrivalDelayMinutes <= options.OnTimeGraceMinutes

	return record, nil
}

// delayMinutes rounds to the nearest whole minute. Negative values mean the
// train ran early
func delayMinutes(scheduled *time.Time, actual *time.Time) *int {
	if scheduled == nil || actual == nil {
		return nil
	}

	minutes := int(math.Round(actual.Sub(*scheduled).Minutes()))

	return &minutes
}
