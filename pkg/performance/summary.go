package performance

import (
	"sort"

	"github.com/railstat/railstat/pkg/autotrain"
	"golang.org/x/exp/maps"
)

type DirectionSummary struct {
	TrainNumber int    `groups:"basic"`
	Origin      string `groups:"basic"`
	Destination string `groups:"basic"`

	Runs             int `groups:"basic"`
	RecordedArrivals int `groups:"basic"`
	OnTimeArrivals   int `groups:"basic"`

	OnTimePercentage float64 `groups:"basic"`

	MeanArrivalDelayMinutes float64 `groups:"basic"`
	MaxArrivalDelayMinutes  int     `groups:"basic"`

	MeanDepartureDelayMinutes float64 `groups:"basic"`
}

// Summarise aggregates the historical table per direction. Directions with
// no recorded runs yet still get a summary so both halves of the route
// always show up
func Summarise(records []autotrain.DelayRecord, directions []autotrain.Direction) []DirectionSummary {
	groupedRecords := map[int][]autotrain.DelayRecord{}
	for _, direction := range directions {
		groupedRecords[direction.TrainNumber] = []autotrain.DelayRecord{}
	}
	for _, record := range records {
		groupedRecords[record.TrainNumber] = append(groupedRecords[record.TrainNumber], record)
	}

	trainNumbers := maps.Keys(groupedRecords)
	sort.Ints(trainNumbers)

	summaries := []DirectionSummary{}
	for _, trainNumber := range trainNumbers {
		summaries = append(summaries, summariseDirection(trainNumber, groupedRecords[trainNumber]))
	}

	return summaries
}

func summariseDirection(trainNumber int, records []autotrain.DelayRecord) DirectionSummary {
	summary := DirectionSummary{
		TrainNumber: trainNumber,
		Runs:        len(records),
	}

	if direction := autotrain.DirectionForTrain(trainNumber); direction != nil {
		summary.Origin = direction.Origin.Code
		summary.Destination = direction.Destination.Code
	} else if len(records) > 0 {
		summary.Origin = records[0].Origin
		summary.Destination = records[0].Destination
	}

	arrivalDelayTotal := 0
	departureDelayTotal := 0
	recordedDepartures := 0

	for _, record := range records {
		if record.ArrivalDelayMinutes != nil {
			summary.RecordedArrivals += 1
			arrivalDelayTotal += *record.ArrivalDelayMinutes

			if summary.RecordedArrivals == 1 || *record.ArrivalDelayMinutes > summary.MaxArrivalDelayMinutes {
				summary.MaxArrivalDelayMinutes = *record.ArrivalDelayMinutes
			}
		}

		if record.OnTimeArrival {
			summary.OnTimeArrivals += 1
		}

		if record.DepartureDelayMinutes != nil {
			recordedDepartures += 1
			departureDelayTotal += *record.DepartureDelayMinutes
		}
	}

	if summary.RecordedArrivals > 0 {
		summary.OnTimePercentage = float64(summary.OnTimeArrivals) / float64(summary.RecordedArrivals) * 100
		summary.MeanArrivalDelayMinutes = float64(arrivalDelayTotal) / float64(summary.RecordedArrivals)
	}
	if recordedDepartures > 0 {
		summary.MeanDepartureDelayMinutes = float64(departureDelayTotal) / float64(recordedDepartures)
	}

	return summary
}
