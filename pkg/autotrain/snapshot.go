package autotrain

import "time"

// TrainStatusSnapshot is a single train instance as reported by the status
// feed at one moment in time
type TrainStatusSnapshot struct {
	TrainNumber int
	RouteName   string
	TrainID     string

	ServiceDate string
	FetchedAt   time.Time

	Stations []StationEvent
}

// StationEvent carries the feed times for one stop. The feed merges actual
// and estimated times into a single value per event, so Arrival and
// Departure hold whichever of the two the feed last reported
type StationEvent struct {
	Code     string
	Name     string
	Timezone string

	ScheduledArrival   *time.Time
	ScheduledDeparture *time.Time

	Arrival   *time.Time
	Departure *time.Time

	Status string
}

func (snapshot *TrainStatusSnapshot) Station(code string) *StationEvent {
	for index, station := range snapshot.Stations {
		if station.Code == code {
			return &snapshot.Stations[index]
		}
	}

	return nil
}
