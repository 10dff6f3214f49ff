package autotrain

import (
	"fmt"
	"time"
)

// DelayRecord is one row of the historical status table: the delay metrics
// for a single train on a single service day. Pointer fields stay nil when
// the feed never reported the underlying time, which is not the same thing
// as a delay of zero
type DelayRecord struct {
	Date        string `csv:"date" groups:"basic"`
	TrainNumber int    `csv:"train_number" groups:"basic"`

	Origin      string `csv:"origin" groups:"basic"`
	Destination string `csv:"destination" groups:"basic"`

	ScheduledArrival    *time.Time `csv:"scheduled_arrival,omitempty" groups:"basic"`
	ActualArrival       *time.Time `csv:"actual_arrival,omitempty" groups:"basic"`
	ArrivalDelayMinutes *int       `csv:"arrival_delay_minutes,omitempty" groups:"basic"`

	ScheduledDeparture    *time.Time `csv:"scheduled_departure,omitempty" groups:"basic"`
	ActualDeparture       *time.Time `csv:"actual_departure,omitempty" groups:"basic"`
	DepartureDelayMinutes *int       `csv:"departure_delay_minutes,omitempty" groups:"basic"`

	OnTimeArrival bool `csv:"on_time_arrival" groups:"basic"`

	FetchedAt time.Time `csv:"fetched_at" groups:"internal"`
}

func (record *DelayRecord) Key() string {
	return RecordKey(record.Date, record.TrainNumber)
}

func RecordKey(date string, trainNumber int) string {
	return fmt.Sprintf("%s:%d", date, trainNumber)
}
