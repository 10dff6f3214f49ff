package amtraker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/railstat/railstat/pkg/autotrain"
)

// ErrNoMatchingTrain covers every way a fetch can come back empty: the
// train is not currently active, or none of its reported instances belong
// to the requested service date (which includes dates in the future)
var ErrNoMatchingTrain = errors.New("no train instance matching the requested service date")

// The Amtraker API is fronted by cloudflare and rejects requests without a
// browser user agent
var httpHeaders = map[string]string{
	"User-Agent": "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/133.0.0.0 Safari/537.36",
	"Accept":     "application/json",
}

type Client struct {
	BaseURL  string
	Timezone *time.Location

	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration, timezone *time.Location) *Client {
	return &Client{
		BaseURL:  baseURL,
		Timezone: timezone,

		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchTrainStatus pulls the live status for a train number and returns the
// instance running on the given service date. The feed can report several
// instances of the same number at once, yesterday's arriving run alongside
// today's departing one
func (client *Client) FetchTrainStatus(ctx context.Context, trainNumber int, date string) (*autotrain.TrainStatusSnapshot, error) {
	requestURL := fmt.Sprintf("%s/trains/%d", client.BaseURL, trainNumber)

	req, err := http.NewRequestWithContext(ctx, "GET", requestURL, nil)
	if err != nil {
		return nil, err
	}
	for header, value := range httpHeaders {
		req.Header.Set(header, value)
	}

	resp, err := client.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch train %d: %w", trainNumber, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch train %d: unexpected status %d", trainNumber, resp.StatusCode)
	}

	instances, err := decodeTrainInstances(resp.Body, trainNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to decode train %d response: %w", trainNumber, err)
	}

	fetchedAt := time.Now().In(client.Timezone)

	for _, instance := range instances {
		if len(instance.Stations) == 0 {
			continue
		}

		snapshot := instance.toSnapshot(trainNumber, fetchedAt, client.Timezone)
		if snapshot.ServiceDate == date {
			return snapshot, nil
		}
	}

	return nil, fmt.Errorf("train %d on %s: %w", trainNumber, date, ErrNoMatchingTrain)
}

type trainInstance struct {
	RouteName string `json:"routeName"`
	TrainID   string `json:"trainID"`

	OrigCode string `json:"origCode"`
	DestCode string `json:"destCode"`

	Stations []trainStation `json:"stations"`
}

type trainStation struct {
	Code string `json:"code"`
	Name string `json:"name"`
	Tz   string `json:"tz"`

	SchArr string `json:"schArr"`
	SchDep string `json:"schDep"`
	Arr    string `json:"arr"`
	Dep    string `json:"dep"`

	Status string `json:"status"`
}

// The feed returns either an object keyed by train number or a bare list of
// train instances
func decodeTrainInstances(body io.Reader, trainNumber int) ([]trainInstance, error) {
	jsonBytes, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}

	var keyedInstances map[string][]trainInstance
	if err := json.Unmarshal(jsonBytes, &keyedInstances); err == nil {
		return keyedInstances[strconv.Itoa(trainNumber)], nil
	}

	var listedInstances []trainInstance
	if err := json.Unmarshal(jsonBytes, &listedInstances); err != nil {
		return nil, err
	}

	return listedInstances, nil
}

func (instance *trainInstance) toSnapshot(trainNumber int, fetchedAt time.Time, timezone *time.Location) *autotrain.TrainStatusSnapshot {
	snapshot := &autotrain.TrainStatusSnapshot{
		TrainNumber: trainNumber,
		RouteName:   instance.RouteName,
		TrainID:     instance.TrainID,

		FetchedAt: fetchedAt,
	}

	for _, station := range instance.Stations {
		stationTimezone := timezone
		if station.Tz != "" {
			if location, err := time.LoadLocation(station.Tz); err == nil {
				stationTimezone = location
			}
		}

		snapshot.Stations = append(snapshot.Stations, autotrain.StationEvent{
			Code:     station.Code,
			Name:     station.Name,
			Timezone: station.Tz,

			ScheduledArrival:   parseFeedTime(station.SchArr, stationTimezone),
			ScheduledDeparture: parseFeedTime(station.SchDep, stationTimezone),

			Arrival:   parseFeedTime(station.Arr, stationTimezone),
			Departure: parseFeedTime(station.Dep, stationTimezone),

			Status: station.Status,
		})
	}

	snapshot.ServiceDate = instance.serviceDate(snapshot, fetchedAt, timezone)

	return snapshot
}

// The service date comes from the scheduled departure at the origin
// station, falling back to the day of the fetch when the feed omits it
func (instance *trainInstance) serviceDate(snapshot *autotrain.TrainStatusSnapshot, fetchedAt time.Time, timezone *time.Location) string {
	origin := snapshot.Station(instance.OrigCode)
	if origin == nil && len(snapshot.Stations) > 0 {
		origin = &snapshot.Stations[0]
	}

	if origin != nil && origin.ScheduledDeparture != nil {
		return origin.ScheduledDeparture.Format(autotrain.DateFormat)
	}

	return fetchedAt.In(timezone).Format(autotrain.DateFormat)
}

var feedTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
}

func parseFeedTime(value string, timezone *time.Location) *time.Time {
	if value == "" {
		return nil
	}

	for _, layout := range feedTimeLayouts {
		if parsed, err := time.ParseInLocation(layout, value, timezone); err == nil {
			return &parsed
		}
	}

	return nil
}
