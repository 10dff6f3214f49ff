package amtraker

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const keyedTrain53Response = `{
	"53": [
		{
			"routeName": "Auto Train",
			"trainID": "53-10",
			"origCode": "LOR",
			"destCode": "SFA",
			"stations": [
				{
					"code": "LOR",
					"name": "Lorton",
					"tz": "America/New_York",
					"schArr": "2026-02-10T15:30:00-05:00",
					"schDep": "2026-02-10T16:00:00-05:00",
					"arr": "",
					"dep": "2026-02-10T16:00:00-05:00",
					"status": "Departed"
				},
				{
					"code": "SFA",
					"name": "Sanford",
					"tz": "America/New_York",
					"schArr": "2026-02-11T08:00:00-05:00",
					"schDep": "",
					"arr": "2026-02-11T08:17:00-05:00",
					"dep": "",
					"status": "Station"
				}
			]
		}
	]
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	return NewClient(server.URL, 15*time.Second, newYork)
}

func TestFetchTrainStatusKeyedResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trains/53", r.URL.Path)
		assert.Contains(t, r.Header.Get("User-Agent"), "Mozilla/5.0")
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		fmt.Fprint(w, keyedTrain53Response)
	})

	snapshot, err := client.FetchTrainStatus(context.Background(), 53, "2026-02-10")
	require.NoError(t, err)

	assert.Equal(t, 53, snapshot.TrainNumber)
	assert.Equal(t, "Auto Train", snapshot.RouteName)
	assert.Equal(t, "2026-02-10", snapshot.ServiceDate)
	require.Len(t, snapshot.Stations, 2)

	lorton := snapshot.Station("LOR")
	require.NotNil(t, lorton)
	require.NotNil(t, lorton.ScheduledDeparture)
	require.NotNil(t, lorton.Departure)
	assert.Nil(t, lorton.Arrival)
	assert.Equal(t, "Departed", lorton.Status)

	sanford := snapshot.Station("SFA")
	require.NotNil(t, sanford)
	require.NotNil(t, sanford.ScheduledArrival)
	require.NotNil(t, sanford.Arrival)
	assert.Equal(t, 17.0, sanford.Arrival.Sub(*sanford.ScheduledArrival).Minutes())
}

func TestFetchTrainStatusListResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{
				"routeName": "Auto Train",
				"origCode": "LOR",
				"stations": [
					{"code": "LOR", "tz": "America/New_York", "schDep": "2026-02-10T16:00:00-05:00"},
					{"code": "SFA", "tz": "America/New_York", "schArr": "2026-02-11T08:00:00-05:00"}
				]
			}
		]`)
	})

	snapshot, err := client.FetchTrainStatus(context.Background(), 53, "2026-02-10")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-10", snapshot.ServiceDate)
}

func TestFetchTrainStatusWrongDate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, keyedTrain53Response)
	})

	// A date in the future can never match a live instance
	_, err := client.FetchTrainStatus(context.Background(), 53, "2026-03-01")
	assert.ErrorIs(t, err, ErrNoMatchingTrain)
}

func TestFetchTrainStatusInactiveTrain(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{}`)
	})

	_, err := client.FetchTrainStatus(context.Background(), 53, "2026-02-10")
	assert.ErrorIs(t, err, ErrNoMatchingTrain)
}

func TestFetchTrainStatusMalformedResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>upstream error page</html>`)
	})

	_, err := client.FetchTrainStatus(context.Background(), 53, "2026-02-10")
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNoMatchingTrain))
}

func TestFetchTrainStatusUpstreamFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := client.FetchTrainStatus(context.Background(), 53, "2026-02-10")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unexpected status 502")
}

func TestFetchTrainStatusSelectsInstanceByServiceDate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"52": [
				{
					"routeName": "Auto Train",
					"origCode": "SFA",
					"stations": [
						{"code": "SFA", "tz": "America/New_York", "schDep": "2026-02-09T16:00:00-05:00"},
						{"code": "LOR", "tz": "America/New_York", "schArr": "2026-02-10T09:00:00-05:00"}
					]
				},
				{
					"routeName": "Auto Train",
					"origCode": "SFA",
					"stations": [
						{"code": "SFA", "tz": "America/New_York", "schDep": "2026-02-10T16:00:00-05:00"},
						{"code": "LOR", "tz": "America/New_York", "schArr": "2026-02-11T09:00:00-05:00"}
					]
				}
			]
		}`)
	})

	snapshot, err := client.FetchTrainStatus(context.Background(), 52, "2026-02-10")
	require.NoError(t, err)
	assert.Equal(t, "2026-02-10", snapshot.ServiceDate)

	sanford := snapshot.Station("SFA")
	require.NotNil(t, sanford)
	require.NotNil(t, sanford.ScheduledDeparture)
	assert.Equal(t, 16, sanford.ScheduledDeparture.Hour())
}

func TestParseFeedTime(t *testing.T) {
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	testCases := []struct {
		name  string
		value string
		want  *time.Time
	}{
		{
			name:  "with offset",
			value: "2026-02-10T16:00:00-05:00",
			want:  timePointer(time.Date(2026, 2, 10, 16, 0, 0, 0, time.FixedZone("", -5*60*60))),
		},
		{
			name:  "naive",
			value: "2026-02-10T16:00:00",
			want:  timePointer(time.Date(2026, 2, 10, 16, 0, 0, 0, newYork)),
		},
		{
			name:  "fractional seconds",
			value: "2026-02-10T16:00:00.500000-05:00",
			want:  timePointer(time.Date(2026, 2, 10, 16, 0, 0, 500000000, time.FixedZone("", -5*60*60))),
		},
		{
			name:  "empty",
			value: "",
			want:  nil,
		},
		{
			name:  "garbage",
			value: "tomorrow-ish",
			want:  nil,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			parsed := parseFeedTime(testCase.value, newYork)

			if testCase.want == nil {
				assert.Nil(t, parsed)
				return
			}

			require.NotNil(t, parsed)
			assert.True(t, parsed.Equal(*testCase.want))
		})
	}
}

func timePointer(value time.Time) *time.Time {
	return &value
}

func TestFetchTrainStatusNaiveTimestamps(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"53": [
				{
					"routeName": "Auto Train",
					"origCode": "LOR",
					"stations": [
						{"code": "LOR", "tz": "America/New_York", "schDep": "2026-02-10T16:00:00"}
					]
				}
			]
		}`)
	})

	snapshot, err := client.FetchTrainStatus(context.Background(), 53, "2026-02-10")
	require.NoError(t, err)

	lorton := snapshot.Station("LOR")
	require.NotNil(t, lorton)
	require.NotNil(t, lorton.ScheduledDeparture)
	assert.Equal(t, "America/New_York", lorton.ScheduledDeparture.Location().String())
}
