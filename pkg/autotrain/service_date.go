package autotrain

import "time"

const DateFormat = "2006-01-02"

// PreviousServiceDate returns the most recently completed service day. The
// Auto Train departs mid-afternoon and arrives the following morning, so a
// run that started today has not finished yet
func PreviousServiceDate(now time.Time, location *time.Location) string {
	return now.In(location).AddDate(0, 0, -1).Format(DateFormat)
}
