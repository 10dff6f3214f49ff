package util

import (
	"time"
)

func FormatOptionalTime(value *time.Time, layout string) string {
	if value == nil {
		return ""
	}

	return value.Format(layout)
}
