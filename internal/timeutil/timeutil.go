package timeutil

import "time"

// ISOLayout is the timestamp format exposed on snapshots and view models.
const ISOLayout = "2006-01-02T15:04:05.000Z07:00"

// FromMillis converts epoch milliseconds to a UTC time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// ISOFromMillis renders epoch milliseconds as an ISO-8601 UTC string. Zero yields "".
func ISOFromMillis(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return FromMillis(ms).Format(ISOLayout)
}
