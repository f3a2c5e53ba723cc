package testutil

import "time"

// NowAt returns a clock function fixed at the provided time.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// NowAtMillis returns a clock fixed at epoch milliseconds ms, the unit feed timestamps use.
func NowAtMillis(ms int64) func() time.Time {
	return NowAt(time.UnixMilli(ms))
}
