package usecase

import "time"

const day = 24 * time.Hour

var periodOffsets = map[string]time.Duration{
	"1d":  1 * day,
	"5d":  5 * day,
	"1mo": 30 * day,
	"3mo": 90 * day,
	"6mo": 180 * day,
	"1y":  365 * day,
	"2y":  730 * day,
	"5y":  1825 * day,
}

// epoch is where the "max" period starts.
var epoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// StartDate maps a period token to the first instant of the window ending at
// now. Unknown tokens fall back to one month.
func StartDate(period string, now time.Time) time.Time {
	if period == "max" {
		return epoch
	}
	offset, ok := periodOffsets[period]
	if !ok {
		offset = periodOffsets["1mo"]
	}
	return now.Add(-offset)
}

// GetStartDate is StartDate anchored to the wall clock.
func GetStartDate(period string) time.Time {
	return StartDate(period, time.Now())
}
