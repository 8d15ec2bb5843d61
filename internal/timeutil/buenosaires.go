package timeutil

import (
	"time"
)

// BuenosAires is the residence's wall-clock zone (UTC-3, no DST).
var BuenosAires *time.Location

func init() {
	var err error
	BuenosAires, err = time.LoadLocation("America/Argentina/Buenos_Aires")
	if err != nil {
		// Fallback: fixed zone if the tzdata entry is not available
		BuenosAires = time.FixedZone("-03", -3*60*60)
	}
}

// Now returns the current time in Buenos Aires.
func Now() time.Time {
	return time.Now().In(BuenosAires)
}

// MonthKey formats a time as the "YYYY-MM" key used by the monthly rate
// history table.
func MonthKey(t time.Time) string {
	return t.In(BuenosAires).Format("2006-01")
}

// FormatDisplay renders a timestamp the way receipts and reports print it.
func FormatDisplay(t time.Time) string {
	return t.In(BuenosAires).Format("02 Jan 2006, 15:04")
}
