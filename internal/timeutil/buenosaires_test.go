package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthKeyUsesLocalZone(t *testing.T) {
	// 01:30 UTC on the 1st is still the previous month in Buenos Aires.
	utc := time.Date(2025, time.September, 1, 1, 30, 0, 0, time.UTC)
	assert.Equal(t, "2025-08", MonthKey(utc))

	local := time.Date(2025, time.September, 1, 12, 0, 0, 0, BuenosAires)
	assert.Equal(t, "2025-09", MonthKey(local))
}

func TestFormatDisplay(t *testing.T) {
	ts := time.Date(2025, time.August, 15, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, "15 Aug 2025, 15:30", FormatDisplay(ts))
}
