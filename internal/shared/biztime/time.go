// Package biztime computes business-day boundaries. Storage and transport use UTC;
// the workshop timezone is only consulted to find where a calendar day starts and ends.
package biztime

import (
	"fmt"
	"sync"
	"time"
)

// DefaultTimezone is the workshop timezone used when none is configured.
const DefaultTimezone = "Europe/Belgrade"

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the business timezone. Should be called once at startup.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
		if initErr != nil {
			bizLocation = time.UTC
		}
	})
	return initErr
}

// Location returns the business timezone, initializing the default on first use.
func Location() *time.Location {
	_ = Init("")
	return bizLocation
}

func NowUTC() time.Time {
	return time.Now().UTC()
}

// DayBoundsUTC returns [start, end) of the business day containing t, in UTC.
func DayBoundsUTC(t time.Time) (time.Time, time.Time) {
	local := t.In(Location())
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, Location())
	return start.UTC(), start.AddDate(0, 0, 1).UTC()
}

// ParseDate parses YYYY-MM-DD as business-timezone midnight and returns it in UTC.
func ParseDate(dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation(time.DateOnly, dateStr, Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format %q: %w", dateStr, err)
	}
	return t.UTC(), nil
}

// Format renders a UTC time in the business timezone.
func Format(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}
