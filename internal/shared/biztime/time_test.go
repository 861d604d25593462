package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayBoundsUTC(t *testing.T) {
	day, err := ParseDate("2026-03-10")
	require.NoError(t, err)

	start, end := DayBoundsUTC(day.Add(5 * time.Hour))
	assert.Equal(t, day, start)
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestParseDate_Invalid(t *testing.T) {
	_, err := ParseDate("10.03.2026")
	assert.Error(t, err)
}
