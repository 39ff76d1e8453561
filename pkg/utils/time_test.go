package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2027-06-15")
	require.NoError(t, err)
	assert.Equal(t, 2027, parsed.Year())
	assert.Equal(t, time.June, parsed.Month())
	assert.Equal(t, 15, parsed.Day())

	_, err = ParseDate("15-06-2027")
	require.Error(t, err)

	_, err = ParseDate("")
	require.Error(t, err)
}

func TestDateBefore(t *testing.T) {
	day := time.Date(2027, 6, 15, 0, 0, 0, 0, time.UTC)

	assert.True(t, DateBefore(day, day.AddDate(0, 0, 1)))
	assert.False(t, DateBefore(day, day))
	assert.False(t, DateBefore(day.AddDate(0, 0, 1), day))

	// Time of day never matters
	lateInDay := time.Date(2027, 6, 15, 23, 59, 0, 0, time.UTC)
	assert.False(t, DateBefore(lateInDay, day))
	assert.False(t, DateBefore(day, lateInDay))
}
