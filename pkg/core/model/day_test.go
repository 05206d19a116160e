package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayKeyWireFormat(t *testing.T) {
	day := NewDayKey(time.Date(2024, time.October, 20, 15, 42, 7, 0, time.UTC))
	assert.Equal(t, "Sun Oct 20 2024", day.String())
	assert.Equal(t, "2024-10-20", day.ISO())
}

func TestDayKeyPadsSingleDigitDays(t *testing.T) {
	day := NewDayKey(time.Date(2024, time.October, 2, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, "Wed Oct 02 2024", day.String())
}

func TestDayKeyRoundTrip(t *testing.T) {
	day, err := ParseDayKey("Sun Oct 20 2024")
	require.NoError(t, err)
	assert.Equal(t, "Sun Oct 20 2024", day.String())

	iso, err := ParseISODay("2024-10-20")
	require.NoError(t, err)
	assert.True(t, day.Equal(iso))
}

func TestDayKeyPrevAcrossMonthBoundary(t *testing.T) {
	day, err := ParseISODay("2024-11-01")
	require.NoError(t, err)
	assert.Equal(t, "Thu Oct 31 2024", day.Prev().String())
	assert.True(t, day.Prev().Next().Equal(day))
}

func TestDayKeyDropsTimeComponent(t *testing.T) {
	morning := NewDayKey(time.Date(2024, time.October, 20, 1, 0, 0, 0, time.UTC))
	evening := NewDayKey(time.Date(2024, time.October, 20, 23, 59, 0, 0, time.UTC))
	assert.True(t, morning.Equal(evening))
}

func TestParseDayKeyRejectsGarbage(t *testing.T) {
	_, err := ParseDayKey("2024-10-20")
	assert.Error(t, err)

	_, err = ParseISODay("Sun Oct 20 2024")
	assert.Error(t, err)
}
