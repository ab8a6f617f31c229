package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromMinutes_RoundTrip(t *testing.T) {
	// Свойство: Minutes(FromMinutes(m)) == m для всех минут суток
	for m := 0; m < 24*60; m++ {
		ts, err := FromMinutes(m)
		require.NoError(t, err)

		back, err := ts.Minutes()
		require.NoError(t, err)
		require.Equal(t, m, back)
	}
}

func TestFromMinutes_OutOfRange(t *testing.T) {
	_, err := FromMinutes(-1)
	assert.ErrorIs(t, err, ErrMinutesOutOfRange)

	_, err = FromMinutes(24 * 60)
	assert.ErrorIs(t, err, ErrMinutesOutOfRange)
}

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30", ts.String())

	for _, bad := range []string{"", "9:30", "09:60", "25:00", "09-30", "09:30:00"} {
		_, err := NewTimeStringFromString(bad)
		assert.ErrorIs(t, err, ErrInvalidTimeString, "input %q", bad)
	}
}

func TestExtractTimeOfDay(t *testing.T) {
	tests := []struct {
		name      string
		timestamp string
		want      string
		wantErr   bool
	}{
		{name: "bare time", timestamp: "09:15", want: "09:15"},
		{name: "time with seconds", timestamp: "09:15:30", want: "09:15"},
		{name: "space separated", timestamp: "2025-10-28 12:00:00", want: "12:00"},
		{name: "iso with Z", timestamp: "2025-10-28T12:00:00Z", want: "12:00"},
		{name: "iso with positive offset", timestamp: "2025-10-28T12:00:00+03:00", want: "12:00"},
		{name: "iso with negative offset", timestamp: "2025-10-28T12:00:00-07:00", want: "12:00"},
		{name: "iso without seconds", timestamp: "2025-10-28T08:30", want: "08:30"},
		{name: "empty", timestamp: "", wantErr: true},
		{name: "garbage", timestamp: "not-a-time", wantErr: true},
		{name: "date only", timestamp: "2025-10-28", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractTimeOfDay(tt.timestamp)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnsupportedTimestamp)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestAddMinutes(t *testing.T) {
	ts := TimeString("09:00")

	end, err := ts.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, "10:30", end.String())

	// Конец суток допустим как граница интервала
	end, err = TimeString("23:30").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, "24:00", end.String())

	_, err = TimeString("23:30").AddMinutes(31)
	assert.ErrorIs(t, err, ErrMinutesOutOfRange)
}

func TestComparisons(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("09:30"))
	assert.True(t, TimeString("10:00").IsAfter("09:30"))
	assert.False(t, TimeString("09:30").IsBefore("09:30"))
	assert.False(t, TimeString("09:30").IsAfter("09:30"))
	assert.True(t, TimeString("24:00").IsAfter("23:59"))
}

func TestNewTimeString(t *testing.T) {
	ts := NewTimeString(time.Date(2025, 10, 28, 14, 5, 59, 0, time.UTC))
	assert.Equal(t, "14:05", ts.String())
}

func TestScan(t *testing.T) {
	var ts TimeString
	require.NoError(t, ts.Scan("10:30:00"))
	assert.Equal(t, "10:30", ts.String())

	require.NoError(t, ts.Scan(time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)))
	assert.Equal(t, "08:00", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())
}
