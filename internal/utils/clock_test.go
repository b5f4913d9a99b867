package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentDateTime(t *testing.T) {
	now := time.Date(2024, time.March, 5, 14, 7, 9, 0, time.UTC)

	date, clock := CurrentDateTime(now)
	assert.Equal(t, "05-03-2024", date)
	assert.Equal(t, "02:07:09 PM", clock)

	_, midnight := CurrentDateTime(time.Date(2024, time.March, 5, 0, 15, 0, 0, time.UTC))
	assert.Equal(t, "12:15:00 AM", midnight)
}

func TestParseTime12h(t *testing.T) {
	cases := []struct {
		in      string
		h, m, s int
	}{
		{"12:00:00 AM", 0, 0, 0},
		{"12:30:15 PM", 12, 30, 15},
		{"09:45:00 AM", 9, 45, 0},
		{"06:30:00 PM", 18, 30, 0},
		{"11:59:59 pm", 23, 59, 59},
		{"07:05:03\u202fPM", 19, 5, 3},
	}

	for _, c := range cases {
		h, m, s, err := ParseTime12h(c.in)
		require.NoError(t, err, c.in)
		assert.Equal(t, []int{c.h, c.m, c.s}, []int{h, m, s}, c.in)
	}
}

func TestParseTime12h_Malformed(t *testing.T) {
	for _, in := range []string{
		"",
		"09:45:00",
		"09:45 AM",
		"ab:cd:ef PM",
		"13:00:00 PM",
		"00:10:00 AM",
		"09:61:00 AM",
		"9:45:00 AM",
		"09:45:00 XM",
	} {
		_, _, _, err := ParseTime12h(in)
		assert.ErrorIs(t, err, ErrInvalidTimeFormat, in)
	}
}

func TestElapsedSince(t *testing.T) {
	now := time.Date(2024, time.March, 5, 18, 0, 0, 0, time.UTC)

	elapsed, err := ElapsedSince("09:30:15 AM", now)
	require.NoError(t, err)
	assert.Equal(t, "08:29:45", elapsed)

	// a later time of day belongs to yesterday
	elapsed, err = ElapsedSince("10:00:00 PM", now)
	require.NoError(t, err)
	assert.Equal(t, "20:00:00", elapsed)

	_, err = ElapsedSince("10:00:00", now)
	assert.ErrorIs(t, err, ErrInvalidTimeFormat)
}

func TestElapsedSinceDate(t *testing.T) {
	now := time.Date(2024, time.March, 6, 2, 0, 0, 0, time.UTC)

	elapsed, err := ElapsedSinceDate("04-03-2024", "10:00:00 PM", now)
	require.NoError(t, err)
	assert.Equal(t, "28:00:00", elapsed)

	// check-in after now
	elapsed, err = ElapsedSinceDate("06-03-2024", "05:00:00 AM", now)
	require.NoError(t, err)
	assert.Equal(t, "00:00:00", elapsed)

	_, err = ElapsedSinceDate("2024-03-04", "10:00:00 PM", now)
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestParseWorkHours(t *testing.T) {
	d, err := ParseWorkHours("08:30:15")
	require.NoError(t, err)
	assert.Equal(t, 8*time.Hour+30*time.Minute+15*time.Second, d)

	d, err = ParseWorkHours("26:00:00")
	require.NoError(t, err)
	assert.Equal(t, 26*time.Hour, d)

	d, err = ParseWorkHours("168:00:00")
	require.NoError(t, err)
	assert.Equal(t, 168*time.Hour, d)

	for _, in := range []string{"", "8h", "08:30", "08:75:00", "aa:bb:cc", "08::00", "169:00:00", "3000000:00:00", "99999999999999999999:00:00"} {
		_, err := ParseWorkHours(in)
		assert.ErrorIs(t, err, ErrInvalidDuration, in)
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "00:00:00", FormatDuration(0))
	assert.Equal(t, "09:00:00", FormatDuration(9*time.Hour))
	assert.Equal(t, "27:03:04", FormatDuration(27*time.Hour+3*time.Minute+4*time.Second+900*time.Millisecond))
	assert.Equal(t, "00:15", FormatHoursMinutes(15*time.Minute+40*time.Second))
	assert.Equal(t, "01:05", FormatHoursMinutes(65*time.Minute))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("29-02-2020", time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, time.February, 29, 0, 0, 0, 0, time.UTC), d)
	assert.Equal(t, "29-02-2020", FormatDate(d))

	_, err = ParseDate("29-02-2021", time.UTC)
	assert.ErrorIs(t, err, ErrInvalidDate)
}
