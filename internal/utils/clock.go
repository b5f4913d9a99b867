package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DateLayout  = "02-01-2006"
	TimeLayout  = "03:04:05 PM"
	MonthLayout = "January-2006"
)

var (
	ErrInvalidTimeFormat = errors.New("invalid time format, expected hh:mm:ss AM/PM")
	ErrInvalidDate       = errors.New("invalid date, expected DD-MM-YYYY")
	ErrInvalidDuration   = errors.New("invalid duration, expected HH:MM:SS")
)

// CurrentDateTime returns now as ("DD-MM-YYYY", "hh:mm:ss AM/PM").
func CurrentDateTime(now time.Time) (string, string) {
	return now.Format(DateLayout), now.Format(TimeLayout)
}

// Some clients render the AM/PM marker after a narrow no-break space.
var spaceReplacer = strings.NewReplacer("\u202f", " ", "\u00a0", " ")

func normalizeTime(s string) string {
	return strings.ToUpper(strings.TrimSpace(spaceReplacer.Replace(s)))
}

// ParseTime12h parses "hh:mm:ss AM/PM" into a 24-hour clock triple.
func ParseTime12h(s string) (int, int, int, error) {
	clock, marker, ok := strings.Cut(normalizeTime(s), " ")
	if !ok || (marker != "AM" && marker != "PM") {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	parts := strings.Split(clock, ":")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	var nums [3]int
	for i, p := range parts {
		if len(p) != 2 {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
		nums[i] = n
	}

	hour, minute, second := nums[0], nums[1], nums[2]
	if hour < 1 || hour > 12 || minute > 59 || second > 59 {
		return 0, 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	switch {
	case marker == "AM" && hour == 12:
		hour = 0
	case marker == "PM" && hour != 12:
		hour += 12
	}

	return hour, minute, second, nil
}

// TimeOfDay returns the offset of a 12-hour time string from midnight.
func TimeOfDay(s string) (time.Duration, error) {
	h, m, sec, err := ParseTime12h(s)
	if err != nil {
		return 0, err
	}
	return time.Duration(h)*time.Hour + time.Duration(m)*time.Minute + time.Duration(sec)*time.Second, nil
}

func ParseDate(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ElapsedSince reports how long ago checkInTime was, assuming it happened
// today. A time of day later than now is taken to be yesterday.
func ElapsedSince(checkInTime string, now time.Time) (string, error) {
	offset, err := TimeOfDay(checkInTime)
	if err != nil {
		return "", err
	}

	y, m, d := now.Date()
	checkIn := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).Add(offset)
	if checkIn.After(now) {
		checkIn = checkIn.AddDate(0, 0, -1)
	}

	return FormatDuration(now.Sub(checkIn)), nil
}

// ElapsedSinceDate is ElapsedSince anchored on the session's own date, so a
// session opened on an earlier day reports its full length.
func ElapsedSinceDate(checkInDate, checkInTime string, now time.Time) (string, error) {
	day, err := ParseDate(checkInDate, now.Location())
	if err != nil {
		return "", err
	}
	offset, err := TimeOfDay(checkInTime)
	if err != nil {
		return "", err
	}

	// a check-in later than now reports zero
	return FormatDuration(now.Sub(day.Add(offset))), nil
}

// MaxSessionHours bounds the hours of a single work-hours value.
const MaxSessionHours = 7 * 24

// ParseWorkHours parses "HH:MM:SS". Hours may exceed 24 but not
// MaxSessionHours.
func ParseWorkHours(s string) (time.Duration, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}

	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || p == "" {
			return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
		}
		nums[i] = n
	}
	if nums[0] > MaxSessionHours || nums[1] > 59 || nums[2] > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}

	return time.Duration(nums[0])*time.Hour + time.Duration(nums[1])*time.Minute + time.Duration(nums[2])*time.Second, nil
}

// FormatDuration renders d as "HH:MM:SS", truncating to whole seconds.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}

// FormatHoursMinutes renders d as "HH:MM", truncating to whole minutes.
func FormatHoursMinutes(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int64(d / time.Minute)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
