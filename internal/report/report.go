package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/zovio-dev/hrms/backend/internal/domain"
	"github.com/zovio-dev/hrms/backend/internal/utils"
)

const (
	StatusPresent = "Present"
	StatusHalfDay = "0.5 Present, 0.5 Absent"
	StatusAbsent  = "Absent"
)

type Options struct {
	ExpectedCheckIn  string // hh:mm:ss AM/PM
	ExpectedCheckOut string // hh:mm:ss AM/PM
	FullDay          time.Duration
}

func DefaultOptions() Options {
	return Options{
		ExpectedCheckIn:  "09:30:00 AM",
		ExpectedCheckOut: "06:30:00 PM",
		FullDay:          9 * time.Hour,
	}
}

type DayDetail struct {
	Sessions       []domain.CheckInOut `json:"sessions"`
	TotalWorkHours *string             `json:"totalWorkHours"`
}

type Report struct {
	EmployeeID        string                          `json:"employeeID"`
	Name              string                          `json:"name"`
	DateOfJoin        string                          `json:"dateOfJoin"`
	Months            []string                        `json:"months"`
	AttendanceReport  map[string]map[string]string    `json:"attendanceReport"`
	AttendanceDetails map[string]map[string]DayDetail `json:"attendanceDetails"`
}

// Generator computes per-day attendance status from stored sessions.
type Generator struct {
	opts             Options
	expectedCheckIn  time.Duration
	expectedCheckOut time.Duration
}

func NewGenerator(opts Options) (*Generator, error) {
	in, err := utils.TimeOfDay(opts.ExpectedCheckIn)
	if err != nil {
		return nil, fmt.Errorf("expected check-in: %w", err)
	}
	out, err := utils.TimeOfDay(opts.ExpectedCheckOut)
	if err != nil {
		return nil, fmt.Errorf("expected check-out: %w", err)
	}
	if opts.FullDay <= 0 {
		return nil, fmt.Errorf("full day must be positive, got %s", opts.FullDay)
	}

	return &Generator{
		opts:             opts,
		expectedCheckIn:  in,
		expectedCheckOut: out,
	}, nil
}

// Generate walks every date from the user's join date through today and
// classifies it against the sessions in records. records is only read.
func (g *Generator) Generate(user *domain.User, records []*domain.Attendance, today time.Time) (*Report, error) {
	join, err := utils.ParseDate(user.DateOfJoin, today.Location())
	if err != nil {
		return nil, fmt.Errorf("join date of %s: %w", user.EmployeeID, err)
	}

	// sessions are matched to dates by check_in_date, whichever record holds them
	sessionsByDate := make(map[string][]domain.CheckInOut)
	for _, record := range records {
		for _, session := range record.Sessions {
			sessionsByDate[session.CheckInDate] = append(sessionsByDate[session.CheckInDate], session)
		}
	}

	r := &Report{
		EmployeeID:        user.EmployeeID,
		Name:              user.Name,
		DateOfJoin:        user.DateOfJoin,
		Months:            make([]string, 0),
		AttendanceReport:  make(map[string]map[string]string),
		AttendanceDetails: make(map[string]map[string]DayDetail),
	}

	for _, month := range GenerateSortedDatesByMonth(join, today) {
		r.Months = append(r.Months, month.Month)
		statuses := make(map[string]string, len(month.Dates))
		details := make(map[string]DayDetail, len(month.Dates))

		for _, date := range month.Dates {
			sessions := sessionsByDate[date]
			if len(sessions) == 0 {
				statuses[date] = StatusAbsent
				details[date] = DayDetail{Sessions: []domain.CheckInOut{}}
				continue
			}

			status, total, err := g.summarizeDay(sessions)
			if err != nil {
				return nil, fmt.Errorf("attendance on %s: %w", date, err)
			}

			totalText := utils.FormatDuration(total)
			statuses[date] = status
			details[date] = DayDetail{Sessions: sessions, TotalWorkHours: &totalText}
		}

		r.AttendanceReport[month.Month] = statuses
		r.AttendanceDetails[month.Month] = details
	}

	return r, nil
}

func (g *Generator) summarizeDay(sessions []domain.CheckInOut) (string, time.Duration, error) {
	total, err := TotalWorkHours(sessions)
	if err != nil {
		return "", 0, err
	}
	late, early, err := g.Punctuality(sessions)
	if err != nil {
		return "", 0, err
	}

	parts := []string{
		g.Classify(total),
		"Total Work Hours: " + utils.FormatDuration(total),
	}
	if late > 0 {
		parts = append(parts, "Late by "+utils.FormatHoursMinutes(late))
	}
	if early > 0 {
		parts = append(parts, "Early by "+utils.FormatHoursMinutes(early))
	}

	return strings.Join(parts, ", "), total, nil
}

// TotalWorkHours sums the stored work hours of sessions. Open sessions
// have none yet and count as zero.
func TotalWorkHours(sessions []domain.CheckInOut) (time.Duration, error) {
	var total time.Duration
	for _, s := range sessions {
		if s.WorkHours == nil || *s.WorkHours == "" {
			continue
		}
		d, err := utils.ParseWorkHours(*s.WorkHours)
		if err != nil {
			return 0, err
		}
		total += d
	}
	return total, nil
}

func (g *Generator) Classify(total time.Duration) string {
	switch {
	case total >= g.opts.FullDay:
		return StatusPresent
	case total > 0:
		return StatusHalfDay
	default:
		return StatusAbsent
	}
}

// Punctuality accumulates, over every session, how far check-in and
// check-out fall after (late) or before (early) the expected times. The
// two boundaries are judged independently.
func (g *Generator) Punctuality(sessions []domain.CheckInOut) (time.Duration, time.Duration, error) {
	var late, early time.Duration

	accumulate := func(actual string, expected time.Duration) error {
		at, err := utils.TimeOfDay(actual)
		if err != nil {
			return err
		}
		if diff := at - expected; diff > 0 {
			late += diff
		} else {
			early -= diff
		}
		return nil
	}

	for _, s := range sessions {
		if err := accumulate(s.CheckInTime, g.expectedCheckIn); err != nil {
			return 0, 0, err
		}
		if s.CheckOutTime != nil && *s.CheckOutTime != "" {
			if err := accumulate(*s.CheckOutTime, g.expectedCheckOut); err != nil {
				return 0, 0, err
			}
		}
	}

	return late, early, nil
}
