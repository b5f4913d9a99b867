package domain

import (
	"errors"
	"time"
)

var (
	ErrAlreadyCheckedIn = errors.New("an open check-in session already exists")
	ErrNoOpenSession    = errors.New("no open check-in session to close")
	ErrNoActiveSession  = errors.New("no active check-in session")
)

// CheckInOut is one check-in/check-out pair. Times are "hh:mm:ss AM/PM",
// dates are "DD-MM-YYYY" and WorkHours is "HH:MM:SS".
type CheckInOut struct {
	ID               int64   `json:"id"`
	CheckInTime      string  `json:"check_in_time"`
	CheckInDate      string  `json:"check_in_date"`
	CheckInLocation  string  `json:"check_in_location"`
	CheckOutTime     *string `json:"check_out_time"`
	CheckOutDate     *string `json:"check_out_date"`
	CheckOutLocation *string `json:"check_out_location"`
	WorkHours        *string `json:"workHours"`
}

func (c *CheckInOut) IsOpen() bool {
	return c.CheckOutTime == nil
}

// Attendance holds every session of one user on one calendar date.
type Attendance struct {
	ID        int64        `json:"id"`
	UserID    int64        `json:"userID"`
	Date      string       `json:"date"`
	Sessions  []CheckInOut `json:"checkInOut"`
	CreatedAt time.Time    `json:"createdAt"`
}

func (a *Attendance) LatestSession() *CheckInOut {
	if len(a.Sessions) == 0 {
		return nil
	}
	return &a.Sessions[len(a.Sessions)-1]
}
