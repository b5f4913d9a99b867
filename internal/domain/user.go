package domain

import (
	"time"
)

const EmployeeIDPrefix = "DB"

type User struct {
	ID           int64     `json:"id"`
	EmployeeID   string    `json:"employeeID"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	DOB          string    `json:"dob"`
	BloodGroup   string    `json:"bloodGroup"`
	Designation  string    `json:"designation"`
	Avatar       string    `json:"avatar,omitempty"`
	DateOfJoin   string    `json:"dateOfJoin"` // DD-MM-YYYY
	Tasks        []Task    `json:"tasks,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
