package domain

import "time"

const TaskStatusPending = "Pending"

// Task belongs to exactly one user and is deleted with it.
type Task struct {
	ID           int64     `json:"id"`
	UserID       int64     `json:"userID"`
	Name         string    `json:"task_name"`
	Status       string    `json:"task_status"`
	CheckInTime  *string   `json:"check_in_time"`
	CheckOutTime *string   `json:"check_out_time"`
	CreatedAt    time.Time `json:"createdAt"`
	Version      int32     `json:"-"`
}
