package domain

import "time"

// Users keep a copy of the designation name, so renaming a designation
// does not touch users it was already assigned to.
type Designation struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Version   int32     `json:"-"`
}
