package models

import "time"

// Task is a single to-do item. OwnerID is the user that created it; every
// read and write is scoped by it.
type Task struct {
	ID          int64     `json:"id"`
	OwnerID     int64     `json:"owner_id"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
}
