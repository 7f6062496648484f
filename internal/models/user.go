package models

import "time"

type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserSummary is a user row joined with its task counts, used by the admin CLI.
type UserSummary struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Tasks     int    `json:"tasks"`
	Completed int    `json:"completed"`
}
