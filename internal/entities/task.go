package entities

import "time"

// Task represents a todo item owned by exactly one user
type Task struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"` // Set from the authenticated identity, never from the client
	Title     string    `json:"title"`
	Completed bool      `json:"completed"`
	CreatedAt time.Time `json:"created_at"`
}
