package models

// CreateTaskRequest represents the request body for adding a task.
// Any owner field sent by the client is ignored.
type CreateTaskRequest struct {
	Title string `json:"title" binding:"required"`
}

// UpdateTaskRequest represents the request body for toggling a task.
// A pointer distinguishes an absent field from false.
type UpdateTaskRequest struct {
	Completed *bool `json:"completed" binding:"required"`
}
