package models

// Task status values.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)

// Task represents a to-do item owned by a user.
type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Username    string `json:"username"`
}

// TaskInput is the body of POST /tasks and PUT /tasks/{id}: a task without its id.
type TaskInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	Username    string `json:"username"`
}

// WithID builds the stored record for the given id.
func (in TaskInput) WithID(id int) Task {
	return Task{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Status:      in.Status,
		Username:    in.Username,
	}
}

// Input strips the id from a task.
func (t Task) Input() TaskInput {
	return TaskInput{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Username:    t.Username,
	}
}

// ValidStatus reports whether s is one of the known task statuses.
func ValidStatus(s string) bool {
	return s == StatusPending || s == StatusCompleted
}
