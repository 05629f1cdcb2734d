package api

import "time"

type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

type Task struct {
	ID          string     `json:"id"`
	Owner       string     `json:"owner"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Category    string     `json:"category"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type DueBuckets struct {
	Overdue  int64 `json:"overdue"`
	Today    int64 `json:"today"`
	ThisWeek int64 `json:"thisWeek"`
	Future   int64 `json:"future"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterResponse struct {
	Token string `json:"token"`
	User  *User  `json:"user,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type CurrentUserRequest struct{}

type UserResponse struct {
	User *User `json:"user"`
}

type ListTasksRequest struct{}

// FilterTasksRequest combines criteria with AND. Empty strings and nil dates
// are not criteria. StartDate and EndDate are inclusive bounds on the due date.
type FilterTasksRequest struct {
	Status    string     `json:"status,omitempty"`
	Priority  string     `json:"priority,omitempty"`
	Category  string     `json:"category,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

type SearchTasksRequest struct {
	Query string `json:"query"`
}

type TasksResponse struct {
	Tasks []*Task `json:"tasks"`
}

type GetTaskRequest struct {
	ID string `json:"id"`
}

type TaskResponse struct {
	Task *Task `json:"task"`
}

type CreateTaskRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	Status      string     `json:"status,omitempty"`
	DueDate     *time.Time `json:"dueDate,omitempty"`
	Category    string     `json:"category,omitempty"`
}

// UpdateTaskRequest is a partial update: nil fields are left unchanged.
// ClearDueDate removes the due date and wins over DueDate.
type UpdateTaskRequest struct {
	ID           string     `json:"id"`
	Title        *string    `json:"title,omitempty"`
	Description  *string    `json:"description,omitempty"`
	Priority     *string    `json:"priority,omitempty"`
	Status       *string    `json:"status,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	ClearDueDate bool       `json:"clearDueDate,omitempty"`
	Category     *string    `json:"category,omitempty"`
}

type DeleteTaskRequest struct {
	ID string `json:"id"`
}

type DeleteTaskResponse struct {
	Msg string `json:"msg"`
}

// GetStatsRequest optionally pins the reference instant of the due-date
// buckets. The server clock is used when At is nil.
type GetStatsRequest struct {
	At *time.Time `json:"at,omitempty"`
}

type StatsResponse struct {
	StatusCounts      map[string]int64 `json:"statusCounts"`
	PriorityCounts    map[string]int64 `json:"priorityCounts"`
	DueDates          DueBuckets       `json:"dueDates"`
	RecentlyCompleted []*Task          `json:"recentlyCompleted"`
}

type ExportRequest struct{}

type ExportResponse struct {
	URL string `json:"url"`
}

type PingRequest struct{}

type PingResponse struct {
	Status string `json:"status"`
}

// ErrorResponse is the REST error body.
type ErrorResponse struct {
	Msg string `json:"msg"`
}
