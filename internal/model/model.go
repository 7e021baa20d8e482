package model

import "time"

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	CreatedAt time.Time `json:"created_at"`
}

type Board struct {
	ID          int64      `json:"id"`
	OwnerID     string     `json:"owner_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

// Column belongs to a board. OwnerID is the owning board's owner, filled by
// joined reads so authorization needs no second round trip.
type Column struct {
	ID         int64  `json:"id"`
	BoardID    int64  `json:"board_id"`
	Title      string `json:"title"`
	OrderIndex int    `json:"order_index"`

	OwnerID string `json:"-"`
}

// Task belongs to a column. BoardID and OwnerID come from the same joined
// read as the task row itself.
type Task struct {
	ID             int64      `json:"id"`
	ColumnID       int64      `json:"column_id"`
	AssignedUserID *string    `json:"assigned_user_id,omitempty"`
	Title          string     `json:"title"`
	Description    *string    `json:"description,omitempty"`
	Priority       Priority   `json:"priority"`
	EstimatedHours *float64   `json:"estimated_hours,omitempty"`
	RemainingHours *float64   `json:"remaining_hours,omitempty"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	OrderIndex     int        `json:"order_index"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty"`

	BoardID int64  `json:"-"`
	OwnerID string `json:"-"`

	// Display-only joins.
	ColumnTitle  string `json:"-"`
	AssigneeName string `json:"assignee_name,omitempty"`
}

// Comment is immutable once created. A nil AuthorID means the author account
// was deleted after the fact.
type Comment struct {
	ID         int64     `json:"id"`
	TaskID     int64     `json:"task_id"`
	AuthorID   *string   `json:"author_id,omitempty"`
	AuthorName string    `json:"author_name"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
}

type TimeEntry struct {
	ID         int64     `json:"id"`
	TaskID     int64     `json:"task_id"`
	AuthorID   *string   `json:"author_id,omitempty"`
	HoursSpent float64   `json:"hours_spent"`
	Note       *string   `json:"note,omitempty"`
	LoggedAt   time.Time `json:"logged_at"`
}
