package models

// TaskType separates work from personal tasks
type TaskType string

const (
	TaskTypeWork     TaskType = "work"
	TaskTypePersonal TaskType = "personal"
)

// TaskPriority is an optional urgency marker
type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityNormal TaskPriority = "normal"
	TaskPriorityHigh   TaskPriority = "high"
)

// Valid reports whether t is a known task type.
func (t TaskType) Valid() bool {
	return t == TaskTypeWork || t == TaskTypePersonal
}

// Task represents a to-do item
type Task struct {
	Base
	UserID   uint         `gorm:"index;not null" json:"user_id"`
	Title    string       `gorm:"not null" json:"title"`
	Type     TaskType     `gorm:"not null;default:personal" json:"type"`
	Done     bool         `json:"done"`
	Priority TaskPriority `gorm:"default:normal" json:"priority"`
	DueDate  *string      `json:"due_date,omitempty"`
}
