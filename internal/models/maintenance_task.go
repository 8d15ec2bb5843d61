package models

import "time"

const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
	TaskPriorityUrgent = "urgent"
)

const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
)

// MaintenanceTask is a work item for a residence area. CompletedDate is
// stamped on entry to completed and cleared if the task is reverted.
type MaintenanceTask struct {
	ID            string     `json:"id"`
	Area          string     `json:"area"`
	Description   string     `json:"description"`
	Priority      string     `json:"priority"`
	Status        string     `json:"status"`
	AssignedDate  time.Time  `json:"assigned_date"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
	Photos        []string   `json:"photos,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}
