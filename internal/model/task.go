package model

import "time"

// TaskPriority is the urgency of a remediation task.
type TaskPriority string

// Task priorities, highest first.
const (
	PriorityP1 TaskPriority = "P1"
	PriorityP2 TaskPriority = "P2"
	PriorityP3 TaskPriority = "P3"
)

// PriorityFor maps a directory's importance to a task priority.
func PriorityFor(importance Importance) TaskPriority {
	switch importance {
	case ImportanceCritical:
		return PriorityP1
	case ImportanceHigh:
		return PriorityP2
	default:
		return PriorityP3
	}
}

// TaskSourceCitationScan tags tasks emitted by the citation scan engine.
const TaskSourceCitationScan = "citation_scan"

// TaskRequest is a remediation work item handed to the task-management
// collaborator. Fire-and-forget; the engine does not own task lifecycle.
type TaskRequest struct {
	CreatedAt    time.Time
	ClientID     string
	DirectoryKey string
	Title        string
	Category     string
	Description  string
	Priority     TaskPriority
	Source       string
}
