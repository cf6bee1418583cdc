// Package models defines the domain entities the console exchanges with the
// Integron service.
package models

import "time"

// WorkflowStatus represents the lifecycle state of a workflow.
type WorkflowStatus string

const (
	WorkflowStatusDraft    WorkflowStatus = "draft"    // Editable, triggers disabled
	WorkflowStatusActive   WorkflowStatus = "active"   // Triggers enabled
	WorkflowStatusPaused   WorkflowStatus = "paused"   // Triggers disabled, kept
	WorkflowStatusArchived WorkflowStatus = "archived" // Historical
)

// TriggerType identifies how a workflow is started.
type TriggerType string

const (
	TriggerTypeManual    TriggerType = "manual"
	TriggerTypeScheduled TriggerType = "scheduled"
	TriggerTypeWebhook   TriggerType = "webhook"
)

// Trigger describes the start condition of a workflow. Only Type is
// required; the remaining fields depend on the trigger type.
type Trigger struct {
	Type     TriggerType    `json:"type"               validate:"required"`
	Service  string         `json:"service,omitempty"`
	Event    string         `json:"event,omitempty"`
	Schedule string         `json:"schedule,omitempty"`
	Config   map[string]any `json:"config,omitempty"`
}

// Workflow is a named, ordered sequence of steps persisted by the remote
// store. A local draft has no ID until its first save.
type Workflow struct {
	ID          string         `json:"id,omitempty"`
	Name        string         `json:"name"                 validate:"required"`
	Description string         `json:"description"`
	Trigger     Trigger        `json:"trigger"`
	Steps       []Step         `json:"steps"                validate:"min=1"`
	Status      WorkflowStatus `json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

// WorkflowStats is the per-workflow execution summary reported by the
// service. It is authoritative, unlike the sampled dashboard figures.
type WorkflowStats struct {
	WorkflowID     string   `json:"workflow_id"`
	TotalRuns      int      `json:"total_runs"`
	SuccessfulRuns int      `json:"successful_runs"`
	FailedRuns     int      `json:"failed_runs"`
	AvgDurationMS  *float64 `json:"avg_duration_ms,omitempty"`
}
