package models

// User is the profile of the authenticated account, returned by the auth
// endpoints and persisted alongside the session token.
type User struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Organization string `json:"organization,omitempty"`
}

// SystemStatus is the service-wide snapshot reported by GET /status.
type SystemStatus struct {
	WorkflowsCount    int   `json:"workflows_count"`
	ActiveWorkflows   int   `json:"active_workflows"`
	RegisteredHooks   int   `json:"registered_webhooks"`
	RunningExecutions []Run `json:"running_executions,omitempty"`
}
