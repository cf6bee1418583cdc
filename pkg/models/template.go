package models

// Template is a read-only predefined workflow skeleton. Instantiating one
// creates a fresh workflow on the server, which the editor then loads as a
// draft.
type Template struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	TriggerService string `json:"trigger_app,omitempty"`
	ActionService  string `json:"action_app,omitempty"`
	Icon           string `json:"icon,omitempty"`
	Steps          []Step `json:"steps,omitempty"`
}
