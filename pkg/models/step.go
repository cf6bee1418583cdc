package models

// Step binds one connector action into a workflow. IDs are generated
// client-side and must be unique within the owning workflow; slice order is
// execution order.
type Step struct {
	ID      string         `json:"id"`
	Name    string         `json:"name,omitempty"`
	Service string         `json:"service" validate:"required"`
	Action  string         `json:"action"  validate:"required"`
	Config  map[string]any `json:"config"`
}
