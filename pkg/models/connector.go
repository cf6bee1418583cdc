package models

// ConnectorAction is one invokable action offered by a connector. Actions
// may declare a JSON schema for their configuration; absent a schema, any
// parseable config is accepted.
type ConnectorAction struct {
	Name         string         `json:"name"`
	DisplayName  string         `json:"display_name"`
	Description  string         `json:"description,omitempty"`
	ConfigSchema map[string]any `json:"config_schema,omitempty"`
}

// Connector describes an external integration and its available actions.
// Connectors are read-only catalog entries fetched once per editor session.
type Connector struct {
	Name        string            `json:"name"`
	DisplayName string            `json:"display_name"`
	Description string            `json:"description,omitempty"`
	Category    string            `json:"category,omitempty"`
	Icon        string            `json:"icon,omitempty"`
	Actions     []ConnectorAction `json:"actions"`
}

// Service is a pre-configured service registry entry, the coarser sibling
// of a connector: it carries discovery metadata (category, auth type,
// common trigger/action names) rather than invokable actions.
type Service struct {
	Name           string   `json:"name"`
	DisplayName    string   `json:"display_name"`
	Description    string   `json:"description,omitempty"`
	Category       string   `json:"category,omitempty"`
	AuthType       string   `json:"auth_type,omitempty"`
	CommonTriggers []string `json:"common_triggers,omitempty"`
	CommonActions  []string `json:"common_actions,omitempty"`
}
