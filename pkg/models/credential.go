package models

import "time"

// Credential is a named secret bound to a service. The payload is opaque to
// the console; the remote store encrypts it and the list endpoint returns
// metadata only.
type Credential struct {
	ID             string            `json:"id,omitempty"`
	Name           string            `json:"name"            validate:"required"`
	Service        string            `json:"service"         validate:"required"`
	CredentialType string            `json:"credential_type" validate:"required"`
	Data           map[string]string `json:"data,omitempty"`
	CreatedAt      time.Time         `json:"created_at"`
}
