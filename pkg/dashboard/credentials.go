package dashboard

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/integron/console/pkg/models"
)

// CredentialsAPI is the slice of the gateway the credentials controller
// needs.
type CredentialsAPI interface {
	ListCredentials(ctx context.Context, service string) ([]models.Credential, error)
	CreateCredential(ctx context.Context, credential *models.Credential) (*models.Credential, error)
	DeleteCredential(ctx context.Context, id string) error
}

// CredentialForm is the user-supplied input for a new credential. Data is
// the raw secret payload; the console only checks that it parses as JSON
// before submission, the content stays opaque.
type CredentialForm struct {
	Name    string `validate:"required"`
	Service string `validate:"required"`
	Type    string `validate:"required"`
	Data    string
}

// Credentials caches the credential list and validates new entries before
// any network call.
type Credentials struct {
	api      CredentialsAPI
	confirm  Confirmer
	validate *validator.Validate
	logger   *slog.Logger

	mu    sync.RWMutex
	cache []models.Credential
}

func NewCredentials(api CredentialsAPI, confirm Confirmer, logger *slog.Logger) *Credentials {
	return &Credentials{
		api:      api,
		confirm:  confirm,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Load replaces the cache with the latest remote snapshot.
func (c *Credentials) Load(ctx context.Context) error {
	credentials, err := c.api.ListCredentials(ctx, "")
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.cache = credentials
	c.mu.Unlock()

	return nil
}

// Items returns a copy of the cached list.
func (c *Credentials) Items() []models.Credential {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Credential, len(c.cache))
	copy(out, c.cache)

	return out
}

// Create validates the form locally, submits the credential, and reloads
// the list. No network call happens on a validation failure.
func (c *Credentials) Create(ctx context.Context, form CredentialForm) (*models.Credential, error) {
	const op = "create credential"

	if err := c.validate.Struct(form); err != nil {
		return nil, newValidationError(op, "", err)
	}

	data := map[string]string{}

	if form.Data != "" {
		if err := json.Unmarshal([]byte(form.Data), &data); err != nil {
			return nil, newValidationError(op, "data", ErrSecretInvalid)
		}
	}

	created, err := c.api.CreateCredential(ctx, &models.Credential{
		Name:           form.Name,
		Service:        form.Service,
		CredentialType: form.Type,
		Data:           data,
	})
	if err != nil {
		return nil, err
	}

	if err := c.Load(ctx); err != nil {
		c.logger.Warn("Credential list reload failed after create", "error", err)
	}

	return created, nil
}

// Delete removes a credential after explicit confirmation, then reloads
// the list.
func (c *Credentials) Delete(ctx context.Context, id string) error {
	if !c.confirm.Confirm("Delete credential " + id + "?") {
		return ErrDeclined
	}

	if err := c.api.DeleteCredential(ctx, id); err != nil {
		return err
	}

	if err := c.Load(ctx); err != nil {
		c.logger.Warn("Credential list reload failed after delete", "error", err)
	}

	return nil
}
