package dashboard

import (
	"context"
	"sync"

	"github.com/integron/console/pkg/models"
)

// TemplatesAPI is the slice of the gateway the templates controller needs.
type TemplatesAPI interface {
	ListTemplates(ctx context.Context, category string) ([]models.Template, error)
	GetTemplate(ctx context.Context, id string) (*models.Template, error)
}

// Templates caches the read-only template catalog.
type Templates struct {
	api TemplatesAPI

	mu    sync.RWMutex
	cache []models.Template
}

func NewTemplates(api TemplatesAPI) *Templates {
	return &Templates{api: api}
}

// Load replaces the cache with the latest remote snapshot.
func (t *Templates) Load(ctx context.Context) error {
	templates, err := t.api.ListTemplates(ctx, "")
	if err != nil {
		return err
	}

	t.mu.Lock()
	t.cache = templates
	t.mu.Unlock()

	return nil
}

// Items returns a copy of the cached list.
func (t *Templates) Items() []models.Template {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]models.Template, len(t.cache))
	copy(out, t.cache)

	return out
}

// Get fetches one template with its full step definitions.
func (t *Templates) Get(ctx context.Context, id string) (*models.Template, error) {
	return t.api.GetTemplate(ctx, id)
}
