// Package catalog fetches and holds the read-only reference data the
// editor depends on: the connector catalog (invokable actions) and the
// service registry (discovery metadata). Both are fetched once and treated
// as immutable snapshots.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/integron/console/pkg/models"
)

// ErrUnavailable marks a failed catalog initialization. Dependent choices
// stay empty; nothing else is blocked.
var ErrUnavailable = errors.New("catalog unavailable")

// API is the slice of the gateway the cache needs.
type API interface {
	ListConnectors(ctx context.Context) ([]models.Connector, error)
	ListServices(ctx context.Context, category, search string) ([]models.Service, error)
}

// Cache holds the catalog snapshots and derived indexes.
type Cache struct {
	api    API
	logger *slog.Logger

	mu         sync.RWMutex
	ready      bool
	connectors []models.Connector
	services   []models.Service
	actions    map[string][]models.ConnectorAction
	schemas    map[string]map[string]any
}

func NewCache(api API, logger *slog.Logger) *Cache {
	return &Cache{
		api:    api,
		logger: logger,
	}
}

// Init fetches connectors and services concurrently with all-or-nothing
// join semantics: if either fetch fails the cache stays empty and
// ErrUnavailable (wrapping the cause) is returned. A successful Init is
// terminal; later calls are no-ops.
func (c *Cache) Init(ctx context.Context) error {
	c.mu.RLock()
	ready := c.ready
	c.mu.RUnlock()

	if ready {
		return nil
	}

	var (
		connectors []models.Connector
		services   []models.Service
	)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		var err error
		connectors, err = c.api.ListConnectors(groupCtx)

		return err
	})

	group.Go(func() error {
		var err error
		services, err = c.api.ListServices(groupCtx, "", "")

		return err
	})

	if err := group.Wait(); err != nil {
		c.logger.Error("Catalog initialization failed", "error", err)

		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}

	actions := make(map[string][]models.ConnectorAction, len(connectors))
	schemas := make(map[string]map[string]any)

	for _, connector := range connectors {
		actions[connector.Name] = connector.Actions

		for _, action := range connector.Actions {
			if action.ConfigSchema != nil {
				schemas[schemaKey(connector.Name, action.Name)] = action.ConfigSchema
			}
		}
	}

	c.mu.Lock()
	c.ready = true
	c.connectors = connectors
	c.services = services
	c.actions = actions
	c.schemas = schemas
	c.mu.Unlock()

	return nil
}

// Ready reports whether a snapshot has been committed.
func (c *Cache) Ready() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.ready
}

// ActionsFor returns the action list of a service. Unknown services yield
// an empty slice.
func (c *Cache) ActionsFor(service string) []models.ConnectorAction {
	c.mu.RLock()
	defer c.mu.RUnlock()

	actions := c.actions[service]
	out := make([]models.ConnectorAction, len(actions))
	copy(out, actions)

	return out
}

// SchemaFor returns the declared config schema for a service action, or
// nil when the action declares none.
func (c *Cache) SchemaFor(service, action string) map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.schemas[schemaKey(service, action)]
}

// Connectors returns a copy of the connector snapshot.
func (c *Cache) Connectors() []models.Connector {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Connector, len(c.connectors))
	copy(out, c.connectors)

	return out
}

// Services returns a copy of the service snapshot.
func (c *Cache) Services() []models.Service {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]models.Service, len(c.services))
	copy(out, c.services)

	return out
}

// ServicesByCategory filters the service snapshot by exact category.
func (c *Cache) ServicesByCategory(category string) []models.Service {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var out []models.Service

	for _, service := range c.services {
		if service.Category == category {
			out = append(out, service)
		}
	}

	return out
}

// Search matches services whose name, display name, or description
// contains the query, case-insensitively.
func (c *Cache) Search(query string) []models.Service {
	c.mu.RLock()
	defer c.mu.RUnlock()

	query = strings.ToLower(query)

	var out []models.Service

	for _, service := range c.services {
		if strings.Contains(strings.ToLower(service.Name), query) ||
			strings.Contains(strings.ToLower(service.DisplayName), query) ||
			strings.Contains(strings.ToLower(service.Description), query) {
			out = append(out, service)
		}
	}

	return out
}

func schemaKey(service, action string) string {
	return service + "/" + action
}
