package catalog_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/integron/console/pkg/catalog"
	"github.com/integron/console/pkg/log"
	"github.com/integron/console/pkg/models"
)

type fakeCatalogAPI struct {
	connectors    []models.Connector
	services      []models.Service
	connectorsErr error
	servicesErr   error
}

func (f *fakeCatalogAPI) ListConnectors(_ context.Context) ([]models.Connector, error) {
	return f.connectors, f.connectorsErr
}

func (f *fakeCatalogAPI) ListServices(_ context.Context, _, _ string) ([]models.Service, error) {
	return f.services, f.servicesErr
}

func testConnectors() []models.Connector {
	return []models.Connector{
		{
			Name:        "slack",
			DisplayName: "Slack",
			Actions: []models.ConnectorAction{
				{Name: "send_message", DisplayName: "Send Message"},
				{Name: "create_channel", DisplayName: "Create Channel"},
			},
		},
		{
			Name:        "sheets",
			DisplayName: "Google Sheets",
			Actions: []models.ConnectorAction{
				{
					Name:        "append_row",
					DisplayName: "Append Row",
					ConfigSchema: map[string]any{
						"type":     "object",
						"required": []any{"spreadsheet_id"},
						"properties": map[string]any{
							"spreadsheet_id": map[string]any{"type": "string"},
						},
					},
				},
			},
		},
	}
}

func TestCache_Init(t *testing.T) {
	t.Parallel()

	api := &fakeCatalogAPI{
		connectors: testConnectors(),
		services: []models.Service{
			{Name: "slack", DisplayName: "Slack", Category: "communication"},
			{Name: "sheets", DisplayName: "Google Sheets", Category: "productivity"},
		},
	}

	cache := catalog.NewCache(api, log.Discard())
	require.NoError(t, cache.Init(t.Context()))

	assert.True(t, cache.Ready())
	assert.Len(t, cache.Connectors(), 2)
	assert.Len(t, cache.Services(), 2)
}

func TestCache_InitAllOrNothing(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		api  *fakeCatalogAPI
	}{
		{
			name: "connectors fetch fails",
			api: &fakeCatalogAPI{
				connectorsErr: errors.New("boom"),
				services:      []models.Service{{Name: "slack"}},
			},
		},
		{
			name: "services fetch fails",
			api: &fakeCatalogAPI{
				connectors:  testConnectors(),
				servicesErr: errors.New("boom"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cache := catalog.NewCache(tt.api, log.Discard())

			err := cache.Init(t.Context())
			require.Error(t, err)
			assert.ErrorIs(t, err, catalog.ErrUnavailable)

			// Neither partial result may be committed.
			assert.False(t, cache.Ready())
			assert.Empty(t, cache.Connectors())
			assert.Empty(t, cache.Services())
		})
	}
}

func TestCache_ActionsFor(t *testing.T) {
	t.Parallel()

	cache := catalog.NewCache(&fakeCatalogAPI{connectors: testConnectors()}, log.Discard())
	require.NoError(t, cache.Init(t.Context()))

	actions := cache.ActionsFor("slack")
	require.Len(t, actions, 2)
	assert.Equal(t, "send_message", actions[0].Name)

	assert.Empty(t, cache.ActionsFor("unknown-service"))
}

func TestCache_SchemaFor(t *testing.T) {
	t.Parallel()

	cache := catalog.NewCache(&fakeCatalogAPI{connectors: testConnectors()}, log.Discard())
	require.NoError(t, cache.Init(t.Context()))

	assert.NotNil(t, cache.SchemaFor("sheets", "append_row"))
	assert.Nil(t, cache.SchemaFor("slack", "send_message"))
	assert.Nil(t, cache.SchemaFor("nope", "nothing"))
}

func TestCache_SearchAndCategory(t *testing.T) {
	t.Parallel()

	api := &fakeCatalogAPI{
		services: []models.Service{
			{Name: "slack", DisplayName: "Slack", Category: "communication"},
			{Name: "discord", DisplayName: "Discord", Category: "communication"},
			{Name: "sheets", DisplayName: "Google Sheets", Category: "productivity"},
		},
	}

	cache := catalog.NewCache(api, log.Discard())
	require.NoError(t, cache.Init(t.Context()))

	assert.Len(t, cache.ServicesByCategory("communication"), 2)
	assert.Empty(t, cache.ServicesByCategory("payments"))

	results := cache.Search("SLACK")
	require.Len(t, results, 1)
	assert.Equal(t, "slack", results[0].Name)
}

func TestCache_SnapshotIsImmutable(t *testing.T) {
	t.Parallel()

	cache := catalog.NewCache(&fakeCatalogAPI{connectors: testConnectors()}, log.Discard())
	require.NoError(t, cache.Init(t.Context()))

	snapshot := cache.Connectors()
	snapshot[0].Name = "mutated"

	assert.Equal(t, "slack", cache.Connectors()[0].Name)
}
