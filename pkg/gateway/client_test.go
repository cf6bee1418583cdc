package gateway_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/integron/console/pkg/gateway"
	"github.com/integron/console/pkg/log"
)

func newTestClient(t *testing.T, token string, handler http.HandlerFunc) *gateway.Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return gateway.NewClient(server.URL, gateway.TokenFunc(func() string { return token }), log.Discard())
}

func TestClient_AttachesCredentialHeader(t *testing.T) {
	t.Parallel()

	var gotAuth, gotContentType string

	client := newTestClient(t, "tok1", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{}`))
	})

	err := client.Do(t.Context(), http.MethodGet, "/workflows", nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok1", gotAuth)
	assert.Equal(t, "application/json", gotContentType)
}

func TestClient_MergesCallerHeaders(t *testing.T) {
	t.Parallel()

	var gotAccept, gotContentType string

	client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{}`))
	})

	err := client.Do(t.Context(), http.MethodGet, "/runs", nil, nil, nil,
		gateway.WithHeader("Accept", "application/json"))
	require.NoError(t, err)

	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, "application/json", gotContentType, "defaults survive the merge")
}

func TestClient_OmitsHeaderWhenUnauthenticated(t *testing.T) {
	t.Parallel()

	var gotAuth string

	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{}`))
	})

	err := client.Do(t.Context(), http.MethodGet, "/health", nil, nil, nil)
	require.NoError(t, err)

	assert.Empty(t, gotAuth)
}

func TestClient_ErrorMessageExtraction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		expected string
	}{
		{
			name:     "problem document detail wins",
			status:   http.StatusNotFound,
			body:     `{"type":"workflow_not_found","title":"Not Found","status":404,"detail":"workflow not found"}`,
			expected: "workflow not found",
		},
		{
			name:     "detail preferred over message",
			status:   http.StatusBadRequest,
			body:     `{"detail":"name is required","message":"bad request"}`,
			expected: "name is required",
		},
		{
			name:     "message envelope",
			status:   http.StatusBadRequest,
			body:     `{"message":"invalid trigger"}`,
			expected: "invalid trigger",
		},
		{
			name:     "unparseable body falls back to status text",
			status:   http.StatusBadGateway,
			body:     `<html>upstream exploded</html>`,
			expected: "Bad Gateway",
		},
		{
			name:     "empty json falls back to status text",
			status:   http.StatusInternalServerError,
			body:     `{}`,
			expected: "Internal Server Error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := newTestClient(t, "tok", func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			err := client.Do(t.Context(), http.MethodGet, "/workflows", nil, nil, nil)
			require.Error(t, err)

			var reqErr *gateway.RequestError
			require.ErrorAs(t, err, &reqErr)

			assert.Equal(t, tt.status, reqErr.Status)
			assert.Equal(t, tt.expected, reqErr.Message)
			assert.True(t, gateway.IsRequestError(err))
		})
	}
}

func TestClient_DoesNotDecodeIntoOutOnFailure(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "tok", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"nope","id":"partial"}`))
	})

	var out struct {
		ID string `json:"id"`
	}

	err := client.Do(t.Context(), http.MethodGet, "/workflows/w1", nil, nil, &out)
	require.Error(t, err)
	assert.Empty(t, out.ID, "failed responses must not leak partially parsed bodies")
}

func TestClient_Login(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.com", body["email"])

		_, _ = w.Write([]byte(`{"token":"tok1","user":{"id":"1","name":"A","email":"a@b.com"}}`))
	})

	auth, err := client.Login(t.Context(), "a@b.com", "pw")
	require.NoError(t, err)

	assert.Equal(t, "tok1", auth.Token)
	assert.Equal(t, "A", auth.User.Name)
}

func TestClient_ListRunsQuery(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/runs", r.URL.Path)
		assert.Equal(t, "wf-1", r.URL.Query().Get("workflow_id"))
		assert.Equal(t, "10", r.URL.Query().Get("limit"))

		_, _ = w.Write([]byte(`{"runs":[{"id":"r1","workflow_id":"wf-1","status":"success"}]}`))
	})

	runs, err := client.ListRuns(t.Context(), "wf-1", 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "r1", runs[0].ID)
}

func TestClient_CreateWorkflowEnvelope(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, "tok", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		_, _ = w.Write([]byte(`{"id":"wf-9","workflow":{"name":"Sync orders","steps":[]}}`))
	})

	created, err := client.CreateWorkflow(t.Context(), nil)
	require.NoError(t, err)
	assert.Equal(t, "wf-9", created.ID, "assigned id is taken from the envelope")
	assert.Equal(t, "Sync orders", created.Name)
}
