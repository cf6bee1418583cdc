package session_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/integron/console/pkg/gateway"
	"github.com/integron/console/pkg/log"
	"github.com/integron/console/pkg/models"
	"github.com/integron/console/pkg/session"
)

type fakeAuthAPI struct {
	auth  *gateway.AuthResponse
	err   error
	calls int
}

func (f *fakeAuthAPI) Login(_ context.Context, _, _ string) (*gateway.AuthResponse, error) {
	f.calls++

	return f.auth, f.err
}

func (f *fakeAuthAPI) Signup(_ context.Context, _ gateway.SignupRequest) (*gateway.AuthResponse, error) {
	f.calls++

	return f.auth, f.err
}

func newManager(t *testing.T, dir string, api session.AuthAPI) *session.Manager {
	t.Helper()

	manager := session.NewManager(session.NewFileStore(dir), log.Discard())
	if api != nil {
		manager.Attach(api)
	}

	return manager
}

func TestManager_LoginPersistsAndRestores(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	api := &fakeAuthAPI{auth: &gateway.AuthResponse{
		Token: "tok1",
		User:  models.User{ID: "1", Name: "A", Email: "a@b.com"},
	}}

	manager := newManager(t, dir, api)
	require.False(t, manager.Authenticated())

	require.NoError(t, manager.Login(t.Context(), "a@b.com", "pw"))
	assert.True(t, manager.Authenticated())
	assert.Equal(t, "tok1", manager.Token())
	assert.Equal(t, "A", manager.Current().Name)

	// A fresh manager simulates a page reload: it must restore the same
	// credential and profile from durable storage.
	restored := newManager(t, dir, nil)
	assert.True(t, restored.Authenticated())
	assert.Equal(t, "tok1", restored.Token())

	require.NotNil(t, restored.Current())
	assert.Equal(t, "1", restored.Current().ID)
	assert.Equal(t, "A", restored.Current().Name)
}

func TestManager_LoginFailurePropagatesUnchanged(t *testing.T) {
	t.Parallel()

	wantErr := &gateway.RequestError{Method: "POST", Path: "/auth/login", Status: 401, Message: "Invalid email or password"}
	api := &fakeAuthAPI{err: wantErr}

	manager := newManager(t, t.TempDir(), api)

	err := manager.Login(t.Context(), "a@b.com", "bad")
	require.Error(t, err)
	assert.Equal(t, err, error(wantErr), "auth errors must not be wrapped")
	assert.False(t, manager.Authenticated())
}

func TestManager_LogoutClearsEverything(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	api := &fakeAuthAPI{auth: &gateway.AuthResponse{Token: "tok1", User: models.User{ID: "1"}}}
	manager := newManager(t, dir, api)
	require.NoError(t, manager.Login(t.Context(), "a@b.com", "pw"))

	manager.Logout()

	assert.False(t, manager.Authenticated())
	assert.Nil(t, manager.Current())
	assert.Equal(t, 1, api.calls, "logout never calls the remote service")

	_, err := os.Stat(filepath.Join(dir, "session.json"))
	assert.True(t, errors.Is(err, os.ErrNotExist), "durable state must be gone")

	restored := newManager(t, dir, nil)
	assert.False(t, restored.Authenticated())
}

func TestManager_MalformedStateTreatedAsAbsent(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "session.json"), []byte("{not json"), 0o600))

	manager := newManager(t, dir, nil)
	assert.False(t, manager.Authenticated())
	assert.Nil(t, manager.Current())
}

func TestManager_SignupSignsIn(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{auth: &gateway.AuthResponse{Token: "tok2", User: models.User{ID: "2", Email: "b@c.com"}}}
	manager := newManager(t, t.TempDir(), api)

	require.NoError(t, manager.Signup(t.Context(), gateway.SignupRequest{
		Name:     "B",
		Email:    "b@c.com",
		Password: "longenough",
	}))

	assert.True(t, manager.Authenticated())
	assert.Equal(t, "b@c.com", manager.Current().Email)
}

func TestManager_CurrentReturnsCopy(t *testing.T) {
	t.Parallel()

	api := &fakeAuthAPI{auth: &gateway.AuthResponse{Token: "tok", User: models.User{Name: "A"}}}
	manager := newManager(t, t.TempDir(), api)
	require.NoError(t, manager.Login(t.Context(), "a@b.com", "pw"))

	manager.Current().Name = "mutated"
	assert.Equal(t, "A", manager.Current().Name)
}
