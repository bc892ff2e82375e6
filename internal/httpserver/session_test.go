package httpserver

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

type meResponse struct {
	LoggedIn bool   `json:"logged_in"`
	Email    string `json:"email"`
	IsAdmin  bool   `json:"is_admin"`
}

func (env *testEnv) me() meResponse {
	env.t.Helper()
	rec := env.doJSON(http.MethodGet, "/api/v1/me", nil)
	require.Equal(env.t, http.StatusOK, rec.Code)

	var out meResponse
	require.NoError(env.t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestMeBeforeLogin(t *testing.T) {
	env := newTestEnv(t)

	out := env.me()
	require.False(t, out.LoggedIn)
	require.False(t, out.IsAdmin)
}

func TestLoginLogoutRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	env.loginAdmin()

	out := env.me()
	require.True(t, out.LoggedIn)
	require.True(t, out.IsAdmin)
	require.Equal(t, "admin@example.com", out.Email)

	rec := env.doJSON(http.MethodPost, "/api/v1/logout", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	out = env.me()
	require.False(t, out.LoggedIn)
}
