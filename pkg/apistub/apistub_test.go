package apistub

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStubRouter() *chi.Mux {
	router := chi.NewRouter()
	RegisterRoutes(router)
	return router
}

func postLogin(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestLoginHandler(t *testing.T) {
	router := setupStubRouter()

	t.Run("valid credentials", func(t *testing.T) {
		res := postLogin(t, router, `{"username":"admin","password":"admin123"}`)
		require.Equal(t, http.StatusOK, res.Code)

		var got LoginResponse
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &got))
		assert.Equal(t, int64(1), got.UserID)
		assert.Equal(t, "Administrator", got.UserName)
		assert.Equal(t, "login successful", got.Message)
		assert.True(t, strings.HasPrefix(got.Token, "temp_token_"))
	})

	t.Run("tokens are unique per login", func(t *testing.T) {
		first := postLogin(t, router, `{"username":"admin","password":"admin123"}`)
		second := postLogin(t, router, `{"username":"admin","password":"admin123"}`)

		var a, b LoginResponse
		require.NoError(t, json.Unmarshal(first.Body.Bytes(), &a))
		require.NoError(t, json.Unmarshal(second.Body.Bytes(), &b))
		assert.NotEqual(t, a.Token, b.Token)
	})

	t.Run("wrong password", func(t *testing.T) {
		res := postLogin(t, router, `{"username":"admin","password":"wrong"}`)
		assert.Equal(t, http.StatusUnauthorized, res.Code)
		assert.Contains(t, res.Body.String(), "invalid username or password")
	})

	t.Run("unknown user gets the same message", func(t *testing.T) {
		body := `{"username":"` + gofakeit.Username() + `","password":"whatever"}`
		res := postLogin(t, router, body)
		assert.Equal(t, http.StatusUnauthorized, res.Code)
		assert.Contains(t, res.Body.String(), "invalid username or password")
	})

	t.Run("blank username", func(t *testing.T) {
		res := postLogin(t, router, `{"username":"   ","password":"admin123"}`)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("missing password", func(t *testing.T) {
		res := postLogin(t, router, `{"username":"admin"}`)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		res := postLogin(t, router, `{"username": admin`)
		assert.Equal(t, http.StatusBadRequest, res.Code)
	})
}

func TestNotFoundStaysJSON(t *testing.T) {
	router := setupStubRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/orders", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusNotFound, res.Code)
	assert.Equal(t, "application/json", res.Header().Get("Content-Type"))
	assert.Contains(t, res.Body.String(), "/api/orders not found")
}

func TestHealthHandler(t *testing.T) {
	router := setupStubRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)

	require.Equal(t, http.StatusOK, res.Code)

	var got HealthResponse
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &got))
	assert.Equal(t, "ok", got.Status)
	assert.Equal(t, ServiceName, got.Service)
}
