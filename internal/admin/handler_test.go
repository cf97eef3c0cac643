package admin

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newAdminRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	reload := func(ctx context.Context) (int, error) { return 42, nil }
	h := NewHandler(testTokens(), string(hash), reload, zap.NewNop())

	router := gin.New()
	h.RegisterRoutes(router.Group("/admin"))
	return router
}

func TestTokenExchange(t *testing.T) {
	router := newAdminRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/token", strings.NewReader(`{"password":"hunter22"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
}

func TestTokenExchangeWrongPassword(t *testing.T) {
	router := newAdminRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/token", strings.NewReader(`{"password":"nope"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReloadRequiresToken(t *testing.T) {
	router := newAdminRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/admin/reload", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestReloadWithToken(t *testing.T) {
	router := newAdminRouter(t)

	token, _, err := testTokens().Sign()
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/admin/reload", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"rows":42`)
}
