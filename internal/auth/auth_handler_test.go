package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-rrhh/internal/auth"
	autherrors "go-rrhh/internal/auth/errors"
	"go-rrhh/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeAuthService struct {
	auth.Service
	LoginFn func(ctx context.Context, username, password string) (auth.TokenResponse, error)
}

func (f *fakeAuthService) Login(ctx context.Context, username, password string) (auth.TokenResponse, error) {
	return f.LoginFn(ctx, username, password)
}

func (f *fakeAuthService) ResolveIdentity(_ context.Context, _, username string) domain.Identity {
	return domain.Identity{Username: username}
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHandler_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success sets cookies", func(t *testing.T) {
		svc := &fakeAuthService{LoginFn: func(_ context.Context, username, password string) (auth.TokenResponse, error) {
			assert.Equal(t, "jdoe", username)
			assert.Equal(t, "pw", password)
			return auth.TokenResponse{AccessToken: "a", RefreshToken: "r", User: auth.AuthResponse{Username: username}}, nil
		}}
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"jdoe","password":"pw"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		auth.NewHandler(svc).Login(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, w.Result().Cookies(), 2)
		env := decodeEnvelope(t, w)
		assert.Equal(t, "a", env["data"].(map[string]any)["access_token"])
	})

	t.Run("negative invalid credentials", func(t *testing.T) {
		svc := &fakeAuthService{LoginFn: func(context.Context, string, string) (auth.TokenResponse, error) {
			return auth.TokenResponse{}, autherrors.ErrInvalidCredentials
		}}
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"jdoe","password":"bad"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		auth.NewHandler(svc).Login(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		env := decodeEnvelope(t, w)
		assert.Equal(t, false, env["ok"])
		assert.Equal(t, "UNAUTHORIZED", env["error"].(map[string]any)["code"])
	})

	t.Run("negative missing password", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"username":"jdoe"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		auth.NewHandler(&fakeAuthService{}).Login(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
