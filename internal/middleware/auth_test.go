package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmhcampus/attendance-platform/internal/model"
	"github.com/fmhcampus/attendance-platform/internal/utils"
)

const testSecret = "unit-test-secret"

func run(t *testing.T, mw echo.MiddlewareFunc, authz string) (*httptest.ResponseRecorder, echo.Context, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	reached := false
	h := mw(func(c echo.Context) error {
		reached = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, c, reached
}

func TestCredentialAuthInjectsClaims(t *testing.T) {
	token, err := utils.IssueCredential(testSecret, "inst-3", model.RoleServiceAgent)
	require.NoError(t, err)

	rec, c, reached := run(t, CredentialAuth(testSecret), "Bearer "+token)

	assert.True(t, reached)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "inst-3", c.Get(CtxInstitutionID))
	assert.Equal(t, model.RoleServiceAgent, c.Get(CtxRole))
	assert.Equal(t, token, c.Get(CtxRawCredential))
	assert.Equal(t, "inst-3", InstitutionID(c))
}

func TestCredentialAuthMissingHeader(t *testing.T) {
	rec, _, reached := run(t, CredentialAuth(testSecret), "")
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCredentialAuthMalformedHeader(t *testing.T) {
	rec, _, reached := run(t, CredentialAuth(testSecret), "Basic dXNlcjpwYXNz")
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCredentialAuthWrongSecret(t *testing.T) {
	token, err := utils.IssueCredential("other-secret", "inst-3", model.RoleAdmin)
	require.NoError(t, err)

	rec, _, reached := run(t, CredentialAuth(testSecret), "Bearer "+token)
	assert.False(t, reached)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name    string
		role    any
		allowed []string
		want    int
	}{
		{"admin allowed", model.RoleAdmin, []string{model.RoleAdmin}, http.StatusOK},
		{"agent allowed in set", model.RoleServiceAgent, []string{model.RoleServiceAgent, model.RoleAdmin}, http.StatusOK},
		{"agent rejected on admin route", model.RoleServiceAgent, []string{model.RoleAdmin}, http.StatusForbidden},
		{"missing role", nil, []string{model.RoleAdmin}, http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)
			if tt.role != nil {
				c.Set(CtxRole, tt.role)
			}
			h := RequireRole(tt.allowed...)(func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			})
			require.NoError(t, h(c))
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
