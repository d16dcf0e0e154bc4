package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fmhcampus/attendance-platform/internal/config"
	"github.com/fmhcampus/attendance-platform/internal/middleware"
	"github.com/fmhcampus/attendance-platform/internal/model"
	"github.com/fmhcampus/attendance-platform/internal/utils"
)

func TestIssueDeviceCredential(t *testing.T) {
	h := NewCredentialHandler(config.Config{SigningSecret: "unit-test-secret"})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/attendance/credential", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxInstitutionID, "inst-9")
	c.Set(middleware.CtxRole, model.RoleAdmin)

	require.NoError(t, h.IssueDeviceCredential(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp credentialResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "bearer", resp.TokenType)

	// The minted token is a service-agent credential for the admin's own
	// institution, never an admin one.
	claims, err := utils.VerifyCredential("unit-test-secret", resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "inst-9", claims.InstitutionID)
	assert.Equal(t, model.RoleServiceAgent, claims.Role)
}

func TestValidSlot(t *testing.T) {
	tests := []struct {
		name            string
		day, start, end int
		want            bool
	}{
		{"normal slot", 2, 900, 1030, true},
		{"full day", 1, 0, 2359, true},
		{"day zero", 0, 900, 1000, false},
		{"day eight", 8, 900, 1000, false},
		{"minutes over 59", 2, 960, 1000, false},
		{"end before start", 2, 1030, 900, false},
		{"zero length", 2, 900, 900, false},
		{"past midnight", 2, 2300, 2400, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, validSlot(tt.day, tt.start, tt.end))
		})
	}
}
