package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fmhcampus/attendance-platform/internal/config"
	"github.com/fmhcampus/attendance-platform/internal/middleware"
	"github.com/fmhcampus/attendance-platform/internal/model"
	"github.com/fmhcampus/attendance-platform/internal/utils"
)

// CredentialHandler issues service-agent credentials for check-in devices.
type CredentialHandler struct {
	Cfg config.Config
}

func NewCredentialHandler(cfg config.Config) *CredentialHandler {
	return &CredentialHandler{Cfg: cfg}
}

type credentialResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// IssueDeviceCredential mints a service-agent credential bound to the
// caller's institution.  Only admins reach this handler (enforced by route
// middleware); the resulting token is installed on a check-in device and is
// accepted exclusively by the presence submission endpoint.
func (h *CredentialHandler) IssueDeviceCredential(c echo.Context) error {
	institutionID := middleware.InstitutionID(c)
	token, err := utils.IssueCredential(h.Cfg.SigningSecret, institutionID, model.RoleServiceAgent)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue credential failed"})
	}
	return c.JSON(http.StatusOK, credentialResp{AccessToken: token, TokenType: "bearer"})
}
