package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/fmhcampus/attendance-platform/internal/utils" // credential verification
)

// Context keys under which CredentialAuth stores the verified claims.
const (
    CtxInstitutionID = "institution_id"
    CtxRole          = "role"
    CtxRawCredential = "raw_credential"
)

// CredentialAuth returns an Echo middleware that validates a Bearer
// credential and injects the institution id and role claims into the request
// context.  The provided secret must match the one shared by every service
// in the platform.  Handlers behind this middleware read the caller's
// identity via c.Get(CtxInstitutionID) and c.Get(CtxRole); the raw token is
// also kept so handlers that call other services can forward it.
func CredentialAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // A valid header starts with "Bearer " followed by the signed
            // credential.  Anything else is rejected before any work is done.
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            claims, err := utils.VerifyCredential(secret, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }

            c.Set(CtxInstitutionID, claims.InstitutionID)
            c.Set(CtxRole, claims.Role)
            c.Set(CtxRawCredential, raw)
            return next(c)
        }
    }
}

// InstitutionID returns the institution stored by CredentialAuth, or the
// empty string when the request is unauthenticated.
func InstitutionID(c echo.Context) string {
    if v, ok := c.Get(CtxInstitutionID).(string); ok {
        return v
    }
    return ""
}
