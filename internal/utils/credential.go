package utils // package utils provides helper functions for credential signing and verification

import (
    "errors" // error values returned on verification failure
    "time"   // issued-at timestamps

    "github.com/golang-jwt/jwt/v5" // JWT library for creating and parsing signed tokens

    "github.com/fmhcampus/attendance-platform/internal/model" // role constants and claim struct
)

// ErrBadCredential is returned whenever a presented credential cannot be
// accepted: unparseable token, wrong signing algorithm, bad signature, or
// missing claims.  Callers translate it into a 401 response.
var ErrBadCredential = errors.New("invalid credential")

// IssueCredential builds and signs an HS256 credential asserting that the
// bearer acts for the given institution with the given role.  The claims are
// subject (sub), role and issued-at (iat).  Credentials carry no expiry;
// they stay valid until the shared signing secret changes.
func IssueCredential(secret, institutionID, role string) (string, error) {
    claims := jwt.MapClaims{
        "sub":  institutionID,
        "role": role,
        "iat":  time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    return t.SignedString([]byte(secret))
}

// VerifyCredential parses and validates a credential string against the
// shared secret and returns its decoded claims.  Tokens signed with any
// algorithm other than HMAC are rejected outright, as are tokens whose
// subject or role claim is absent or not a string.
func VerifyCredential(secret, token string) (model.CredentialClaims, error) {
    tok, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
        // Type assert the signing method to HMAC; reject others.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrBadCredential
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return model.CredentialClaims{}, ErrBadCredential
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return model.CredentialClaims{}, ErrBadCredential
    }
    sub, ok := claims["sub"].(string)
    if !ok || sub == "" {
        return model.CredentialClaims{}, ErrBadCredential
    }
    role, ok := claims["role"].(string)
    if !ok || role == "" {
        return model.CredentialClaims{}, ErrBadCredential
    }
    return model.CredentialClaims{InstitutionID: sub, Role: role}, nil
}

// ElevateCredential mints an admin-role credential for the given institution.
// The orchestrator calls this once per presence submission before talking to
// downstream services: devices hold a narrow service-agent credential, but
// the directory, roster and schedule services only grant data access to
// admin-role tokens.  The minted token is used for the in-flight request and
// never persisted.
func ElevateCredential(secret, institutionID string) (string, error) {
    return IssueCredential(secret, institutionID, model.RoleAdmin)
}
